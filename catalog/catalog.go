// Package catalog indexes a library of .abc files: one entry per tune,
// kept in a single gob file under the index directory.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/model"
	"github.com/jsphweid/abcdex/tune"
	"github.com/jsphweid/abcdex/util"
)

const (
	Filename        = "catalog.dat"
	IncipitMeasures = 2
)

type Catalog struct {
	Entries []model.Entry
}

func Path(indexDir string) string {
	return filepath.Join(indexDir, Filename)
}

// EntryID is stable across rebuilds so stores can be updated in place.
func EntryID(file string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", filepath.ToSlash(file), index))).String()
}

func incipit(t *tune.Tune, n int) string {
	ctx := t.Context()
	var bars []string
	for _, m := range t.Measures()[:min(n, len(t.Measures()))] {
		tokens := make([]string, len(m))
		for i, ev := range m {
			tokens[i] = ev.ToABC(ctx)
		}
		bars = append(bars, strings.Join(tokens, " "))
	}
	return strings.Join(bars, " | ")
}

// NewEntry parses one tune. A tune that fails to parse still gets an
// entry, with Error set.
func NewEntry(file string, index int, abc string) model.Entry {
	e := model.Entry{ID: EntryID(file, index), File: file, Index: index}

	t, ws, err := tune.Parse(abc)
	for _, w := range ws {
		e.Warnings = append(e.Warnings, w.String())
	}
	if err != nil {
		e.Error = err.Error()
		e.Title = headerTitle(abc)
		return e
	}

	e.Reference, _ = t.Reference()
	e.Title = t.Title()
	e.Type = t.Type()
	e.Key = t.Key().String()
	e.Meter = t.Header().Value("meter")
	e.NumMeasures = len(t.Measures())
	for range t.Notes() {
		e.NumNotes++
	}
	e.Incipit = incipit(t, IncipitMeasures)
	return e
}

func headerTitle(abc string) string {
	for _, line := range strings.Split(abc, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "T:"); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// ProcessFile returns an entry for every tune in the file.
func ProcessFile(path string) ([]model.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	_, tunes := tune.SplitBook(string(data))
	entries := make([]model.Entry, len(tunes))
	for i, abc := range tunes {
		entries[i] = NewEntry(path, i, abc)
	}
	return entries, nil
}

// Build indexes every file. Unreadable files are skipped and logged.
func Build(paths []string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	var c Catalog
	for i, path := range paths {
		logger.Debug("processing abc file", "n", i+1, "of", len(paths), "path", path)
		entries, err := ProcessFile(path)
		if err != nil {
			logger.Warn("skipping file", "path", path, "err", err)
			continue
		}
		for _, e := range entries {
			if e.Failed() {
				logger.Warn("tune not parsed", "path", path, "index", e.Index, "title", e.Title, "err", e.Error)
			}
		}
		c.Entries = append(c.Entries, entries...)
	}
	return &c
}

func (c *Catalog) Save(path string) error {
	return util.CreateBinary(path, c)
}

func Load(path string) (*Catalog, error) {
	return util.ReadBinary[*Catalog](path)
}

func (c *Catalog) Get(id string) (model.Entry, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

// Query filters entries. Empty fields match everything. Title matches a
// case-insensitive substring and Key matches equal keys, so "Em" also
// finds tunes given as "E aeolian".
type Query struct {
	Title string
	Key   string
	Type  string
	Start int
	Limit int
}

// Search returns one page of matches and the total number of matches.
func (c *Catalog) Search(q Query) ([]model.Entry, int, error) {
	var want *key.Key
	if q.Key != "" {
		k, _, err := key.Parse(q.Key)
		if err != nil {
			return nil, 0, err
		}
		want = &k
	}

	var matches []model.Entry
	for _, e := range c.Entries {
		if e.Failed() {
			continue
		}
		if q.Title != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(q.Title)) {
			continue
		}
		if q.Type != "" && !strings.EqualFold(e.Type, q.Type) {
			continue
		}
		if want != nil {
			k, _, err := key.Parse(e.Key)
			if err != nil || !k.Equal(*want) {
				continue
			}
		}
		matches = append(matches, e)
	}

	start := min(max(q.Start, 0), len(matches))
	end := len(matches)
	if q.Limit > 0 {
		end = min(start+q.Limit, end)
	}
	return matches[start:end], len(matches), nil
}
