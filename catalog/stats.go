package catalog

import (
	"fmt"
	"io"

	"github.com/jsphweid/abcdex/util"
)

type Stats struct {
	NumFiles    int            `json:"num_files" yaml:"num_files"`
	NumTunes    int            `json:"num_tunes" yaml:"num_tunes"`
	NumFailed   int            `json:"num_failed" yaml:"num_failed"`
	NumWarned   int            `json:"num_warned" yaml:"num_warned"`
	NumMeasures uint64         `json:"num_measures" yaml:"num_measures"`
	NumNotes    uint64         `json:"num_notes" yaml:"num_notes"`
	ByKey       map[string]int `json:"by_key" yaml:"by_key"`
	ByType      map[string]int `json:"by_type" yaml:"by_type"`
}

func (c *Catalog) Stats() Stats {
	s := Stats{ByKey: make(map[string]int), ByType: make(map[string]int)}
	files := make(map[string]bool)
	var measures, notes []int
	for _, e := range c.Entries {
		files[e.File] = true
		s.NumTunes++
		if e.Failed() {
			s.NumFailed++
			continue
		}
		if len(e.Warnings) > 0 {
			s.NumWarned++
		}
		measures = append(measures, e.NumMeasures)
		notes = append(notes, e.NumNotes)
		s.ByKey[e.Key]++
		if e.Type != "" {
			s.ByType[e.Type]++
		}
	}
	s.NumFiles = len(files)
	s.NumMeasures = util.Sum(measures)
	s.NumNotes = util.Sum(notes)
	return s
}

// Report writes the stats as plain lines, counts sorted by name.
func (s Stats) Report(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("files: %v", s.NumFiles),
		fmt.Sprintf("tunes: %v", s.NumTunes),
		fmt.Sprintf("failed: %v", s.NumFailed),
		fmt.Sprintf("with warnings: %v", s.NumWarned),
		fmt.Sprintf("measures: %v", s.NumMeasures),
		fmt.Sprintf("notes: %v", s.NumNotes),
	}
	for _, k := range util.GetKeys(s.ByKey) {
		lines = append(lines, fmt.Sprintf("key %s: %v", k, s.ByKey[k]))
	}
	for _, t := range util.GetKeys(s.ByType) {
		lines = append(lines, fmt.Sprintf("type %s: %v", t, s.ByType[t]))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
