package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/abcdex/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jigs = `%abc-2.1
O:Ireland

X:12
T:Have a Drink with Me
R:jig
M:6/8
K:G
BAG E2D|EGD EGA|BAB GED|EAA ABc|BAG E2D|EGD EGA|BAB GED|EGG G3:|
|:GBd e2d|dgd B2A|GBd edB|cea ~a3|bag age|ged ege|dBG ABc|BGG G3:|

X:13
T:The Kesh
R:Jig
M:6/8
K:Gmaj
GAG GAB|ABA ABd|
`

const broken = `X:1
T:Broken Chords
K:C
[CEG] A|
`

func writeLibrary(t *testing.T) (string, []string) {
	dir := t.TempDir()
	files := map[string]string{"jigs.abc": jigs, "broken.abc": broken}
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)
	_, paths := writeLibrary(t)

	c := Build(append(paths, "/does/not/exist.abc"), nil)
	require.Len(t, c.Entries, 3)

	byTitle := make(map[string]int)
	for i, e := range c.Entries {
		byTitle[e.Title] = i
	}

	drink := c.Entries[byTitle["Have a Drink with Me"]]
	assert.Equal(12, drink.Reference)
	assert.Equal("jig", drink.Type)
	assert.Equal("Gmaj", drink.Key)
	assert.Equal("6/8", drink.Meter)
	assert.Equal(32, drink.NumMeasures)
	assert.Equal(172, drink.NumNotes)
	assert.Equal("B A G E2 D | E G D E G A", drink.Incipit)
	assert.False(drink.Failed())
	assert.Equal(EntryID(drink.File, 0), drink.ID)

	kesh := c.Entries[byTitle["The Kesh"]]
	assert.Equal(1, kesh.Index)
	assert.NotEqual(drink.ID, kesh.ID)

	failed := c.Entries[byTitle["Broken Chords"]]
	assert.True(failed.Failed())
	assert.Contains(failed.Error, "[CEG]")

	got, ok := c.Get(kesh.ID)
	assert.True(ok)
	assert.Equal(kesh, got)
	_, ok = c.Get("nope")
	assert.False(ok)
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)
	_, paths := writeLibrary(t)
	c := Build(paths, nil)

	res, total, err := c.Search(Query{Key: "G"})
	require.NoError(t, err)
	assert.Equal(2, total)
	assert.Len(res, 2)

	res, total, err = c.Search(Query{Title: "kesh"})
	require.NoError(t, err)
	assert.Equal(1, total)
	assert.Equal("The Kesh", res[0].Title)

	res, total, err = c.Search(Query{Type: "JIG", Start: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(2, total)
	assert.Len(res, 1)

	// failed tunes are never matched
	_, total, err = c.Search(Query{Title: "broken"})
	require.NoError(t, err)
	assert.Zero(total)

	_, total, err = c.Search(Query{Key: "Em", Start: 10})
	require.NoError(t, err)
	assert.Zero(total)

	_, _, err = c.Search(Query{Key: "H"})
	assert.ErrorIs(err, key.ErrInvalidKey)
}

func TestSaveLoad(t *testing.T) {
	dir, paths := writeLibrary(t)
	c := Build(paths, nil)

	path := Path(filepath.Join(dir, "out"))
	require.NoError(t, c.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestStats(t *testing.T) {
	assert := assert.New(t)
	_, paths := writeLibrary(t)
	s := Build(paths, nil).Stats()

	assert.Equal(2, s.NumFiles)
	assert.Equal(3, s.NumTunes)
	assert.Equal(1, s.NumFailed)
	assert.Equal(uint64(34), s.NumMeasures)
	assert.Equal(uint64(184), s.NumNotes)
	assert.Equal(map[string]int{"Gmaj": 2}, s.ByKey)
	assert.Equal(map[string]int{"jig": 2}, s.ByType)

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))
	assert.Contains(buf.String(), "tunes: 3\n")
	assert.Contains(buf.String(), "key Gmaj: 2\n")
}
