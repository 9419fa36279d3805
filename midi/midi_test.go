package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/abcdex/note"
	"github.com/jsphweid/abcdex/tune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

const abc = `X:1
T:Gaps
M:2/4
L:1/4
Q:1/8=180
K:G
F z G2|[1 c :|[2 B,4||`

func TestExportAndRead(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, tune.MustParse(abc), DefaultOptions()))

	s, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(smf.MetricTicks(TicksPerQuarter), s.TimeFormat)

	notes, err := Notes(s)
	require.NoError(t, err)

	want := []note.Note{
		note.FromValue(54, note.MustDuration(1, 4)),
		note.FromValue(55, note.MustDuration(1, 2)),
		note.FromValue(60, note.MustDuration(1, 4)),
		note.FromValue(54, note.MustDuration(1, 4)),
		note.FromValue(55, note.MustDuration(1, 2)),
		note.FromValue(47, note.MustDuration(1, 1)),
	}
	require.Len(t, notes, len(want))
	for i := range want {
		assert.True(want[i].Equal(notes[i]), "%d: %s vs %s", i, want[i], notes[i])
	}

	var (
		bpm        float64
		num, denom uint8
	)
	for _, ev := range s.Tracks[0] {
		ev.Message.GetMetaTempo(&bpm)
		ev.Message.GetMetaMeter(&num, &denom)
	}
	assert.InDelta(90.0, bpm, 0.01)
	assert.Equal([2]uint8{2, 4}, [2]uint8{num, denom})
}

func TestRestGapIsKept(t *testing.T) {
	s, err := Build(tune.MustParse("L:1/4\nK:C\nC z D|"), DefaultOptions())
	require.NoError(t, err)

	var (
		abs int64
		ons []int64
	)
	for _, ev := range s.Tracks[0] {
		abs += int64(ev.Delta)
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			ons = append(ons, abs)
		}
	}
	assert.Equal(t, []int64{0, 2 * TicksPerQuarter}, ons)
}

func TestOutOfRange(t *testing.T) {
	_, err := Build(tune.MustParse("K:C\nC,,,,,,|"), DefaultOptions())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Export(f, tune.MustParse(abc), DefaultOptions()))
	require.NoError(t, f.Close())

	s, err := ReadMidiFile(path)
	require.NoError(t, err)
	notes, err := Notes(s)
	require.NoError(t, err)
	assert.Len(t, notes, 6)

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	notes, err = ReadNotes(f)
	require.NoError(t, err)
	assert.Equal(t, "G", notes[1].ClassName())

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte("not a midi file")))
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	assert := assert.New(t)

	s, err := Build(tune.MustParse(abc), DefaultOptions())
	require.NoError(t, err)

	// from the G after the rest: G2 then c
	excerpt := Sample(s, 2*TicksPerQuarter, 2)
	notes, err := Notes(excerpt)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(note.FromValue(55, note.MustDuration(1, 2)).Equal(notes[0]))
	assert.True(note.FromValue(60, note.MustDuration(1, 4)).Equal(notes[1]))

	var bpm float64
	for _, ev := range excerpt.Tracks[0] {
		ev.Message.GetMetaTempo(&bpm)
	}
	assert.InDelta(90.0, bpm, 0.01)

	notes, err = Notes(Sample(s, 0, 1))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(54, notes[0].Value())
}
