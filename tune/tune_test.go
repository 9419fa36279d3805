package tune

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const haveADrink = `X:12
T:Have a Drink with Me
R:jig
D:Patrick Street 1.
Z:id:hn-jig-12
M:6/8
K:G
BAG E2D|EGD EGA|BAB GED|EAA ABc|BAG E2D|EGD EGA|BAB GED|EGG G3:|
|:GBd e2d|dgd B2A|GBd edB|cea ~a3|bag age|ged ege|dBG ABc|BGG G3:|`

func classNames(t *Tune) string {
	var names []string
	for n := range t.Notes() {
		names = append(names, n.ClassName())
	}
	return strings.Join(names, " ")
}

func TestSimpleTune(t *testing.T) {
	assert := assert.New(t)

	tune, ws, err := Parse(haveADrink)
	require.NoError(t, err)
	assert.Empty(ws)

	assert.Equal("Have a Drink with Me", tune.Title())
	assert.True(tune.Key().Equal(key.MustParse("G")))
	assert.Equal("jig", tune.Type())
	ref, ok := tune.Reference()
	assert.True(ok)
	assert.Equal(12, ref)

	num, den, ok := tune.Meter()
	assert.True(ok)
	assert.Equal([2]int{6, 8}, [2]int{num, den})
	assert.Equal(note.MustDuration(1, 8), tune.Unit())

	assert.Len(tune.Measures(), 32)
	count := 0
	for range tune.Notes() {
		count++
	}
	assert.Equal(172, count)

	first := tune.Measures()[0]
	assert.Equal("B4_1/8", first[0].String())
	assert.Equal("E4_1/4", first[3].String())
	assert.Equal("A5_3/8", tune.Measures()[19][3].String())
	assert.True(tune.Equal(MustParse(haveADrink)))
}

func TestInfoFields(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("tune title", InfoFields['T'].Name)
	assert.True(InfoFields['K'].TuneBody)
	assert.False(InfoFields['X'].FileHeader)
	assert.True(TuneHeaderFields()['X'])
	assert.False(TuneBodyFields()['X'])
	assert.True(InlineFields()['K'])
	assert.True(FileHeaderFields()['C'])
	assert.Len(InfoFields, 27)

	assert.True(isFieldLine("T:Kesh"))
	assert.False(isFieldLine("E:Kesh"))
	assert.False(isFieldLine("A B c|"))
}

func TestRepeatsNoEndings(t *testing.T) {
	tune := MustParse(`
	T:?
	L:1
	M:4/4
	R:reel
	K:G
	G | A :|
	|: B | C :|
	`)
	assert.Equal(t, "G A G A B C B C", classNames(tune))
	assert.Equal(t, "reel", tune.Type())
}

func TestRepeatsWithEndings(t *testing.T) {
	tune := MustParse(`
	T:?
	L:1
	M:4/4
	R:reel
	K:G
	G |1 A | A :|2 a | a ||
	|: B |1 C :|2 c ||
	`)

	var abc []string
	for n := range tune.Notes() {
		abc = append(abc, n.ToABC(tune.Context()))
	}
	assert.Equal(t, "G A A G a a B C B c", strings.Join(abc, " "))
}

func TestRepeatMarkers(t *testing.T) {
	assert := assert.New(t)

	// :: is a right repeat and a left repeat at once
	tune := MustParse("L:1\nK:C\nC :: D :|")
	assert.Equal("C C D D", classNames(tune))

	tune = MustParse("L:1\nK:C\nC |[1 D :|[2 E |]")
	assert.Equal("C D C E", classNames(tune))

	// a first ending before the last |: does not cut the next replay short
	tune = MustParse("L:1\nK:C\nA |1 B |2 C |: D :|")
	assert.Equal("A B C D D", classNames(tune))
}

func TestCarryOver(t *testing.T) {
	tune := MustParse("L:1\nK:C\nC D\nE | F\nG")
	ms := tune.Measures()
	require.Len(t, ms, 2)
	assert.Len(t, ms[0], 3)
	assert.Equal(t, "F G", classNames(&Tune{measures: ms[1:]}))
}

func TestHeader(t *testing.T) {
	assert := assert.New(t)

	tune, ws, err := Parse(`X:1
T:First % a comment
T:Second
N:a note that
+:goes on
%%MIDI program 1
K:Ador
ABc|`)
	require.NoError(t, err)
	assert.True(ws.Has(diag.DuplicateField))

	h := tune.Header()
	assert.Equal("First", tune.Title())
	assert.Equal("Second", h.Value("tune title 2"))
	assert.Equal("a note that goes on", h.Value("notes"))
	assert.Equal([]string{"reference number", "tune title", "tune title 2", "notes", "key"}, h.Names())
	assert.Equal(5, h.Len())
	_, ok := h.Get("meter")
	assert.False(ok)

	var names []string
	for name, value := range h.All() {
		names = append(names, name+"="+value)
	}
	assert.Equal("key=Ador", names[4])
	assert.Equal("Ador", h.Map()["key"])
}

func TestEscapedPercent(t *testing.T) {
	tune := MustParse(`T:100\% Irish % comment
K:C
C|`)
	assert.Equal(t, "100% Irish", tune.Title())
}

func TestBodyFields(t *testing.T) {
	assert := assert.New(t)

	tune, _, err := Parse("T:A\nL:1/4\nK:G\nF|\nK:C\nL:1/8\nF|\nT:Part B")
	require.NoError(t, err)
	assert.True(tune.Key().Equal(key.MustParse("G")))
	assert.Equal("key 2", tune.Header().Names()[3])
	assert.Equal("Part B", tune.Header().Value("tune title 2"))

	ms := tune.Measures()
	require.Len(t, ms, 2)
	assert.Equal("F#4_1/4", ms[0][0].String())
	assert.Equal("F4_1/8", ms[1][0].String())
}

func TestMissingKey(t *testing.T) {
	tune, ws, err := Parse("T:No Key\nM:2/4\nF G|")
	require.NoError(t, err)
	assert.True(t, ws.Has(diag.MissingKey))
	assert.Equal(t, "Cmaj", tune.Key().String())
	assert.Equal(t, note.MustDuration(1, 16), tune.Unit())
	assert.Equal(t, "F G", classNames(tune))
}

func TestKeyNone(t *testing.T) {
	tune := MustParse("K:none\nF|")
	assert.True(t, tune.Key().Equal(key.MustParse("C")))
	assert.Equal(t, "F", classNames(tune))
}

func TestDroppedNotation(t *testing.T) {
	assert := assert.New(t)

	tune, ws, err := Parse(`K:D
"D"!trill!A2 {g}B [c] [M:3/4] x2 (3ABc|`)
	require.NoError(t, err)
	assert.True(ws.Has(diag.NotationDropped))
	assert.True(ws.Has(diag.RestDropped))
	assert.Equal("A B C# A B C#", classNames(tune))
}

func TestRejected(t *testing.T) {
	cases := map[string]error{
		"chord":        note.ErrChord,
		"third ending": ErrUnsupportedEnding,
		"bad key":      key.ErrInvalidKey,
		"bad note":     note.ErrInvalidDuration,
		"long note":    note.ErrInvalidDuration,
	}
	abc := map[string]string{
		"chord":        "K:C\nA [CEG] B|",
		"third ending": "K:C\nA |1 B :|2 c :|3 d ||",
		"bad key":      "K:H\nA|",
		"bad note":     "K:C\nA B C//3|",
		"long note":    "X:1\nK:C\nC" + strings.Repeat("/", 61) + " D |",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, _, err = Parse(abc[name]) })
			assert.ErrorIs(t, err, ErrParse)
			assert.True(t, errors.Is(err, want), err)
		})
	}
}

func TestTempo(t *testing.T) {
	assert := assert.New(t)

	beat, bpm, ok := MustParse("Q:\"Allegro\" 1/4=120\nK:C").Tempo()
	assert.True(ok)
	assert.Equal(note.MustDuration(1, 4), beat)
	assert.Equal(120, bpm)

	beat, bpm, ok = MustParse("L:1/8\nQ:200\nK:C").Tempo()
	assert.True(ok)
	assert.Equal(note.MustDuration(1, 8), beat)
	assert.Equal(200, bpm)

	_, _, ok = MustParse("K:C").Tempo()
	assert.False(ok)
}

func TestMeter(t *testing.T) {
	cases := map[string][3]int{
		"C":       {4, 4, 1},
		"C|":      {2, 2, 1},
		"6/8":     {6, 8, 1},
		"2+3+2/8": {7, 8, 1},
		"none":    {0, 0, 0},
	}
	for meter, want := range cases {
		num, den, ok := parseMeter(meter)
		okInt := 0
		if ok {
			okInt = 1
		}
		assert.Equal(t, want, [3]int{num, den, okInt}, meter)
	}
	assert.Equal(t, note.MustDuration(1, 16), unitFromMeter("2/4"))
	assert.Equal(t, note.MustDuration(1, 8), unitFromMeter("3/4"))
	assert.Equal(t, note.MustDuration(1, 8), unitFromMeter(""))
}

func TestSplitBook(t *testing.T) {
	assert := assert.New(t)

	header, tunes := SplitBook("%abc-2.1\nO:Ireland\n\nX:1\nT:One\nK:G\nG|\n\nX:2\r\nT:Two\r\nK:D\r\nD|\n")
	assert.Equal("%abc-2.1\nO:Ireland", header)
	require.Len(t, tunes, 2)
	assert.Equal("X:1\nT:One\nK:G\nG|", tunes[0])
	assert.Equal("Two", MustParse(tunes[1]).Title())

	header, tunes = SplitBook(haveADrink)
	assert.Empty(header)
	assert.Equal([]string{haveADrink}, tunes)
}
