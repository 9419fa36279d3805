// Package key models keys as a tonic plus a mode and derives signatures,
// scales and relative keys from them.
package key

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/pitch"
	"github.com/jsphweid/abcdex/util"
)

var (
	ErrInvalidKey    = errors.New("invalid key")
	ErrUnknownMode   = errors.New("unrecognized mode")
	ErrNotInScale    = errors.New("not in scale")
	ErrUnsupported   = errors.New("unsupported")
	ErrInvalidFormat = errors.New("invalid format")
)

// IonianSharpFlatCount is the number of sharps (positive) or flats
// (negative) in each major key of the circle of fifths.
var IonianSharpFlatCount = map[string]int{
	"C#": 7,
	"F#": 6,
	"B":  5,
	"E":  4,
	"A":  3,
	"D":  2,
	"G":  1,
	"C":  0,
	"F":  -1,
	"Bb": -2,
	"Eb": -3,
	"Ab": -4,
	"Db": -5,
	"Gb": -6,
	"Cb": -7,
}

const (
	SharpOrder = "FCGDAEB"
	FlatOrder  = "BEADGCF"
)

// fifths counts steps from C around the circle of fifths for each letter.
var fifths = map[byte]int{'F': -1, 'C': 0, 'G': 1, 'D': 2, 'A': 3, 'E': 4, 'B': 5}

var reKey = regexp.MustCompile(`^([A-G])(#|b)?\s*(\w+)?(.*)`)

type Key struct {
	tonic pitch.PitchClass
	mode  Mode
}

func New(tonic pitch.PitchClass, mode Mode) Key {
	return Key{tonic: tonic, mode: mode}
}

// FromNames builds a key from a tonic name like "F#" and a mode spec.
func FromNames(tonic, mode string) (Key, error) {
	pc, err := pitch.ParsePitchClass(tonic)
	if err != nil {
		return Key{}, fmt.Errorf("%w: tonic %q: %w", ErrInvalidKey, tonic, err)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return Key{}, err
	}
	return Key{tonic: pc, mode: m}, nil
}

// Parse reads key specs like "D", "Ador", "Bb minor" or "Em". A missing
// mode means major and "m" means minor. Anything after the mode, such as
// a clef, is ignored and reported.
func Parse(spec string) (Key, diag.Warnings, error) {
	spec = strings.TrimSpace(spec)
	m := reKey.FindStringSubmatch(spec)
	if m == nil {
		return Key{}, nil, fmt.Errorf("%w %q", ErrInvalidKey, spec)
	}
	letter, acc, modeText, extra := m[1], m[2], m[3], m[4]

	var ws diag.Warnings
	// "G clef=bass" has no mode; the word belongs to the trailing text.
	if strings.HasPrefix(extra, "=") {
		extra = modeText + extra
		modeText = ""
	}
	mode, err := ParseMode(modeText)
	if err != nil {
		return Key{}, nil, fmt.Errorf("%w from key %q", err, spec)
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		ws.Addf(diag.KeyTrailingText, "ignoring %q after key %q", extra, spec)
	}
	return Key{tonic: pitch.MustParsePitchClass(letter + acc), mode: mode}, ws, nil
}

func MustParse(spec string) Key {
	k, _, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) Tonic() pitch.PitchClass {
	return k.tonic
}

func (k Key) Mode() Mode {
	return k.mode
}

// String is the compact form, e.g. "Ador".
func (k Key) String() string {
	return k.tonic.Name() + string(k.mode)
}

// Name is the long form, e.g. "A dorian".
func (k Key) Name() string {
	return k.tonic.Name() + " " + k.mode.Name()
}

// Equal compares tonic values and treats major/ionian and minor/aeolian
// as the same mode.
func (k Key) Equal(other Key) bool {
	return k.tonic.Equal(other.tonic) && k.mode.Equivalent(other.mode)
}

// relativeTonic finds the tonic of the key sharing this key's notes in
// mode target. The letter is rotated by the difference in mode degrees,
// so the spelling follows from the letter alone.
func (k Key) relativeTonic(target Mode) pitch.PitchClass {
	value := util.Mod(k.tonic.Value()+k.mode.Value()-target.Value(), 12)
	idx := strings.IndexByte(pitch.Letters, k.tonic.Natural()[0])
	letter := pitch.Letters[util.Mod(idx+target.Degree()-k.mode.Degree(), 7)]

	delta := util.Mod(value-pitch.NaturalValues[letter]+6, 12) - 6
	if util.Abs(delta) > 2 {
		return pitch.NewPitchClass(value)
	}
	return pitch.MustParsePitchClass(string(letter) + accidentalString(delta))
}

// Relative is the key in mode target with the same notes, e.g. the
// relative minor of C is A minor.
func (k Key) Relative(target Mode) Key {
	return Key{tonic: k.relativeTonic(target), mode: target}
}

// RelativeMatchingAccidentals is like Relative but spells the new tonic
// with the same kind of accidental as this key's tonic where it can,
// instead of by letter rotation. The two can disagree, e.g. for keys
// around Cb and C#.
func (k Key) RelativeMatchingAccidentals(target Mode) Key {
	root := pitch.NewPitchClass(k.tonic.Value() + k.mode.Value() - target.Value())
	switch name := k.tonic.Name(); {
	case strings.Contains(name, "#"):
		if s := root.EquivalentSharp(); len(s.Name()) == 2 {
			root = s
		}
	case strings.Contains(name[1:], "b"):
		if f := root.EquivalentFlat(); len(f.Name()) == 2 {
			root = f
		}
	}
	return Key{tonic: pitch.MustParsePitchClass(root.Name()), mode: target}
}

func (k Key) RelativeIonian() Key {
	return k.Relative(Ionian)
}

func (k Key) RelativeMajor() Key {
	return k.Relative(Major)
}

func (k Key) RelativeAeolian() Key {
	return k.Relative(Aeolian)
}

func (k Key) RelativeMinor() Key {
	return k.Relative(Minor)
}

// SharpFlatCount is positive for sharps. Keys off the circle of fifths
// table, like G# major, go beyond seven.
func (k Key) SharpFlatCount() int {
	rel := k.relativeTonic(Major)
	if n, ok := IonianSharpFlatCount[rel.Name()]; ok {
		return n
	}
	return fifths[rel.Natural()[0]] + 7*rel.AccidentalDelta()
}

// Signature lists the accidentals of the key signature in the order they
// are written, e.g. ["F#", "C#"] for D major. Past seven, letters pick up
// double accidentals.
func (k Key) Signature() []string {
	n := k.SharpFlatCount()
	order, mark := SharpOrder, "#"
	if n < 0 {
		order, mark, n = FlatOrder, "b", -n
	}
	var sig []string
	for i := 0; i < util.Min(n, 7); i++ {
		count := 1
		if i < n-7 {
			count = 2
		}
		sig = append(sig, string(order[i])+strings.Repeat(mark, count))
	}
	return sig
}

// Accidentals maps each altered letter to its accidental.
func (k Key) Accidentals() map[string]string {
	accs := make(map[string]string, 7)
	for _, s := range k.Signature() {
		accs[s[:1]] = s[1:]
	}
	return accs
}

// Letters are the seven natural letters starting at the tonic's letter.
func (k Key) Letters() []string {
	idx := strings.IndexByte(pitch.Letters, k.tonic.Natural()[0])
	letters := make([]string, 7)
	for i := range letters {
		letters[i] = string(pitch.Letters[(idx+i)%7])
	}
	return letters
}

// Scale always uses each letter once, with the signature's accidental.
func (k Key) Scale() []pitch.PitchClass {
	accs := k.Accidentals()
	scale := make([]pitch.PitchClass, 0, 7)
	for _, l := range k.Letters() {
		scale = append(scale, pitch.MustParsePitchClass(l+accs[l]))
	}
	return scale
}

// ScaleChromaticValues are the scale's values relative to the tonic.
func (k Key) ScaleChromaticValues() []int {
	scale := k.Scale()
	values := make([]int, len(scale))
	for i, pc := range scale {
		values[i] = pc.ValueFrom(k.tonic)
	}
	return values
}

// Intervals is the step pattern of the scale, "W" for whole and "H" for
// half steps.
func (k Key) Intervals() []string {
	values := append(k.ScaleChromaticValues(), 12)
	steps := make([]string, 7)
	for i := range steps {
		switch values[i+1] - values[i] {
		case 1:
			steps[i] = "H"
		case 2:
			steps[i] = "W"
		default:
			steps[i] = fmt.Sprint(values[i+1] - values[i])
		}
	}
	return steps
}

func accidentalString(delta int) string {
	switch {
	case delta > 0:
		return strings.Repeat("#", delta)
	case delta < 0:
		return strings.Repeat("b", -delta)
	}
	return ""
}
