package key

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jsphweid/abcdex/pitch"
	"github.com/jsphweid/abcdex/util"
)

// Number and accidental formats for ScaleDegree.
const (
	Arabic  = "arabic"
	Roman   = "roman"
	ASCII   = "ascii"
	Unicode = "unicode"
)

// majorValues are the Ionian scale values relative to the tonic.
var majorValues = []int{0, 2, 4, 5, 7, 9, 11}

// ChromaticSolfege holds the movable-do syllables for each semitone above
// the tonic, raised form first where there are two.
var ChromaticSolfege = [12][]string{
	{"Do"},
	{"Di", "Ra"},
	{"Re"},
	{"Ri", "Me"},
	{"Mi"},
	{"Fa"},
	{"Fi", "Se"},
	{"So"},
	{"Si", "Le"},
	{"La"},
	{"Li", "Te"},
	{"Ti"},
}

var reDigits = regexp.MustCompile(`[0-9]+`)

// ValueIn is the chromatic distance of pc above the key's tonic. Without
// mod, spellings below the tonic's letter give negatives.
func ValueIn(pc pitch.PitchClass, k Key, mod bool) int {
	if mod {
		return pc.ValueFrom(k.tonic)
	}
	v, _, _ := pitch.ClassValue(pc.Name(), "", false)
	t, _, _ := pitch.ClassValue(k.tonic.Name(), "", false)
	return v - t
}

// ScaleDegreeInt is the 1-based position of pc in the key's scale. Both the
// value and the letter must match, so E# is not the fourth degree of C
// major even though it sounds like F. Unspelled classes go by their
// NiceChromaticNames letter.
func ScaleDegreeInt(pc pitch.PitchClass, k Key) (int, error) {
	v := ValueIn(pc, k, true)
	i := slices.Index(k.ScaleChromaticValues(), v) + 1
	if i == 0 {
		return 0, fmt.Errorf("%w: %s is not in the %s scale", ErrNotInScale, pc.Name(), k.Name())
	}
	if letterIndex(k, pc)+1 != i {
		return 0, fmt.Errorf("%w: %s is not in the %s scale", ErrNotInScale, pc.Name(), k.Name())
	}
	return i, nil
}

func letterIndex(k Key, pc pitch.PitchClass) int {
	return slices.Index(k.Letters(), pc.Natural())
}

// ScaleDegree renders pc as a degree of k allowing accidentals, e.g. "b3".
// A class built from a bare value has no spelling to go by, so chromatic
// notes come out as both options, e.g. "#1/b2".
func ScaleDegree(pc pitch.PitchClass, k Key, numFmt, accFmt string) (string, error) {
	var s string
	if pc.Explicit() {
		i := letterIndex(k, pc) + 1
		dv := pc.AccidentalDelta() - k.Scale()[i-1].AccidentalDelta()
		if util.Abs(dv) > 2 {
			return "", fmt.Errorf("%w: %s is more than two semitones off the %s scale", ErrNotInScale, pc.Name(), k.Name())
		}
		s = accidentalString(dv) + strconv.Itoa(i)
	} else {
		s = enharmonicDegree(ValueIn(pc, k, true), k.ScaleChromaticValues(), "#/b")
	}
	return formatDegree(s, numFmt, accFmt)
}

// enharmonicDegree labels value v against scale values scvs. Off-scale
// values are named from the degree below and the one above, so a note
// above the seventh is "#7/b8".
func enharmonicDegree(v int, scvs []int, accFmt string) string {
	if i := slices.Index(scvs, v); i >= 0 {
		return strconv.Itoa(i + 1)
	}
	below := 0
	for _, sv := range scvs {
		if sv < v {
			below++
		}
	}
	above := below + 1
	sharp, flat := "#"+strconv.Itoa(below), "b"+strconv.Itoa(above)
	switch accFmt {
	case "#":
		return sharp
	case "b":
		return flat
	case "b/#":
		return flat + "/" + sharp
	}
	return sharp + "/" + flat
}

func formatDegree(s, numFmt, accFmt string) (string, error) {
	switch strings.ToLower(numFmt) {
	case Arabic, "":
	case Roman:
		var err error
		s = reDigits.ReplaceAllStringFunc(s, func(d string) string {
			n, _ := strconv.Atoi(d)
			r, rerr := pitch.ToRoman(n)
			if rerr != nil {
				err = rerr
			}
			return r
		})
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: number format %q", ErrInvalidFormat, numFmt)
	}

	switch strings.ToLower(accFmt) {
	case ASCII, "":
	case Unicode:
		s = pitch.UnicodeAccidentals(s)
	default:
		return "", fmt.Errorf("%w: accidental format %q", ErrInvalidFormat, accFmt)
	}
	return s, nil
}

// Solfege gives the movable-do syllable of pc in a major key.
func Solfege(pc pitch.PitchClass, k Key) (string, error) {
	if !k.mode.Equivalent(Major) {
		return "", fmt.Errorf("%w: solfège only implemented for major, not %s", ErrUnsupported, k.mode.Name())
	}
	if len(pc.Accidental()) == 2 {
		return "", fmt.Errorf("%w: solfège not defined for ##/bb notes like %s", ErrUnsupported, pc.Name())
	}

	v := ValueIn(pc, k, true)
	if !pc.Explicit() {
		return strings.Join(ChromaticSolfege[v], "/"), nil
	}

	i := letterIndex(k, pc)
	vnat := k.ScaleChromaticValues()[i]
	dv := pc.AccidentalDelta() - k.Scale()[i].AccidentalDelta()
	notDefined := func() error {
		deg, _ := ScaleDegree(pc, k, Arabic, ASCII)
		return fmt.Errorf("%w: solfège not defined for %s", ErrNotInScale, deg)
	}
	switch {
	case dv < -1 || dv > 1:
		return "", notDefined()
	case dv < 0:
		if vnat == 0 || len(ChromaticSolfege[vnat-1]) < 2 {
			return "", notDefined()
		}
		return ChromaticSolfege[vnat-1][1], nil
	case dv > 0:
		if vnat == 11 {
			return "", notDefined()
		}
		return ChromaticSolfege[vnat+1][0], nil
	}
	return ChromaticSolfege[v][0], nil
}

// ScaleDegreesWrtMajor labels each scale degree against the major scale,
// e.g. "1 2 b3 4 5 6 b7" for dorian. It doesn't depend on the tonic.
func (k Key) ScaleDegreesWrtMajor() []string {
	scvs := k.ScaleChromaticValues()
	labels := make([]string, len(scvs))
	for i, v := range scvs {
		labels[i] = accidentalString(v-majorValues[i]) + strconv.Itoa(i+1)
	}
	return labels
}

// ChromaticScaleDegrees labels all twelve semitones above the tonic of a
// mode. Scale members are labelled against major, so locrian has b5 and
// lydian #4. Other notes on the major scale keep their plain number and
// the rest use accFmt, one of "#", "b", "#/b" or "b/#".
func ChromaticScaleDegrees(m Mode, accFmt string) ([]string, error) {
	switch accFmt {
	case "#", "b", "#/b", "b/#":
	default:
		return nil, fmt.Errorf("%w: accidental format %q", ErrInvalidFormat, accFmt)
	}
	k := New(pitch.MustParsePitchClass("C"), m)
	scvs := k.ScaleChromaticValues()
	wrt := k.ScaleDegreesWrtMajor()

	labels := make([]string, 12)
	for v := range labels {
		switch i := slices.Index(scvs, v); {
		case i >= 0:
			labels[v] = wrt[i]
		default:
			labels[v] = enharmonicDegree(v, majorValues, accFmt)
		}
	}
	return labels, nil
}

// Describe writes a summary of the key: signature, scale, steps and
// degrees.
func (k Key) Describe(w io.Writer) error {
	names := make([]string, 0, 7)
	for _, pc := range k.Scale() {
		names = append(names, pc.Name())
	}
	sig := k.Signature()
	if len(sig) == 0 {
		sig = []string{"(none)"}
	}
	lines := []struct{ label, value string }{
		{"key", k.Name()},
		{"signature", strings.Join(sig, " ")},
		{"scale", strings.Join(names, " ")},
		{"intervals", strings.Join(k.Intervals(), "")},
		{"degrees", strings.Join(k.ScaleDegreesWrtMajor(), " ")},
		{"relative major", k.RelativeMajor().Name()},
		{"relative minor", k.RelativeMinor().Name()},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-15s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	return nil
}
