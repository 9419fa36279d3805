package pitch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/util"
)

var (
	ErrInvalidName     = errors.New("invalid pitch name")
	ErrInvalidInterval = errors.New("invalid interval")
)

// NaturalValues maps the seven natural letters to chromatic values wrt C.
var NaturalValues = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Letters are the natural note names in C major order.
const Letters = "CDEFGAB"

// AccidentalDeltas maps a single ASCII accidental mark to its chromatic change.
var AccidentalDeltas = map[rune]int{'#': 1, 'b': -1, '=': 0}

// NiceChromaticNames are the spellings used when no name was given,
// starting with C at index 0. The more common accidentals are used.
var NiceChromaticNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

var accidentalUnicode = map[string]string{
	"":   "",
	"#":  "♯",
	"b":  "♭",
	"##": "𝄪",
	"bb": "𝄫",
	"=":  "♮",
}

const (
	sReAccidentals = `(?:##|bb|b|#|=)`
	sReClass       = `[A-G]` + sReAccidentals + `?`
	sReLowerClass  = `[a-g]` + sReAccidentals + `?`
)

var (
	reClass      = regexp.MustCompile(`^` + sReClass + `$`)
	reSPN        = regexp.MustCompile(`^(` + sReClass + `)\s*([0-9]+)$`)
	reHelmUpper  = regexp.MustCompile(`^(` + sReClass + `)(,*)$`)
	reHelmLower  = regexp.MustCompile(`^(` + sReLowerClass + `)('*)$`)
	reAccidental = regexp.MustCompile(sReAccidentals)
)

// validateClassName accepts a letter followed by one or two identical #/b
// marks, a single =, or nothing.
func validateClassName(name string) error {
	if name == "" || !strings.ContainsRune(Letters, rune(name[0])) {
		return fmt.Errorf("%w %q: must start with one of %s", ErrInvalidName, name, Letters)
	}
	acc := name[1:]
	if acc == "" {
		return nil
	}
	for _, c := range acc {
		if _, ok := AccidentalDeltas[c]; !ok {
			return fmt.Errorf("%w %q: invalid accidental symbol %q, valid ones are #, b, =", ErrInvalidName, name, c)
		}
	}
	if strings.Count(acc, acc[:1]) != len(acc) {
		return fmt.Errorf("%w %q: mixed #/b/= not allowed", ErrInvalidName, name)
	}
	switch {
	case acc[0] == '=' && len(acc) > 1:
		return fmt.Errorf("%w %q: 1 = at most allowed", ErrInvalidName, name)
	case len(acc) > 2:
		return fmt.Errorf("%w %q: 2 #/b at most allowed", ErrInvalidName, name)
	}
	return nil
}

// rawClassValue is the unreduced value of a validated class name, so Cb is
// -1 and B## is 13.
func rawClassValue(name string) int {
	v := NaturalValues[name[0]]
	for _, c := range name[1:] {
		v += AccidentalDeltas[c]
	}
	return v
}

// ClassValue converts a pitch class name like "A#" to its chromatic value
// relative to root ("" means C). With mod the result is kept in 0--11;
// without it, names like Cb or B## land outside that range and a
// ValueOutOfRange warning is returned along with the value.
func ClassValue(name, root string, mod bool) (int, diag.Warnings, error) {
	var ws diag.Warnings
	name = strings.TrimSpace(name)
	if !reClass.MatchString(name) {
		return 0, nil, fmt.Errorf("%w %q: should match %q", ErrInvalidName, name, sReClass)
	}
	v := rawClassValue(name)
	if root != "" && root != "C" {
		r, _, err := ClassValue(root, "", false)
		if err != nil {
			return 0, nil, err
		}
		v -= r
	}
	if mod {
		v = util.Mod(v, 12)
	}
	if v < 0 || v >= 12 {
		ws.Addf(diag.ValueOutOfRange, "computed pitch class value %d for %q outside 0--11", v, name)
	}
	return v, ws, nil
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

// UnicodeAccidentals replaces every ASCII accidental run in s with its
// unicode symbol.
func UnicodeAccidentals(s string) string {
	return reAccidental.ReplaceAllStringFunc(s, func(m string) string {
		return accidentalUnicode[m]
	})
}

var romanValues = []struct {
	n int
	s string
}{
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// ToRoman supports 1 through 39.
func ToRoman(n int) (string, error) {
	if n < 1 || n >= 40 {
		return "", fmt.Errorf("roman numeral for %d not supported", n)
	}
	var sb strings.Builder
	for _, r := range romanValues {
		for n >= r.n {
			sb.WriteString(r.s)
			n -= r.n
		}
	}
	return sb.String(), nil
}
