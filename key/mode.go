package key

import (
	"fmt"
	"strings"
)

// Mode is stored as its three-letter abbreviation.
type Mode string

const (
	Major      Mode = "maj"
	Minor      Mode = "min"
	Ionian     Mode = "ion"
	Aeolian    Mode = "aeo"
	Dorian     Mode = "dor"
	Phrygian   Mode = "phr"
	Lydian     Mode = "lyd"
	Mixolydian Mode = "mix"
	Locrian    Mode = "loc"
)

type modeInfo struct {
	name string
	// value is the chromatic step from the mode's tonic to its relative
	// Ionian tonic.
	value int
	// degree is the major scale degree that serves as this mode's tonic.
	degree int
}

var modes = map[Mode]modeInfo{
	Major:      {"major", 0, 1},
	Minor:      {"minor", 3, 6},
	Ionian:     {"ionian", 0, 1},
	Aeolian:    {"aeolian", 3, 6},
	Dorian:     {"dorian", -2, 2},
	Phrygian:   {"phrygian", -4, 3},
	Lydian:     {"lydian", -5, 4},
	Mixolydian: {"mixolydian", -7, 5},
	Locrian:    {"locrian", 1, 7},
}

// Modes lists every mode, synonyms included, in table order.
var Modes = []Mode{Major, Minor, Ionian, Aeolian, Mixolydian, Dorian, Phrygian, Lydian, Locrian}

// ParseMode accepts full names, abbreviations and "m" in any case. An
// empty string is major.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return Major, nil
	case "m":
		return Minor, nil
	}
	abbr := strings.ToLower(s)
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	m := Mode(abbr)
	if !m.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
	return m, nil
}

func (m Mode) Valid() bool {
	_, ok := modes[m]
	return ok
}

// Name is the full lowercase name, e.g. "mixolydian".
func (m Mode) Name() string {
	return modes[m].name
}

func (m Mode) Value() int {
	return modes[m].value
}

func (m Mode) Degree() int {
	return modes[m].degree
}

// Equivalent treats major as ionian and minor as aeolian.
func (m Mode) Equivalent(other Mode) bool {
	return m.Value() == other.Value()
}

func (m Mode) String() string {
	return string(m)
}
