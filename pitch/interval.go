package pitch

import (
	"fmt"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/util"
)

// IntervalNames are the major, minor and perfect short names by semitone.
var IntervalNames = [13]string{"P1", "m2", "M2", "m3", "M3", "P4", "A4", "P5", "m6", "M6", "m7", "M7", "P8"}

// SimpleInterval is at most one octave, without direction.
type SimpleInterval struct {
	value int
}

// NewSimpleInterval coerces values outside 0--12 to abs(value) mod 12
// (12 for nonzero multiples of an octave) and reports it.
func NewSimpleInterval(value int) (SimpleInterval, diag.Warnings) {
	if value >= 0 && value <= 12 {
		return SimpleInterval{value: value}, nil
	}
	abs := util.Abs(value)
	v := abs % 12
	if v == 0 && abs >= 12 {
		v = 12
	}
	var ws diag.Warnings
	ws.Addf(diag.IntervalCoerced, "input value %d not between 0 and 12 has been coerced to %d", value, v)
	return SimpleInterval{value: v}, ws
}

func MustSimpleInterval(value int) SimpleInterval {
	i, ws := NewSimpleInterval(value)
	if len(ws) > 0 {
		panic(ws[0].String())
	}
	return i
}

func ParseSimpleInterval(name string) (SimpleInterval, error) {
	for i, n := range IntervalNames {
		if n == name {
			return SimpleInterval{value: i}, nil
		}
	}
	return SimpleInterval{}, fmt.Errorf("%w: name %q not recognized", ErrInvalidInterval, name)
}

// Value is the number of semitones.
func (i SimpleInterval) Value() int {
	return i.value
}

func (i SimpleInterval) Name() string {
	return IntervalNames[i.value]
}

func (i SimpleInterval) String() string {
	return i.Name()
}

func (i SimpleInterval) WholeSteps() float64 {
	return float64(i.value) / 2
}

func (i SimpleInterval) Inverse() SimpleInterval {
	return SimpleInterval{value: 12 - i.value}
}

func (i SimpleInterval) Signed() SignedInterval {
	return SignedInterval{value: i.value}
}

// SignedInterval can span octaves and carries direction.
type SignedInterval struct {
	value int
}

func NewSignedInterval(value int) SignedInterval {
	return SignedInterval{value: value}
}

func (i SignedInterval) Value() int {
	return i.value
}

// Name writes compound intervals as octaves plus a remainder, e.g.
// "P8+m3", "2(P8)+m3" and "-[2(P8)+m3]" for a descending one.
func (i SignedInterval) Name() string {
	octaves, rem := util.Abs(i.value)/12, util.Abs(i.value)%12

	var parts []string
	switch {
	case octaves >= 2:
		parts = append(parts, fmt.Sprintf("%d(%s)", octaves, IntervalNames[12]))
	case octaves == 1:
		parts = append(parts, IntervalNames[12])
	}
	if rem != 0 {
		parts = append(parts, IntervalNames[rem])
	}
	s := strings.Join(parts, "+")
	if s == "" {
		s = IntervalNames[0]
	}

	if i.value < 0 {
		return "-[" + s + "]"
	}
	return s
}

func (i SignedInterval) String() string {
	return i.Name()
}

func (i SignedInterval) Neg() SignedInterval {
	return SignedInterval{value: -i.value}
}

// Simple folds the interval into one octave, dropping direction.
func (i SignedInterval) Simple() (SimpleInterval, diag.Warnings) {
	return NewSimpleInterval(i.value)
}
