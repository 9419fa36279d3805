package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/util"
)

// Pitch is a pitch class with octave. Value is the chromatic distance from
// C0, so C4 is 48.
//
// A Pitch built from a name keeps that spelling and octave, so B#3 prints
// as B#3 even though its value equals C4's.
type Pitch struct {
	value int
	// className and octave are set together; empty means derived from value.
	className string
	octave    int
}

func NewPitch(value int) Pitch {
	return Pitch{value: value}
}

// ParsePitch reads scientific pitch notation, e.g. "C4" or "Ebb2".
func ParsePitch(name string) (Pitch, error) {
	name = strings.TrimSpace(name)
	m := reSPN.FindStringSubmatch(name)
	if m == nil {
		return Pitch{}, fmt.Errorf("%w: invalid scientific pitch name %q", ErrInvalidName, name)
	}
	if err := validateClassName(m[1]); err != nil {
		return Pitch{}, err
	}
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: invalid octave in %q: %v", ErrInvalidName, name, err)
	}
	return PitchFromClassName(m[1], octave)
}

func MustParsePitch(name string) Pitch {
	p, err := ParsePitch(name)
	if err != nil {
		panic(err)
	}
	return p
}

// PitchFromClassValue places a class value in octave without a spelling.
func PitchFromClassValue(value, octave int) Pitch {
	return NewPitch(value + 12*octave)
}

func PitchFromClass(pc PitchClass, octave int) Pitch {
	return pc.ToPitch(octave)
}

func PitchFromClassName(name string, octave int) (Pitch, error) {
	if err := validateClassName(name); err != nil {
		return Pitch{}, err
	}
	return Pitch{value: rawClassValue(name) + 12*octave, className: name, octave: octave}, nil
}

// ParseHelmholtz reads Helmholtz notation: "C," is C1 and "c'" is C4.
// Octave 3 is the boundary between the comma and apostrophe forms.
func ParseHelmholtz(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	if m := reHelmUpper.FindStringSubmatch(s); m != nil {
		return PitchFromClassName(m[1], 2-len(m[2]))
	}
	if m := reHelmLower.FindStringSubmatch(s); m != nil {
		return PitchFromClassName(strings.ToUpper(m[1][:1])+m[1][1:], 3+len(m[2]))
	}
	return Pitch{}, fmt.Errorf("%w: invalid Helmholtz pitch name %q", ErrInvalidName, s)
}

// PitchFromFrequency rounds to the nearest piano key, reporting when f is
// more than a cent away from it.
func PitchFromFrequency(f float64) (Pitch, diag.Warnings) {
	nf := 12*math.Log2(f/440) + 49
	n := int(math.Round(nf))
	var ws diag.Warnings
	if e := nf - float64(n); math.Abs(e) > 0.01 {
		dir := "down"
		if e < 0 {
			dir = "up"
		}
		ws.Addf(diag.FrequencyRounded, "more than one cent off (%.2f), rounding %s to the nearest integer piano key", e*100, dir)
	}
	return NewPitch(n + 8), ws
}

func (p Pitch) Value() int {
	return p.value
}

func (p Pitch) Octave() int {
	if p.className != "" {
		return p.octave
	}
	return util.FloorDiv(p.value, 12)
}

// ClassValue is in 0--11.
func (p Pitch) ClassValue() int {
	return util.Mod(p.value, 12)
}

func (p Pitch) ClassName() string {
	if p.className != "" {
		return p.className
	}
	return NiceChromaticNames[p.ClassValue()]
}

// Class keeps an explicit spelling if there is one.
func (p Pitch) Class() PitchClass {
	return PitchClass{value: p.ClassValue(), name: p.className}
}

func (p Pitch) Name() string {
	return p.ClassName() + strconv.Itoa(p.Octave())
}

func (p Pitch) String() string {
	return p.Name()
}

var subscriptDigits = strings.NewReplacer(
	"-", "₋", "0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄",
	"5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉",
)

// Unicode uses unicode accidentals and a subscript octave, e.g. "C♯₄".
func (p Pitch) Unicode() string {
	pc := PitchClass{value: p.ClassValue(), name: p.ClassName()}
	return pc.Unicode() + subscriptDigits.Replace(strconv.Itoa(p.Octave()))
}

func (p Pitch) Helmholtz() string {
	name := p.ClassName()
	if o := p.Octave() - 3; o >= 0 {
		return strings.ToLower(name[:1]) + name[1:] + strings.Repeat("'", o)
	}
	return name + strings.Repeat(",", 2-p.Octave())
}

// PianoKeyNumber is 40 for middle C and 49 for A4.
func (p Pitch) PianoKeyNumber() int {
	return p.value - 8
}

// MIDINumber is 60 for middle C.
func (p Pitch) MIDINumber() int {
	return p.value + 12
}

// Frequency in Hz in twelve-tone equal temperament with A4 = 440.
func (p Pitch) Frequency() float64 {
	return 440 * math.Pow(2, float64(p.PianoKeyNumber()-49)/12)
}

func (p Pitch) Equal(other Pitch) bool {
	return p.value == other.value
}

func (p Pitch) Less(other Pitch) bool {
	return p.value < other.value
}

// Compare orders by value, for slices.SortFunc.
func (p Pitch) Compare(other Pitch) int {
	switch {
	case p.value < other.value:
		return -1
	case p.value > other.value:
		return 1
	}
	return 0
}

func (p Pitch) Add(n int) Pitch {
	return NewPitch(p.value + n)
}

func (p Pitch) Sub(n int) Pitch {
	return NewPitch(p.value - n)
}

func (p Pitch) AddInterval(i SimpleInterval) Pitch {
	return p.Add(i.value)
}

func (p Pitch) SubInterval(i SimpleInterval) Pitch {
	return p.Sub(i.value)
}

func (p Pitch) AddSigned(i SignedInterval) Pitch {
	return p.Add(i.value)
}

// Interval is p minus other, so it is negative when p is lower.
func (p Pitch) Interval(other Pitch) SignedInterval {
	return SignedInterval{value: p.value - other.value}
}

// respell keeps the value and picks the octave that matches name.
func (p Pitch) respell(name string) Pitch {
	return Pitch{value: p.value, className: name, octave: util.FloorDiv(p.value-rawClassValue(name), 12)}
}

func (p Pitch) EquivalentSharp() Pitch {
	return p.respell(p.Class().EquivalentSharp().Name())
}

func (p Pitch) EquivalentFlat() Pitch {
	return p.respell(p.Class().EquivalentFlat().Name())
}
