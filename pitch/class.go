package pitch

import (
	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/util"
)

// PitchClass is a pitch without octave: its chromatic distance from C in
// semitones, kept in 0--11, plus an optional spelling. The spelling is
// independent of the value, so Db and C# are equal but print differently.
type PitchClass struct {
	value int
	name  string
}

// NewPitchClass has no explicit spelling; Name falls back to
// NiceChromaticNames.
func NewPitchClass(value int) PitchClass {
	return PitchClass{value: util.Mod(value, 12)}
}

// ParsePitchClass keeps name as the spelling, e.g. "E#" has value 5 but
// still prints as E#.
func ParsePitchClass(name string) (PitchClass, error) {
	if err := validateClassName(name); err != nil {
		return PitchClass{}, err
	}
	v, _, err := ClassValue(name, "", true)
	if err != nil {
		return PitchClass{}, err
	}
	return PitchClass{value: v, name: name}, nil
}

func MustParsePitchClass(name string) PitchClass {
	pc, err := ParsePitchClass(name)
	if err != nil {
		panic(err)
	}
	return pc
}

func (pc PitchClass) Value() int {
	return pc.value
}

func (pc PitchClass) Name() string {
	if pc.name == "" {
		return NiceChromaticNames[pc.value]
	}
	return pc.name
}

// Explicit reports whether the spelling was given rather than derived
// from the value. Enharmonic-only classes can't tell C# from Db.
func (pc PitchClass) Explicit() bool {
	return pc.name != ""
}

// Natural is the letter without accidentals.
func (pc PitchClass) Natural() string {
	return pc.Name()[:1]
}

func (pc PitchClass) Accidental() string {
	return pc.Name()[1:]
}

func (pc PitchClass) AccidentalDelta() int {
	d := 0
	for _, c := range pc.Accidental() {
		d += AccidentalDeltas[c]
	}
	return d
}

// NaturalValue is the value of the letter alone.
func (pc PitchClass) NaturalValue() int {
	return NaturalValues[pc.Name()[0]]
}

func (pc PitchClass) IsNatural() bool {
	acc := pc.Accidental()
	return acc == "" || acc == "="
}

func (pc PitchClass) IsSharp() bool {
	return pc.AccidentalDelta() > 0
}

func (pc PitchClass) IsFlat() bool {
	return pc.AccidentalDelta() < 0
}

func (pc PitchClass) String() string {
	return pc.Name()
}

// Unicode uses ♯ ♭ 𝄪 𝄫 ♮ instead of the ASCII marks.
func (pc PitchClass) Unicode() string {
	return pc.Natural() + accidentalUnicode[pc.Accidental()]
}

// Equal compares values only.
func (pc PitchClass) Equal(other PitchClass) bool {
	return pc.value == other.value
}

// EquivalentSharp spells the class with sharps, one letter below when that
// letter is natural, otherwise two letters below with ##.
func (pc PitchClass) EquivalentSharp() PitchClass {
	below := pc.Sub(1)
	if len(below.Name()) == 1 {
		return PitchClass{value: pc.value, name: below.Name() + "#"}
	}
	return PitchClass{value: pc.value, name: pc.Sub(2).Name() + "##"}
}

func (pc PitchClass) EquivalentFlat() PitchClass {
	above := pc.Add(1)
	if len(above.Name()) == 1 {
		return PitchClass{value: pc.value, name: above.Name() + "b"}
	}
	return PitchClass{value: pc.value, name: pc.Add(2).Name() + "bb"}
}

// EquivalentNatural returns false for the five black keys.
func (pc PitchClass) EquivalentNatural() (PitchClass, bool) {
	n := NewPitchClass(pc.value)
	if !n.IsNatural() {
		return PitchClass{}, false
	}
	return n, true
}

func (pc PitchClass) Add(n int) PitchClass {
	return NewPitchClass(pc.value + n)
}

func (pc PitchClass) Sub(n int) PitchClass {
	return NewPitchClass(pc.value - n)
}

func (pc PitchClass) Mul(n int) PitchClass {
	return NewPitchClass(pc.value * n)
}

func (pc PitchClass) Neg() PitchClass {
	return pc.Mul(-1)
}

// AddClass adds the value of other.
func (pc PitchClass) AddClass(other PitchClass) PitchClass {
	return NewPitchClass(pc.value + other.value)
}

func (pc PitchClass) AddInterval(i SimpleInterval) PitchClass {
	return NewPitchClass(pc.value + i.value)
}

func (pc PitchClass) SubInterval(i SimpleInterval) PitchClass {
	return NewPitchClass(pc.value - i.value)
}

// Interval is pc minus other. A negative raw difference is coerced into
// 0--12 and reported.
func (pc PitchClass) Interval(other PitchClass) (SimpleInterval, diag.Warnings) {
	return NewSimpleInterval(pc.value - other.value)
}

// ValueFrom is the value relative to root, in 0--11.
func (pc PitchClass) ValueFrom(root PitchClass) int {
	return util.Mod(pc.value-root.value, 12)
}

// ToPitch places the class in octave. An explicit spelling is kept and
// decides the value, so Cb in octave 4 sits a semitone below C4.
func (pc PitchClass) ToPitch(octave int) Pitch {
	if pc.name == "" {
		return PitchFromClassValue(pc.value, octave)
	}
	return Pitch{value: rawClassValue(pc.name) + 12*octave, className: pc.name, octave: octave}
}
