// Package note holds notes and rests and reads and writes them as ABC
// tokens.
package note

import (
	"errors"

	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/pitch"
)

var (
	ErrInvalidNote     = errors.New("invalid ABC note")
	ErrInvalidRest     = errors.New("invalid ABC rest")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrChord           = errors.New("chords not supported")
)

// Context is what ABC tokens are read and written against: the key, the
// octave of uppercase letters without marks, and the unit note length.
type Context struct {
	Key        key.Key
	OctaveBase int
	Unit       Duration
}

const DefaultOctaveBase = 4

var DefaultUnit = MustDuration(1, 8)

// unit is the context's unit note length, or DefaultUnit when unset.
func (c Context) unit() Duration {
	if c.Unit.den <= 0 || c.Unit.num <= 0 {
		return DefaultUnit
	}
	return c.Unit
}

// accidentals is the key signature by letter. A zero Key reads as C major.
func (c Context) accidentals() map[string]string {
	if c.Key.Mode() == "" {
		return nil
	}
	return c.Key.Accidentals()
}

// DefaultContext is C major, octave 4, eighth-note unit.
func DefaultContext() Context {
	return Context{Key: key.MustParse("C"), OctaveBase: DefaultOctaveBase, Unit: DefaultUnit}
}

// Event is a Note or a Rest.
type Event interface {
	Duration() Duration
	ToABC(ctx Context) string
	String() string
}

// Note is a pitch held for a duration. The duration is absolute, in whole
// notes, not relative to a unit.
type Note struct {
	pitch    pitch.Pitch
	duration Duration
}

func New(p pitch.Pitch, d Duration) Note {
	return Note{pitch: p, duration: d}
}

// FromValue has no explicit spelling.
func FromValue(value int, d Duration) Note {
	return Note{pitch: pitch.NewPitch(value), duration: d}
}

func (n Note) Pitch() pitch.Pitch {
	return n.pitch
}

func (n Note) Class() pitch.PitchClass {
	return n.pitch.Class()
}

func (n Note) Duration() Duration {
	return n.duration
}

func (n Note) Value() int {
	return n.pitch.Value()
}

func (n Note) Octave() int {
	return n.pitch.Octave()
}

func (n Note) ClassName() string {
	return n.pitch.ClassName()
}

// Name is the scientific pitch name, e.g. "F#4".
func (n Note) Name() string {
	return n.pitch.Name()
}

// String is the name and duration, e.g. "C4_1/8".
func (n Note) String() string {
	return n.Name() + "_" + n.duration.String()
}

// Equal compares value and duration, not spelling.
func (n Note) Equal(other Note) bool {
	return n.Value() == other.Value() && n.duration == other.duration
}

type Rest struct {
	duration Duration
}

func NewRest(d Duration) Rest {
	return Rest{duration: d}
}

func (r Rest) Duration() Duration {
	return r.duration
}

func (r Rest) String() string {
	return "z_" + r.duration.String()
}

func (r Rest) ToABC(ctx Context) string {
	return "z" + durationABC(r.duration.Div(ctx.unit()))
}
