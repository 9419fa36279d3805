// Package tune parses a single ABC tune into its header and a flat list of
// measures, with repeats and first/second endings played out.
package tune

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/note"
)

var (
	ErrParse             = errors.New("tune parse error")
	ErrUnsupportedEnding = errors.New("only first and second endings are supported")
)

// Measure is the notes and rests between two bar lines.
type Measure []note.Event

// Tune is parsed once from its ABC text and read-only afterwards.
type Tune struct {
	abc      string
	header   *Header
	key      key.Key
	unit     note.Duration
	measures []Measure
}

// Parse reads one tune. Header lines run up to and including K:; every
// line after that is body. Chords, third endings and malformed keys or
// notes are errors. Notation that is skipped instead, like grace notes
// or invisible rests, is reported in the warnings.
func Parse(abc string) (*Tune, diag.Warnings, error) {
	p := &parser{
		t: &Tune{abc: abc, header: newHeader()},
	}
	if err := p.run(); err != nil {
		return nil, p.ws, err
	}
	return p.t, p.ws, nil
}

func MustParse(abc string) *Tune {
	t, _, err := Parse(abc)
	if err != nil {
		panic(err)
	}
	return t
}

// ABC is the source text.
func (t *Tune) ABC() string {
	return t.abc
}

func (t *Tune) Header() *Header {
	return t.header
}

// Key is the key given in the header.
func (t *Tune) Key() key.Key {
	return t.key
}

// Unit is the unit note length from the header.
func (t *Tune) Unit() note.Duration {
	return t.unit
}

func (t *Tune) Title() string {
	return t.header.Value("tune title")
}

// Type is the rhythm, e.g. "jig" or "reel".
func (t *Tune) Type() string {
	return strings.ToLower(t.header.Value("rhythm"))
}

// Reference is the X: number.
func (t *Tune) Reference() (int, bool) {
	n, err := strconv.Atoi(t.header.Value("reference number"))
	return n, err == nil
}

// Context is what the body was read against at its start, for writing
// notes back out with ToABC.
func (t *Tune) Context() note.Context {
	return note.Context{Key: t.key, OctaveBase: note.DefaultOctaveBase, Unit: t.unit}
}

func (t *Tune) Measures() []Measure {
	return slices.Clone(t.measures)
}

// Events yields every note and rest in playing order.
func (t *Tune) Events() iter.Seq[note.Event] {
	return func(yield func(note.Event) bool) {
		for _, m := range t.measures {
			for _, ev := range m {
				if !yield(ev) {
					return
				}
			}
		}
	}
}

// Notes is Events without the rests.
func (t *Tune) Notes() iter.Seq[note.Note] {
	return func(yield func(note.Note) bool) {
		for ev := range t.Events() {
			if n, ok := ev.(note.Note); ok && !yield(n) {
				return
			}
		}
	}
}

// Equal compares source text.
func (t *Tune) Equal(other *Tune) bool {
	return other != nil && t.abc == other.abc
}

func (t *Tune) String() string {
	return fmt.Sprintf("Tune(title=%q, key=%s, type=%q)", t.Title(), t.key.Name(), t.Type())
}

var reMeter = regexp.MustCompile(`^([0-9+]+)\s*/\s*([0-9]+)`)

// Meter reads M:. C is 4/4 and C| is 2/2. Numerators like 2+3+2 are
// added up.
func (t *Tune) Meter() (num, den int, ok bool) {
	return parseMeter(t.header.Value("meter"))
}

func parseMeter(s string) (num, den int, ok bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "C":
		return 4, 4, true
	case "C|":
		return 2, 2, true
	}
	m := reMeter.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	for _, part := range strings.Split(m[1], "+") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, false
		}
		num += n
	}
	den, _ = strconv.Atoi(m[2])
	return num, den, den > 0 && num > 0
}

var reTempo = regexp.MustCompile(`(?:([0-9]+/[0-9]+)\s*=\s*)?([0-9]+)\s*$`)

// Tempo reads Q: as a beat length and beats per minute. A bare number
// counts unit notes.
func (t *Tune) Tempo() (beat note.Duration, bpm int, ok bool) {
	q := reQuoted.ReplaceAllString(t.header.Value("tempo"), "")
	m := reTempo.FindStringSubmatch(strings.TrimSpace(q))
	if m == nil {
		return note.Duration{}, 0, false
	}
	bpm, _ = strconv.Atoi(m[2])
	beat = t.unit
	if m[1] != "" {
		d, err := note.ParseDuration(m[1])
		if err != nil {
			return note.Duration{}, 0, false
		}
		beat = d
	}
	return beat, bpm, bpm > 0
}

// unitFromMeter is the default unit note length when there is no L:.
func unitFromMeter(meter string) note.Duration {
	num, den, ok := parseMeter(meter)
	if ok && num*4 < 3*den {
		return note.MustDuration(1, 16)
	}
	return note.DefaultUnit
}
