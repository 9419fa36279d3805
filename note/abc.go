package note

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/pitch"
)

const (
	sReDuration  = `([0-9]+)?(/+)?([0-9]+)?`
	sReNote      = `(\^\^|\^|__|_|=)?([a-gA-G])([,']*)` + sReDuration
	sReRest      = `([zx])` + sReDuration
	sReMultiRest = `[ZX][0-9]*`
)

var (
	reNote      = regexp.MustCompile(`^` + sReNote + `$`)
	reRest      = regexp.MustCompile(`^` + sReRest + `$`)
	reMultiRest = regexp.MustCompile(`^` + sReMultiRest + `$`)
	reToken     = regexp.MustCompile(sReNote + `|` + sReRest + `|` + sReMultiRest)
)

// maxSlashes keeps 1/2^n inside an int.
const maxSlashes = 30

var abcToASCII = map[string]string{"^": "#", "^^": "##", "_": "b", "__": "bb", "=": "="}

// relativeDuration reads the length suffix of a token, in units.
func relativeDuration(num, slash, den, token string) (Duration, error) {
	bad := func(why string) (Duration, error) {
		return Duration{}, fmt.Errorf("%w in %q: %s", ErrInvalidDuration, token, why)
	}
	for _, digits := range []string{num, den} {
		if digits == "" {
			continue
		}
		if _, err := strconv.Atoi(digits); err != nil {
			return bad("number too large")
		}
	}
	if len(slash) > maxSlashes {
		return bad("too many /")
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	switch {
	case slash == "" && num == "":
		return MustDuration(1, 1), nil
	case slash == "":
		if atoi(num) == 0 {
			return bad("zero length")
		}
		return MustDuration(atoi(num), 1), nil
	case num == "" && den == "":
		// each / halves again
		return MustDuration(1, 1<<len(slash)), nil
	case len(slash) > 1:
		return bad("only one / allowed with a numerator or denominator")
	case num != "" && den != "":
		if atoi(den) == 0 || atoi(num) == 0 {
			return bad("zero in fraction")
		}
		return MustDuration(atoi(num), atoi(den)), nil
	case den != "":
		if atoi(den) == 0 {
			return bad("zero denominator")
		}
		return MustDuration(1, atoi(den)), nil
	default:
		if atoi(num) == 0 {
			return bad("zero length")
		}
		return MustDuration(atoi(num), 2), nil
	}
}

// octaveFromABC counts lowercase as one octave up from base, then each '
// up and each , down.
func octaveFromABC(letter, marks string, base int) int {
	octave := base + strings.Count(marks, "'") - strings.Count(marks, ",")
	if letter == strings.ToLower(letter) {
		octave++
	}
	return octave
}

// ParseNote reads one ABC note token such as "^f'3/2". Without an
// accidental mark the key signature decides the accidental; a mark always
// overrides it. The note keeps the spelling, so "F" in G major is F#.
func ParseNote(token string, ctx Context) (Note, error) {
	m := reNote.FindStringSubmatch(token)
	if m == nil {
		return Note{}, fmt.Errorf("%w %q", ErrInvalidNote, token)
	}
	marks, letter, octMarks := m[1], m[2], m[3]

	rel, err := relativeDuration(m[4], m[5], m[6], token)
	if err != nil {
		return Note{}, err
	}

	nat := strings.ToUpper(letter)
	name := nat + abcToASCII[marks]
	if marks == "" {
		name = nat + ctx.accidentals()[nat]
	}
	p, err := pitch.PitchFromClassName(name, octaveFromABC(letter, octMarks, ctx.OctaveBase))
	if err != nil {
		return Note{}, fmt.Errorf("%w %q: %w", ErrInvalidNote, token, err)
	}
	d, err := rel.CheckedMul(ctx.unit())
	if err != nil {
		return Note{}, fmt.Errorf("%w %q: %w", ErrInvalidNote, token, err)
	}
	return Note{pitch: p, duration: d}, nil
}

func MustParseNote(token string, ctx Context) Note {
	n, err := ParseNote(token, ctx)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseRest reads a "z" rest. Invisible (x) and multi-measure (Z, X)
// rests are reported as dropped and give a zero Rest.
func ParseRest(token string, ctx Context) (Rest, diag.Warnings, error) {
	var ws diag.Warnings
	if reMultiRest.MatchString(token) {
		ws.Addf(diag.RestDropped, "multi-measure rest %q not supported, dropped", token)
		return Rest{}, ws, nil
	}
	m := reRest.FindStringSubmatch(token)
	if m == nil {
		return Rest{}, nil, fmt.Errorf("%w %q", ErrInvalidRest, token)
	}
	rel, err := relativeDuration(m[2], m[3], m[4], token)
	if err != nil {
		return Rest{}, nil, err
	}
	if m[1] == "x" {
		ws.Addf(diag.RestDropped, "invisible rest %q not supported, dropped", token)
		return Rest{}, ws, nil
	}
	d, err := rel.CheckedMul(ctx.unit())
	if err != nil {
		return Rest{}, nil, fmt.Errorf("%w %q: %w", ErrInvalidRest, token, err)
	}
	return Rest{duration: d}, nil, nil
}

// ParseEvent reads a note or rest token. Dropped rests give a nil Event
// and a warning.
func ParseEvent(token string, ctx Context) (Event, diag.Warnings, error) {
	if reNote.MatchString(token) {
		n, err := ParseNote(token, ctx)
		if err != nil {
			return nil, nil, err
		}
		return n, nil, nil
	}
	if !reRest.MatchString(token) && !reMultiRest.MatchString(token) {
		return nil, nil, fmt.Errorf("%w %q", ErrInvalidNote, token)
	}
	r, ws, err := ParseRest(token, ctx)
	switch {
	case err != nil:
		return nil, nil, err
	case r.duration.IsZero():
		return nil, ws, nil
	}
	return r, ws, nil
}

// Scan finds the note and rest tokens in text from left to right.
// Characters that belong to no token, like ties, rolls or tuplet marks,
// are skipped.
func Scan(text string, ctx Context) ([]Event, diag.Warnings, error) {
	var (
		events []Event
		ws     diag.Warnings
	)
	for _, token := range reToken.FindAllString(text, -1) {
		ev, evWs, err := ParseEvent(token, ctx)
		if err != nil {
			return nil, ws, err
		}
		ws.Extend(evWs)
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, ws, nil
}

// ToABC writes the note as a token in ctx. The accidental is left out when
// the key signature already gives it, and a natural sign is added when the
// signature would alter the letter.
func (n Note) ToABC(ctx Context) string {
	pc := n.pitch.Class()
	if !pc.Explicit() {
		pc = pitch.MustParsePitchClass(pc.Name())
	}
	letter := pc.Natural()

	var acc string
	keyDelta := pitch.MustParsePitchClass(letter + ctx.accidentals()[letter]).AccidentalDelta()
	switch want := pc.AccidentalDelta(); {
	case want == keyDelta:
	case want == 0:
		acc = "="
	case want > 0:
		acc = strings.Repeat("^", want)
	default:
		acc = strings.Repeat("_", -want)
	}

	octave, base := n.Octave(), ctx.OctaveBase
	var marks string
	switch {
	case octave < base:
		marks = strings.Repeat(",", base-octave)
	case octave > base+1:
		marks = strings.Repeat("'", octave-base-1)
	}
	if octave > base {
		letter = strings.ToLower(letter)
	}

	return acc + letter + marks + durationABC(n.duration.Div(ctx.unit()))
}

// durationABC writes a relative length with the implied parts left out.
func durationABC(rel Duration) string {
	switch {
	case rel.num == 1 && rel.den == 1:
		return ""
	case rel.num == 1:
		return "/" + strconv.Itoa(rel.den)
	}
	return rel.String()
}
