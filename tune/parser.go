package tune

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/note"
)

const sReBracketNote = `(?:\^\^|\^|__|_|=)?[a-gA-G][,']*[0-9]*/*[0-9]*`

var (
	// content, right repeat colon, bar, left repeat colon
	reMeasure = regexp.MustCompile(`([^|:\]]*)(:?)(\|+)(:?)`)
	reEnding  = regexp.MustCompile(`^\s*\[?([0-9])`)

	reChord         = regexp.MustCompile(`\[\s*(?:` + sReBracketNote + `\s*){2,}\]`)
	reSingleBracket = regexp.MustCompile(`\[\s*(` + sReBracketNote + `)\s*\]`)
	reDecoration    = regexp.MustCompile(`![^!]*!`)
	reQuoted        = regexp.MustCompile(`"[^"]*"`)
	reInlineField   = regexp.MustCompile(`\[[A-Za-z]:[^\]]*\]`)
	reGrace         = regexp.MustCompile(`\{[^}]*\}`)
)

type parser struct {
	t  *Tune
	ws diag.Warnings

	inHeader  bool
	lastField string
	ctx       note.Context

	// the body is read one bar line at a time and content after the last
	// bar line of a line waits here for the next one
	pending     string
	repeatStart int
	ending1     int
	hasEnding1  bool
}

func (p *parser) run() error {
	p.inHeader = true
	for i, raw := range strings.Split(p.t.abc, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		if err := p.line(line); err != nil {
			return fmt.Errorf("%w: line %d %q: %w", ErrParse, i+1, raw, err)
		}
	}
	if p.inHeader {
		p.endHeaderWithoutKey()
	}
	rest := strings.TrimSpace(strings.Trim(p.pending, "] \t"))
	if rest != "" {
		if err := p.measure(rest, false, false); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrParse, rest, err)
		}
	}
	return nil
}

func (p *parser) line(line string) error {
	if strings.HasPrefix(line, "+:") {
		if p.lastField != "" {
			p.t.header.appendTo(p.lastField, strings.TrimSpace(line[2:]))
		}
		return nil
	}
	if isFieldLine(line) {
		return p.field(line[0], strings.TrimSpace(line[2:]))
	}
	if p.inHeader {
		p.endHeaderWithoutKey()
	}
	return p.body(line)
}

func (p *parser) field(k byte, value string) error {
	name := InfoFields[k].Name
	stored := p.t.header.add(name, value)
	p.lastField = stored
	if p.inHeader && stored != name {
		p.ws.Addf(diag.DuplicateField, "%s given more than once, stored as %q", name, stored)
	}

	switch {
	case k == 'K':
		if strings.EqualFold(value, "none") {
			value = "C"
		}
		parsed, ws, err := key.Parse(value)
		if err != nil {
			return err
		}
		p.ws.Extend(ws)
		if p.inHeader {
			return p.endHeader(parsed)
		}
		p.ctx.Key = parsed
	case k == 'L' && !p.inHeader:
		unit, err := note.ParseDuration(value)
		if err != nil {
			return err
		}
		p.ctx.Unit = unit
	case k == 'V' && !p.inHeader:
		p.ws.Addf(diag.NotationDropped, "voice %q read in sequence with the others", value)
	}
	return nil
}

func (p *parser) endHeader(k key.Key) error {
	unit := unitFromMeter(p.t.header.Value("meter"))
	if l, ok := p.t.header.Get("unit note length"); ok {
		var err error
		if unit, err = note.ParseDuration(l); err != nil {
			return err
		}
	}
	p.t.key = k
	p.t.unit = unit
	p.ctx = note.Context{Key: k, OctaveBase: note.DefaultOctaveBase, Unit: unit}
	p.inHeader = false
	return nil
}

func (p *parser) endHeaderWithoutKey() {
	p.ws.Addf(diag.MissingKey, "no K: field, reading the tune in C major")
	// C major and a meter-derived unit never fail
	_ = p.endHeader(key.MustParse("C"))
}

// clean drops or unwraps notation the body reader does not handle.
func (p *parser) clean(line string) (string, error) {
	line = reDecoration.ReplaceAllString(line, "")
	line = reQuoted.ReplaceAllString(line, "")
	for _, f := range reInlineField.FindAllString(line, -1) {
		p.ws.Addf(diag.NotationDropped, "inline field %s ignored", f)
	}
	line = reInlineField.ReplaceAllString(line, "")
	if chord := reChord.FindString(line); chord != "" {
		return "", fmt.Errorf("%w: %q", note.ErrChord, chord)
	}
	for _, g := range reGrace.FindAllString(line, -1) {
		p.ws.Addf(diag.NotationDropped, "grace notes %s ignored", g)
	}
	line = reGrace.ReplaceAllString(line, "")
	line = reSingleBracket.ReplaceAllString(line, "$1")
	line = strings.NewReplacer("::", ":|:", "|]", "|", "[|", "|").Replace(line)
	return line, nil
}

func (p *parser) body(line string) error {
	line, err := p.clean(line)
	if err != nil {
		return err
	}
	last := 0
	for _, m := range reMeasure.FindAllStringSubmatchIndex(line, -1) {
		content := line[m[2]:m[3]]
		if p.pending != "" {
			content = p.pending + " " + content
			p.pending = ""
		}
		if err := p.measure(content, m[5] > m[4], m[9] > m[8]); err != nil {
			return err
		}
		last = m[1]
	}
	if tail := strings.TrimSpace(line[last:]); tail != "" {
		p.pending = strings.TrimSpace(p.pending + " " + tail)
	}
	return nil
}

// measure adds the events in content and plays out repeats. A right
// repeat goes back to the last left repeat, or to the start of the tune,
// and stops short of a first ending marked since then.
func (p *parser) measure(content string, rightRepeat, leftRepeat bool) error {
	if m := reEnding.FindStringSubmatch(content); m != nil {
		switch m[1] {
		case "1":
			p.ending1 = len(p.t.measures)
			p.hasEnding1 = true
		case "2":
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedEnding, strings.TrimSpace(content))
		}
		content = content[len(m[0]):]
	}

	events, ws, err := note.Scan(content, p.ctx)
	if err != nil {
		return err
	}
	p.ws.Extend(ws)
	if len(events) > 0 {
		p.t.measures = append(p.t.measures, events)
	}

	if rightRepeat {
		end := len(p.t.measures)
		if p.hasEnding1 {
			end = p.ending1
			p.hasEnding1 = false
		}
		if p.repeatStart < end {
			p.t.measures = append(p.t.measures, p.t.measures[p.repeatStart:end]...)
		}
	}
	if leftRepeat {
		p.repeatStart = len(p.t.measures)
		p.hasEnding1 = false
	}
	return nil
}

// stripComment cuts line at the first % not escaped with a backslash and
// unescapes the rest.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			line = line[:i]
		}
	}
	return strings.ReplaceAll(line, `\%`, "%")
}
