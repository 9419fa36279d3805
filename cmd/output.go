package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/model"
	"github.com/jsphweid/abcdex/pitch"
	"github.com/jsphweid/abcdex/tune"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// render writes v as YAML or JSON, or calls text for the default format.
func render(w io.Writer, v any, text func(io.Writer) error) error {
	switch format {
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		return text(w)
	}
	return fmt.Errorf("unknown format %q", format)
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, s := range warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+s))
	}
}

func warningStrings(ws diag.Warnings) []string {
	var res []string
	for _, w := range ws {
		res = append(res, w.String())
	}
	return res
}

func parseView(t *tune.Tune, ws diag.Warnings) model.ParseResponse {
	ctx := t.Context()
	res := model.ParseResponse{
		Title:    t.Title(),
		Type:     t.Type(),
		Key:      t.Key().Name(),
		Unit:     t.Unit().String(),
		Header:   t.Header().Map(),
		Measures: [][]string{},
		Warnings: warningStrings(ws),
	}
	for _, m := range t.Measures() {
		tokens := make([]string, len(m))
		for i, ev := range m {
			tokens[i] = ev.ToABC(ctx)
		}
		res.Measures = append(res.Measures, tokens)
	}
	return res
}

func keyView(k key.Key, ws diag.Warnings) model.KeyResponse {
	var scale []string
	for _, pc := range k.Scale() {
		scale = append(scale, pc.Name())
	}
	relatives := make(map[string]string)
	for _, m := range key.Modes {
		relatives[string(m)] = k.Relative(m).String()
	}
	return model.KeyResponse{
		Key:          k.String(),
		Name:         k.Name(),
		Signature:    k.Signature(),
		Scale:        scale,
		Intervals:    k.Intervals(),
		Degrees:      k.ScaleDegreesWrtMajor(),
		Relatives:    relatives,
		SharpFlatNum: k.SharpFlatCount(),
		Warnings:     warningStrings(ws),
	}
}

func pitchView(p pitch.Pitch) model.PitchResponse {
	return model.PitchResponse{
		Name:       p.Name(),
		Value:      p.Value(),
		Helmholtz:  p.Helmholtz(),
		Unicode:    p.Unicode(),
		Frequency:  p.Frequency(),
		PianoKey:   p.PianoKeyNumber(),
		MIDINumber: p.MIDINumber(),
	}
}

func printTune(w io.Writer, v model.ParseResponse) error {
	fmt.Fprintln(w, titleStyle.Render(v.Title))
	printField(w, "key", v.Key)
	if v.Type != "" {
		printField(w, "type", v.Type)
	}
	printField(w, "unit", v.Unit)
	printField(w, "measures", len(v.Measures))
	bars := make([]string, len(v.Measures))
	for i, m := range v.Measures {
		bars[i] = strings.Join(m, " ")
	}
	_, err := fmt.Fprintln(w, strings.Join(bars, " | "))
	printWarnings(w, v.Warnings)
	return err
}
