package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jsphweid/abcdex/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pitchCmd)
}

// lookupPitch reads scientific pitch notation ("C#4"), Helmholtz ("c'")
// or a frequency in Hz ("440").
func lookupPitch(s string) (pitch.Pitch, []string, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f <= 0 {
			return pitch.Pitch{}, nil, fmt.Errorf("frequency %q must be positive", s)
		}
		p, ws := pitch.PitchFromFrequency(f)
		ws.Log(logger, "frequency", s)
		return p, warningStrings(ws), nil
	}
	p, err := pitch.ParsePitch(s)
	if err == nil {
		return p, nil, nil
	}
	if h, herr := pitch.ParseHelmholtz(s); herr == nil {
		return h, nil, nil
	}
	return pitch.Pitch{}, nil, err
}

var pitchCmd = &cobra.Command{
	Use:   "pitch <name|frequency>",
	Short: "Describes a pitch",
	Long:  `Describes a pitch given as "C#4", as Helmholtz "c'" or as a frequency: value, frequency, piano key and MIDI number.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		p, warnings, err := lookupPitch(args[0])
		if err != nil {
			return err
		}
		v := pitchView(p)
		return render(cmd.OutOrStdout(), v, func(w io.Writer) error {
			fmt.Fprintln(w, titleStyle.Render(v.Unicode))
			printField(w, "value", v.Value)
			printField(w, "helmholtz", v.Helmholtz)
			printField(w, "frequency", fmt.Sprintf("%.2f Hz", v.Frequency))
			printField(w, "piano key", v.PianoKey)
			printField(w, "midi", v.MIDINumber)
			printWarnings(w, warnings)
			return nil
		})
	},
}
