package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/note"
	"github.com/spf13/cobra"
)

var (
	noteKey        string
	noteOctaveBase int
	noteUnit       string
)

func init() {
	noteCmd.Flags().StringVarP(&noteKey, "key", "k", "C", "key the token is read in")
	noteCmd.Flags().IntVar(&noteOctaveBase, "octave-base", 0, "octave of uppercase letters (default from config)")
	noteCmd.Flags().StringVar(&noteUnit, "unit", note.DefaultUnit.String(), "unit note length")
	rootCmd.AddCommand(noteCmd)
}

type noteView struct {
	Token    string   `json:"token" yaml:"token"`
	Name     string   `json:"name" yaml:"name"`
	Value    int      `json:"value,omitempty" yaml:"value,omitempty"`
	Duration string   `json:"duration" yaml:"duration"`
	ABC      string   `json:"abc" yaml:"abc"`
	ABCInC   string   `json:"abc_in_c" yaml:"abc_in_c"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func noteContext() (note.Context, error) {
	k, ws, err := key.Parse(noteKey)
	if err != nil {
		return note.Context{}, err
	}
	ws.Log(logger, "key", noteKey)
	unit, err := note.ParseDuration(noteUnit)
	if err != nil {
		return note.Context{}, err
	}
	base := noteOctaveBase
	if base == 0 {
		base = cfg.OctaveBase
	}
	return note.Context{Key: k, OctaveBase: base, Unit: unit}, nil
}

var noteCmd = &cobra.Command{
	Use:   "note <token>",
	Short: "Decodes an ABC note or rest",
	Long:  `Decodes an ABC note or rest token and writes it back out, in its key and in C.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		ctx, err := noteContext()
		if err != nil {
			return err
		}
		ev, ws, err := note.ParseEvent(args[0], ctx)
		if err != nil {
			return err
		}
		ws.Log(logger, "token", args[0])
		if ev == nil {
			return fmt.Errorf("%q is an invisible or multi-measure rest, which is dropped", args[0])
		}

		inC := ctx
		inC.Key = key.MustParse("C")
		v := noteView{
			Token:    args[0],
			Name:     ev.String(),
			Duration: ev.Duration().String(),
			ABC:      ev.ToABC(ctx),
			ABCInC:   ev.ToABC(inC),
			Warnings: warningStrings(ws),
		}
		if n, ok := ev.(note.Note); ok {
			v.Name = n.Name()
			v.Value = n.Value()
		}
		return render(cmd.OutOrStdout(), v, func(w io.Writer) error {
			fmt.Fprintln(w, titleStyle.Render(v.Name))
			printField(w, "duration", v.Duration)
			printField(w, "abc", v.ABC)
			printField(w, "abc in C", v.ABCInC)
			printWarnings(w, v.Warnings)
			return nil
		})
	},
}
