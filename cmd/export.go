package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/abcdex/midi"
	"github.com/spf13/cobra"
)

var (
	exportOut     string
	exportOptions = midi.DefaultOptions()
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output .mid file (default: input name with .mid)")
	exportCmd.Flags().IntVarP(&tuneIndex, "index", "n", 0, "which tune of a multi-tune file, from 0")
	exportCmd.Flags().Float64Var(&exportOptions.BPM, "bpm", exportOptions.BPM, "quarter notes per minute when the tune has no Q:")
	exportCmd.Flags().Uint8Var(&exportOptions.Program, "program", exportOptions.Program, "General MIDI program")
	exportCmd.Flags().Uint8Var(&exportOptions.Velocity, "velocity", exportOptions.Velocity, "note velocity")
	exportCmd.Flags().IntVar(&exportOptions.MaxNotes, "notes", 0, "only write the first n notes")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Writes a tune as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ws, err := loadTune(args[0], tuneIndex)
		if err != nil {
			return err
		}
		ws.Log(logger, "file", args[0])

		out := exportOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".abc") + ".mid"
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := midi.Export(f, t, exportOptions); err != nil {
			return fmt.Errorf("exporting %q: %w", t.Title(), err)
		}
		logger.Info("midi written", "title", t.Title(), "path", out)
		return f.Close()
	},
}
