package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/abcdex/diag"
	"github.com/jsphweid/abcdex/tune"
	"github.com/spf13/cobra"
)

var tuneIndex int

func init() {
	parseCmd.Flags().IntVarP(&tuneIndex, "index", "n", 0, "which tune of a multi-tune file, from 0")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parses one tune",
	Long:  `Parses one tune and prints its header, key and measures with repeats played out.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		t, ws, err := loadTune(args[0], tuneIndex)
		if err != nil {
			return err
		}
		ws.Log(logger, "file", args[0])
		v := parseView(t, ws)
		return render(cmd.OutOrStdout(), v, func(w io.Writer) error {
			return printTune(w, v)
		})
	},
}

// loadTune reads the n-th tune of a file, or of stdin for "-".
func loadTune(path string, n int) (*tune.Tune, diag.Warnings, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	_, tunes := tune.SplitBook(string(data))
	if len(tunes) == 0 {
		// a lone tune without X:
		tunes = []string{string(data)}
	}
	if n < 0 || n >= len(tunes) {
		return nil, nil, fmt.Errorf("%s has %d tunes, no tune %d", path, len(tunes), n)
	}
	return tune.Parse(tunes[n])
}
