package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/abcdex/key"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keyCmd)
}

var keyCmd = &cobra.Command{
	Use:   "key <spec>",
	Short: "Describes a key",
	Long:  `Describes a key such as "D", "Ador" or "Bb minor": signature, scale, steps, degrees and relatives.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		spec := strings.Join(args, " ")
		k, ws, err := key.Parse(spec)
		if err != nil {
			return err
		}
		ws.Log(logger, "key", spec)
		return render(cmd.OutOrStdout(), keyView(k, ws), func(w io.Writer) error {
			fmt.Fprintln(w, titleStyle.Render(k.Name()))
			if err := k.Describe(w); err != nil {
				return err
			}
			chromatic, err := key.ChromaticScaleDegrees(k.Mode(), "#/b")
			if err != nil {
				return err
			}
			printField(w, "chromatic", strings.Join(chromatic, " "))
			printWarnings(w, warningStrings(ws))
			return nil
		})
	},
}
