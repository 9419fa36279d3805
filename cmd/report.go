package cmd

import (
	"io"

	"github.com/jsphweid/abcdex/catalog"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Counts tunes, failures, measures and notes in the catalog, by key and by type.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		c, err := catalog.Load(catalog.Path(cfg.IndexPath))
		if err != nil {
			return err
		}
		s := c.Stats()
		return render(cmd.OutOrStdout(), s, func(w io.Writer) error {
			return s.Report(w)
		})
	},
}
