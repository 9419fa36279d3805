package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/abcdex/catalog"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [catalog]",
	Short: "Inspects a catalog",
	Long:  `Lists the entries of a catalog file (default: the one under index_path).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		path := catalog.Path(cfg.IndexPath)
		if len(args) == 1 {
			path = args[0]
		}
		c, err := catalog.Load(path)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), c.Entries, func(w io.Writer) error {
			for _, e := range c.Entries {
				if e.Failed() {
					fmt.Fprintf(w, "%s  %s#%d  %s\n", e.ID, e.File, e.Index, warnStyle.Render(e.Error))
					continue
				}
				fmt.Fprintf(w, "%s  %s  %s  %s  %d measures  %s\n",
					e.ID, titleStyle.Render(e.Title), e.Key, e.Type, e.NumMeasures, labelStyle.Render(e.Incipit))
			}
			return nil
		})
	},
}
