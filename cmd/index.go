package cmd

import (
	"context"
	"fmt"

	"github.com/jsphweid/abcdex/catalog"
	"github.com/jsphweid/abcdex/db"
	"github.com/jsphweid/abcdex/util"
	"github.com/spf13/cobra"
)

var (
	indexMax    int
	indexDynamo bool
)

func init() {
	indexCmd.Flags().IntVar(&indexMax, "max", 0, "index at most this many files (0 for all)")
	indexCmd.Flags().BoolVar(&indexDynamo, "dynamo", false, "also write the entries to DynamoDB")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Creates the catalog",
	Long:  `Parses every .abc file under dir (default library_path from the config) and writes the catalog to index_path.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.LibraryPath
		if len(args) == 1 {
			dir = args[0]
		}
		c, err := Index(dir, indexMax)
		if err != nil {
			return err
		}
		if indexDynamo {
			return pushEntries(cmd.Context(), c)
		}
		return nil
	},
}

// Index builds the catalog from dir and saves it under the configured
// index path.
func Index(dir string, maxNum int) (*catalog.Catalog, error) {
	if dir == "" {
		return nil, fmt.Errorf("no library directory given and library_path is not set")
	}
	paths, err := util.GatherAllAbcPaths(dir, maxNum)
	if err != nil {
		return nil, err
	}
	logger.Info("indexing", "dir", dir, "files", len(paths))
	c := catalog.Build(paths, logger)
	path := catalog.Path(cfg.IndexPath)
	if err := c.Save(path); err != nil {
		return nil, err
	}
	s := c.Stats()
	logger.Info("catalog written", "path", path, "tunes", s.NumTunes, "failed", s.NumFailed)
	return c, nil
}

func pushEntries(ctx context.Context, c *catalog.Catalog) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.New(cfg.Dynamo)
	if err != nil {
		return err
	}
	if err := store.PutEntries(ctx, c.Entries); err != nil {
		return err
	}
	logger.Info("entries written to DynamoDB", "table", cfg.Dynamo.Table, "count", len(c.Entries))
	return nil
}
