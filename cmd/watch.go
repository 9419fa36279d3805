package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchWait     time.Duration
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "how often to check the file")
	watchCmd.Flags().DurationVar(&watchWait, "wait", time.Second, "quiet time after the last change before parsing")
	watchCmd.Flags().IntVarP(&tuneIndex, "index", "n", 0, "which tune of a multi-tune file, from 0")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parses a tune whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return Watch(ctx, cmd.OutOrStdout(), args[0], watchInterval, watchWait)
	},
}

// Watch polls path and, once changes settle for wait, parses the tune and
// prints a summary or the error. It returns when ctx is done.
func Watch(ctx context.Context, w io.Writer, path string, interval, wait time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	// stopped keeps a late debounced report from writing after return
	var (
		mu      sync.Mutex
		stopped bool
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		t, ws, err := loadTune(path, tuneIndex)
		if err != nil {
			fmt.Fprintln(w, warnStyle.Render(err.Error()))
			return
		}
		ws.Log(logger, "file", path)
		_ = printTune(w, parseView(t, ws))
	}
	report()

	debounced := debounce.New(wait)
	last := info.ModTime()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			debounced(func() {})
			mu.Lock()
			stopped = true
			mu.Unlock()
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				logger.Warn("could not stat file", "path", path, "err", err)
				continue
			}
			if info.ModTime().Equal(last) {
				continue
			}
			last = info.ModTime()
			logger.Debug("file changed", "path", path)
			debounced(report)
		}
	}
}
