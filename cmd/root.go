package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jsphweid/abcdex/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
	format   string

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "abcdex",
	Short: "ABC tune toolkit",
	Long: `abcdex reads tunes in ABC notation: pitches, keys and modes, note tokens,
whole tunes with their repeats played out, and libraries of tunes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup(cfgPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text, yaml or json")
}

// Setup loads the config and installs the logger. Commands run it before
// doing anything else; tests that call handlers directly run it by hand.
func Setup(path string) error {
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c
	logger = newLogger(c.LogLevel)
	slog.SetDefault(logger)
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func checkFormat() error {
	switch format {
	case "text", "yaml", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
