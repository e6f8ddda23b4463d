package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"symdex/internal/config"
	"symdex/internal/repostate"
	"symdex/internal/slogutil"
	"symdex/internal/version"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
	// verboseFlag counts -v occurrences (-v info, -vv debug)
	verboseFlag int
	// quietFlag suppresses everything below warnings
	quietFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "symdex",
	Short: "symdex - incremental symbol index",
	Long: `symdex maintains a persistent cache of per-file symbol analysis results
and re-analyzes only the files whose content actually changed, using
modification time, size, and content hashing to decide.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("symdex version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: json, yaml, or human")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Only log warnings and errors")
}

// commandLogLevel resolves the effective log level. Verbosity flags win;
// otherwise the configured logging.level applies.
func commandLogLevel(cfg *config.Config) slog.Level {
	if verboseFlag > 0 || quietFlag {
		return slogutil.LevelFromVerbosity(verboseFlag, quietFlag)
	}
	return slogutil.LevelFromString(cfg.Logging.Level)
}

// newCommandLogger builds the stderr logger for a command invocation,
// honoring the configured logging format and level.
func newCommandLogger(cfg *config.Config) *slog.Logger {
	return slogutil.NewLoggerWithFormat(os.Stderr, cfg.Logging.Format, commandLogLevel(cfg))
}

// mustGetRepoRoot locates the enclosing repository root, falling back to the
// working directory for trees without version control.
func mustGetRepoRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	if root, err := repostate.FindRepoRoot(cwd); err == nil {
		return root
	}
	return cwd
}
