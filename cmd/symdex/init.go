package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"symdex/internal/config"
	"symdex/internal/paths"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize symdex in the current repository",
	Long:  "Creates a .symdex/ directory with default configuration in the repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .symdex directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	logger := newCommandLogger(cfg)
	repoRoot := mustGetRepoRoot()

	stateDir := paths.StateDir(repoRoot)
	if _, statErr := os.Stat(stateDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("symdex already initialized.")
			fmt.Printf("Configuration at: %s\n", paths.ConfigPath(repoRoot))
			fmt.Println("\nRun 'symdex init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(stateDir); removeErr != nil {
			return removeErr
		}
		logger.Info("removed existing state directory", "dir", stateDir)
	}

	if err := cfg.Save(repoRoot); err != nil {
		return err
	}
	if _, err := paths.EnsureCacheDir(repoRoot); err != nil {
		return err
	}

	logger.Info("initialized", "config", paths.ConfigPath(repoRoot))

	fmt.Println("symdex initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", paths.ConfigPath(repoRoot))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'symdex analyze' to build the cache")
	fmt.Println("  2. Run 'symdex status' to inspect it")

	return nil
}
