package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove cache entries for files that no longer exist",
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

type cleanupResponse struct {
	Removed   int `json:"removed" yaml:"removed"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

func runCleanup(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	existing, err := sess.scanner.ExistingSet()
	if err != nil {
		return err
	}

	removed := sess.analyzer.Cleanup(existing)
	if err := sess.analyzer.Flush(); err != nil {
		return err
	}

	resp := &cleanupResponse{
		Removed:   removed,
		Remaining: sess.analyzer.Store().Len(),
	}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
