package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached analysis result",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

type clearResponse struct {
	Removed    int    `json:"removed" yaml:"removed"`
	StorageDir string `json:"storageDir" yaml:"storageDir"`
}

func runClear(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	resp := &clearResponse{
		Removed:    sess.analyzer.Store().Len(),
		StorageDir: sess.analyzer.Store().Stats().StorageDir,
	}
	sess.analyzer.Clear()
	if err := sess.analyzer.Flush(); err != nil {
		return err
	}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
