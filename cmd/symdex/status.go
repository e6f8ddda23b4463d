package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"symdex/internal/cache"
	"symdex/internal/repostate"
	"symdex/internal/symbols"
	"symdex/internal/version"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache residency and repository state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusResponse struct {
	SymdexVersion      string           `json:"symdexVersion" yaml:"symdexVersion"`
	RepoRoot           string           `json:"repoRoot" yaml:"repoRoot"`
	GitRepo            bool             `json:"gitRepo" yaml:"gitRepo"`
	HeadCommit         string           `json:"headCommit,omitempty" yaml:"headCommit,omitempty"`
	Dirty              bool             `json:"dirty" yaml:"dirty"`
	ExtractorAvailable bool             `json:"extractorAvailable" yaml:"extractorAvailable"`
	MaxEntries         int              `json:"maxEntries" yaml:"maxEntries"`
	CacheRevision      string           `json:"cacheRevision,omitempty" yaml:"cacheRevision,omitempty"`
	Cache              cache.StoreStats `json:"cache" yaml:"cache"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	resp := &statusResponse{
		SymdexVersion:      version.Version,
		RepoRoot:           sess.repoRoot,
		ExtractorAvailable: symbols.IsAvailable(),
		MaxEntries:         sess.cfg.Cache.MaxEntries,
		CacheRevision:      sess.analyzer.Store().Revision(),
		Cache:              sess.analyzer.Store().Stats(),
	}

	if rev, err := repostate.CurrentRevision(sess.repoRoot); err == nil {
		resp.GitRepo = true
		resp.HeadCommit = rev.HeadCommit
		resp.Dirty = rev.Dirty
	}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
