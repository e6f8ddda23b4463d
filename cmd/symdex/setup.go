package main

import (
	"context"
	"log/slog"

	"symdex/internal/cache"
	"symdex/internal/config"
	"symdex/internal/incremental"
	"symdex/internal/manifest"
	"symdex/internal/paths"
	"symdex/internal/repostate"
	"symdex/internal/scan"
	"symdex/internal/symbols"
)

// session bundles everything a command needs: resolved configuration, the
// opened cache store, and the orchestrator wired to the tree-sitter extractor.
type session struct {
	repoRoot string
	cfg      *config.Config
	analyzer *incremental.Analyzer
	scanner  *scan.Scanner
	logger   *slog.Logger
}

func openSession() (*session, error) {
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return nil, err
	}
	logger := newCommandLogger(cfg)

	if m, err := manifest.Load(repoRoot); err != nil {
		logger.Warn("manifest unreadable, ignoring", "error", err.Error())
	} else if m != nil {
		m.ApplyTo(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := cache.Open(repoRoot, paths.CacheDir(repoRoot), cfg.Cache.MaxEntries, logger)

	extractor := symbols.NewExtractor()
	analyze := func(ctx context.Context, path string, contents []byte) ([]symbols.Symbol, error) {
		return extractor.Extract(ctx, path, contents)
	}

	return &session{
		repoRoot: repoRoot,
		cfg:      cfg,
		analyzer: incremental.New(repoRoot, store, analyze, logger),
		scanner:  scan.New(repoRoot, cfg.Analyzer, logger),
		logger:   logger,
	}, nil
}

// checkRevision probes the repository revision and lets the orchestrator
// invalidate on a change. Trees without version control are left alone.
func (s *session) checkRevision() (string, bool) {
	rev, err := repostate.CurrentRevision(s.repoRoot)
	if err != nil {
		s.logger.Debug("revision probe unavailable", "error", err.Error())
		return "", false
	}
	return rev.ID, s.analyzer.CheckRevision(rev.ID)
}
