// Package incremental orchestrates cache-aware symbol analysis: it decides
// per file whether cached results can be served or the analyzer must run,
// and keeps the cache store and statistics consistent while doing so.
//
// An Analyzer, like the Store it owns, belongs to a single goroutine.
package incremental

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"symdex/internal/cache"
	"symdex/internal/errors"
	"symdex/internal/paths"
	"symdex/internal/symbols"
)

// AnalyzeFunc produces symbols for one file. path is repo-relative canonical;
// contents holds the file bytes already read by the orchestrator.
type AnalyzeFunc func(ctx context.Context, path string, contents []byte) ([]symbols.Symbol, error)

// FileResult is the per-file outcome of a batch run. Exactly one of Symbols
// or Err is meaningful.
type FileResult struct {
	Symbols []symbols.Symbol
	Err     error
}

// Analyzer coordinates change detection, cache lookups, and analyzer runs.
type Analyzer struct {
	repoRoot  string
	store     *cache.Store
	analyze   AnalyzeFunc
	sessionID string
	stats     counters
	logger    *slog.Logger
}

// New creates an orchestrator over an opened store. The analyze function is
// the only component that ever parses file contents.
func New(repoRoot string, store *cache.Store, analyze AnalyzeFunc, logger *slog.Logger) *Analyzer {
	sessionID := uuid.NewString()
	return &Analyzer{
		repoRoot:  repoRoot,
		store:     store,
		analyze:   analyze,
		sessionID: sessionID,
		logger:    logger.With("session", sessionID[:8]),
	}
}

// AnalyzeOne returns the symbols for path, from cache when the file is
// unchanged and by running the analyzer otherwise. A successful run stores
// the result; a failed run leaves any previous record untouched.
func (a *Analyzer) AnalyzeOne(ctx context.Context, path string) ([]symbols.Symbol, error) {
	full := paths.JoinRepoPath(a.repoRoot, path)
	info, err := os.Stat(full)
	if err != nil {
		a.stats.failures++
		return nil, errors.New(errors.FileVanished, "file not readable", err, nil).
			WithDetails(map[string]string{"path": path})
	}

	if !a.store.IsChanged(path, info.ModTime(), info.Size()) {
		if syms, ok := a.store.Get(path); ok {
			a.stats.cacheHits++
			return syms, nil
		}
	}

	contents, err := os.ReadFile(full)
	if err != nil {
		a.stats.failures++
		return nil, errors.New(errors.FileVanished, "file vanished before analysis", err, nil).
			WithDetails(map[string]string{"path": path})
	}

	start := time.Now()
	syms, err := a.analyze(ctx, path, contents)
	elapsed := time.Since(start)
	if err != nil {
		a.stats.failures++
		a.logger.Warn("analysis failed", "path", path, "error", err.Error())
		return nil, errors.New(errors.AnalysisFailed, "symbol extraction failed", err, nil).
			WithDetails(map[string]string{"path": path})
	}

	a.stats.cacheMisses++
	a.stats.filesAnalyzed++
	a.stats.totalAnalysisTime += elapsed

	a.store.Put(path, info.ModTime(), info.Size(), cache.HashBytes(contents), syms)
	a.logger.Debug("analyzed file", "path", path, "symbols", len(syms), "duration", elapsed)
	return syms, nil
}

// AnalyzeMany processes a batch of repo-relative paths and returns a result
// for each distinct input path. Failures are isolated per file; one bad file
// never aborts the batch.
func (a *Analyzer) AnalyzeMany(ctx context.Context, inputs []string) map[string]FileResult {
	start := time.Now()
	results := make(map[string]FileResult, len(inputs))

	var analyzed, skipped, failed int
	for _, path := range inputs {
		if _, done := results[path]; done {
			continue
		}
		before := a.stats.cacheHits
		syms, err := a.AnalyzeOne(ctx, path)
		results[path] = FileResult{Symbols: syms, Err: err}
		switch {
		case err != nil:
			failed++
		case a.stats.cacheHits > before:
			skipped++
		default:
			analyzed++
		}
	}

	a.logger.Info("batch complete",
		"total", len(results),
		"analyzed", analyzed,
		"cached", skipped,
		"failed", failed,
		"duration", time.Since(start))
	return results
}

// CheckRevision compares the current repository revision against the one the
// store last saw. On a mismatch every cached entry is invalidated and the new
// revision recorded; the return value reports whether invalidation happened.
func (a *Analyzer) CheckRevision(current string) bool {
	if current == a.store.Revision() {
		return false
	}
	dropped := a.store.Len()
	a.store.InvalidateAll()
	a.store.SetRevision(current)
	a.logger.Info("repository revision changed, cache invalidated",
		"dropped", dropped, "revision", current)
	return true
}

// Invalidate drops the cached record for a single path.
func (a *Analyzer) Invalidate(path string) {
	a.store.Invalidate(path)
}

// Cleanup removes cache records for files absent from existing and returns
// the number removed.
func (a *Analyzer) Cleanup(existing map[string]struct{}) int {
	removed := a.store.RemoveStale(existing)
	if removed > 0 {
		a.logger.Info("removed stale cache entries", "count", removed)
	}
	return removed
}

// Clear empties the cache and resets the session statistics.
func (a *Analyzer) Clear() {
	a.store.InvalidateAll()
	a.stats.reset()
	a.logger.Info("cache cleared")
}

// Flush persists the store to disk.
func (a *Analyzer) Flush() error {
	return a.store.Save()
}

// Stats returns the current statistics snapshot, including store residency.
// It never mutates cache state.
func (a *Analyzer) Stats() Snapshot {
	s := a.stats.snapshot()
	s.SessionID = a.sessionID
	s.Store = a.store.Stats()
	return s
}

// Store exposes the underlying cache store for hosts that manage persistence
// or revision probing themselves.
func (a *Analyzer) Store() *cache.Store {
	return a.store
}
