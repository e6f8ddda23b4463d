package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"symdex/internal/incremental"
	"symdex/internal/paths"
	"symdex/internal/slogutil"
	"symdex/internal/version"
)

var (
	analyzeNoSave   bool
	analyzeNoVcs    bool
	analyzeFailFast bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Analyze changed files and refresh the symbol cache",
	Long: `Scans the repository (or the given repo-relative paths), re-analyzes
files whose content changed since the last run, and serves everything
else from the cache.

Examples:
  symdex analyze                    # Analyze the whole repository
  symdex analyze internal/cache     # Restrict to given paths
  symdex analyze --format json      # Machine-readable summary`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Skip persisting the cache after the run")
	analyzeCmd.Flags().BoolVar(&analyzeNoVcs, "no-vcs", false, "Skip the repository revision check")
	analyzeCmd.Flags().BoolVar(&analyzeFailFast, "fail-fast", false, "Exit non-zero when any file fails to analyze")
	rootCmd.AddCommand(analyzeCmd)
}

type analyzeFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

type analyzeResponse struct {
	SymdexVersion string               `json:"symdexVersion" yaml:"symdexVersion"`
	RepoRoot      string               `json:"repoRoot" yaml:"repoRoot"`
	Revision      string               `json:"revision,omitempty" yaml:"revision,omitempty"`
	Invalidated   bool                 `json:"invalidated" yaml:"invalidated"`
	TotalFiles    int                  `json:"totalFiles" yaml:"totalFiles"`
	Analyzed      int                  `json:"analyzed" yaml:"analyzed"`
	Cached        int                  `json:"cached" yaml:"cached"`
	Failed        int                  `json:"failed" yaml:"failed"`
	TotalSymbols  int                  `json:"totalSymbols" yaml:"totalSymbols"`
	Failures      []analyzeFailure     `json:"failures,omitempty" yaml:"failures,omitempty"`
	Stats         incremental.Snapshot `json:"stats" yaml:"stats"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	resp := &analyzeResponse{
		SymdexVersion: version.Version,
		RepoRoot:      sess.repoRoot,
	}
	if !analyzeNoVcs {
		resp.Revision, resp.Invalidated = sess.checkRevision()
	}

	files, err := resolveTargets(sess, args)
	if err != nil {
		return err
	}

	results := sess.analyzer.AnalyzeMany(cmd.Context(), files)

	for path, res := range results {
		if res.Err != nil {
			resp.Failures = append(resp.Failures, analyzeFailure{Path: path, Error: res.Err.Error()})
			continue
		}
		resp.TotalSymbols += len(res.Symbols)
	}
	sort.Slice(resp.Failures, func(i, j int) bool { return resp.Failures[i].Path < resp.Failures[j].Path })

	stats := sess.analyzer.Stats()
	resp.TotalFiles = len(results)
	resp.Analyzed = int(stats.FilesAnalyzed)
	resp.Cached = int(stats.CacheHits)
	resp.Failed = int(stats.Failures)
	resp.Stats = stats

	if !analyzeNoSave {
		if err := sess.analyzer.Flush(); err != nil {
			sess.logger.Error("failed to persist cache", "error", err.Error())
			return err
		}
	}

	logRunSummary(sess, resp)

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)

	if analyzeFailFast && resp.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to analyze", resp.Failed, resp.TotalFiles)
	}
	return nil
}

// resolveTargets turns positional arguments into canonical repo-relative
// file paths. No arguments means the whole tree. A directory argument
// restricts the scan to files beneath it; a file argument passes through
// canonicalized, so a vanished file still surfaces as a per-file failure.
func resolveTargets(sess *session, args []string) ([]string, error) {
	if len(args) == 0 {
		return sess.scanner.ListFiles()
	}

	var scanned []string
	listAll := func() ([]string, error) {
		if scanned == nil {
			var err error
			scanned, err = sess.scanner.ListFiles()
			if err != nil {
				return nil, err
			}
		}
		return scanned, nil
	}

	var files []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		if !paths.IsWithinRepo(abs, sess.repoRoot) {
			return nil, fmt.Errorf("path outside repository: %s", arg)
		}
		canonical, err := paths.CanonicalizePath(abs, sess.repoRoot)
		if err != nil {
			return nil, err
		}

		if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
			all, err := listAll()
			if err != nil {
				return nil, err
			}
			prefix := canonical + "/"
			for _, f := range all {
				if canonical == "." || strings.HasPrefix(f, prefix) {
					files = append(files, f)
				}
			}
			continue
		}

		files = append(files, canonical)
	}
	return files, nil
}

// logRunSummary appends one line per run to .symdex/logs/analyze.log.
// Best effort; an unwritable log never fails the run.
func logRunSummary(sess *session, resp *analyzeResponse) {
	if _, err := paths.EnsureLogsDir(sess.repoRoot); err != nil {
		sess.logger.Debug("cannot create logs directory", "error", err.Error())
		return
	}
	fileLogger, f, err := slogutil.NewFileLogger(paths.AnalyzeLogPath(sess.repoRoot), slog.LevelInfo)
	if err != nil {
		sess.logger.Debug("cannot open analyze log", "error", err.Error())
		return
	}
	defer f.Close() //nolint:errcheck // Best effort cleanup

	fileLogger.Info("analyze run",
		"files", resp.TotalFiles,
		"analyzed", resp.Analyzed,
		"cached", resp.Cached,
		"failed", resp.Failed,
		"symbols", resp.TotalSymbols,
		"revision", resp.Revision)
}
