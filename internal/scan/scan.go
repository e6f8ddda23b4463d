// Package scan discovers analyzable source files under a repository root.
package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"symdex/internal/config"
)

// Directories always skipped during discovery
var skipDirs = map[string]bool{
	".git":         true,
	".symdex":      true,
	"vendor":       true,
	"node_modules": true,
	"bin":          true,
	"dist":         true,
	"out":          true,
	".cache":       true,
	"__pycache__":  true,
}

// Scanner walks a repository tree and yields canonical repo-relative paths
// of files eligible for analysis.
type Scanner struct {
	repoRoot string
	opts     config.AnalyzerConfig
	logger   *slog.Logger
}

// New creates a scanner for the given repository root.
func New(repoRoot string, opts config.AnalyzerConfig, logger *slog.Logger) *Scanner {
	return &Scanner{
		repoRoot: repoRoot,
		opts:     opts,
		logger:   logger,
	}
}

// ListFiles walks the tree and returns canonical repo-relative paths of all
// eligible files. Inaccessible files and directories are skipped, not fatal.
func (s *Scanner) ListFiles() ([]string, error) {
	var files []string

	err := filepath.Walk(s.repoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Skip inaccessible entries, continue walking
		}

		if info.IsDir() {
			base := filepath.Base(path)
			if skipDirs[base] || (base != filepath.Base(s.repoRoot) && strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			relDir, _ := filepath.Rel(s.repoRoot, path)
			if relDir != "." && s.isExcluded(relDir) {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(s.repoRoot, path)
		if relErr != nil {
			return nil //nolint:nilerr
		}
		relPath = filepath.ToSlash(relPath)

		if !s.Matches(relPath) {
			return nil
		}
		if s.opts.MaxFileSizeBytes > 0 && info.Size() > s.opts.MaxFileSizeBytes {
			s.logger.Debug("skipping oversized file", "path", relPath, "size", info.Size())
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ExistingSet returns the set of eligible paths currently on disk.
// Used for stale cache entry cleanup.
func (s *Scanner) ExistingSet() (map[string]struct{}, error) {
	files, err := s.ListFiles()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[f] = struct{}{}
	}
	return set, nil
}

// Matches reports whether a canonical repo-relative path is eligible for
// analysis under the scanner's options.
func (s *Scanner) Matches(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	if !s.hasExtension(ext) {
		return false
	}
	if !s.opts.IncludeTests && isTestFile(relPath) {
		return false
	}
	return !s.isExcluded(relPath)
}

func (s *Scanner) hasExtension(ext string) bool {
	for _, e := range s.opts.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// isTestFile recognizes the common per-language test file conventions.
func isTestFile(relPath string) bool {
	base := filepath.Base(relPath)
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasSuffix(base, ".test.js"),
		strings.HasSuffix(base, ".test.ts"),
		strings.HasSuffix(base, ".test.tsx"),
		strings.HasSuffix(base, ".spec.js"),
		strings.HasSuffix(base, ".spec.ts"),
		strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
		strings.HasSuffix(base, "_test.py"),
		strings.HasSuffix(base, "Test.java"),
		strings.HasSuffix(base, "Test.kt"):
		return true
	}
	return false
}

// isExcluded checks if a path matches configured excludes.
// Paths are normalized to forward slashes for consistent matching across OS.
func (s *Scanner) isExcluded(path string) bool {
	normalizedPath := filepath.ToSlash(path)

	for _, pattern := range s.opts.Excludes {
		normalizedPattern := filepath.ToSlash(pattern)

		if matched, _ := filepath.Match(normalizedPattern, normalizedPath); matched {
			return true
		}

		// Directory exclude: pattern "vendor" should match "vendor/foo/bar.go"
		dirPattern := strings.TrimSuffix(normalizedPattern, "/") + "/"
		if strings.HasPrefix(normalizedPath, dirPattern) {
			return true
		}

		if normalizedPath == strings.TrimSuffix(normalizedPattern, "/") {
			return true
		}
	}
	return false
}
