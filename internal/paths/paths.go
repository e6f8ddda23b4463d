// Package paths provides canonical path handling and the .symdex directory layout.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// StateDirName is the repository-scoped state directory
const StateDirName = ".symdex"

// CanonicalizePath converts an absolute path to a repo-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to repo root
// - Converts backslashes to forward slashes
// - Returns repo-relative path with forward slashes
func CanonicalizePath(absolutePath string, repoRoot string) (string, error) {
	// Resolve symlinks
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	repoRootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			repoRootResolved = repoRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(repoRootResolved, resolved)
	if err != nil {
		return "", err
	}

	// Convert to forward slashes (platform independent)
	return filepath.ToSlash(relativePath), nil
}

// IsWithinRepo checks if a path is within the repository root
func IsWithinRepo(path string, repoRoot string) bool {
	canonical, err := CanonicalizePath(path, repoRoot)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// JoinRepoPath joins a repo root with a canonical path
func JoinRepoPath(repoRoot string, canonicalPath string) string {
	normalizedPath := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}

// StateDir returns the repository state directory (<repoRoot>/.symdex)
func StateDir(repoRoot string) string {
	return filepath.Join(repoRoot, StateDirName)
}

// CacheDir returns the cache storage directory (<repoRoot>/.symdex/cache)
func CacheDir(repoRoot string) string {
	return filepath.Join(StateDir(repoRoot), "cache")
}

// LogsDir returns the log directory (<repoRoot>/.symdex/logs)
func LogsDir(repoRoot string) string {
	return filepath.Join(StateDir(repoRoot), "logs")
}

// ConfigPath returns the configuration file path (<repoRoot>/.symdex/config.json)
func ConfigPath(repoRoot string) string {
	return filepath.Join(StateDir(repoRoot), "config.json")
}

// AnalyzeLogPath returns the analysis log file path
func AnalyzeLogPath(repoRoot string) string {
	return filepath.Join(LogsDir(repoRoot), "analyze.log")
}

// EnsureCacheDir creates the cache directory if missing and returns it
func EnsureCacheDir(repoRoot string) (string, error) {
	dir := CacheDir(repoRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// EnsureLogsDir creates the logs directory if missing and returns it
func EnsureLogsDir(repoRoot string) (string, error) {
	dir := LogsDir(repoRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
