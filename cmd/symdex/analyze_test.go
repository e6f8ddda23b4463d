package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"symdex/internal/config"
	"symdex/internal/scan"
	"symdex/internal/slogutil"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	repoRoot, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	cfg := config.DefaultConfig()
	logger := slogutil.NewDiscardLogger()
	return &session{
		repoRoot: repoRoot,
		cfg:      cfg,
		scanner:  scan.New(repoRoot, cfg.Analyzer, logger),
		logger:   logger,
	}
}

func writeTree(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte("package x\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func sorted(files []string) []string {
	sort.Strings(files)
	return files
}

func TestResolveTargetsWholeTree(t *testing.T) {
	sess := newTestSession(t)
	writeTree(t, sess.repoRoot, "main.go", "internal/cache/a.go")

	files, err := resolveTargets(sess, nil)
	if err != nil {
		t.Fatalf("resolveTargets failed: %v", err)
	}
	want := []string{"internal/cache/a.go", "main.go"}
	if got := sorted(files); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveTargetsDirectoryRestrictsScan(t *testing.T) {
	sess := newTestSession(t)
	writeTree(t, sess.repoRoot, "main.go", "internal/cache/a.go", "internal/cache/b.go")

	files, err := resolveTargets(sess, []string{filepath.Join(sess.repoRoot, "internal", "cache")})
	if err != nil {
		t.Fatalf("directory argument must not fail: %v", err)
	}
	want := []string{"internal/cache/a.go", "internal/cache/b.go"}
	got := sorted(files)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveTargetsRelativeDirectory(t *testing.T) {
	sess := newTestSession(t)
	writeTree(t, sess.repoRoot, "main.go", "internal/cache/a.go")
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(sess.repoRoot); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})

	files, err := resolveTargets(sess, []string{"internal/cache"})
	if err != nil {
		t.Fatalf("relative directory argument must not fail: %v", err)
	}
	if len(files) != 1 || files[0] != "internal/cache/a.go" {
		t.Errorf("expected [internal/cache/a.go], got %v", files)
	}
}

func TestResolveTargetsRepoRootDirectory(t *testing.T) {
	sess := newTestSession(t)
	writeTree(t, sess.repoRoot, "main.go", "internal/cache/a.go")

	files, err := resolveTargets(sess, []string{sess.repoRoot})
	if err != nil {
		t.Fatalf("resolveTargets failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("repo root argument should cover the whole tree, got %v", files)
	}
}

func TestResolveTargetsFileArgument(t *testing.T) {
	sess := newTestSession(t)
	writeTree(t, sess.repoRoot, "main.go", "internal/cache/a.go")

	files, err := resolveTargets(sess, []string{filepath.Join(sess.repoRoot, "main.go")})
	if err != nil {
		t.Fatalf("resolveTargets failed: %v", err)
	}
	if len(files) != 1 || files[0] != "main.go" {
		t.Errorf("expected [main.go], got %v", files)
	}
}

func TestResolveTargetsMissingFilePassesThrough(t *testing.T) {
	sess := newTestSession(t)

	files, err := resolveTargets(sess, []string{filepath.Join(sess.repoRoot, "gone.go")})
	if err != nil {
		t.Fatalf("missing file must surface per-file, not here: %v", err)
	}
	if len(files) != 1 || files[0] != "gone.go" {
		t.Errorf("expected [gone.go], got %v", files)
	}
}

func TestResolveTargetsOutsideRepo(t *testing.T) {
	sess := newTestSession(t)
	outside := t.TempDir()

	if _, err := resolveTargets(sess, []string{outside}); err == nil {
		t.Error("expected error for path outside the repository")
	}
}
