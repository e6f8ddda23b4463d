package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "internal", "cache")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("failed to create sub dir: %v", err)
	}
	file := filepath.Join(subDir, "store.go")
	if err := os.WriteFile(file, []byte("package cache\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	canonical, err := CanonicalizePath(file, tmpDir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if canonical != "internal/cache/store.go" {
		t.Errorf("expected 'internal/cache/store.go', got %q", canonical)
	}
}

func TestCanonicalizePathNonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	// Files that don't exist yet should still canonicalize
	canonical, err := CanonicalizePath(filepath.Join(tmpDir, "new.go"), tmpDir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed for non-existent file: %v", err)
	}
	if canonical != "new.go" {
		t.Errorf("expected 'new.go', got %q", canonical)
	}
}

func TestIsWithinRepo(t *testing.T) {
	tmpDir := t.TempDir()

	if !IsWithinRepo(filepath.Join(tmpDir, "main.go"), tmpDir) {
		t.Error("expected path inside repo to be within repo")
	}
	if IsWithinRepo(filepath.Join(tmpDir, "..", "outside.go"), tmpDir) {
		t.Error("expected path outside repo to not be within repo")
	}
}

func TestJoinRepoPath(t *testing.T) {
	joined := JoinRepoPath("/repo", "internal/cache/store.go")
	expected := filepath.Join("/repo", "internal", "cache", "store.go")
	if joined != expected {
		t.Errorf("expected %q, got %q", expected, joined)
	}
}

func TestStateDirLayout(t *testing.T) {
	if StateDir("/repo") != filepath.Join("/repo", ".symdex") {
		t.Errorf("unexpected state dir: %q", StateDir("/repo"))
	}
	if CacheDir("/repo") != filepath.Join("/repo", ".symdex", "cache") {
		t.Errorf("unexpected cache dir: %q", CacheDir("/repo"))
	}
}

func TestEnsureCacheDir(t *testing.T) {
	tmpDir := t.TempDir()

	dir, err := EnsureCacheDir(tmpDir)
	if err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected cache dir to exist: %v", err)
	}

	// Idempotent
	if _, err := EnsureCacheDir(tmpDir); err != nil {
		t.Errorf("EnsureCacheDir should be idempotent: %v", err)
	}
}
