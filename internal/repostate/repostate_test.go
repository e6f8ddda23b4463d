package repostate

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestHashString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string returns empty hash",
			input:    "",
			expected: EmptyHash,
		},
		{
			name:     "simple string",
			input:    "hello",
			expected: fmt.Sprintf("%x", sha256.Sum256([]byte("hello"))),
		},
		{
			name:     "multiline string",
			input:    "line1\nline2\nline3",
			expected: fmt.Sprintf("%x", sha256.Sum256([]byte("line1\nline2\nline3"))),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := hashString(tc.input)
			if result != tc.expected {
				t.Errorf("hashString(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestEmptyHashConstant(t *testing.T) {
	expected := fmt.Sprintf("%x", sha256.Sum256([]byte("")))
	if EmptyHash != expected {
		t.Errorf("EmptyHash = %q, expected %q (SHA256 of empty string)", EmptyHash, expected)
	}
}

// setupGitRepo creates a temp git repository with one committed file.
func setupGitRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmpDir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")

	if err := os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte("package main\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	run("add", ".")
	run("commit", "-m", "initial")

	return tmpDir
}

func TestCurrentRevisionCleanTree(t *testing.T) {
	repo := setupGitRepo(t)

	rev, err := CurrentRevision(repo)
	if err != nil {
		t.Fatalf("CurrentRevision failed: %v", err)
	}

	if len(rev.ID) != 64 {
		t.Errorf("expected 64-char revision ID, got %d chars", len(rev.ID))
	}
	if rev.HeadCommit == "" {
		t.Error("expected non-empty HEAD commit")
	}
	if rev.Dirty {
		t.Error("expected clean tree to not be dirty")
	}

	// Stable for an unchanged tree
	rev2, err := CurrentRevision(repo)
	if err != nil {
		t.Fatalf("CurrentRevision failed: %v", err)
	}
	if rev.ID != rev2.ID {
		t.Error("revision ID should be stable for unchanged tree")
	}
}

func TestCurrentRevisionDirtyTree(t *testing.T) {
	repo := setupGitRepo(t)

	before, err := CurrentRevision(repo)
	if err != nil {
		t.Fatalf("CurrentRevision failed: %v", err)
	}

	// Untracked file changes the composite revision
	if err := os.WriteFile(filepath.Join(repo, "extra.go"), []byte("package main\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	after, err := CurrentRevision(repo)
	if err != nil {
		t.Fatalf("CurrentRevision failed: %v", err)
	}

	if before.ID == after.ID {
		t.Error("revision ID should change when an untracked file appears")
	}
	if !after.Dirty {
		t.Error("expected dirty tree after adding untracked file")
	}
}

func TestCurrentRevisionNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	if _, err := CurrentRevision(t.TempDir()); err == nil {
		t.Error("expected error outside a git repository")
	}
}

func TestFindRepoRoot(t *testing.T) {
	repo := setupGitRepo(t)

	subDir := filepath.Join(repo, "internal")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("failed to create sub dir: %v", err)
	}

	root, err := FindRepoRoot(subDir)
	if err != nil {
		t.Fatalf("FindRepoRoot failed: %v", err)
	}

	// Compare resolved paths (macOS tmp dirs are symlinked)
	wantResolved, _ := filepath.EvalSymlinks(repo)
	gotResolved, _ := filepath.EvalSymlinks(root)
	if wantResolved != gotResolved {
		t.Errorf("expected repo root %q, got %q", wantResolved, gotResolved)
	}
}
