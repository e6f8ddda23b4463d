// Package repostate probes the version-control state of a repository.
//
// The revision identifier it produces is a composite of the HEAD commit and
// hashes of the staged diff, working-tree diff, and untracked file list, so
// bulk operations (checkout, rebase) and dirty-tree edits both shift it.
package repostate

import (
	"crypto/sha256"
	"fmt"
	"os/exec"
	"strings"

	"symdex/internal/errors"
)

const (
	// EmptyHash represents an empty diff/list hash (sha256 of "")
	EmptyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

// Revision represents the observed state of the repository
type Revision struct {
	// ID is the composite revision identifier used for bulk cache invalidation
	ID string `json:"id"`

	HeadCommit          string `json:"headCommit"`
	StagedDiffHash      string `json:"stagedDiffHash"`
	WorkingTreeDiffHash string `json:"workingTreeDiffHash"`
	UntrackedListHash   string `json:"untrackedListHash"`
	Dirty               bool   `json:"dirty"`
}

// CurrentRevision computes the current repository revision using git commands.
// Returns an error when the tree is not under version control; callers treat
// that as "no revision available" and skip revision-based invalidation.
func CurrentRevision(repoRoot string) (*Revision, error) {
	if !IsGitRepository(repoRoot) {
		return nil, errors.New(
			errors.NotGitRepo,
			"Not a git repository",
			nil,
			[]errors.FixAction{
				{
					Type:        errors.RunCommand,
					Command:     "git init",
					Safe:        false,
					Description: "Initialize a git repository to enable revision tracking",
				},
			},
		)
	}

	headCommit, err := gitRevParse(repoRoot, "HEAD")
	if err != nil {
		// Repository with no commits yet; diffs below still identify the state
		headCommit = ""
	}

	stagedDiff, err := gitDiff(repoRoot, "--cached")
	if err != nil {
		return nil, errors.New(errors.InternalError, "Failed to get staged diff", err, nil)
	}
	stagedDiffHash := hashString(stagedDiff)

	workingDiff, err := gitDiff(repoRoot)
	if err != nil {
		return nil, errors.New(errors.InternalError, "Failed to get working tree diff", err, nil)
	}
	workingTreeDiffHash := hashString(workingDiff)

	untrackedFiles, err := gitLsFilesOthers(repoRoot)
	if err != nil {
		return nil, errors.New(errors.InternalError, "Failed to get untracked files", err, nil)
	}
	untrackedListHash := hashString(untrackedFiles)

	dirty := stagedDiffHash != EmptyHash ||
		workingTreeDiffHash != EmptyHash ||
		untrackedListHash != EmptyHash

	composite := fmt.Sprintf("%s:%s:%s:%s", headCommit, stagedDiffHash, workingTreeDiffHash, untrackedListHash)

	return &Revision{
		ID:                  hashString(composite),
		HeadCommit:          headCommit,
		StagedDiffHash:      stagedDiffHash,
		WorkingTreeDiffHash: workingTreeDiffHash,
		UntrackedListHash:   untrackedListHash,
		Dirty:               dirty,
	}, nil
}

// IsGitRepository checks if the given path is a git repository
func IsGitRepository(repoRoot string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = repoRoot
	return cmd.Run() == nil
}

// FindRepoRoot finds the git repository root from the given directory
func FindRepoRoot(startPath string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = startPath

	output, err := cmd.Output()
	if err != nil {
		return "", errors.New(
			errors.NotGitRepo,
			"Not a git repository",
			err,
			[]errors.FixAction{
				{
					Type:        errors.RunCommand,
					Command:     "git init",
					Safe:        false,
					Description: "Initialize a git repository",
				},
			},
		)
	}

	return strings.TrimSpace(string(output)), nil
}

// gitRevParse executes git rev-parse
func gitRevParse(repoRoot string, args ...string) (string, error) {
	fullArgs := append([]string{"rev-parse"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// gitDiff executes git diff and returns the output
func gitDiff(repoRoot string, args ...string) (string, error) {
	fullArgs := append([]string{"diff"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return string(output), nil
}

// gitLsFilesOthers executes git ls-files --others --exclude-standard
func gitLsFilesOthers(repoRoot string) (string, error) {
	cmd := exec.Command("git", "ls-files", "--others", "--exclude-standard")
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return string(output), nil
}

// hashString computes SHA256 hash of a string
func hashString(s string) string {
	if s == "" {
		return EmptyHash
	}
	h := sha256.New()
	h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum(nil))
}
