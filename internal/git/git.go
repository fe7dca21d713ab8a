// Package git reads repository state by shelling out to the git binary.
// devlog never writes to the repository: git is consulted to place the
// journal at the repo root, to prefill file lists from the working tree,
// and to find commits newer than the last journal entry.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/jralston/devlog/internal/output"
)

// Run invokes git with the given arguments and returns trimmed stdout.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext is Run with a caller-supplied context.
// Failures come back as *output.ExitError system errors carrying git's
// stderr, so command handlers can pass them straight to the printer.
func RunContext(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+msg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo reports whether the working directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// revParse runs git rev-parse and wraps any failure with failMsg.
func revParse(failMsg string, args ...string) (string, error) {
	out, err := Run(append([]string{"rev-parse"}, args...)...)
	if err != nil {
		return "", output.NewSystemErrorWithCause(failMsg, err)
	}
	return out, nil
}

// RepoRoot returns the repository's top-level directory.
func RepoRoot() (string, error) {
	return revParse("not in a git repository", "--show-toplevel")
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch() (string, error) {
	return revParse("failed to get current branch", "--abbrev-ref", "HEAD")
}

// HEAD returns the full SHA of the current HEAD commit.
func HEAD() (string, error) {
	return revParse("failed to get HEAD", "HEAD")
}

// HasUncommittedChanges reports whether the working tree is dirty,
// counting both staged and unstaged changes.
func HasUncommittedChanges() bool {
	out, err := Run("status", "--porcelain")
	return err == nil && strings.TrimSpace(out) != ""
}
