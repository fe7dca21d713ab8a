package git

import (
	"strconv"
	"strings"
	"time"

	"github.com/jralston/devlog/internal/output"
)

// ChangeKind classifies a working-tree change.
type ChangeKind string

// Change kinds derived from porcelain status codes.
const (
	ChangeCreated  ChangeKind = "created"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

// Change represents a single changed path in the working tree.
type Change struct {
	Path string
	Kind ChangeKind
}

// Commit represents a git commit with the metadata devlog needs.
type Commit struct {
	SHA     string    // Full 40-character SHA
	Short   string    // Abbreviated SHA (typically 7 chars)
	Subject string    // First line of commit message
	Author  string    // Author name
	Date    time.Time // Commit date
}

// fieldSeparator delimits fields within a commit in custom log output.
const fieldSeparator = "---FIELD---"

// commitSeparator delimits commits in custom log output.
const commitSeparator = "---COMMIT-BOUNDARY---"

// ChangedFiles returns staged and unstaged changes in the working tree,
// parsed from `git status --porcelain`. Untracked files count as created.
func ChangedFiles() ([]Change, error) {
	out, err := Run("status", "--porcelain")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get working tree status", err)
	}
	return parsePorcelain(out), nil
}

// parsePorcelain parses `git status --porcelain` output into Changes.
func parsePorcelain(out string) []Change {
	var changes []Change
	for line := range strings.SplitSeq(out, "\n") {
		if len(line) < 4 {
			continue
		}
		status := line[:2]
		path := strings.TrimSpace(line[3:])

		// Renames are reported as "old -> new"; keep the new path.
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}

		changes = append(changes, Change{Path: path, Kind: classifyStatus(status)})
	}
	return changes
}

// classifyStatus maps a two-character porcelain status code to a ChangeKind.
func classifyStatus(status string) ChangeKind {
	switch {
	case strings.Contains(status, "A"), status == "??":
		return ChangeCreated
	case strings.Contains(status, "D"):
		return ChangeDeleted
	case strings.Contains(status, "R"):
		return ChangeRenamed
	default:
		return ChangeModified
	}
}

// CommitsSince returns commits authored strictly after the given time,
// newest first. Returns nil if there are none.
func CommitsSince(t time.Time) ([]Commit, error) {
	format := strings.Join([]string{
		"%H",  // Full SHA
		"%h",  // Short SHA
		"%s",  // Subject
		"%an", // Author name
		"%at", // Unix timestamp
	}, fieldSeparator) + commitSeparator

	out, err := Run("log", "--pretty=format:"+format, "--since="+t.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log", err)
	}

	return parseCommits(out), nil
}

// RecentCommits returns the most recent n commits, newest first.
func RecentCommits(n int) ([]Commit, error) {
	format := strings.Join([]string{
		"%H", "%h", "%s", "%an", "%at",
	}, fieldSeparator) + commitSeparator

	out, err := Run("log", "--pretty=format:"+format, "-n", strconv.Itoa(n))
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log", err)
	}

	return parseCommits(out), nil
}

// Diff returns the unified diff of the working tree against HEAD,
// truncated to maxBytes. Used to build drafting prompts.
func Diff(maxBytes int) (string, error) {
	out, err := Run("diff", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get diff", err)
	}
	if maxBytes > 0 && len(out) > maxBytes {
		out = out[:maxBytes] + "\n... (diff truncated)"
	}
	return out, nil
}

// parseCommits parses custom-formatted git log output into Commits.
func parseCommits(out string) []Commit {
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, commitStr := range strings.Split(out, commitSeparator) {
		commitStr = strings.TrimSpace(commitStr)
		if commitStr == "" {
			continue
		}
		if commit, ok := parseCommitFields(commitStr); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

// parseCommitFields parses a single commit record.
func parseCommitFields(commitStr string) (Commit, bool) {
	fields := strings.Split(commitStr, fieldSeparator)
	if len(fields) < 5 {
		return Commit{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	return Commit{
		SHA:     strings.TrimSpace(fields[0]),
		Short:   strings.TrimSpace(fields[1]),
		Subject: strings.TrimSpace(fields[2]),
		Author:  strings.TrimSpace(fields[3]),
		Date:    time.Unix(timestamp, 0).UTC(),
	}, true
}
