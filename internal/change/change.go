// Package change turns unified diffs into debatable code changes.
package change

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/parley-ai/parley/internal/model"
)

// FileChanges groups the changes extracted from one file in a diff.
type FileChanges struct {
	Filename string
	Changes  []model.CodeChange
}

// ParseDiff reads a unified diff and produces one CodeChange per text
// fragment. Binary files are skipped; the change reason records the file and
// hunk position so a debate has something concrete to anchor on.
func ParseDiff(raw string) ([]FileChanges, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var out []FileChanges
	for _, f := range parsed {
		if f.IsBinary {
			continue
		}
		fc := FileChanges{Filename: displayName(f)}
		for _, frag := range f.TextFragments {
			fc.Changes = append(fc.Changes, fragmentChange(fc.Filename, frag))
		}
		if len(fc.Changes) > 0 {
			out = append(out, fc)
		}
	}
	return out, nil
}

// First returns the first change in a diff, the common case for starting a
// debate from the command line.
func First(raw string) (model.CodeChange, error) {
	files, err := ParseDiff(raw)
	if err != nil {
		return model.CodeChange{}, err
	}
	if len(files) == 0 {
		return model.CodeChange{}, fmt.Errorf("diff contains no text changes")
	}
	return files[0].Changes[0], nil
}

func fragmentChange(filename string, frag *gitdiff.TextFragment) model.CodeChange {
	var original, proposed strings.Builder
	for _, line := range frag.Lines {
		switch line.Op {
		case gitdiff.OpDelete:
			original.WriteString(line.Line)
		case gitdiff.OpAdd:
			proposed.WriteString(line.Line)
		case gitdiff.OpContext:
			original.WriteString(line.Line)
			proposed.WriteString(line.Line)
		}
	}

	start := int(frag.NewPosition)
	end := start + int(frag.NewLines) - 1
	if end < start {
		end = start
	}

	return model.CodeChange{
		ID:           model.NewID(),
		LineStart:    start,
		LineEnd:      end,
		OriginalCode: strings.TrimRight(original.String(), "\n"),
		ProposedCode: strings.TrimRight(proposed.String(), "\n"),
		Reason:       fmt.Sprintf("%s: change at lines %d-%d", filename, start, end),
	}
}

func displayName(f *gitdiff.File) string {
	if f.IsRename {
		return fmt.Sprintf("%s -> %s", f.OldName, f.NewName)
	}
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// GitDiff runs `git diff` with the given arguments and returns the raw output.
func GitDiff(repoDir string, args ...string) (string, error) {
	cmdArgs := append([]string{"diff"}, args...)
	cmd := exec.Command("git", cmdArgs...)
	cmd.Dir = repoDir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(out), nil
}

// GitDiffHead returns the diff of HEAD against its parent.
func GitDiffHead(repoDir string, contextLines int) (string, error) {
	return GitDiff(repoDir, fmt.Sprintf("-U%d", contextLines), "HEAD~1", "HEAD")
}

// GitDiffRange returns the diff for a commit range like "main...HEAD".
func GitDiffRange(repoDir string, commitRange string, contextLines int) (string, error) {
	return GitDiff(repoDir, fmt.Sprintf("-U%d", contextLines), commitRange)
}
