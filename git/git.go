// Package git runs the git commands that read and write repository
// state.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var (
	_ gitlines.Differ  = (*Client)(nil)
	_ gitlines.Applier = (*Client)(nil)
)

// Client runs git against a single repository.
type Client struct {
	// Dir is the repository path passed to git -C. Empty means the
	// current directory.
	Dir string
}

// NewClient creates a client for the repository at dir.
func NewClient(dir string) *Client {
	return &Client{Dir: dir}
}

// Diff returns the unstaged working-tree changes as zero-context diff
// text, optionally restricted to paths. The result is empty when
// there are no unstaged changes.
func (c *Client) Diff(ctx context.Context, paths ...string) (string, error) {
	args := []string{"diff", "--no-ext-diff", "-U0", "--no-color"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return c.run(ctx, nil, args...)
}

// Apply stages patch to the index. git applies the patch atomically,
// so the index is unchanged when an error is returned.
func (c *Client) Apply(ctx context.Context, patch string) error {
	_, err := c.run(ctx, strings.NewReader(patch), "apply", "--cached", "--unidiff-zero", "-")
	return err
}

func (c *Client) run(ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	argv := append([]string{"-C", dir}, args...)

	cmd := exec.CommandContext(ctx, "git", argv...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &CommandError{
			Args:   argv,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return "", cmdErr
	}
	return stdout.String(), nil
}

// CommandError reports a git invocation that failed.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
