// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gitops wraps the git command-line client.
//
// Every operation takes an explicit repository directory and runs git with
// the -C flag, so callers never change the process working directory.
// Shelling out to git (instead of reimplementing it with a library) keeps
// credential helpers, hooks and the user's git configuration working exactly
// as they do on the command line.
package gitops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGit is wrapped by every failure coming from the git client.
var ErrGit = errors.New("git operation failed")

// CommandError describes a failed git invocation.
type CommandError struct {
	Args   []string // git arguments, including the subcommand
	Stderr string   // captured standard error, may be empty
	Err    error    // underlying error from os/exec
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return ErrGit }

// runner executes git with the given arguments in dir and returns its
// standard output. Tests substitute a fake.
type runner interface {
	run(ctx context.Context, dir string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// Client performs git operations against arbitrary working trees.
type Client struct {
	r runner
}

// NewClient returns a Client that shells out to the git binary.
func NewClient() *Client { return &Client{r: execRunner{}} }

// IsRepo reports whether dir is inside a git working tree.
func (c *Client) IsRepo(ctx context.Context, dir string) bool {
	out, err := c.r.run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the branch currently checked out in dir.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := c.r.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StageAll stages every change in dir, including deletions and untracked
// files.
func (c *Client) StageAll(ctx context.Context, dir string) error {
	_, err := c.r.run(ctx, dir, "add", "-A")
	return err
}

// HasStagedChanges reports whether dir has anything to commit.
func (c *Client) HasStagedChanges(ctx context.Context, dir string) (bool, error) {
	out, err := c.r.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit records the staged changes in dir with the given message.
func (c *Client) Commit(ctx context.Context, dir, message string) error {
	_, err := c.r.run(ctx, dir, "commit", "-m", message)
	return err
}

// Push pushes branch to remote from dir.
func (c *Client) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := c.r.run(ctx, dir, "push", remote, branch)
	return err
}
