// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package deploy publishes the blog.

A deploy is a strict sequence: build the site with the external generator,
then stage, commit and push the source tree, then do the same inside the
nested output tree, which is an independently version-controlled checkout of
the generated site. The two pushes target separate repositories and are not
atomic; on a push failure the error says which tree is now behind.

Failure handling:

  - An empty commit message fails before any external tool runs.
  - A failed build aborts before version control is touched.
  - "Nothing to commit" in either tree is an expected steady state: the
    commit and its paired push are skipped, and the run goes on.
  - A failed push is fatal and stops the remaining steps.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"go.astrophena.name/base/logger"

	"github.com/kcindric/blog/internal/builder"
	"github.com/kcindric/blog/internal/gitops"
	"github.com/kcindric/blog/internal/optimize"
)

// Possible errors, used in tests.
var (
	// ErrEmptyMessage is returned when the commit message is missing or
	// blank.
	ErrEmptyMessage = errors.New("empty commit message")
	// ErrNotRepo is returned when one of the working trees is not an
	// initialized git checkout.
	ErrNotRepo = errors.New("not a git repository")
)

// completionNotice is printed after a successful deploy.
const completionNotice = "Deployment complete."

// git is the subset of the git client the deploy sequence needs. It is
// satisfied by [gitops.Client] and faked in tests.
type git interface {
	IsRepo(ctx context.Context, dir string) bool
	StageAll(ctx context.Context, dir string) error
	HasStagedChanges(ctx context.Context, dir string) (bool, error)
	Commit(ctx context.Context, dir, message string) error
	Push(ctx context.Context, dir, remote, branch string) error
}

// Config represents a deploy configuration.
type Config struct {
	// Message is the commit message used for both trees. Required.
	Message string
	// SourceDir is the root of the blog source tree.
	SourceDir string
	// OutputDir is the nested output tree. If relative, it is resolved
	// against SourceDir.
	OutputDir string
	// Remote is the git remote both trees push to.
	Remote string
	// Branch is the branch both pushes target.
	Branch string
	// BuildCommand is the external generator invocation.
	BuildCommand []string
	// Minify determines whether the generated output is minified in place
	// before the output tree is committed.
	Minify bool
	// Logf specifies a logger to use. If nil, log.Printf is used.
	Logf logger.Logf

	git      git                             // swapped in tests
	runBuild func(ctx context.Context) error // swapped in tests
}

func (c *Config) setDefaults() {
	if c.Logf == nil {
		c.Logf = log.Printf
	}
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Branch == "" {
		c.Branch = "main"
	}
	if len(c.BuildCommand) == 0 {
		c.BuildCommand = []string{"hugo"}
	}
	if c.git == nil {
		c.git = gitops.NewClient()
	}
	if c.runBuild == nil {
		c.runBuild = func(ctx context.Context) error {
			return builder.Run(ctx, &builder.Config{
				Command: c.BuildCommand,
				Dir:     c.SourceDir,
				Logf:    c.Logf,
			})
		}
	}
}

// Run performs a deploy based on the provided [Config].
func Run(ctx context.Context, c *Config) error {
	c.setDefaults()

	if strings.TrimSpace(c.Message) == "" {
		return ErrEmptyMessage
	}

	outputDir := c.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(c.SourceDir, outputDir)
	}

	// Both trees must be initialized checkouts before anything runs. The
	// output tree in particular is easy to lose on a fresh machine: it is
	// its own clone, not part of the source repository.
	if !c.git.IsRepo(ctx, c.SourceDir) {
		return fmt.Errorf("source tree %s: %w", c.SourceDir, ErrNotRepo)
	}
	if !c.git.IsRepo(ctx, outputDir) {
		return fmt.Errorf("output tree %s: %w (clone the output repository there before deploying)", outputDir, ErrNotRepo)
	}

	if err := c.runBuild(ctx); err != nil {
		return err
	}

	if c.Minify {
		c.Logf("Minifying the generated output...")
		if err := optimize.Tree(outputDir); err != nil {
			return err
		}
	}

	if err := c.publish(ctx, "source", c.SourceDir); err != nil {
		return err
	}
	if err := c.publish(ctx, "output", outputDir); err != nil {
		return err
	}

	c.Logf("%s", completionNotice)
	return nil
}

// publish stages, commits and pushes a single working tree. A tree with
// nothing to commit is skipped, push included.
func (c *Config) publish(ctx context.Context, tree, dir string) error {
	if err := c.git.StageAll(ctx, dir); err != nil {
		return fmt.Errorf("%s tree: %w", tree, err)
	}

	changed, err := c.git.HasStagedChanges(ctx, dir)
	if err != nil {
		return fmt.Errorf("%s tree: %w", tree, err)
	}
	if !changed {
		c.Logf("Nothing to commit in the %s tree, skipping.", tree)
		return nil
	}

	if err := c.git.Commit(ctx, dir, c.Message); err != nil {
		return fmt.Errorf("%s tree: %w", tree, err)
	}
	if err := c.git.Push(ctx, dir, c.Remote, c.Branch); err != nil {
		return fmt.Errorf("%s tree: push to %s %s: %w", tree, c.Remote, c.Branch, err)
	}

	c.Logf("Pushed the %s tree to %s %s.", tree, c.Remote, c.Branch)
	return nil
}
