// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package deploy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/base/testutil"
)

// fakeGit pretends both trees are valid checkouts and records every
// mutation. Per-tree dirt and scripted failures drive the test cases.
type fakeGit struct {
	ops []string // e.g. "stage /blog", "commit /blog 'msg'", "push /blog origin main"

	dirty   map[string]bool  // dir -> has changes after staging
	notRepo map[string]bool  // dir -> IsRepo returns false
	pushErr map[string]error // dir -> push failure
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		dirty:   make(map[string]bool),
		notRepo: make(map[string]bool),
		pushErr: make(map[string]error),
	}
}

func (g *fakeGit) IsRepo(_ context.Context, dir string) bool { return !g.notRepo[dir] }

func (g *fakeGit) StageAll(_ context.Context, dir string) error {
	g.ops = append(g.ops, "stage "+dir)
	return nil
}

func (g *fakeGit) HasStagedChanges(_ context.Context, dir string) (bool, error) {
	return g.dirty[dir], nil
}

func (g *fakeGit) Commit(_ context.Context, dir, message string) error {
	g.ops = append(g.ops, fmt.Sprintf("commit %s %q", dir, message))
	return nil
}

func (g *fakeGit) Push(_ context.Context, dir, remote, branch string) error {
	if err := g.pushErr[dir]; err != nil {
		return err
	}
	g.ops = append(g.ops, fmt.Sprintf("push %s %s %s", dir, remote, branch))
	return nil
}

func testConfig(g *fakeGit, buildErr error, builds *int) *Config {
	return &Config{
		Message:   "new post",
		SourceDir: "/blog",
		OutputDir: "public",
		Remote:    "origin",
		Branch:    "main",
		git:       g,
		runBuild: func(context.Context) error {
			if builds != nil {
				*builds++
			}
			return buildErr
		},
	}
}

func TestRun(t *testing.T) {
	g := newFakeGit()
	g.dirty["/blog"] = true
	g.dirty["/blog/public"] = true

	var (
		builds int
		logbuf strings.Builder
	)
	c := testConfig(g, nil, &builds)
	c.Logf = func(format string, args ...any) {
		fmt.Fprintf(&logbuf, format+"\n", args...)
	}

	if err := Run(t.Context(), c); err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, builds, 1)
	want := []string{
		"stage /blog",
		`commit /blog "new post"`,
		"push /blog origin main",
		"stage /blog/public",
		`commit /blog/public "new post"`,
		"push /blog/public origin main",
	}
	if !reflect.DeepEqual(g.ops, want) {
		t.Fatalf("got ops %v, want %v", g.ops, want)
	}
	if !strings.Contains(logbuf.String(), completionNotice) {
		t.Fatalf("log should contain the completion notice, got:\n%s", logbuf.String())
	}
}

func TestRunEmptyMessage(t *testing.T) {
	for _, message := range []string{"", "   ", "\t\n"} {
		g := newFakeGit()
		var builds int
		c := testConfig(g, nil, &builds)
		c.Message = message
		c.Logf = t.Logf

		if err := Run(t.Context(), c); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("message %q: got %v, want ErrEmptyMessage", message, err)
		}
		// Fails before any build or version-control side effect.
		testutil.AssertEqual(t, builds, 0)
		testutil.AssertEqual(t, len(g.ops), 0)
	}
}

func TestRunBuildFailure(t *testing.T) {
	g := newFakeGit()
	g.dirty["/blog"] = true
	buildErr := errors.New("build failed: exit status 1")

	c := testConfig(g, buildErr, nil)
	c.Logf = t.Logf

	if err := Run(t.Context(), c); !errors.Is(err, buildErr) {
		t.Fatalf("got %v, want the build error", err)
	}
	// No commit happened in either tree.
	testutil.AssertEqual(t, len(g.ops), 0)
}

func TestRunNotARepo(t *testing.T) {
	for _, dir := range []string{"/blog", "/blog/public"} {
		g := newFakeGit()
		g.notRepo[dir] = true
		var builds int
		c := testConfig(g, nil, &builds)
		c.Logf = t.Logf

		err := Run(t.Context(), c)
		if !errors.Is(err, ErrNotRepo) {
			t.Fatalf("got %v, want ErrNotRepo", err)
		}
		if !strings.Contains(err.Error(), dir) {
			t.Fatalf("error %q should name %s", err, dir)
		}
		testutil.AssertEqual(t, builds, 0)
	}
}

func TestRunCleanSourceStillPublishesOutput(t *testing.T) {
	g := newFakeGit()
	g.dirty["/blog/public"] = true // output dirty, source clean

	c := testConfig(g, nil, nil)
	c.Logf = t.Logf

	if err := Run(t.Context(), c); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"stage /blog",
		"stage /blog/public",
		`commit /blog/public "new post"`,
		"push /blog/public origin main",
	}
	if !reflect.DeepEqual(g.ops, want) {
		t.Fatalf("got ops %v, want %v", g.ops, want)
	}
}

func TestRunNothingChanged(t *testing.T) {
	g := newFakeGit() // both trees clean

	c := testConfig(g, nil, nil)
	c.Logf = t.Logf

	if err := Run(t.Context(), c); err != nil {
		t.Fatal(err)
	}

	// Both commit steps are no-ops and so are the pushes.
	want := []string{"stage /blog", "stage /blog/public"}
	if !reflect.DeepEqual(g.ops, want) {
		t.Fatalf("got ops %v, want %v", g.ops, want)
	}
}

func TestRunOutputPushFailureKeepsSourcePush(t *testing.T) {
	g := newFakeGit()
	g.dirty["/blog"] = true
	g.dirty["/blog/public"] = true
	g.pushErr["/blog/public"] = errors.New("remote: authentication failed")

	c := testConfig(g, nil, nil)
	c.Logf = t.Logf

	err := Run(t.Context(), c)
	if err == nil {
		t.Fatal("want an error for the failed output push")
	}
	if !strings.Contains(err.Error(), "output tree") {
		t.Fatalf("error %q should name the output tree", err)
	}

	// The source push already happened and is not rolled back.
	want := []string{
		"stage /blog",
		`commit /blog "new post"`,
		"push /blog origin main",
		"stage /blog/public",
		`commit /blog/public "new post"`,
	}
	if !reflect.DeepEqual(g.ops, want) {
		t.Fatalf("got ops %v, want %v", g.ops, want)
	}
}

func TestRunSourcePushFailureStopsOutput(t *testing.T) {
	g := newFakeGit()
	g.dirty["/blog"] = true
	g.dirty["/blog/public"] = true
	g.pushErr["/blog"] = errors.New("remote: non-fast-forward")

	c := testConfig(g, nil, nil)
	c.Logf = t.Logf

	err := Run(t.Context(), c)
	if err == nil || !strings.Contains(err.Error(), "source tree") {
		t.Fatalf("error %v should name the source tree", err)
	}

	// The output tree was never touched.
	for _, op := range g.ops {
		if strings.Contains(op, "/blog/public") {
			t.Fatalf("output tree was touched after a fatal source push failure: %v", g.ops)
		}
	}
}
