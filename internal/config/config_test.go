// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/base/testutil"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, c.Remote, "origin")
	testutil.AssertEqual(t, c.Branch, "main")
	testutil.AssertEqual(t, c.OutputDir, "public")
	testutil.AssertEqual(t, c.ContentDir, filepath.Join("content", "posts"))
	if !reflect.DeepEqual(c.BuildCommand, []string{"hugo"}) {
		t.Fatalf("got build command %v, want [hugo]", c.BuildCommand)
	}
	if !reflect.DeepEqual(c.WatchDirs, []string{"content", "static", "themes"}) {
		t.Fatalf("got watch dirs %v", c.WatchDirs)
	}
	testutil.AssertEqual(t, c.Minify, false)
}

func TestLoadEmptyFileReturnsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, c.Remote, "origin")
	testutil.AssertEqual(t, c.OutputDir, "public")
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, `
remote: publish
branch: master
output_dir: dist
build_command: [hugo, --minify]
minify: true
`))
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, c.Remote, "publish")
	testutil.AssertEqual(t, c.Branch, "master")
	testutil.AssertEqual(t, c.OutputDir, "dist")
	testutil.AssertEqual(t, c.Minify, true)
	if !reflect.DeepEqual(c.BuildCommand, []string{"hugo", "--minify"}) {
		t.Fatalf("got build command %v", c.BuildCommand)
	}
	// Unset fields still get defaults.
	testutil.AssertEqual(t, c.ContentDir, filepath.Join("content", "posts"))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "remotee: origin\n"))
	if err == nil {
		t.Fatal("want an error for an unknown key")
	}
	if !strings.Contains(err.Error(), Filename) {
		t.Fatalf("error %q should mention %s", err, Filename)
	}
}

func TestLoadRejectsAbsoluteOutputDir(t *testing.T) {
	if _, err := Load(writeConfig(t, "output_dir: /var/www\n")); err == nil {
		t.Fatal("want an error for an absolute output_dir")
	}
}
