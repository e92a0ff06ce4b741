// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the blog tooling configuration.
//
// Configuration lives in an optional deploy.yml file at the repository root:
//
//	remote: origin
//	branch: main
//	output_dir: public
//	build_command: [hugo]
//	content_dir: content/posts
//	watch_dirs: [content, static, themes]
//	minify: true
//
// A missing file means defaults. Unknown keys are rejected to catch typos.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Filename is the configuration file Load looks for, relative to the
// repository root.
const Filename = "deploy.yml"

// Config represents the blog tooling configuration.
type Config struct {
	// Remote is the git remote both trees push to.
	Remote string `yaml:"remote"`
	// Branch is the branch both pushes target.
	Branch string `yaml:"branch"`
	// OutputDir is the nested, independently version-controlled directory
	// the generator writes into, relative to the repository root.
	OutputDir string `yaml:"output_dir"`
	// BuildCommand is the external generator invocation.
	BuildCommand []string `yaml:"build_command"`
	// ContentDir is where new posts are scaffolded, relative to the
	// repository root.
	ContentDir string `yaml:"content_dir"`
	// WatchDirs are the directories the preview server watches for changes,
	// relative to the repository root.
	WatchDirs []string `yaml:"watch_dirs"`
	// Minify determines whether the generated output is minified before the
	// output tree is committed.
	Minify bool `yaml:"minify"`
}

func (c *Config) setDefaults() {
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Branch == "" {
		c.Branch = "main"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if len(c.BuildCommand) == 0 {
		c.BuildCommand = []string{"hugo"}
	}
	if c.ContentDir == "" {
		c.ContentDir = filepath.Join("content", "posts")
	}
	if len(c.WatchDirs) == 0 {
		c.WatchDirs = []string{"content", "static", "themes"}
	}
}

func (c *Config) validate() error {
	if filepath.IsAbs(c.OutputDir) {
		return fmt.Errorf("%s: output_dir must be relative to the repository root", Filename)
	}
	for _, d := range c.WatchDirs {
		if d == "" {
			return fmt.Errorf("%s: watch_dirs contains an empty entry", Filename)
		}
	}
	return nil
}

// Load reads the configuration from dir. A missing deploy.yml is not an
// error: defaults are returned.
func Load(dir string) (*Config, error) {
	c := new(Config)

	b, err := os.ReadFile(filepath.Join(dir, Filename))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", Filename, err)
		}
	}

	c.setDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
