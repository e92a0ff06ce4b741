// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package builder invokes the external static-site generator.
//
// The generator is an opaque collaborator: it is run with the configured
// command in the source tree and is expected to discover its own
// configuration and content there, writing the generated site into the
// output directory. This package only checks the exit status and surfaces
// the tool's own diagnostics unchanged.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"go.astrophena.name/base/logger"
)

// ErrNoCommand is returned when the build command is empty.
var ErrNoCommand = errors.New("builder: empty build command")

// Config describes how to run the generator.
type Config struct {
	// Command is the generator invocation, e.g. ["hugo"].
	Command []string
	// Dir is the source tree to build in.
	Dir string
	// Logf specifies a logger to use. If nil, log.Printf is used.
	Logf logger.Logf
}

// Run executes the generator and waits for it to finish. On a non-zero exit
// the returned error carries everything the tool printed.
func Run(ctx context.Context, c *Config) error {
	if c.Logf == nil {
		c.Logf = log.Printf
	}
	if len(c.Command) == 0 {
		return ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Dir = c.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	c.Logf("Building the site with %q...", strings.Join(c.Command, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build failed: %w:\n%s", err, out.String())
	}
	return nil
}
