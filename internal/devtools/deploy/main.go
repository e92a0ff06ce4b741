// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"

	"go.astrophena.name/base/cli"

	"github.com/kcindric/blog/internal/config"
	"github.com/kcindric/blog/internal/deploy"
	"github.com/kcindric/blog/internal/devtools/internal"
)

func main() { cli.Main(new(app)) }

type app struct {
	minify bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.minify, "minify", false, "Minify the generated output before committing it.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) != 1 {
		return fmt.Errorf("%w: want a commit message", cli.ErrInvalidArgs)
	}

	root, err := internal.Root()
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	return deploy.Run(ctx, &deploy.Config{
		Message:      env.Args[0],
		SourceDir:    root,
		OutputDir:    cfg.OutputDir,
		Remote:       cfg.Remote,
		Branch:       cfg.Branch,
		BuildCommand: cfg.BuildCommand,
		Minify:       cfg.Minify || a.minify,
	})
}
