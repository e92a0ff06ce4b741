// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"

	"go.astrophena.name/base/cli"

	"github.com/kcindric/blog/internal/config"
	"github.com/kcindric/blog/internal/devtools/internal"
	"github.com/kcindric/blog/internal/preview"
)

func main() { cli.Main(new(app)) }

type app struct {
	listen string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.listen, "listen", "localhost:3000", "Listen on `host:port`.")
}

func (a *app) Run(ctx context.Context) error {
	root, err := internal.Root()
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	return preview.Serve(ctx, &preview.Config{
		Dir:          root,
		OutputDir:    cfg.OutputDir,
		WatchDirs:    cfg.WatchDirs,
		BuildCommand: cfg.BuildCommand,
	}, a.listen)
}
