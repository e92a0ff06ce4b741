// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.astrophena.name/base/cli"

	"github.com/kcindric/blog/internal/audit"
	"github.com/kcindric/blog/internal/config"
	"github.com/kcindric/blog/internal/content"
	"github.com/kcindric/blog/internal/devtools/internal"
)

func main() { cli.Main(new(app)) }

type app struct {
	built bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.built, "built", false, "Also audit the built site in the output directory.")
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

	var count int

	issues, err := content.Check(filepath.Join(root, cfg.ContentDir), filepath.Join(root, "static"))
	if err != nil {
		return err
	}
	for _, i := range issues {
		fmt.Fprintln(os.Stderr, i)
		count++
	}

	if a.built {
		found, err := audit.Tree(filepath.Join(root, cfg.OutputDir))
		if err != nil {
			return err
		}
		for _, i := range found {
			fmt.Fprintln(os.Stderr, i)
			count++
		}
	}

	if count > 0 {
		return fmt.Errorf("found %d issue(s)", count)
	}
	return nil
}
