// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.astrophena.name/base/cli"

	"github.com/kcindric/blog/internal/config"
	"github.com/kcindric/blog/internal/content"
	"github.com/kcindric/blog/internal/devtools/internal"
)

func main() { cli.Main(cli.AppFunc(run)) }

func run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) == 0 {
		return fmt.Errorf("%w: want a post title", cli.ErrInvalidArgs)
	}
	title := strings.Join(env.Args, " ")

	root, err := internal.Root()
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	path, err := content.NewPost(filepath.Join(root, cfg.ContentDir), title)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	fmt.Printf("Created %s.\n", rel)
	return nil
}
