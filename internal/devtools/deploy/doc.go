// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Deploy builds the site and publishes both repositories.

It runs the site generator, then stages, commits and pushes the source tree,
then does the same inside the output tree (a separate checkout holding only
the generated site). Both commits use the supplied message.

# Usage

	$ go tool deploy [flags] <message>

An empty message fails before anything runs. A failed build aborts before
version control is touched. A tree with nothing to commit is skipped. A
failed push stops the run and reports which tree is now behind its remote.

Configuration is read from deploy.yml at the repository root, see the config
package. The -minify flag (or "minify: true" in deploy.yml) rewrites the
generated HTML, CSS, JavaScript and JSON in place before the output commit.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
