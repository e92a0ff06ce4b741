// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Preview builds the site and serves it locally, rebuilding on change.

# Usage

	$ go tool preview [flags]

It watches the directories listed in deploy.yml (content, static and themes
by default), re-runs the site generator when something changes and serves the
output tree on the address given with -listen.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
