// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
New-post scaffolds a draft post.

# Usage

	$ go tool new-post <title>

The title can span multiple arguments. The post is created in the content
directory from deploy.yml with YAML front matter filled in: the given title,
the current date, and draft set to true.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
