// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Check lints the blog content.

# Usage

	$ go tool check [flags]

It validates the front matter of every post and verifies that absolute image
and file references point at something under the static directory. With
-built it also audits the generated site in the output directory for broken
internal links and images without alt text.

Check exits non-zero if any issue is found, so it can run before a deploy.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
