// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package content

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"rsc.io/markdown"
)

// Issue describes a problem found in a post source.
type Issue struct {
	// File is the path of the post, relative to the content directory.
	File string
	// Message describes the problem.
	Message string
}

func (i Issue) String() string { return i.File + ": " + i.Message }

// Check lints every Markdown post under contentDir: front matter must parse
// and carry a title, and every absolute image or link reference must resolve
// to a file under staticDir. It returns one Issue per problem; an error is
// returned only when the check itself cannot run.
func Check(contentDir, staticDir string) ([]Issue, error) {
	md := &markdown.Parser{
		HeadingID:          true,
		Strikethrough:      true,
		TaskList:           true,
		AutoLinkText:       true,
		AutoLinkAssumeHTTP: true,
		Table:              true,
		Emoji:              true,
		SmartDot:           true,
		SmartDash:          true,
		SmartQuote:         true,
	}

	var issues []Issue
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}

		p, err := ParseFile(path)
		if err != nil {
			issues = append(issues, Issue{File: rel, Message: trimPathPrefix(err.Error(), path)})
			return nil
		}

		doc := md.Parse(string(p.Contents()))
		found, err := checkHTML(markdown.ToHTML(doc), staticDir)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, msg := range found {
			issues = append(issues, Issue{File: rel, Message: msg})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// trimPathPrefix drops the leading "path: " from parse error messages so
// issues don't repeat the file name.
func trimPathPrefix(msg, path string) string {
	return strings.TrimPrefix(msg, path+": ")
}

// checkHTML inspects the rendered post body for broken absolute references
// and images without alternative text.
func checkHTML(html, staticDir string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var msgs []string

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if alt, _ := s.Attr("alt"); alt == "" {
			msgs = append(msgs, fmt.Sprintf("image %q has no alt text", src))
		}
		if msg := checkRef(src, staticDir); msg != "" {
			msgs = append(msgs, msg)
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		// Only references with a file extension can be checked against the
		// static directory; extensionless ones are page URLs owned by the
		// generator.
		u, err := url.Parse(href)
		if err != nil || path.Ext(u.Path) == "" {
			return
		}
		if msg := checkRef(href, staticDir); msg != "" {
			msgs = append(msgs, msg)
		}
	})

	return msgs, nil
}

// checkRef reports a problem with an absolute reference, or "" if the
// reference is external, relative or resolves under staticDir.
func checkRef(ref, staticDir string) string {
	if ref == "" || !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fmt.Sprintf("unparsable reference %q", ref)
	}
	target := filepath.Join(staticDir, filepath.FromSlash(u.Path))
	if _, err := os.Stat(target); err != nil {
		return fmt.Sprintf("reference %q does not exist under %s", ref, staticDir)
	}
	return ""
}
