// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package audit inspects a built site for broken internal references.
//
// It walks every HTML file in the output tree, extracts link and image
// references and reports the ones that don't resolve inside the tree.
// External URLs, mailto links and fragments are ignored. It also flags
// images without alternative text.
package audit

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Issue describes a problem found in the built site.
type Issue struct {
	// File is the path of the HTML file, relative to the output tree.
	File string
	// Message describes the problem.
	Message string
}

func (i Issue) String() string { return i.File + ": " + i.Message }

// Tree audits the built site under dir.
func Tree(dir string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := goquery.NewDocumentFromReader(f)
		if err != nil {
			return err
		}

		report := func(msg string) {
			issues = append(issues, Issue{File: filepath.ToSlash(rel), Message: msg})
		}

		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if !resolves(dir, rel, href) {
				report(fmt.Sprintf("broken link %q", href))
			}
		})
		doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
			src, _ := s.Attr("src")
			if alt, _ := s.Attr("alt"); alt == "" {
				report(fmt.Sprintf("image %q has no alt text", src))
			}
			if !resolves(dir, rel, src) {
				report(fmt.Sprintf("broken image %q", src))
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// resolves reports whether ref, found in the file rel inside the output
// tree dir, points at something that exists in the tree. References we
// can't or shouldn't check resolve trivially.
func resolves(dir, rel, ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	// External and non-navigable references are out of our jurisdiction.
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return true
	}

	var target string
	if strings.HasPrefix(u.Path, "/") {
		target = filepath.Join(dir, filepath.FromSlash(u.Path))
	} else {
		target = filepath.Join(dir, filepath.Dir(rel), filepath.FromSlash(u.Path))
	}

	fi, err := os.Stat(target)
	if err == nil && !fi.IsDir() {
		return true
	}
	// Pretty URLs: /about/ (or /about) is served from /about/index.html.
	if err == nil && fi.IsDir() {
		_, err = os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	// Clean URLs: /about is served from /about.html on some setups.
	if path.Ext(u.Path) == "" {
		_, err = os.Stat(target + ".html")
		return err == nil
	}
	return false
}
