// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package content handles the Markdown sources of the blog.
//
// Each post lives in the content directory and starts with YAML front
// matter:
//
//	---
//	title: Hello, world!
//	date: 2026-08-26
//	draft: true
//	---
//
// The site generator owns rendering; this package only parses posts for
// scaffolding and linting purposes.
package content

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Possible errors, used in tests.
var (
	errFrontmatterMissing      = errors.New("missing front matter")
	errFrontmatterUnterminated = errors.New("unterminated front matter")
	errFrontmatterParse        = errors.New("failed to parse front matter")
	errFrontmatterMissingParam = errors.New("missing required front matter parameter (title)")
)

// Post represents a blog post. The exported fields are the front matter
// fields.
type Post struct {
	Title   string    `yaml:"title"`             // title: Post title, required.
	Date    time.Time `yaml:"date,omitempty"`    // date: Publication date, optional.
	Draft   bool      `yaml:"draft,omitempty"`   // draft: Excluded from production builds by the generator, false by default.
	Summary string    `yaml:"summary,omitempty"` // summary: Short description, optional.
	Tags    []string  `yaml:"tags,omitempty"`    // tags: Taxonomy terms, optional.

	path     string // path to the post source
	contents []byte // post contents without front matter
}

// Contents returns the post body without front matter.
func (p *Post) Contents() []byte { return p.contents }

// Path returns the path of the post source.
func (p *Post) Path() string { return p.path }

const frontmatterDelim = "---"

func (p *Post) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var (
		frontmatter, contents []byte
		inFrontmatter         bool
		reachedContents       bool
		first                 = true
	)
	for scanner.Scan() {
		line := scanner.Text()

		if first {
			first = false
			if strings.TrimRight(line, " \t") != frontmatterDelim {
				return fmt.Errorf("%s: %w", p.path, errFrontmatterMissing)
			}
			inFrontmatter = true
			continue
		}

		if inFrontmatter {
			if strings.TrimRight(line, " \t") == frontmatterDelim {
				inFrontmatter = false
				reachedContents = true
				continue
			}
			frontmatter = append(frontmatter, line+"\n"...)
			continue
		}

		contents = append(contents, line+"\n"...)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", p.path, err)
	}
	if first {
		return fmt.Errorf("%s: %w", p.path, errFrontmatterMissing)
	}
	if !reachedContents {
		return fmt.Errorf("%s: %w", p.path, errFrontmatterUnterminated)
	}
	p.contents = contents

	if err := yaml.Unmarshal(frontmatter, p); err != nil {
		return fmt.Errorf("%s: %w: %v", p.path, errFrontmatterParse, err)
	}
	if p.Title == "" {
		return fmt.Errorf("%s: %w", p.path, errFrontmatterMissingParam)
	}

	return nil
}

// ParseFile reads and parses a single post.
func ParseFile(path string) (*Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Post{path: path}
	if err := p.parse(f); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPost scaffolds a draft post for title under contentDir and returns the
// path of the created file. It refuses to overwrite an existing post.
func NewPost(contentDir, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", errors.New("empty post title")
	}

	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from title %q", title)
	}
	path := filepath.Join(contentDir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	frontmatter, err := yaml.Marshal(&Post{
		Title: title,
		Date:  time.Now(),
		Draft: true,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(frontmatterDelim + "\n")
	sb.Write(frontmatter)
	sb.WriteString(frontmatterDelim + "\n\n")

	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Slugify turns a post title into a file name: lowercase, with runs of
// non-alphanumeric characters collapsed into single hyphens.
func Slugify(title string) string {
	var (
		sb         strings.Builder
		lastHyphen bool
	)
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
