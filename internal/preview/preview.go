// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package preview serves a locally built copy of the blog.
//
// It runs the external generator once, then watches the source directories
// and rebuilds on change, serving the output tree over HTTP. It is a
// development aid only: nothing here touches version control.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"

	"github.com/kcindric/blog/internal/builder"
)

// Config represents a preview configuration.
type Config struct {
	// Dir is the root of the blog source tree.
	Dir string
	// OutputDir is where the generator writes the built site. If relative,
	// it is resolved against Dir.
	OutputDir string
	// WatchDirs are the directories to watch for changes, relative to Dir.
	WatchDirs []string
	// BuildCommand is the external generator invocation.
	BuildCommand []string
}

func (c *Config) setDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if len(c.WatchDirs) == 0 {
		c.WatchDirs = []string{"content", "static", "themes"}
	}
	if len(c.BuildCommand) == 0 {
		c.BuildCommand = []string{"hugo"}
	}
}

var serveReadyHook func() // used in tests, called when Serve started serving the site

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{d: d, f: f}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Serve builds the site and starts serving it on a provided host:port.
func Serve(ctx context.Context, c *Config, addr string) error {
	c.setDefaults()

	outputDir := c.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(c.Dir, outputDir)
	}

	build := func() error {
		return builder.Run(ctx, &builder.Config{
			Command: c.BuildCommand,
			Dir:     c.Dir,
			Logf: func(format string, args ...any) {
				logger.Info(ctx, fmt.Sprintf(format, args...))
			},
		})
	}

	logger.Info(ctx, "performing an initial build")
	if err := build(); err != nil {
		logger.Error(ctx, "initial build failed", slog.Any("err", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, dir := range c.WatchDirs {
		if err := watchRecursive(watcher, filepath.Join(c.Dir, dir)); err != nil {
			return err
		}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer l.Close()
	logger.Info(ctx, "listening for HTTP requests", slog.String("addr", "http://"+l.Addr().String()))

	httpSrv := &http.Server{Handler: &siteHandler{fs: os.DirFS(outputDir)}}
	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				errCh <- err
			}
		}
	}()

	rebuild := func() {
		logger.Info(ctx, "triggering build")
		if err := build(); err != nil {
			logger.Error(ctx, "failed to rebuild the site", slog.Any("err", err))
		}
	}
	// It's better to have a bit of delay, so that we don't start building
	// the site on each keystroke.
	debouncer := newDebouncer(250*time.Millisecond, rebuild)

	go func() {
		logger.Info(ctx, "started watching for new changes")

		for {
			select {
			case event := <-watcher.Events:
				if !shouldRebuild(event.Name, event.Op) {
					continue
				}
				logger.Info(ctx, "detected change, scheduling build",
					slog.String("name", event.Name),
					slog.Any("op", event.Op),
				)
				debouncer.Do()
			case <-ctx.Done():
				return
			}
		}
	}()

	if serveReadyHook != nil {
		serveReadyHook()
	}

	select {
	case <-ctx.Done():
		logger.Info(ctx, "gracefully shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}

func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}

// shouldRebuild reports whether a file system event warrants a rebuild.
// Editor temp files and chmod-only events don't.
func shouldRebuild(path string, op fsnotify.Op) bool {
	base := filepath.Base(path)

	// Mac OS' worst mistake.
	if base == ".DS_Store" {
		return false
	}

	// Vim creates this temporary file to see whether it can write into a
	// target directory. It screws up our watching algorithm, so ignore it.
	if base == "4913" {
		return false
	}

	// Ignore creates on files that look like Vim backups.
	if strings.HasSuffix(base, "~") {
		return false
	}

	// A rename will produce a following create event as well, so listening
	// for creates, removes and writes covers everything that matters.
	return op&(fsnotify.Create|fsnotify.Remove|fsnotify.Write) != 0
}

// siteHandler serves a generated site the way its hosting does: a request
// for a directory gets its index.html, and 404.html is served for pages
// that don't exist.
type siteHandler struct {
	fs fs.FS
}

func (h *siteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if p == "" {
		p = "index.html"
	}

	d, err := fs.Stat(h.fs, p)
	if err == nil && d.IsDir() {
		p = path.Join(p, "index.html")
		d, err = fs.Stat(h.fs, p)
	}
	// Clean URLs: /foo is served from foo.html, if it exists.
	if errors.Is(err, fs.ErrNotExist) && path.Ext(p) == "" {
		if _, statErr := fs.Stat(h.fs, p+".html"); statErr == nil {
			p += ".html"
			d, err = fs.Stat(h.fs, p)
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		h.serveNotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	b, err := fs.ReadFile(h.fs, p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, d.Name(), d.ModTime(), bytes.NewReader(b))
}

func (h *siteHandler) serveNotFound(w http.ResponseWriter, r *http.Request) {
	f, err := h.fs.Open("404.html")
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	w.WriteHeader(http.StatusNotFound)
	io.Copy(w, f)
}
