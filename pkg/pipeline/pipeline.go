// Package pipeline drives one page (or every discovered page) through
// extraction, entry synthesis, bundling and assembly.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/embedpack/pkg/assemble"
	"github.com/dtnitsch/embedpack/pkg/bundler"
	"github.com/dtnitsch/embedpack/pkg/entry"
	"github.com/dtnitsch/embedpack/pkg/extract"
	"github.com/dtnitsch/embedpack/pkg/namespacer"
	"github.com/dtnitsch/embedpack/pkg/storage"
)

const (
	// EntryFilename is the scoped temporary module-graph root written next
	// to the page and removed on every exit path.
	EntryFilename = ".embedpack.entry.mjs"
	// StylesheetFilename is the fixed stylesheet convention, resolved
	// relative to the page's own directory.
	StylesheetFilename = "index.css"
	// PageFilename is the entry file that marks a directory as a page in
	// batch mode.
	PageFilename = "index.html"
)

// Bundler is the external bundling collaborator.
type Bundler interface {
	Bundle(entryPath, outfile string) (*bundler.Result, error)
}

// PageResult reports one page build. Err is set when the page failed; the
// byte sizes are only meaningful on success.
type PageResult struct {
	Page            string
	OutDir          string
	Err             error
	BundleBytes     int64
	LinkedBytes     int64
	StandaloneBytes int64
	Duration        time.Duration
}

type Pipeline struct {
	ns    *namespacer.Namespacer
	b     Bundler
	store *storage.Storage
	log   *slog.Logger
}

// New returns a pipeline bound to one namespace token for its whole
// lifetime.
func New(namespace string, b Bundler, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		ns:    namespacer.New(namespace),
		b:     b,
		store: &storage.Storage{},
		log:   logger,
	}
}

// BuildPage runs the full pipeline for a single page and writes the
// artifact triple to outDir. On bundling failure the temporary entry is
// still removed and no output artifact is produced.
func (p *Pipeline) BuildPage(pagePath, outDir string) (*PageResult, error) {
	start := time.Now()

	pageAbs, err := filepath.Abs(pagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page path: %w", err)
	}
	pageDir := filepath.Dir(pageAbs)

	raw, err := p.store.ReadFile(pageAbs)
	if err != nil {
		return nil, err
	}

	frags, err := extract.Scripts(string(raw), pageDir, p.ns)
	if err != nil {
		return nil, err
	}

	entryPath := filepath.Join(pageDir, EntryFilename)
	if err := p.store.SaveFile(entryPath, []byte(entry.Synthesize(frags, pageDir))); err != nil {
		return nil, err
	}
	// Scoped temporary: released on success and on every failure path.
	defer func() {
		if err := p.store.RemoveFile(entryPath); err != nil {
			p.log.Warn("failed to remove synthetic entry", "path", entryPath, "error", err)
		}
	}()

	bundle, err := p.b.Bundle(entryPath, filepath.Join(outDir, assemble.BundleFilename))
	if err != nil {
		return nil, fmt.Errorf("bundling %s: %w", pagePath, err)
	}

	in := assemble.Input{PageHTML: string(raw), Bundle: bundle}
	cssPath := filepath.Join(pageDir, StylesheetFilename)
	if p.store.HasFile(cssPath) {
		css, err := p.store.ReadFile(cssPath)
		if err != nil {
			return nil, err
		}
		in.Stylesheet = string(css)
		in.HasStylesheet = true
	}

	arts, err := assemble.Build(in, p.ns)
	if err != nil {
		return nil, err
	}
	if err := assemble.Write(outDir, arts, p.store); err != nil {
		return nil, err
	}

	res := &PageResult{
		Page:            pagePath,
		OutDir:          outDir,
		BundleBytes:     int64(len(arts.Script)),
		LinkedBytes:     int64(len(arts.LinkedHTML)),
		StandaloneBytes: int64(len(arts.StandaloneHTML)),
		Duration:        time.Since(start),
	}
	p.log.Info("page built",
		"page", pagePath,
		"bundle_bytes", res.BundleBytes,
		"linked_bytes", res.LinkedBytes,
		"standalone_bytes", res.StandaloneBytes)
	return res, nil
}

// BuildAll processes every subdirectory of pagesDir containing an
// index.html, strictly sequentially. A failure on one page is reported and
// recorded but does not abort the remaining pages.
func (p *Pipeline) BuildAll(pagesDir, outRoot string) ([]*PageResult, error) {
	entries, err := os.ReadDir(pagesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory: %w", err)
	}

	var results []*PageResult
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pagePath := filepath.Join(pagesDir, e.Name(), PageFilename)
		if !p.store.HasFile(pagePath) {
			continue
		}

		res, err := p.BuildPage(pagePath, filepath.Join(outRoot, e.Name()))
		if err != nil {
			p.log.Error("page build failed", "page", pagePath, "error", err)
			res = &PageResult{Page: pagePath, Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}
