// Package assemble produces the final HTML artifacts for one page: the
// namespaced page with its stylesheet inlined, all original script elements
// removed, and the bundled script referenced (linked variant) or inlined
// (standalone variant).
package assemble

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dtnitsch/embedpack/pkg/bundler"
	"github.com/dtnitsch/embedpack/pkg/namespacer"
	"github.com/dtnitsch/embedpack/pkg/storage"
)

// Per-page output filenames.
const (
	BundleFilename     = "bundle.js"
	SourceMapFilename  = "bundle.js.map"
	LinkedFilename     = "index.html"
	StandaloneFilename = "standalone.html"
)

// Input carries everything the assembler needs for one page.
type Input struct {
	PageHTML string
	// Stylesheet is the raw stylesheet text; HasStylesheet distinguishes an
	// absent stylesheet (skipped without error) from an empty one.
	Stylesheet    string
	HasStylesheet bool
	Bundle        *bundler.Result
}

// Artifacts are the fully assembled, in-memory output files for one page.
type Artifacts struct {
	LinkedHTML     []byte
	StandaloneHTML []byte
	Script         []byte
	SourceMap      []byte
}

// Build assembles both HTML variants. The page is parsed once; the
// namespacer transforms the document in place, the stylesheet reference is
// replaced by an inline style block, every script element is removed, and a
// single bundle reference is appended to the body.
func Build(in Input, ns *namespacer.Namespacer) (*Artifacts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in.PageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	ns.Document(doc)

	if in.HasStylesheet {
		css := ns.CSS(in.Stylesheet)
		// Only the conventional stylesheet path is recognized; other link
		// tags are left untouched.
		doc.Find(`link[rel="stylesheet"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if !strings.HasSuffix(href, "index.css") {
				return true
			}
			s.ReplaceWithHtml("<style>\n" + css + "\n</style>")
			return false
		})
	}

	// The scripts' behavior is already captured in the bundle.
	doc.Find("script").Remove()

	body := doc.Find("body").First()
	body.AppendHtml(`<script src="` + BundleFilename + `"></script>`)

	linked, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	// Swap the external reference for the script text itself on the node,
	// not via string replacement on the rendered output. Script content is
	// rendered literally, so a bundle containing a closing script tag would
	// break the inlined variant (known limitation of inline scripts).
	ref := body.ChildrenFiltered("script").Last()
	ref.RemoveAttr("src")
	for _, node := range ref.Nodes {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: string(in.Bundle.Script)})
	}

	standalone, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return &Artifacts{
		LinkedHTML:     []byte(linked),
		StandaloneHTML: []byte(standalone),
		Script:         in.Bundle.Script,
		SourceMap:      in.Bundle.SourceMap,
	}, nil
}

// Write persists all artifacts of one page under outDir, creating the
// directory if absent. Contents were fully computed beforehand, so a build
// failure never leaves a partial artifact set behind.
func Write(outDir string, arts *Artifacts, s *storage.Storage) error {
	if err := s.EnsureDir(outDir); err != nil {
		return err
	}
	files := map[string][]byte{
		BundleFilename:     arts.Script,
		LinkedFilename:     arts.LinkedHTML,
		StandaloneFilename: arts.StandaloneHTML,
	}
	if arts.SourceMap != nil {
		files[SourceMapFilename] = arts.SourceMap
	}
	for name, content := range files {
		if err := s.SaveFile(filepath.Join(outDir, name), content); err != nil {
			return err
		}
	}
	return nil
}
