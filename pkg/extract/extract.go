// Package extract pulls script fragments out of a raw HTML page. The source
// text is never mutated; the output assembler transforms the page separately.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/embedpack/pkg/namespacer"
)

// Fragments holds the script content of one page, each slice in document
// order. Inline bodies have already been passed through the JS transform.
type Fragments struct {
	// ExternalModules are absolute paths to module scripts referenced by src.
	ExternalModules []string
	// InlineModules are the bodies of <script type="module"> elements
	// without a src attribute.
	InlineModules []string
	// ClassicScripts are the non-empty bodies of plain <script> elements
	// without a src attribute.
	ClassicScripts []string
}

// Empty reports whether the page contained no bundleable script content.
func (f *Fragments) Empty() bool {
	return len(f.ExternalModules) == 0 && len(f.InlineModules) == 0 && len(f.ClassicScripts) == 0
}

// Scripts scans raw HTML and classifies every script element. Elements with
// a src attribute are never treated as inline; remote srcs (http, https or
// protocol-relative) cannot be bundled and are skipped.
func Scripts(src, pageDir string, ns *namespacer.Namespacer) (*Fragments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	frags := &Fragments{}
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		isModule := typ == "module"
		if ref, ok := s.Attr("src"); ok {
			if !isModule || isRemote(ref) {
				return
			}
			if !filepath.IsAbs(ref) {
				ref = filepath.Join(pageDir, ref)
			}
			frags.ExternalModules = append(frags.ExternalModules, ref)
			return
		}

		body := s.Text()
		if isModule {
			frags.InlineModules = append(frags.InlineModules, ns.JS(body))
			return
		}
		if strings.TrimSpace(body) == "" {
			return
		}
		frags.ClassicScripts = append(frags.ClassicScripts, ns.JS(body))
	})

	return frags, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//")
}
