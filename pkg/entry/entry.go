// Package entry builds the synthetic module-graph root handed to the
// bundler. The entry combines all extracted fragments of one page: external
// modules are re-exported wholesale, inline modules are concatenated in
// order, and classic scripts run last inside one isolating closure.
package entry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dtnitsch/embedpack/pkg/extract"
)

// Relative import specifiers in static imports, re-exports and dynamic
// import() calls. Bare and non-relative specifiers never match.
var relImportRe = regexp.MustCompile(`((?:\bfrom|\bimport)\s*\(?\s*)(['"])(\.\.?/[^'"]+)(['"])`)

// Synthesize produces the synthetic entry text for one page. The entry file
// itself may live anywhere: every relative import is rewritten to an
// absolute path resolved against pageDir, so the bundler can locate modules
// outside the entry's own location.
func Synthesize(frags *extract.Fragments, pageDir string) string {
	var b strings.Builder

	for _, path := range frags.ExternalModules {
		fmt.Fprintf(&b, "export * from %q;\n", path)
	}

	for _, mod := range frags.InlineModules {
		b.WriteString(RewriteRelativeImports(mod, pageDir))
		b.WriteString("\n")
	}

	// Classic scripts execute after all module top-level code, matching
	// their original document-order semantics relative to deferred module
	// evaluation. The closure keeps their var declarations out of the
	// module scope.
	if len(frags.ClassicScripts) > 0 {
		b.WriteString("(function () {\n")
		for _, script := range frags.ClassicScripts {
			b.WriteString(script)
			b.WriteString("\n")
		}
		b.WriteString("})();\n")
	}

	return b.String()
}

// RewriteRelativeImports resolves every relative import specifier in src
// against baseDir. Non-relative specifiers are left untouched.
func RewriteRelativeImports(src, baseDir string) string {
	return relImportRe.ReplaceAllStringFunc(src, func(m string) string {
		sub := relImportRe.FindStringSubmatch(m)
		return sub[1] + sub[2] + filepath.Join(baseDir, sub[3]) + sub[4]
	})
}
