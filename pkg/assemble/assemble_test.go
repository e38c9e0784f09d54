package assemble

import (
	"strings"
	"testing"

	"github.com/dtnitsch/embedpack/pkg/bundler"
	"github.com/dtnitsch/embedpack/pkg/namespacer"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="./index.css">
</head>
<body>
  <div id="box" class="card"><h1>Hi</h1></div>
  <script type="module">import './app.js';</script>
  <script>console.log('hi');</script>
</body>
</html>`

func testBundle() *bundler.Result {
	return &bundler.Result{
		Script:    []byte(`(()=>{if(1&&2<3){console.log("bundled")}})();`),
		SourceMap: []byte(`{"version":3}`),
	}
}

func TestBuild_LinkedArtifact(t *testing.T) {
	ns := namespacer.New("acme-")

	arts, err := Build(Input{
		PageHTML:      testPage,
		Stylesheet:    "body { color: red; } .card:hover { color: blue; }",
		HasStylesheet: true,
		Bundle:        testBundle(),
	}, ns)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	linked := string(arts.LinkedHTML)

	// Exactly one script element survives: the bundle reference, as the
	// last child of body.
	if got := strings.Count(linked, "<script"); got != 1 {
		t.Errorf("linked artifact has %d script elements, want 1:\n%s", got, linked)
	}
	if !strings.Contains(linked, `<script src="bundle.js"></script></body>`) {
		t.Errorf("bundle reference not immediately before </body>:\n%s", linked)
	}
	if strings.Contains(linked, "console.log('hi')") {
		t.Errorf("original inline script not removed:\n%s", linked)
	}

	// Namespaced markup.
	for _, want := range []string{`id="acme-box"`, `class="acme-card"`, `<h1 class="acme-h1">`} {
		if !strings.Contains(linked, want) {
			t.Errorf("linked artifact missing %q:\n%s", want, linked)
		}
	}

	// Stylesheet link replaced by an inline, transformed style block.
	if strings.Contains(linked, "<link") {
		t.Errorf("stylesheet link not replaced:\n%s", linked)
	}
	if !strings.Contains(linked, ".acme-body { color: red; }") ||
		!strings.Contains(linked, ".acme-card:hover { color: blue; }") {
		t.Errorf("inline style block missing transformed CSS:\n%s", linked)
	}
}

func TestBuild_StandaloneInlinesBundle(t *testing.T) {
	ns := namespacer.New("acme-")

	arts, err := Build(Input{PageHTML: testPage, Bundle: testBundle()}, ns)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	standalone := string(arts.StandaloneHTML)

	if strings.Contains(standalone, `src="bundle.js"`) {
		t.Errorf("standalone artifact still references external bundle:\n%s", standalone)
	}
	// Script content must survive verbatim, with no entity escaping.
	if !strings.Contains(standalone, `(()=>{if(1&&2<3){console.log("bundled")}})();`) {
		t.Errorf("standalone artifact missing or mangled inlined bundle:\n%s", standalone)
	}
	if strings.Contains(standalone, "&amp;") || strings.Contains(standalone, "&lt;") {
		t.Errorf("standalone artifact entity-escaped the bundle:\n%s", standalone)
	}
}

func TestBuild_MissingStylesheetLeavesLinks(t *testing.T) {
	ns := namespacer.New("acme-")

	arts, err := Build(Input{PageHTML: testPage, Bundle: testBundle()}, ns)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(arts.LinkedHTML), "<link") {
		t.Errorf("link tag removed although no stylesheet was supplied:\n%s", arts.LinkedHTML)
	}
}
