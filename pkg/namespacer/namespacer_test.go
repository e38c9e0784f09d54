package namespacer

import (
	"strings"
	"testing"
)

func TestHTML_PrefixesIdsAndClasses(t *testing.T) {
	n := New("acme-")

	out, err := n.HTML(`<div id="box" class="card"><h1>Hi</h1></div>`)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		`id="acme-box"`,
		`class="acme-card"`,
		`<h1 class="acme-h1">Hi</h1>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML() output missing %q\ngot: %s", want, out)
		}
	}
	if strings.Contains(out, "acme-acme-") {
		t.Errorf("HTML() double-prefixed an identifier: %s", out)
	}
}

func TestHTML_AlreadyPrefixedPassthrough(t *testing.T) {
	n := New("acme-")

	out, err := n.HTML(`<div id="acme-box" class="acme-card plain"></div>`)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	if !strings.Contains(out, `id="acme-box"`) {
		t.Errorf("HTML() changed an already-prefixed id: %s", out)
	}
	// Mixed class lists are handled token-by-token.
	if !strings.Contains(out, `class="acme-card acme-plain"`) {
		t.Errorf("HTML() mixed class list = %s, want acme-card acme-plain", out)
	}
}

func TestHTML_GlobalTagWithOwnClassKeepsList(t *testing.T) {
	n := New("acme-")

	// A global tag whose classes were just prefixed does not additionally
	// receive the tag-derived class.
	out, err := n.HTML(`<div class="card"></div>`)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(out, "acme-div") {
		t.Errorf("HTML() added tag class to element with prefixed classes: %s", out)
	}
}

func TestHTML_Idempotent(t *testing.T) {
	n := New("acme-")
	src := `<div id="box" class="card"><p>x</p><ul><li id="first">a</li></ul></div>`

	once, err := n.HTML(src)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	twice, err := n.HTML(once)
	if err != nil {
		t.Fatalf("HTML() second pass error = %v", err)
	}
	if once != twice {
		t.Errorf("HTML() not idempotent\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestCSS(t *testing.T) {
	n := New("acme-")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tag and class selectors",
			in:   "body { color: red; } .card:hover { color: blue; }",
			want: ".acme-body { color: red; } .acme-card:hover { color: blue; }",
		},
		{
			name: "combinators and pseudo-classes",
			in:   "ul > li:last-child { margin: 0; }",
			want: ".acme-ul > .acme-li:last-child { margin: 0; }",
		},
		{
			name: "adjacent tag selectors",
			in:   "td,th{padding:0}",
			want: ".acme-td,.acme-th{padding:0}",
		},
		{
			name: "pseudo-element",
			in:   "h1::before { content: ''; }",
			want: ".acme-h1::before { content: ''; }",
		},
		{
			name: "already-prefixed class untouched",
			in:   ".acme-card { border: 0; }",
			want: ".acme-card { border: 0; }",
		},
		{
			name: "non-global tag untouched",
			in:   "video { width: 100%; }",
			want: "video { width: 100%; }",
		},
		{
			name: "decimal values untouched",
			in:   ".fade { transition: opacity 0.5s; }",
			want: ".acme-fade { transition: opacity 0.5s; }",
		},
		{
			name: "url token in declaration untouched",
			in:   ".card { background: url(img.png); }",
			want: ".acme-card { background: url(img.png); }",
		},
		{
			name: "quoted declaration value untouched",
			in:   `.note::after { content: "see release.notes"; }`,
			want: `.acme-note::after { content: "see release.notes"; }`,
		},
		{
			name: "font declaration untouched",
			in:   "div { font-family: icons.woff2, sans-serif; }",
			want: ".acme-div { font-family: icons.woff2, sans-serif; }",
		},
		{
			name: "tag selector at end of input",
			in:   "ul > li",
			want: ".acme-ul > .acme-li",
		},
		{
			name: "media query prelude",
			in:   "@media (max-width: 600px) { body { color: red; } }",
			want: "@media (max-width: 600px) { .acme-body { color: red; } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.CSS(tt.in); got != tt.want {
				t.Errorf("CSS(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCSS_Idempotent(t *testing.T) {
	n := New("acme-")
	src := "body { color: red; } div p, .card { margin: 0; } table tr > td:first-child { x: y; }"

	once := n.CSS(src)
	if twice := n.CSS(once); once != twice {
		t.Errorf("CSS() not idempotent\nonce:  %s\ntwice: %s", once, twice)
	}
	if strings.Contains(once, "acme-acme-") {
		t.Errorf("CSS() double-prefixed a selector: %s", once)
	}
}

func TestJS(t *testing.T) {
	n := New("acme-")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "getElementById",
			in:   `const el = document.getElementById('box');`,
			want: `const el = document.getElementById('acme-box');`,
		},
		{
			name: "querySelector id",
			in:   `document.querySelector("#box").focus();`,
			want: `document.querySelector("#acme-box").focus();`,
		},
		{
			name: "querySelectorAll class",
			in:   `document.querySelectorAll('.card');`,
			want: `document.querySelectorAll('.acme-card');`,
		},
		{
			name: "classList add with multiple literals",
			in:   `el.classList.add('active', 'open');`,
			want: `el.classList.add('acme-active', 'acme-open');`,
		},
		{
			name: "classList toggle already prefixed",
			in:   `el.classList.toggle("acme-open");`,
			want: `el.classList.toggle("acme-open");`,
		},
		{
			name: "dynamic selector untouched",
			in:   `document.querySelector('#' + name);`,
			want: `document.querySelector('#' + name);`,
		},
		{
			name: "compound selector untouched",
			in:   `document.querySelector('div.card');`,
			want: `document.querySelector('div.card');`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.JS(tt.in); got != tt.want {
				t.Errorf("JS(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJS_Idempotent(t *testing.T) {
	n := New("acme-")
	src := `document.getElementById('box').classList.add('open'); document.querySelector('.card');`

	once := n.JS(src)
	if twice := n.JS(once); once != twice {
		t.Errorf("JS() not idempotent\nonce:  %s\ntwice: %s", once, twice)
	}
}
