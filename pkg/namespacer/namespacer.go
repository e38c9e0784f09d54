// Package namespacer rewrites HTML id/class attributes, CSS selectors and
// JS DOM-lookup string literals under a caller-supplied namespace token so
// embedded markup cannot collide with a host page's own styles and scripts.
//
// All transforms are idempotent: an identifier that already starts with the
// namespace token is never prefixed again. The HTML transform operates on a
// parsed document; the CSS and JS transforms are pattern based, so text that
// does not match the expected shapes is left unchanged rather than treated
// as an error.
package namespacer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GlobalTags is the fixed set of block, structural, typography, table and
// form tag names subject to tag-to-class conversion. Bare tag selectors in
// the stylesheet become namespaced class selectors, so every occurrence of
// one of these tags in the markup must carry the matching class for styling
// to still apply.
var GlobalTags = []string{
	"body", "div", "span", "p", "a", "img",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"table", "thead", "tbody", "tfoot", "tr", "td", "th",
	"form", "input", "button", "label", "select", "textarea",
	"section", "article", "header", "footer", "nav", "main", "aside",
	"figure", "figcaption", "blockquote", "pre", "code",
}

var (
	// .class tokens: an optional leading dash, then a letter or underscore,
	// which keeps decimals like 0.5em out of reach.
	classSelectorRe = regexp.MustCompile(`\.(-?[A-Za-z_][\w-]*)`)

	getByIDRe = regexp.MustCompile(`(getElementById\(\s*)(['"` + "`" + `])([\w-]+)(['"` + "`" + `])`)
	queryRe   = regexp.MustCompile(`(querySelector(?:All)?\(\s*)(['"` + "`" + `])([#.])([\w-]+)(['"` + "`" + `])`)
	// class-list mutations may take several literal arguments at once.
	classListRe = regexp.MustCompile(`(classList\.(?:add|remove|toggle|contains)\()([^)]*)(\))`)
	strTokenRe  = regexp.MustCompile(`(['"` + "`" + `])([\w-]+)(['"` + "`" + `])`)
)

// Namespacer applies one namespace token to HTML, CSS and JS text. The token
// is fixed for the lifetime of the value; there is no ambient state.
type Namespacer struct {
	ns string
	// one selector pattern per global tag, compiled once
	tagRes map[string]*regexp.Regexp
}

// New returns a Namespacer for the given namespace token. The token is used
// verbatim; callers conventionally end it with a separator such as "-".
func New(ns string) *Namespacer {
	n := &Namespacer{
		ns:     ns,
		tagRes: make(map[string]*regexp.Regexp, len(GlobalTags)),
	}
	for _, tag := range GlobalTags {
		// A bare tag selector: bounded on the left by start-of-text or a
		// selector boundary, optionally followed by pseudo-classes or
		// pseudo-elements, then a combinator, comma, whitespace or
		// end-of-text. The patterns only ever see selector preludes, never
		// declaration blocks.
		n.tagRes[tag] = regexp.MustCompile(
			`(^|[\s,+>~])` + tag + `((?::{1,2}[\w-]+(?:\([^()]*\))?)*)([\s,+>~]|$)`)
	}
	return n
}

// Token returns the namespace token.
func (n *Namespacer) Token() string { return n.ns }

// Prefix returns ident with the namespace token prepended, unless it already
// starts with the token.
func (n *Namespacer) Prefix(ident string) string {
	if strings.HasPrefix(ident, n.ns) {
		return ident
	}
	return n.ns + ident
}

// HTML parses src, applies the HTML transform and re-serializes the
// document. Fragments are completed to full documents by the parser, so
// callers transforming whole pages should prefer Document to avoid a second
// parse.
func (n *Namespacer) HTML(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	n.Document(doc)
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return out, nil
}

// Document applies the HTML transform to an already-parsed document in
// place: id attributes are prefixed, each class token is prefixed
// independently, and global tags without a namespaced class receive one
// synthesized from their tag name.
func (n *Namespacer) Document(doc *goquery.Document) {
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		s.SetAttr("id", n.Prefix(id))
	})

	// Token-by-token, no attribute-level short-circuit: a class list may mix
	// prefixed and unprefixed tokens and each is handled on its own.
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		raw, _ := s.Attr("class")
		tokens := strings.Fields(raw)
		for i, tok := range tokens {
			tokens[i] = n.Prefix(tok)
		}
		s.SetAttr("class", strings.Join(tokens, " "))
	})

	// Runs after class prefixing: an element whose classes now carry the
	// namespace keeps its list as-is, one with no namespaced class gets the
	// tag-derived class prepended so rewritten tag selectors still match.
	doc.Find(strings.Join(GlobalTags, ",")).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		raw, ok := s.Attr("class")
		if !ok {
			s.SetAttr("class", n.ns+tag)
			return
		}
		for _, tok := range strings.Fields(raw) {
			if strings.HasPrefix(tok, n.ns) {
				return
			}
		}
		s.SetAttr("class", strings.TrimSpace(n.ns+tag+" "+raw))
	})
}

// CSS rewrites bare global-tag selectors into namespaced class selectors and
// prefixes every remaining class selector. Only selector-position text is
// transformed: the stylesheet is walked brace by brace and the rewrite is
// applied to each segment preceding a "{" (which covers nested at-rule
// preludes too), so declaration values such as url(img.png) or quoted
// strings pass through untouched.
func (n *Namespacer) CSS(src string) string {
	var b strings.Builder
	rest := src
	for {
		i := strings.IndexAny(rest, "{}")
		if i < 0 {
			// Trailing text without a declaration block is selector position.
			b.WriteString(n.prefixSelectors(rest))
			return b.String()
		}
		if rest[i] == '{' {
			b.WriteString(n.prefixSelectors(rest[:i]))
		} else {
			b.WriteString(rest[:i])
		}
		b.WriteByte(rest[i])
		rest = rest[i+1:]
	}
}

// prefixSelectors transforms one selector prelude. Tag conversion runs
// first so the class tokens it introduces already satisfy the prefix check.
func (n *Namespacer) prefixSelectors(seg string) string {
	out := seg
	for _, tag := range GlobalTags {
		re := n.tagRes[tag]
		// Adjacent selectors share boundary characters ("td,th"), which a
		// single ReplaceAll pass cannot both consume; iterate to a fixpoint.
		for {
			next := re.ReplaceAllString(out, "${1}."+n.ns+tag+"${2}${3}")
			if next == out {
				break
			}
			out = next
		}
	}
	return classSelectorRe.ReplaceAllStringFunc(out, func(m string) string {
		return "." + n.Prefix(m[1:])
	})
}

// JS rewrites string-literal arguments of element-lookup and class-list
// calls: getElementById, querySelector/querySelectorAll with a single #id or
// .class literal, and classList add/remove/toggle/contains. Dynamically
// constructed selectors are intentionally left alone.
func (n *Namespacer) JS(src string) string {
	out := getByIDRe.ReplaceAllStringFunc(src, func(m string) string {
		sub := getByIDRe.FindStringSubmatch(m)
		return sub[1] + sub[2] + n.Prefix(sub[3]) + sub[4]
	})
	out = queryRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := queryRe.FindStringSubmatch(m)
		return sub[1] + sub[2] + sub[3] + n.Prefix(sub[4]) + sub[5]
	})
	return classListRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := classListRe.FindStringSubmatch(m)
		args := strTokenRe.ReplaceAllStringFunc(sub[2], func(tok string) string {
			ts := strTokenRe.FindStringSubmatch(tok)
			return ts[1] + n.Prefix(ts[2]) + ts[3]
		})
		return sub[1] + args + sub[3]
	})
}
