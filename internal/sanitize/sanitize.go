// Package sanitize cleans HTML through whitelist policies with three trust
// profiles. All policies are built once; sanitization never fails on
// malformed input, the parser repairs structure and unknown tags are dropped.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// Profile names a sanitization policy.
type Profile string

const (
	// ProfileExternal renders incoming email bodies: structural and styling
	// markup survives, executable content never does.
	ProfileExternal Profile = "external"
	// ProfileSignature renders extracted signature fragments; same forbidden
	// set as external with a narrower attribute allow-list.
	ProfileSignature Profile = "signature"
	// ProfileInternal is the defensive baseline for application-generated
	// content such as user-composed replies.
	ProfileInternal Profile = "internal"
)

var (
	externalPolicy  = newExternalPolicy()
	signaturePolicy = newSignaturePolicy()
	internalPolicy  = newInternalPolicy()
)

// structuralElements are the tags permitted for faithful rendering of mail
// client output. Executable elements (script, iframe, form, input, object,
// embed, applet) are absent and therefore stripped.
var structuralElements = []string{
	"a", "abbr", "b", "blockquote", "br", "caption", "center", "code", "col",
	"colgroup", "dd", "div", "dl", "dt", "em", "font", "h1", "h2", "h3", "h4",
	"h5", "h6", "hr", "i", "img", "li", "link", "ol", "p", "pre", "s", "small",
	"span", "strike", "strong", "style", "sub", "sup", "table", "tbody", "td",
	"tfoot", "th", "thead", "tr", "u", "ul",
}

func newExternalPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(structuralElements...)
	p.AllowAttrs("style", "class", "id", "dir", "lang", "title").Globally()
	p.AllowAttrs("align", "valign", "width", "height", "border", "cellpadding",
		"cellspacing", "colspan", "rowspan", "bgcolor").Globally()
	p.AllowAttrs("color", "face", "size").OnElements("font")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("rel", "href", "type", "media").OnElements("link")
	p.AllowAttrs("type").OnElements("style")
	p.AllowURLSchemes("http", "https", "mailto", "cid", "data")
	p.AllowRelativeURLs(true)
	return p
}

func newSignaturePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "b", "br", "div", "em", "font", "i", "img", "p",
		"span", "strong", "u")
	p.AllowAttrs("style", "class").Globally()
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("color", "face", "size").OnElements("font")
	p.AllowURLSchemes("http", "https", "mailto", "cid", "data")
	p.AllowRelativeURLs(true)
	return p
}

func newInternalPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "b", "blockquote", "br", "code", "div", "em", "h1",
		"h2", "h3", "i", "li", "ol", "p", "pre", "span", "strong", "u", "ul")
	p.AllowAttrs("style", "class").Globally()
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	return p
}

// Sanitize cleans html under the named profile. Unknown profiles fall back
// to the internal baseline.
func Sanitize(html string, profile Profile) string {
	switch profile {
	case ProfileExternal:
		return externalPolicy.Sanitize(html)
	case ProfileSignature:
		return signaturePolicy.Sanitize(html)
	default:
		return internalPolicy.Sanitize(html)
	}
}
