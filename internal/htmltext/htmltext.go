// Package htmltext renders HTML fragments to plain text for comparison and
// language detection. The walk tolerates fragments without html/body
// wrappers and never fails on malformed markup.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	reTags         = regexp.MustCompile(`(?s)<[^>]*>`)
	reMultiWS      = regexp.MustCompile(`\s{2,}`)
	reMultiNewline = regexp.MustCompile(`\n{3,}`)
)

// Render strips markup and returns readable text with block elements
// separated by newlines.
func Render(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return stripTagsFallback(fragment)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			txt := strings.TrimSpace(n.Data)
			if txt != "" {
				if b.Len() > 0 {
					last := b.String()[b.Len()-1]
					if last != '\n' && last != ' ' {
						b.WriteByte(' ')
					}
				}
				b.WriteString(txt)
			}
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head":
				return
			}
			block := isBlockElement(n.Data)
			if block && b.Len() > 0 {
				b.WriteString("\n")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if block && b.Len() > 0 {
				b.WriteString("\n")
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	out := b.String()
	out = strings.ReplaceAll(out, "\u00a0", " ")
	out = reMultiNewline.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// Normalize reduces a fragment to one lowercase whitespace-collapsed line,
// the form similarity comparison works on.
func Normalize(fragment string) string {
	s := Render(fragment)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func stripTagsFallback(s string) string {
	out := reTags.ReplaceAllString(s, " ")
	out = reMultiWS.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "p", "div", "br", "li", "ul", "ol", "table", "tr", "td", "th",
		"blockquote", "header", "footer", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6", "hr", "pre":
		return true
	default:
		return false
	}
}
