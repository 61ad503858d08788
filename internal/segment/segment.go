// Package segment decomposes an email body into the author's new content,
// quoted reply/forward history, trailing signature image clusters and
// security banners. Quote stripping runs one of two interchangeable
// strategies picked by input size: a parse-tree walk for ordinary bodies
// and a pattern-only scan for very large ones.
package segment

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/maildeck/mailsift/internal/htmltext"
	"github.com/maildeck/mailsift/internal/patterns"
)

// Config carries the tunable pipeline constants. The defaults mirror the
// observed behavior of the mail clients in the pattern library; they are
// knobs, not invariants.
type Config struct {
	// TreeSizeLimit is the input byte length above which the pattern-only
	// strategy replaces the tree-based one.
	TreeSizeLimit int
	// MinCleanLength is the trimmed plain-text length at or below which a
	// strip result is considered a failure and the original body returned.
	MinCleanLength int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{TreeSizeLimit: 50000, MinCleanLength: 20}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TreeSizeLimit <= 0 {
		c.TreeSizeLimit = d.TreeSizeLimit
	}
	if c.MinCleanLength <= 0 {
		c.MinCleanLength = d.MinCleanLength
	}
	return c
}

// Segmenter splits a body into clean content and quoted history. Both
// strategies classify identically for the fixed pattern set; only
// structural accuracy on malformed markup may differ.
type Segmenter interface {
	Strip(body string) (clean string, quoted string)
}

// QuoteStripper dispatches between the two strategies by input size.
type QuoteStripper struct {
	cfg     Config
	tree    Segmenter
	pattern Segmenter
}

func NewQuoteStripper(cfg Config) *QuoteStripper {
	cfg = cfg.withDefaults()
	return &QuoteStripper{
		cfg:     cfg,
		tree:    newTreeSegmenter(cfg),
		pattern: newPatternSegmenter(cfg),
	}
}

// Strip implements Segmenter.
func (q *QuoteStripper) Strip(body string) (string, string) {
	if len(body) > q.cfg.TreeSizeLimit {
		return q.pattern.Strip(body)
	}
	return q.tree.Strip(body)
}

// joinQuoted flattens the quoted-content accumulator; empty means "no
// quoted content found".
func joinQuoted(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// removeAndCollect appends every match of re to acc and deletes it from s.
func removeAndCollect(s string, re *regexp.Regexp, acc *[]string) string {
	matches := re.FindAllString(s, -1)
	if len(matches) == 0 {
		return s
	}
	*acc = append(*acc, matches...)
	return re.ReplaceAllString(s, "\n")
}

var reNextStructural = regexp.MustCompile(`(?i)<(?:div|p|table|blockquote)\b`)

// stripOriginalMessageBlocks removes "-----Original Message-----" dividers
// together with everything up to the next structural element, collecting
// the span into acc. Shared by both strategies.
func stripOriginalMessageBlocks(s string, acc *[]string) string {
	for {
		loc := patterns.ReOriginalMessage.FindStringIndex(s)
		if loc == nil {
			return s
		}
		end := len(s)
		if next := reNextStructural.FindStringIndex(s[loc[1]:]); next != nil {
			end = loc[1] + next[0]
		}
		*acc = append(*acc, s[loc[0]:end])
		s = s[:loc[0]] + "\n" + s[end:]
	}
}

// tooShort applies the validity check: a stripped body whose readable text
// fits in MinCleanLength characters means the strip ate the message.
func tooShort(clean string, minLen int) bool {
	text := strings.TrimSpace(htmltext.Render(clean))
	return len([]rune(text)) <= minLen
}

func parseFragment(body string) (*goquery.Document, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// bodyHTML serializes what remains of the working tree.
func bodyHTML(doc *goquery.Document) (string, bool) {
	h, err := doc.Find("body").First().Html()
	if err != nil {
		return "", false
	}
	return h, true
}

func hasMarkedAncestor(n *html.Node, marked map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if marked[p] {
			return true
		}
	}
	return false
}
