package segment

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/maildeck/mailsift/internal/patterns"
)

// treeSegmenter parses the body into an owned tree and removes quoted
// subtrees. Removals are collected first and applied in a second pass so
// iteration never walks a mutating tree.
type treeSegmenter struct {
	cfg Config
}

func newTreeSegmenter(cfg Config) treeSegmenter {
	return treeSegmenter{cfg: cfg.withDefaults()}
}

// NewTreeSegmenter exposes the tree strategy on its own, mainly for tests
// that pin both strategies to the same inputs.
func NewTreeSegmenter(cfg Config) Segmenter {
	return newTreeSegmenter(cfg)
}

func (t treeSegmenter) Strip(body string) (string, string) {
	doc, ok := parseFragment(body)
	if !ok {
		return body, ""
	}

	var quoted []string

	// Pass 1: quote containers. A subtree nested inside an already marked
	// container is covered by its ancestor's removal.
	marked := map[*html.Node]bool{}
	var hits []*goquery.Selection
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if hasMarkedAncestor(n, marked) {
			return
		}
		if goquery.NodeName(s) == "blockquote" || patterns.ContainsQuoteClass(s.AttrOr("class", "")) {
			marked[n] = true
			hits = append(hits, s)
		}
	})
	for _, s := range hits {
		if markup, err := goquery.OuterHtml(s); err == nil {
			quoted = append(quoted, markup)
		}
		s.Remove()
	}

	// Pass 2: Outlook divider blocks above quoted history.
	var dividers []*goquery.Selection
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if patterns.IsOutlookDividerStyle(s.AttrOr("style", "")) {
			dividers = append(dividers, s)
		}
	})
	for _, s := range dividers {
		if markup, err := goquery.OuterHtml(s); err == nil {
			quoted = append(quoted, markup)
		}
		s.Remove()
	}

	clean, ok := bodyHTML(doc)
	if !ok {
		return body, ""
	}

	// Forward guard: forwarded content is intentional context, keep it.
	if patterns.ReForwardedMessage.MatchString(doc.Text()) {
		return clean, joinQuoted(quoted)
	}

	clean = removeAndCollect(clean, patterns.ReHeaderLineHTML, &quoted)
	clean = removeAndCollect(clean, patterns.ReOnWrote, &quoted)
	clean = stripOriginalMessageBlocks(clean, &quoted)

	if tooShort(clean, t.cfg.MinCleanLength) {
		return body, ""
	}
	return clean, joinQuoted(quoted)
}
