package segment

import (
	"regexp"

	"github.com/maildeck/mailsift/internal/htmltext"
	"github.com/maildeck/mailsift/internal/patterns"
)

// patternSegmenter applies the same five steps as the tree strategy as
// sequential find-and-remove operations over the raw string. It exists for
// bodies too large to be worth a parse tree; nesting-sensitive markup may
// classify less precisely, the pattern set is identical.
type patternSegmenter struct {
	cfg Config
}

func newPatternSegmenter(cfg Config) patternSegmenter {
	return patternSegmenter{cfg: cfg.withDefaults()}
}

// NewPatternSegmenter exposes the pattern strategy on its own for tests.
func NewPatternSegmenter(cfg Config) Segmenter {
	return patternSegmenter{cfg: cfg.withDefaults()}
}

var (
	reBlockquoteSpan = regexp.MustCompile(`(?is)<blockquote\b[^>]*>.*?</blockquote>`)

	reOutlookDividerSpan = regexp.MustCompile(`(?is)<div\b[^>]*style=["'][^"']*border-top:[^"']*(?:#e1e1e1|#cccccc)[^"']*["'][^>]*>.*?</div>`)

	// One span regexp per container tag and class signature; RE2 has no
	// backreferences, so the closing tag is spelled out per tag.
	reQuoteContainerSpans = buildQuoteContainerSpans()
)

func buildQuoteContainerSpans() []*regexp.Regexp {
	classes := make([]string, 0, len(patterns.QuoteContainerClasses)+1)
	classes = append(classes, patterns.QuoteContainerClasses...)
	classes = append(classes, "quote")

	tags := []string{"div", "span", "table", "p"}
	out := make([]*regexp.Regexp, 0, len(tags)*len(classes))
	for _, tag := range tags {
		for _, class := range classes {
			out = append(out, regexp.MustCompile(
				`(?is)<`+tag+`\b[^>]*class=["'][^"']*`+regexp.QuoteMeta(class)+`[^"']*["'][^>]*>.*?</`+tag+`>`))
		}
	}
	return out
}

func (p patternSegmenter) Strip(body string) (string, string) {
	clean := body
	var quoted []string

	for _, re := range reQuoteContainerSpans {
		clean = removeAndCollect(clean, re, &quoted)
	}
	clean = removeAndCollect(clean, reBlockquoteSpan, &quoted)
	clean = removeAndCollect(clean, reOutlookDividerSpan, &quoted)

	if patterns.ReForwardedMessage.MatchString(htmltext.Render(clean)) {
		return clean, joinQuoted(quoted)
	}

	clean = removeAndCollect(clean, patterns.ReHeaderLineHTML, &quoted)
	clean = removeAndCollect(clean, patterns.ReOnWrote, &quoted)
	clean = stripOriginalMessageBlocks(clean, &quoted)

	if tooShort(clean, p.cfg.MinCleanLength) {
		return body, ""
	}
	return clean, joinQuoted(quoted)
}
