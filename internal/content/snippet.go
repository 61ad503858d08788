package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/maildeck/mailsift/internal/patterns"
)

// snippetMaxLength is the list-row preview budget; truncation keeps 57
// characters plus an ellipsis when no sentence boundary fits.
const (
	snippetMaxLength = 60
	snippetCutLength = 57
	snippetFallback  = "No preview available"
)

var (
	reStyleBlock  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	reCondComment = regexp.MustCompile(`(?s)<!--\[if.*?<!\[endif\]-->`)
	reHTMLComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	reAnyTag      = regexp.MustCompile(`(?s)<[^>]*>`)
	reAside       = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}|\([^)]*\)`)
	reDividerLine = regexp.MustCompile(`(?m)^[\s>]*[_=-]{5,}\s*$`)
	reUnderscores = regexp.MustCompile(`_{5,}`)
	reDisallowed  = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:'"@&%$#+/\-` + "‘’“”–—…" + `]`)
)

// Snippet produces a one-line plain-text preview of at most 60 characters,
// never empty.
func Snippet(body string) string {
	s := body
	s = reCondComment.ReplaceAllString(s, " ")
	s = reHTMLComment.ReplaceAllString(s, " ")
	s = reStyleBlock.ReplaceAllString(s, " ")
	s = reAnyTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = patterns.RepairEncoding(s)

	s = patterns.ReOriginalMessage.ReplaceAllString(s, " ")
	s = patterns.ReHeaderLineText.ReplaceAllString(s, " ")
	s = reDividerLine.ReplaceAllString(s, " ")
	s = reUnderscores.ReplaceAllString(s, " ")
	s = reAside.ReplaceAllString(s, " ")
	s = reDisallowed.ReplaceAllString(s, " ")

	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return snippetFallback
	}

	runes := []rune(s)
	if end := sentenceEnd(runes); end > 0 {
		return string(runes[:end])
	}
	if len(runes) <= snippetMaxLength {
		return s
	}
	return strings.TrimSpace(string(runes[:snippetCutLength])) + "..."
}

// sentenceEnd returns the index just past the first sentence terminator
// that fits the snippet budget, or 0 when none does.
func sentenceEnd(runes []rune) int {
	limit := len(runes)
	if limit > snippetMaxLength {
		limit = snippetMaxLength
	}
	for i := 1; i < limit; i++ {
		switch runes[i] {
		case '.', '!', '?':
			// Don't cut inside an abbreviation or a decimal.
			if i+1 < len(runes) && runes[i+1] != ' ' {
				continue
			}
			return i + 1
		}
	}
	return 0
}
