// Package patterns holds the fixed marker data used by the content
// pipeline: quote container signatures, multilingual header keywords,
// security banner phrases and the signature-image heuristics. Everything
// here is immutable and built once at process start.
package patterns

import (
	"regexp"
	"strings"
)

// QuoteContainerClasses are class names mail clients attach to the element
// wrapping reply/forward history. Matching is exact against each class token;
// the generic "quote" substring check is applied separately by the segmenter.
var QuoteContainerClasses = []string{
	"gmail_quote",
	"gmail_extra",
	"gmail_attr",
	"yahoo_quoted",
	"moz-cite-prefix",
	"OutlookMessageHeader",
}

// OutlookDividerColors are the border-top colors Outlook uses on the
// divider block above quoted history. Compared case-insensitively.
var OutlookDividerColors = []string{"#e1e1e1", "#cccccc"}

// headerKeywords covers From/Sent/To/Subject/Cc/Date in English, Spanish,
// German, French, Italian and Portuguese.
var headerKeywords = []string{
	"from", "de", "von", "da",
	"sent", "enviado", "enviada", "gesendet", "envoyé", "inviato",
	"to", "para", "an", "à", "a",
	"subject", "asunto", "betreff", "objet", "oggetto", "assunto",
	"cc",
	"date", "fecha", "datum", "data",
}

// HeaderKeywordAlternation is the regexp alternation over headerKeywords.
var HeaderKeywordAlternation = strings.Join(headerKeywords, "|")

var (
	// ReHeaderLineHTML matches one header line inside markup: keyword,
	// colon, non-tag content, up to a line break element or newline.
	ReHeaderLineHTML = regexp.MustCompile(`(?i)(?:^|\n|>)\s*(?:\*\*|<b>)?(?:` + HeaderKeywordAlternation + `)(?:\*\*|</b>)?\s*:[^<\n]*(?:<br\s*/?>|\n|$)`)

	// ReHeaderLineText is the plain-text form used on stripped content.
	ReHeaderLineText = regexp.MustCompile(`(?im)^[ \t>]*(?:` + HeaderKeywordAlternation + `)\s*:\s.*$`)

	// ReOnWrote matches the "On <date>, <name> wrote:" reply sentinel and
	// its common localized forms.
	ReOnWrote = regexp.MustCompile(`(?i)(?:On|Le|El|Il|Em)\s[^<>\n]{1,200}?\s(?:wrote|a écrit|escribió|ha scritto|escreveu)\s*:|(?i)Am\s[^<>\n]{1,200}?\sschrieb[^<>\n]{0,80}?:`)

	// ReOriginalMessage matches the "-----Original Message-----" divider and
	// localized variants. The segmenter extends the span to the next
	// structural element.
	ReOriginalMessage = regexp.MustCompile(`(?i)-{2,}\s*(?:Original Message|Mensaje original|Ursprüngliche Nachricht|Message d'origine|Messaggio originale|Mensagem original)\s*-{2,}`)

	// ReForwardedMessage is the forward guard: bodies containing this are
	// treated as intentional context and left intact.
	ReForwardedMessage = regexp.MustCompile(`(?i)forwarded\s+message`)
)

// BannerPhrases are the gateway-inserted caution phrases removed from body
// content and surfaced separately. Bracketed forms are anchored to their
// brackets so quoted prose that merely mentions "caution" is untouched.
var BannerPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[\s*CAUTION:[^\]]*\]`),
	regexp.MustCompile(`(?i)\[\s*EXTERNAL[^\]]*\]`),
	regexp.MustCompile(`(?i)You don't often get email from[^.<\n]*\.?`),
	regexp.MustCompile(`(?i)This message was sent from outside[^.<\n]*\.?`),
}

// BannerBackgroundColors are the warning background colors mail gateways
// put on injected banner containers. Compared case-insensitively.
var BannerBackgroundColors = []string{"#ffeb9c", "#fff2cc", "#ffffcc", "#fce8b2"}

// BannerClassMarkers flag a banner container by class substring.
var BannerClassMarkers = []string{"security-banner", "caution-banner"}

var (
	// ReCIDSource matches content-id image references.
	ReCIDSource = regexp.MustCompile(`(?i)^cid:`)

	// ReInlineImageName matches the auto-generated "imageNNN" names Outlook
	// gives embedded signature images.
	ReInlineImageName = regexp.MustCompile(`(?i)image\d{3}`)

	// ReLogoOrSignature matches logo/signature hints in an image source or
	// alt text.
	ReLogoOrSignature = regexp.MustCompile(`(?i)logo|signature|sig`)
)

// SmallImageArea is the width*height ceiling under which a declared-size
// image counts as a decorative signature candidate.
const SmallImageArea = 10000

// mojibakeTable maps UTF-8-as-Windows-1252 byte sequences back to the
// punctuation they were meant to be. Order matters: longer sequences first.
var mojibakeTable = [][2]string{
	{"\u00e2\u20ac\u2122", "\u2019"}, // right single quote
	{"\u00e2\u20ac\u02dc", "\u2018"}, // left single quote
	{"\u00e2\u20ac\u0153", "\u201c"}, // left double quote
	{"\u00e2\u20ac\u201d", "\u2014"}, // em dash
	{"\u00e2\u20ac\u201c", "\u2013"}, // en dash
	{"\u00e2\u20ac\u00a6", "\u2026"}, // ellipsis
	{"\u00e2\u20ac", "\u201d"},       // right double quote; after the longer prefixed entries
	{"\u00c3\u00a9", "\u00e9"},       // e acute
	{"\u00c3\u00a8", "\u00e8"},       // e grave
	{"\u00c3\u00bc", "\u00fc"},       // u umlaut
	{"\u00c3\u00b6", "\u00f6"},       // o umlaut
	{"\u00c3\u00a4", "\u00e4"},       // a umlaut
	{"\u00c2 ", " "},                 // non-breaking space artifact
	{"\u00c2", ""},                   // stray lead byte
}

// RepairEncoding applies the fixed mojibake substitution table.
func RepairEncoding(s string) string {
	if s == "" {
		return s
	}
	for _, pair := range mojibakeTable {
		s = strings.ReplaceAll(s, pair[0], pair[1])
	}
	return s
}

// ContainsQuoteClass reports whether a class attribute value names a known
// quote container or carries the generic "quote" marker.
func ContainsQuoteClass(classAttr string) bool {
	if classAttr == "" {
		return false
	}
	lower := strings.ToLower(classAttr)
	if strings.Contains(lower, "quote") {
		return true
	}
	for _, c := range QuoteContainerClasses {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// IsBannerClass reports whether a class attribute marks a security banner.
func IsBannerClass(classAttr string) bool {
	lower := strings.ToLower(classAttr)
	for _, m := range BannerClassMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsBannerStyle reports whether an inline style carries one of the warning
// background colors.
func IsBannerStyle(styleAttr string) bool {
	if styleAttr == "" {
		return false
	}
	lower := strings.ToLower(styleAttr)
	if !strings.Contains(lower, "background") {
		return false
	}
	for _, c := range BannerBackgroundColors {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

// IsOutlookDividerStyle reports whether an inline style is the Outlook
// gray top-border divider above quoted history.
func IsOutlookDividerStyle(styleAttr string) bool {
	if styleAttr == "" {
		return false
	}
	lower := strings.ToLower(styleAttr)
	if !strings.Contains(lower, "border-top") {
		return false
	}
	for _, c := range OutlookDividerColors {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}
