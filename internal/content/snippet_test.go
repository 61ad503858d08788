package content

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSnippet_SentenceBoundary(t *testing.T) {
	got := Snippet("<div>Hello world. More text follows here afterwards.</div>")
	if got != "Hello world." {
		t.Fatalf("Snippet = %q, want %q", got, "Hello world.")
	}
}

func TestSnippet_ShortBodyPassesThrough(t *testing.T) {
	got := Snippet("<p>Quick note about tomorrow</p>")
	if got != "Quick note about tomorrow" {
		t.Fatalf("Snippet = %q", got)
	}
}

func TestSnippet_TruncatesWithEllipsis(t *testing.T) {
	got := Snippet("<div>" + strings.Repeat("word ", 30) + "</div>")
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 60 {
		t.Fatalf("snippet too long: %d runes in %q", n, got)
	}
}

func TestSnippet_EmptyBodyFallback(t *testing.T) {
	for _, in := range []string{"", "<div></div>", "<style>.a{}</style>", "___________"} {
		if got := Snippet(in); got != "No preview available" {
			t.Fatalf("Snippet(%q) = %q, want fallback", in, got)
		}
	}
}

func TestSnippet_StripsNoiseBeforeText(t *testing.T) {
	in := `<!--[if mso]><style>.x{}</style><![endif]--><style>.y{color:red}</style>` +
		`<div>[EXTERNAL] Budget numbers look fine to me.</div>`
	got := Snippet(in)
	if strings.Contains(got, "EXTERNAL") || strings.Contains(got, "color") {
		t.Fatalf("noise leaked into snippet: %q", got)
	}
	if !strings.HasPrefix(got, "Budget numbers") {
		t.Fatalf("expected body text, got %q", got)
	}
}

func TestSnippet_RepairsMojibake(t *testing.T) {
	got := Snippet("<div>Itâ€™s ready for review now.</div>")
	if !strings.Contains(got, "It’s") {
		t.Fatalf("mojibake not repaired: %q", got)
	}
}

func TestSnippet_SkipsDecimalPoints(t *testing.T) {
	got := Snippet("<div>Version 2.5 shipped today. Release notes to follow shortly.</div>")
	if got != "Version 2.5 shipped today." {
		t.Fatalf("Snippet = %q", got)
	}
}

func TestSnippet_HeaderLinesRemoved(t *testing.T) {
	got := Snippet("From: Alice\nSubject: Hi\nThe meeting moved to Thursday afternoon.")
	if strings.Contains(got, "Alice") || strings.Contains(got, "Subject") {
		t.Fatalf("header lines leaked: %q", got)
	}
	if !strings.HasPrefix(got, "The meeting moved") {
		t.Fatalf("expected body text, got %q", got)
	}
}
