package segment

import (
	"strings"
	"testing"

	"github.com/maildeck/mailsift/internal/htmltext"
)

const freshReply = "<div>Thanks for the update, the deployment plan looks good to me overall.</div>"

func TestTree_StripsGmailQuote(t *testing.T) {
	body := freshReply + `<div class="gmail_quote">On Tue, 3 Jan 2023, Alice wrote:<br><blockquote>previous message text</blockquote></div>`
	seg := NewTreeSegmenter(Config{})

	clean, quoted := seg.Strip(body)
	if strings.Contains(clean, "previous message text") {
		t.Fatalf("quoted text left in clean: %q", clean)
	}
	if !strings.Contains(clean, "deployment plan") {
		t.Fatalf("fresh content lost: %q", clean)
	}
	if !strings.Contains(quoted, "previous message text") {
		t.Fatalf("quoted content not collected: %q", quoted)
	}
}

func TestTree_StripsBareBlockquote(t *testing.T) {
	body := freshReply + `<blockquote type="cite">the earlier reply we are quoting here</blockquote>`
	clean, quoted := NewTreeSegmenter(Config{}).Strip(body)
	if strings.Contains(clean, "earlier reply") {
		t.Fatalf("blockquote left in clean: %q", clean)
	}
	if !strings.Contains(quoted, "earlier reply") {
		t.Fatalf("blockquote not collected: %q", quoted)
	}
}

func TestTree_NestedContainerCollectedOnce(t *testing.T) {
	body := freshReply + `<div class="gmail_quote">outer quote<blockquote>inner quote</blockquote></div>`
	_, quoted := NewTreeSegmenter(Config{}).Strip(body)
	if strings.Count(quoted, "inner quote") != 1 {
		t.Fatalf("nested container must be collected exactly once: %q", quoted)
	}
}

func TestTree_OutlookDividerAndHeaders(t *testing.T) {
	body := freshReply +
		`<div style="border-top:solid #E1E1E1 1.0pt;padding:3.0pt">` +
		`From: Alice (alice@example.com)<br>Sent: Monday<br>To: Bob<br>Subject: Plans<br></div>` +
		`<div>Older exchanged content kept below the divider line by the client.</div>`
	clean, quoted := NewTreeSegmenter(Config{}).Strip(body)
	if strings.Contains(clean, "From: Alice") {
		t.Fatalf("header block left in clean: %q", clean)
	}
	if !strings.Contains(quoted, "border-top") {
		t.Fatalf("divider block not collected: %q", quoted)
	}
}

func TestTree_ForwardGuardKeepsHeaders(t *testing.T) {
	body := `<div>FYI, see below.</div><div>---------- Forwarded message ----------<br>` +
		`From: Carol (carol@example.com)<br>Subject: Budget<br></div>` +
		`<div>the forwarded budget discussion content itself</div>`
	clean, _ := NewTreeSegmenter(Config{}).Strip(body)
	if !strings.Contains(clean, "From: Carol") {
		t.Fatalf("forwarded headers must be kept: %q", clean)
	}
	if !strings.Contains(clean, "budget discussion content") {
		t.Fatalf("forwarded content must be kept: %q", clean)
	}
}

func TestTree_ValidityFallback(t *testing.T) {
	body := `<div class="gmail_quote">all of the message body lives inside the quote container</div><div>ok</div>`
	clean, quoted := NewTreeSegmenter(Config{}).Strip(body)
	if clean != body {
		t.Fatalf("over-stripping must return the original body, got %q", clean)
	}
	if quoted != "" {
		t.Fatalf("fallback must report no quoted content, got %q", quoted)
	}
}

func TestTree_OnWroteLineRemoved(t *testing.T) {
	body := freshReply + `<div>On Mon, Jan 2, 2023 at 10:00 AM Alice wrote:</div>`
	clean, quoted := NewTreeSegmenter(Config{}).Strip(body)
	if strings.Contains(clean, "wrote:") {
		t.Fatalf("attribution line left in clean: %q", clean)
	}
	if !strings.Contains(quoted, "wrote:") {
		t.Fatalf("attribution line not collected: %q", quoted)
	}
}

func TestTree_OriginalMessageBlock(t *testing.T) {
	body := freshReply + `<div>-----Original Message-----<br>the old text</div>`
	clean, _ := NewTreeSegmenter(Config{}).Strip(body)
	if strings.Contains(clean, "Original Message") {
		t.Fatalf("divider left in clean: %q", clean)
	}
}

func TestPattern_MatchesTreeClassification(t *testing.T) {
	bodies := []string{
		freshReply + `<div class="gmail_quote">On Tue, Alice wrote:<blockquote>previous message text</blockquote></div>`,
		freshReply + `<blockquote>quoted tail content</blockquote>`,
		freshReply + `<div style="border-top:solid #e1e1e1 1.0pt">From: Alice (a)<br></div>`,
	}
	tree := NewTreeSegmenter(Config{})
	pattern := NewPatternSegmenter(Config{})
	for _, body := range bodies {
		treeClean, _ := tree.Strip(body)
		patClean, _ := pattern.Strip(body)
		if htmltext.Normalize(treeClean) != htmltext.Normalize(patClean) {
			t.Errorf("strategies disagree on %q:\n tree: %q\n pattern: %q",
				body, htmltext.Normalize(treeClean), htmltext.Normalize(patClean))
		}
	}
}

func TestQuoteStripper_SizeDispatch(t *testing.T) {
	// 47 bytes of markup around the filler keeps the totals exact.
	const overhead = 47
	build := func(total int) string {
		return "<div>" + strings.Repeat("a", total-overhead) +
			"</div><blockquote>quoted tail</blockquote>"
	}
	qs := NewQuoteStripper(Config{})

	for _, total := range []int{49999, 50001} {
		body := build(total)
		if len(body) != total {
			t.Fatalf("fixture length = %d, want %d", len(body), total)
		}
		clean, quoted := qs.Strip(body)
		if strings.Contains(clean, "quoted tail") {
			t.Errorf("size %d: quoted text left in clean", total)
		}
		if !strings.Contains(quoted, "quoted tail") {
			t.Errorf("size %d: quoted text not collected", total)
		}
	}
}

func TestStrip_NoQuotes(t *testing.T) {
	body := freshReply
	clean, quoted := NewQuoteStripper(Config{}).Strip(body)
	if quoted != "" {
		t.Fatalf("no quoted content expected, got %q", quoted)
	}
	if !strings.Contains(clean, "deployment plan") {
		t.Fatalf("content lost: %q", clean)
	}
}
