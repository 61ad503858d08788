package segment

import (
	"strings"
	"testing"
)

func TestExtractBanners_ByClass(t *testing.T) {
	body := `<div class="security-banner">CAUTION: This email originated from outside the organization.</div>` + freshReply
	clean, banners := ExtractBanners(body)
	if len(banners) != 1 {
		t.Fatalf("expected 1 banner, got %d: %v", len(banners), banners)
	}
	if !strings.Contains(banners[0], "originated from outside") {
		t.Fatalf("banner text wrong: %q", banners[0])
	}
	if strings.Contains(clean, "originated from outside") {
		t.Fatalf("banner left in clean: %q", clean)
	}
	if !strings.Contains(clean, "deployment plan") {
		t.Fatalf("body content lost: %q", clean)
	}
}

func TestExtractBanners_ByBackgroundColor(t *testing.T) {
	body := `<table style="background-color:#FFEB9C"><tr><td>You don't often get email from carol@example.com.</td></tr></table>` + freshReply
	clean, banners := ExtractBanners(body)
	if len(banners) != 1 {
		t.Fatalf("expected 1 banner, got %d: %v", len(banners), banners)
	}
	if strings.Contains(clean, "often get email") {
		t.Fatalf("banner left in clean: %q", clean)
	}
}

func TestExtractBanners_ByPhrase(t *testing.T) {
	body := `<div>[EXTERNAL SENDER] please review the attached figures when you can.</div>`
	clean, banners := ExtractBanners(body)
	if len(banners) != 1 {
		t.Fatalf("expected 1 banner, got %d: %v", len(banners), banners)
	}
	if !strings.HasPrefix(banners[0], "[EXTERNAL") {
		t.Fatalf("banner text wrong: %q", banners[0])
	}
	if strings.Contains(clean, "[EXTERNAL") {
		t.Fatalf("phrase left in clean: %q", clean)
	}
	if !strings.Contains(clean, "attached figures") {
		t.Fatalf("body content lost: %q", clean)
	}
}

func TestExtractBanners_ProseMentioningCautionKept(t *testing.T) {
	body := `<div>Please use caution when editing the production configuration values.</div>`
	clean, banners := ExtractBanners(body)
	if len(banners) != 0 {
		t.Fatalf("prose must not be flagged: %v", banners)
	}
	if !strings.Contains(clean, "use caution when editing") {
		t.Fatalf("prose lost: %q", clean)
	}
}

func TestExtractBanners_NestedBannerCollectedOnce(t *testing.T) {
	body := `<div class="caution-banner">outer warning<div class="security-banner">inner warning</div></div>` + freshReply
	_, banners := ExtractBanners(body)
	if len(banners) != 1 {
		t.Fatalf("nested banner containers must collapse to one entry: %v", banners)
	}
}

func TestExtractBanners_Empty(t *testing.T) {
	clean, banners := ExtractBanners("")
	if clean != "" || banners != nil {
		t.Fatalf("empty body must pass through: %q %v", clean, banners)
	}
}
