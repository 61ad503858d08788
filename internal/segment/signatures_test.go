package segment

import (
	"strings"
	"testing"
)

func TestExtractSignatures_GroupsAdjacentCandidates(t *testing.T) {
	body := freshReply + `<img src="cid:logo@corp"><img src="cid:banner@corp">`
	clean, sigs := ExtractSignatures(body)
	if len(sigs) != 1 {
		t.Fatalf("adjacent candidates must form one group, got %d: %v", len(sigs), sigs)
	}
	if !strings.Contains(sigs[0], `class="signature-images"`) {
		t.Fatalf("group not wrapped: %q", sigs[0])
	}
	if !strings.Contains(sigs[0], "cid:logo@corp") || !strings.Contains(sigs[0], "cid:banner@corp") {
		t.Fatalf("group missing images: %q", sigs[0])
	}
	if strings.Contains(clean, "<img") {
		t.Fatalf("images left in clean: %q", clean)
	}
}

func TestExtractSignatures_NonCandidateBreaksRun(t *testing.T) {
	body := freshReply +
		`<img src="cid:sig1@corp">` +
		`<img src="https://cdn.example.com/photo.jpg" width="800" height="600">` +
		`<img src="cid:sig2@corp">`
	clean, sigs := ExtractSignatures(body)
	if len(sigs) != 2 {
		t.Fatalf("a content image must split the run, got %d groups: %v", len(sigs), sigs)
	}
	if !strings.Contains(clean, "photo.jpg") {
		t.Fatalf("content image must stay in clean: %q", clean)
	}
}

func TestExtractSignatures_TextBetweenCandidatesSplitsGroups(t *testing.T) {
	body := `<img src="cid:sig1@corp">` +
		`<p>Please find my thoughts on the proposal attached below.</p>` +
		`<img src="cid:sig2@corp">`
	clean, sigs := ExtractSignatures(body)
	if len(sigs) != 2 {
		t.Fatalf("text between candidates must split the run, got %d groups: %v", len(sigs), sigs)
	}
	if !strings.Contains(sigs[0], "cid:sig1@corp") || !strings.Contains(sigs[1], "cid:sig2@corp") {
		t.Fatalf("groups out of document order: %v", sigs)
	}
	if !strings.Contains(clean, "thoughts on the proposal") {
		t.Fatalf("prose lost from clean: %q", clean)
	}
}

func TestExtractSignatures_BreaksAndWhitespaceKeepOneGroup(t *testing.T) {
	body := freshReply + `<img src="cid:logo@corp"><br>` + "\n  " + `<img src="cid:banner@corp">`
	_, sigs := ExtractSignatures(body)
	if len(sigs) != 1 {
		t.Fatalf("bare separators must not split the run, got %d groups: %v", len(sigs), sigs)
	}
}

func TestExtractSignatures_OutlookInlineNames(t *testing.T) {
	body := freshReply + `<img src="image001.png">`
	_, sigs := ExtractSignatures(body)
	if len(sigs) != 1 {
		t.Fatalf("imageNNN attachment must be a candidate: %v", sigs)
	}
}

func TestExtractSignatures_SmallDeclaredSize(t *testing.T) {
	body := freshReply + `<img src="https://cdn.example.com/pixel.png" width="50px" height="50px">`
	_, sigs := ExtractSignatures(body)
	if len(sigs) != 1 {
		t.Fatalf("small declared-size image must be a candidate: %v", sigs)
	}
}

func TestExtractSignatures_LargePhotoKept(t *testing.T) {
	body := freshReply + `<img src="https://cdn.example.com/vacation.jpg" width="1024" height="768" alt="beach">`
	clean, sigs := ExtractSignatures(body)
	if len(sigs) != 0 {
		t.Fatalf("large photo must not be flagged: %v", sigs)
	}
	if !strings.Contains(clean, "vacation.jpg") {
		t.Fatalf("photo lost from clean: %q", clean)
	}
}

func TestExtractSignatures_NoImages(t *testing.T) {
	clean, sigs := ExtractSignatures(freshReply)
	if clean != freshReply || sigs != nil {
		t.Fatalf("body without images must pass through unchanged")
	}
}
