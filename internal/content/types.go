package content

import "time"

// RawMessage is one email as received from the mail-fetching layer. The
// body is an HTML fragment (possibly empty); full-document wrappers are
// tolerated. Immutable once constructed.
type RawMessage struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id,omitempty"`
	Date     time.Time `json:"date"`
	Body     string    `json:"body"`
}

// ProcessedContent is the classified output of the pipeline for one
// message. All HTML fields are sanitized; the pipeline only removes and
// reclassifies, it never invents content.
type ProcessedContent struct {
	// CleanBody holds only the author's new content.
	CleanBody string `json:"clean_body"`
	// QuotedContent holds everything classified as reply/forward history;
	// empty when none was found.
	QuotedContent string `json:"quoted_content,omitempty"`
	// Signatures are grouped signature-image clusters in document order.
	Signatures []string `json:"signatures,omitempty"`
	// SecurityBanners are plain-text gateway banner messages in detection
	// order.
	SecurityBanners []string `json:"security_banners,omitempty"`
	// IsDuplicateContent is set only when a previous body was supplied and
	// the similarity score reached the duplicate threshold.
	IsDuplicateContent bool `json:"is_duplicate_content"`
}
