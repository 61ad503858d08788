// Package ingest turns raw RFC822 messages into the pipeline's RawMessage
// input. It only extracts; composition stays out of scope.
package ingest

import (
	"bytes"
	"context"
	"html"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"

	"github.com/maildeck/mailsift/internal/content"
)

type Extractor interface {
	Extract(ctx context.Context, raw []byte) (*content.RawMessage, error)
}

// EnmimeExtractor reads MIME envelopes with enmime and prefers the HTML
// part; plain-text-only messages are wrapped into a minimal HTML fragment
// so the pipeline sees one input shape.
type EnmimeExtractor struct{}

func NewEnmimeExtractor() *EnmimeExtractor {
	return &EnmimeExtractor{}
}

func (e *EnmimeExtractor) Extract(_ context.Context, raw []byte) (*content.RawMessage, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	msgID := strings.Trim(env.GetHeader("Message-ID"), " <>")
	if msgID == "" {
		msgID = uuid.NewString()
	}

	var date time.Time
	if dv := env.GetHeader("Date"); dv != "" {
		if dt, perr := mail.ParseDate(dv); perr == nil {
			date = dt.UTC()
		}
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	body := env.HTML
	if strings.TrimSpace(body) == "" && strings.TrimSpace(env.Text) != "" {
		body = textToHTML(env.Text)
	}

	return &content.RawMessage{
		ID:       msgID,
		ThreadID: threadIdentity(env, msgID),
		Date:     date,
		Body:     body,
	}, nil
}

// threadIdentity picks the conversation key: the root of the References
// chain, else In-Reply-To, else the message's own id (it starts a thread).
func threadIdentity(env *enmime.Envelope, msgID string) string {
	if refs := strings.Fields(env.GetHeader("References")); len(refs) > 0 {
		return strings.Trim(refs[0], " <>")
	}
	if irt := strings.Trim(env.GetHeader("In-Reply-To"), " <>"); irt != "" {
		return irt
	}
	return msgID
}

func textToHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<div>" + escaped + "</div>"
}
