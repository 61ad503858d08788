package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/maildeck/mailsift/internal/content"
	"github.com/maildeck/mailsift/internal/ingest"
	"github.com/maildeck/mailsift/internal/repository"
)

type memRepo struct {
	byID map[string]*repository.MessageEntity
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]*repository.MessageEntity{}} }

func (m *memRepo) Save(ctx context.Context, msg *repository.MessageEntity) error {
	m.byID[msg.ID] = msg
	return nil
}
func (m *memRepo) GetByID(ctx context.Context, id string) (*repository.MessageEntity, error) {
	if v, ok := m.byID[id]; ok {
		return v, nil
	}
	return nil, repository.ErrMessageNotFound
}
func (m *memRepo) GetAll(ctx context.Context, limit, offset int) ([]*repository.MessageEntity, error) {
	out := make([]*repository.MessageEntity, 0, len(m.byID))
	for _, v := range m.byID {
		out = append(out, v)
	}
	return out, nil
}
func (m *memRepo) GetByThread(ctx context.Context, threadID string) ([]*repository.MessageEntity, error) {
	var out []*repository.MessageEntity
	for _, v := range m.byID {
		if v.ThreadID == threadID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestPipeline(repo repository.MessageRepository) *Pipeline {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	entry := logrus.NewEntry(log)
	proc := content.NewProcessor(content.Config{}, entry)
	return NewPipeline(ingest.NewEnmimeExtractor(), proc, nil, repo, 50000, entry)
}

func rawEML(msgID, refs, body string) string {
	s := "From: a@example.com\r\nMessage-ID: <" + msgID + ">\r\n"
	if refs != "" {
		s += "References: <" + refs + ">\r\n"
	}
	s += "Date: Wed, 30 Oct 2025 18:00:00 +0000\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" + body
	return s
}

func TestIngestRaw_SavesProcessedEntity(t *testing.T) {
	repo := newMemRepo()
	p := newTestPipeline(repo)

	body := `<div>The migration finished cleanly and all checks are green now.</div>` +
		`<blockquote>previous discussion about the migration window</blockquote>`
	ent, err := p.IngestRaw(context.Background(), []byte(rawEML("m1@x", "root@x", body)))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if ent.MessageID != "m1@x" || ent.ThreadID != "root@x" {
		t.Fatalf("identity wrong: %+v", ent)
	}
	if strings.Contains(ent.CleanBody, "previous discussion") {
		t.Fatalf("quoted text left in clean body: %q", ent.CleanBody)
	}
	if !strings.Contains(ent.Quoted, "previous discussion") {
		t.Fatalf("quoted content not stored: %q", ent.Quoted)
	}
	if ent.Snippet == "" || ent.Snippet == "No preview available" {
		t.Fatalf("snippet not generated: %q", ent.Snippet)
	}
	if _, ok := repo.byID[ent.ID]; !ok {
		t.Fatalf("entity not persisted")
	}
}

func TestIngestRaw_DuplicateAgainstStoredThread(t *testing.T) {
	repo := newMemRepo()
	p := newTestPipeline(repo)

	body := "<div>" + strings.Repeat("same weekly summary text sent twice in a row ", 3) + "</div>"
	first, err := p.IngestRaw(context.Background(), []byte(rawEML("m1@x", "root@x", body)))
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.IsDuplicate {
		t.Fatalf("first message of a thread cannot be duplicate")
	}

	second, err := p.IngestRaw(context.Background(), []byte(rawEML("m2@x", "root@x", body)))
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if !second.IsDuplicate {
		t.Fatalf("second identical message must be flagged duplicate")
	}
}

func TestIngestRaw_BadInput(t *testing.T) {
	p := newTestPipeline(newMemRepo())
	ent, err := p.IngestRaw(context.Background(), []byte("not an email at all"))
	// enmime tolerates header-less input; either outcome is acceptable as
	// long as nothing panics and a failed parse reports the error.
	if err == nil && ent == nil {
		t.Fatalf("nil entity without error")
	}
}

func TestProcessBody_Stateless(t *testing.T) {
	p := newTestPipeline(nil)
	out := p.ProcessBody("<div>A standalone body processed without any persistence.</div>", "")
	if !strings.Contains(out.CleanBody, "standalone body") {
		t.Fatalf("content lost: %q", out.CleanBody)
	}
}
