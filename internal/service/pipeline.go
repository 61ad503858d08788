package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/maildeck/mailsift/internal/content"
	"github.com/maildeck/mailsift/internal/htmltext"
	"github.com/maildeck/mailsift/internal/ingest"
	"github.com/maildeck/mailsift/internal/lang"
	"github.com/maildeck/mailsift/internal/metrics"
	"github.com/maildeck/mailsift/internal/repository"
)

// Pipeline glues extraction, content processing, language detection and
// persistence behind one ingestion entrypoint. Repo may be nil for the
// stateless endpoints.
type Pipeline struct {
	extractor     ingest.Extractor
	proc          *content.Processor
	detector      lang.Detector
	repo          repository.MessageRepository
	treeSizeLimit int
	log           *logrus.Entry
}

func NewPipeline(
	extractor ingest.Extractor,
	proc *content.Processor,
	detector lang.Detector,
	repo repository.MessageRepository,
	treeSizeLimit int,
	log *logrus.Entry,
) *Pipeline {
	return &Pipeline{
		extractor:     extractor,
		proc:          proc,
		detector:      detector,
		repo:          repo,
		treeSizeLimit: treeSizeLimit,
		log:           log,
	}
}

// ProcessBody runs the content pipeline on one body with its predecessor as
// duplicate-detection context, recording pipeline metrics.
func (p *Pipeline) ProcessBody(body, previousBody string) content.ProcessedContent {
	start := time.Now()
	if p.treeSizeLimit > 0 && len(body) > p.treeSizeLimit {
		metrics.SegmenterFallbacks.Inc()
	}

	out := p.proc.Process(body, previousBody)

	metrics.MessagesProcessed.Inc()
	if out.IsDuplicateContent {
		metrics.DuplicatesDetected.Inc()
	}
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	return out
}

// IngestRaw extracts a raw RFC822 message, processes it against the latest
// stored message of its thread, and persists the result.
func (p *Pipeline) IngestRaw(ctx context.Context, raw []byte) (*repository.MessageEntity, error) {
	msg, err := p.extractor.Extract(ctx, raw)
	if err != nil {
		metrics.MessagesFailed.Inc()
		return nil, err
	}

	previous := p.previousBody(ctx, msg)
	pc := p.ProcessBody(msg.Body, previous)

	var langCode string
	var langConf float64
	if p.detector != nil {
		if code, conf, ok := p.detector.Detect(htmltext.Render(pc.CleanBody)); ok {
			langCode = code
			langConf = conf
		}
	}

	date := msg.Date
	entity := &repository.MessageEntity{
		ID:          uuid.NewString(),
		MessageID:   msg.ID,
		ThreadID:    msg.ThreadID,
		Date:        &date,
		CleanBody:   pc.CleanBody,
		Quoted:      pc.QuotedContent,
		Signatures:  pc.Signatures,
		Banners:     pc.SecurityBanners,
		IsDuplicate: pc.IsDuplicateContent,
		Language:    langCode,
		Confidence:  langConf,
		Snippet:     content.Snippet(pc.CleanBody),
		RawSize:     len(raw),
		CreatedAt:   time.Now().UTC(),
	}

	if p.repo != nil {
		if err := p.repo.Save(ctx, entity); err != nil {
			metrics.MessagesFailed.Inc()
			return nil, err
		}
	}
	return entity, nil
}

// previousBody returns the clean body of the chronologically latest stored
// message of the thread that precedes msg. The clean body is what the
// recipient actually read, so it is the right duplicate-detection context.
func (p *Pipeline) previousBody(ctx context.Context, msg *content.RawMessage) string {
	if p.repo == nil || msg.ThreadID == "" {
		return ""
	}
	existing, err := p.repo.GetByThread(ctx, msg.ThreadID)
	if err != nil {
		p.log.WithError(err).WithField("thread_id", msg.ThreadID).
			Warn("thread lookup failed; processing without duplicate context")
		return ""
	}

	previous := ""
	for _, e := range existing {
		if e.MessageID == msg.ID {
			continue
		}
		if e.Date != nil && e.Date.After(msg.Date) {
			continue
		}
		previous = e.CleanBody
	}
	return previous
}
