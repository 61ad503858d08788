package content

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maildeck/mailsift/internal/sanitize"
	"github.com/maildeck/mailsift/internal/segment"
	"github.com/maildeck/mailsift/internal/similarity"
)

// Config bundles the pipeline knobs surfaced through service config.
type Config struct {
	Segmenter           segment.Config
	SimilarityThreshold float64
	SimilarityMinLength int
}

// Processor runs the fixed pipeline banners → quotes → signatures →
// similarity over one body. It holds no mutable state; a single Processor
// is safe for concurrent use.
type Processor struct {
	stripper *segment.QuoteStripper
	detector *similarity.Detector
	log      *logrus.Entry
}

func NewProcessor(cfg Config, log *logrus.Entry) *Processor {
	return &Processor{
		stripper: segment.NewQuoteStripper(cfg.Segmenter),
		detector: similarity.NewDetector(cfg.SimilarityThreshold, cfg.SimilarityMinLength),
		log:      log,
	}
}

// Process classifies one body. previousBody is the chronologically
// preceding message in the same thread, or empty when there is none; it is
// only consulted for duplicate detection. Never returns an error: each
// stage degrades to passing its input through, logged as a warning.
func (p *Processor) Process(body, previousBody string) ProcessedContent {
	if strings.TrimSpace(body) == "" {
		return ProcessedContent{}
	}

	working := body
	var banners []string
	p.stage("banners", func() {
		clean, found := segment.ExtractBanners(working)
		working, banners = clean, found
	})

	var quoted string
	p.stage("quotes", func() {
		clean, q := p.stripper.Strip(working)
		working, quoted = clean, q
	})

	var signatures []string
	p.stage("signatures", func() {
		clean, sigs := segment.ExtractSignatures(working)
		working, signatures = clean, sigs
	})

	isDup := false
	p.stage("similarity", func() {
		isDup = previousBody != "" && p.detector.IsDuplicate(working, previousBody)
	})

	out := ProcessedContent{
		CleanBody:          sanitize.Sanitize(working, sanitize.ProfileExternal),
		SecurityBanners:    banners,
		IsDuplicateContent: isDup,
	}
	if strings.TrimSpace(quoted) != "" {
		out.QuotedContent = sanitize.Sanitize(quoted, sanitize.ProfileExternal)
	}
	for _, sig := range signatures {
		out.Signatures = append(out.Signatures, sanitize.Sanitize(sig, sanitize.ProfileSignature))
	}
	return out
}

// stage isolates one pipeline step: a panic inside fn leaves the working
// state untouched and is logged, never propagated. Content then passes
// through the step unclassified.
func (p *Processor) stage(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.WithFields(logrus.Fields{
				"stage": name,
				"panic": fmt.Sprint(r),
			}).Warn("content stage degraded")
		}
	}()
	fn()
}
