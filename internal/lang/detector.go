// Package lang detects the language of cleaned message content so list
// views can group and filter by it. The candidate set mirrors the
// languages covered by the header keyword patterns.
package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

type Detector interface {
	Detect(text string) (code string, confidence float64, ok bool)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

func NewDetector(langs ...lingua.Language) Detector {
	if len(langs) == 0 {
		langs = []lingua.Language{
			lingua.English,
			lingua.Spanish,
			lingua.German,
			lingua.French,
			lingua.Italian,
			lingua.Portuguese,
		}
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return &linguaDetector{detector: d}
}

// Detect returns the ISO 639-1 code and confidence for text, or ok=false
// when the text is empty or no candidate language matches.
func (l *linguaDetector) Detect(text string) (string, float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", 0, false
	}

	detected, ok := l.detector.DetectLanguageOf(trimmed)
	if !ok {
		return "", 0, false
	}

	conf := l.detector.ComputeLanguageConfidence(trimmed, detected)
	code := strings.ToLower(detected.IsoCode639_1().String())
	if code == "" || code == "unknown" {
		code = strings.ToLower(detected.String())
	}
	return code, conf, true
}
