// Package similarity flags near-duplicate messages inside a thread by
// normalized edit distance over the plain-text rendering of two bodies.
package similarity

import (
	"github.com/agnivade/levenshtein"

	"github.com/maildeck/mailsift/internal/htmltext"
)

const (
	// DefaultThreshold is the similarity score at or above which two bodies
	// count as duplicates.
	DefaultThreshold = 0.90
	// DefaultMinCompareLength is the normalized-text length below which
	// comparison is skipped; short acknowledgements produce false positives.
	DefaultMinCompareLength = 50
)

// Detector computes similarity scores. The zero value is not usable; use
// NewDetector so defaults apply.
type Detector struct {
	Threshold        float64
	MinCompareLength int
}

func NewDetector(threshold float64, minCompareLength int) *Detector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if minCompareLength <= 0 {
		minCompareLength = DefaultMinCompareLength
	}
	return &Detector{Threshold: threshold, MinCompareLength: minCompareLength}
}

// Score returns the normalized similarity of current against previous in
// [0,1]. Distance is Levenshtein over code points with unit costs;
// similarity is (len(current)-distance)/len(current), clamped.
func (d *Detector) Score(currentHTML, previousHTML string) float64 {
	cur := htmltext.Normalize(currentHTML)
	prev := htmltext.Normalize(previousHTML)
	if cur == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(cur, prev)
	curLen := len([]rune(cur))
	score := float64(curLen-dist) / float64(curLen)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// IsDuplicate reports whether current is a near-duplicate of previous.
// Bodies whose normalized text is shorter than MinCompareLength never match.
func (d *Detector) IsDuplicate(currentHTML, previousHTML string) bool {
	if previousHTML == "" {
		return false
	}
	cur := htmltext.Normalize(currentHTML)
	if len([]rune(cur)) < d.MinCompareLength {
		return false
	}
	return d.Score(currentHTML, previousHTML) >= d.Threshold
}
