package categorizer

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"civiceye/internal/models"
)

// KeywordClassifier implements ReportClassifier by counting keyword hits per
// category. Attached images are accepted but never influence the result.
type KeywordClassifier struct {
	now func() time.Time
}

// NewKeywordClassifier returns a classifier backed by the built-in keyword tables.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{now: time.Now}
}

func (c *KeywordClassifier) Predict(ctx context.Context, text string, images []image.Image) (models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return models.Prediction{}, fmt.Errorf("predict: %w", err)
	}
	start := c.now()
	lower := strings.ToLower(text)

	category, score := bestCategory(lower)
	confidence := baseConfidence
	if score > 0 {
		confidence = math.Min(maxConfidence, baseConfidence+confidencePerHit*float64(score))
	}
	confidence = adjustForLength(confidence, len(strings.Fields(text)))

	rule, ok := ruleFor(category)
	if !ok {
		return models.Prediction{}, fmt.Errorf("predict: no department for category %q", category)
	}

	pred := models.Prediction{
		Category:       category,
		Confidence:     round3(confidence),
		Department:     rule.department,
		Priority:       DetectPriority(lower),
		ProcessingTime: round3(c.now().Sub(start).Seconds()),
	}

	log.WithFields(log.Fields{
		"category":   pred.Category,
		"score":      score,
		"confidence": pred.Confidence,
		"priority":   pred.Priority,
		"images":     len(images),
	}).Debug("keyword classifier prediction")

	return pred, nil
}

// Categories returns the closed category set in declaration order.
func (c *KeywordClassifier) Categories() []models.Category {
	return models.AllCategories()
}

// Departments returns a fresh copy of the category → department table.
func (c *KeywordClassifier) Departments() map[models.Category]string {
	out := make(map[models.Category]string, len(rules))
	for _, r := range rules {
		out[r.category] = r.department
	}
	return out
}

// Keywords returns a copy of the trigger substrings for cat, or nil.
func (c *KeywordClassifier) Keywords(cat models.Category) []string {
	r, ok := ruleFor(cat)
	if !ok {
		return nil
	}
	return append([]string(nil), r.keywords...)
}

// Department looks up the owning department of cat.
func Department(cat models.Category) (string, bool) {
	r, ok := ruleFor(cat)
	return r.department, ok
}

// Score counts how many distinct keywords of each category occur in text.
// text must already be lower-cased.
func Score(text string) map[models.Category]int {
	scores := make(map[models.Category]int, len(rules))
	for _, r := range rules {
		n := 0
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				n++
			}
		}
		scores[r.category] = n
	}
	return scores
}

// bestCategory picks the highest-scoring category. Equal scores resolve to
// the category declared first, which mirrors a first-match scan rather than
// any semantic ranking. All-zero input falls back to "other".
func bestCategory(lower string) (models.Category, int) {
	scores := Score(lower)
	best := models.CategoryOther
	bestScore := 0
	for _, r := range rules {
		if s := scores[r.category]; s > bestScore {
			best, bestScore = r.category, s
		}
	}
	return best, bestScore
}

// DetectPriority maps urgent wording to high and damage wording to medium.
// text must already be lower-cased.
func DetectPriority(text string) models.Priority {
	if containsAny(text, urgentKeywords) {
		return models.PriorityHigh
	}
	if containsAny(text, mediumKeywords) {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

func adjustForLength(confidence float64, words int) float64 {
	switch {
	case words < shortReportWords:
		confidence *= shortPenalty
	case words > detailedReportMin:
		confidence *= detailBonus
	}
	return clamp(confidence, 0, maxConfidence)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
