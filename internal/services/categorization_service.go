package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"civiceye/internal/imageproc"
	"civiceye/internal/metrics"
	"civiceye/internal/models"
	categorizer "civiceye/pkg/categorizer"
)

const (
	DefaultMaxTextChars = 5000
	DefaultMaxImages    = 3
)

// Limits bounds the accepted report size.
type Limits struct {
	MaxTextChars int
	MaxImages    int
}

// CategorizationService runs the full report pipeline: validation, image
// decoding, classification and suggestion enrichment.
type CategorizationService struct {
	Classifier  categorizer.ReportClassifier
	Images      *imageproc.Processor
	Suggestions *SuggestionService
	Stats       *StatsService
	Metrics     *metrics.Metrics

	limits Limits
	now    func() time.Time
}

func NewCategorizationService(cls categorizer.ReportClassifier, images *imageproc.Processor, sugg *SuggestionService, stats *StatsService, m *metrics.Metrics, limits Limits) *CategorizationService {
	if limits.MaxTextChars <= 0 {
		limits.MaxTextChars = DefaultMaxTextChars
	}
	if limits.MaxImages <= 0 {
		limits.MaxImages = DefaultMaxImages
	}
	return &CategorizationService{
		Classifier:  cls,
		Images:      images,
		Suggestions: sugg,
		Stats:       stats,
		Metrics:     m,
		limits:      limits,
		now:         time.Now,
	}
}

// Validate checks req against the configured limits and returns the trimmed
// report text. Failures match models.ErrValidation.
func (s *CategorizationService) Validate(req models.ReportRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", models.NewValidationError(models.ErrEmptyText, "Text input cannot be empty")
	}
	if utf8.RuneCountInString(text) > s.limits.MaxTextChars {
		return "", models.NewValidationError(models.ErrTextTooLong,
			fmt.Sprintf("Text input too long (max %d characters)", s.limits.MaxTextChars))
	}
	if len(req.Images) > s.limits.MaxImages {
		return "", models.NewValidationError(models.ErrTooManyImages,
			fmt.Sprintf("Maximum %d images allowed", s.limits.MaxImages))
	}
	return text, nil
}

// Categorize validates and classifies a report. Rejected images are skipped,
// never failing the request.
func (s *CategorizationService) Categorize(ctx context.Context, req models.ReportRequest) (*models.CategoryResponse, error) {
	start := s.now()

	text, err := s.Validate(req)
	if err != nil {
		return nil, err
	}
	if s.Classifier == nil {
		return nil, fmt.Errorf("categorize: %w", models.ErrClassifierUnavailable)
	}

	log.WithField("text_length", utf8.RuneCountInString(text)).Info("Processing categorization request")

	var imgs imageproc.Result
	if len(req.Images) > 0 && s.Images != nil {
		imgs = s.Images.ProcessAll(ctx, req.Images)
	}

	pred, err := s.Classifier.Predict(ctx, text, imgs.Decoded())
	if err != nil {
		return nil, fmt.Errorf("categorize: predict: %w", err)
	}
	if !pred.Category.Valid() || !pred.Priority.Valid() {
		return nil, fmt.Errorf("categorize: classifier returned category %q priority %q", pred.Category, pred.Priority)
	}

	suggestions := s.Suggestions.Suggest(pred, len(imgs.Images))

	elapsed := s.now().Sub(start)
	resp := &models.CategoryResponse{
		Category:       pred.Category,
		Confidence:     pred.Confidence,
		Department:     pred.Department,
		Priority:       pred.Priority,
		Suggestions:    suggestions,
		ProcessingTime: math.Round(elapsed.Seconds()*1000) / 1000,
		Timestamp:      s.now().Format(time.RFC3339Nano),
	}

	if s.Stats != nil {
		s.Stats.Record(pred, len(imgs.Images), len(imgs.Rejected))
	}
	s.Metrics.ObservePrediction(string(pred.Category), string(pred.Priority), elapsed)
	s.Metrics.ObserveImages(len(imgs.Images), len(imgs.Rejected))

	log.WithFields(log.Fields{
		"category":   pred.Category,
		"confidence": pred.Confidence,
		"priority":   pred.Priority,
		"images":     len(imgs.Images),
		"elapsed":    elapsed.String(),
	}).Info("Categorization completed")

	return resp, nil
}
