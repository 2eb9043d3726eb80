package categorizer

import (
	"context"
	"image"

	"civiceye/internal/models"
)

// ReportClassifier produces a Prediction for a report. The keyword
// implementation is a stand-in; any model satisfying this interface can be
// swapped in without touching the request handling or enrichment code.
type ReportClassifier interface {
	Predict(ctx context.Context, text string, images []image.Image) (models.Prediction, error)
}

// CategoryCatalog exposes the static tables behind a classifier.
type CategoryCatalog interface {
	Categories() []models.Category
	Departments() map[models.Category]string
	Keywords(cat models.Category) []string
}
