package services

import (
	"sync"

	"civiceye/internal/models"
)

// StatsService keeps in-process prediction counters for GET /stats. Counts
// reset on restart.
type StatsService struct {
	mu             sync.Mutex
	total          int64
	byCategory     map[models.Category]int64
	byPriority     map[models.Priority]int64
	imagesOK       int64
	imagesRejected int64

	modelVersion string
	accuracy     float64
}

func NewStatsService(modelVersion string, accuracy float64) *StatsService {
	return &StatsService{
		byCategory:   make(map[models.Category]int64),
		byPriority:   make(map[models.Priority]int64),
		modelVersion: modelVersion,
		accuracy:     accuracy,
	}
}

// Record counts one completed prediction.
func (s *StatsService) Record(pred models.Prediction, imagesProcessed, imagesRejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byCategory[pred.Category]++
	s.byPriority[pred.Priority]++
	s.imagesOK += int64(imagesProcessed)
	s.imagesRejected += int64(imagesRejected)
}

// Snapshot returns the current counters. Every known category and priority is
// present, zero or not.
func (s *StatsService) Snapshot() models.ModelStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := models.AllCategories()
	byCat := make(map[string]int64, len(cats))
	for _, c := range cats {
		byCat[string(c)] = s.byCategory[c]
	}
	byPri := make(map[string]int64, 3)
	for _, p := range models.AllPriorities() {
		byPri[string(p)] = s.byPriority[p]
	}

	return models.ModelStats{
		ModelVersion:        s.modelVersion,
		SupportedCategories: len(cats),
		Accuracy:            s.accuracy,
		TotalPredictions:    s.total,
		ByCategory:          byCat,
		ByPriority:          byPri,
		ImagesProcessed:     s.imagesOK,
		ImagesRejected:      s.imagesRejected,
	}
}

// ModelVersion reports the configured model version string.
func (s *StatsService) ModelVersion() string {
	return s.modelVersion
}
