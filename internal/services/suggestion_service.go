package services

import (
	"civiceye/internal/models"
)

const (
	defaultResolution = "3-5 days"

	actionImmediate = "Immediate response required"
	actionRoutine   = "Schedule for routine maintenance"
)

var resolutionTimes = map[models.Category]string{
	models.CategoryPothole:     "3-5 days",
	models.CategoryStreetlight: "1-2 days",
	models.CategoryDrainage:    "5-7 days",
	models.CategoryRoad:        "7-14 days",
	models.CategoryOther:       "2-5 days",
}

// actionTemplates must never be mutated; RecommendedActions copies them.
var actionTemplates = map[models.Category][]string{
	models.CategoryPothole:     {"Take photos of damage", "Measure dimensions", "Check traffic impact"},
	models.CategoryStreetlight: {"Verify electrical safety", "Check nearby lights", "Note timing of failure"},
	models.CategoryDrainage:    {"Assess water level", "Check for blockages", "Monitor weather conditions"},
	models.CategoryRoad:        {"Document traffic impact", "Check alternative routes", "Assess safety measures"},
	models.CategoryOther:       {"Gather additional evidence", "Contact relevant authorities", "Document thoroughly"},
}

// SuggestionService derives follow-up metadata from a prediction.
type SuggestionService struct{}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

// Suggest builds the Suggestions block for pred. imagesProcessed is the number
// of attachments that decoded successfully, not the number submitted.
func (s *SuggestionService) Suggest(pred models.Prediction, imagesProcessed int) models.Suggestions {
	return models.Suggestions{
		EstimatedResolution: EstimatedResolution(pred.Category),
		RequiredDepartment:  pred.Department,
		FollowUpNeeded:      pred.Priority == models.PriorityHigh,
		ImagesProcessed:     imagesProcessed,
		RecommendedActions:  RecommendedActions(pred.Category, pred.Priority),
	}
}

// EstimatedResolution returns the expected turnaround for cat.
func EstimatedResolution(cat models.Category) string {
	if r, ok := resolutionTimes[cat]; ok {
		return r
	}
	return defaultResolution
}

// RecommendedActions returns a new list built from the category template.
// High priority prepends an immediate-response step; low priority appends a
// routine-maintenance step.
func RecommendedActions(cat models.Category, priority models.Priority) []string {
	base, ok := actionTemplates[cat]
	if !ok {
		base = actionTemplates[models.CategoryOther]
	}

	actions := make([]string, 0, len(base)+1)
	if priority == models.PriorityHigh {
		actions = append(actions, actionImmediate)
	}
	actions = append(actions, base...)
	if priority == models.PriorityLow {
		actions = append(actions, actionRoutine)
	}
	return actions
}
