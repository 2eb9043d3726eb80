package categorizer

import "civiceye/internal/models"

type categoryRule struct {
	category   models.Category
	department string
	keywords   []string
}

// rules is ordered; ties in scoring resolve to the earliest entry.
var rules = []categoryRule{
	{
		category:   models.CategoryPothole,
		department: "Roads & Infrastructure",
		keywords:   []string{"pothole", "hole", "road damage", "crack", "bump"},
	},
	{
		category:   models.CategoryStreetlight,
		department: "Electrical Department",
		keywords:   []string{"light", "lamp", "lighting", "bulb", "electricity"},
	},
	{
		category:   models.CategoryDrainage,
		department: "Water & Sanitation",
		keywords:   []string{"water", "flood", "drain", "sewer", "overflow"},
	},
	{
		category:   models.CategoryRoad,
		department: "Roads & Infrastructure",
		keywords:   []string{"road", "traffic", "construction", "barrier", "blocked"},
	},
	{
		category:   models.CategoryOther,
		department: "General Administration",
		keywords:   []string{"garbage", "noise", "illegal", "encroachment"},
	},
}

var (
	urgentKeywords = []string{"urgent", "emergency", "dangerous", "blocking", "overflow", "flood", "accident"}
	mediumKeywords = []string{"broken", "damaged", "not working", "problem"}
)

const (
	baseConfidence    = 0.6
	confidencePerHit  = 0.1
	maxConfidence     = 0.95
	shortReportWords  = 3
	detailedReportMin = 20
	shortPenalty      = 0.8
	detailBonus       = 1.1
)

func ruleFor(cat models.Category) (categoryRule, bool) {
	for _, r := range rules {
		if r.category == cat {
			return r, true
		}
	}
	return categoryRule{}, false
}
