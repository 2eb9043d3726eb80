package models

/*
Category and priority constants for use throughout the codebase.
The declaration order of AllCategories is significant: the classifier breaks
score ties by it.
*/

// Category constants
const (
	CategoryPothole     Category = "pothole"
	CategoryStreetlight Category = "streetlight"
	CategoryDrainage    Category = "drainage"
	CategoryRoad        Category = "road"
	CategoryOther       Category = "other"
)

// Priority constants
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllCategories returns the closed category set in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryPothole,
		CategoryStreetlight,
		CategoryDrainage,
		CategoryRoad,
		CategoryOther,
	}
}

// AllPriorities returns the priority tiers from least to most urgent.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryPothole, CategoryStreetlight, CategoryDrainage, CategoryRoad, CategoryOther:
		return true
	}
	return false
}

// Valid reports whether p is one of the known priority tiers.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

func (p Priority) String() string { return string(p) }
