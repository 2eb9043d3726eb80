package models

// Category is the fixed classification label assigned to a report.
type Category string

// Priority is the urgency tier of a report, derived independently of its category.
type Priority string

// Prediction is the classifier output for a single report.
type Prediction struct {
	Category       Category `json:"category"`
	Confidence     float64  `json:"confidence"`
	Department     string   `json:"department"`
	Priority       Priority `json:"priority"`
	ProcessingTime float64  `json:"processing_time"` // seconds, rounded to 3 places
}

// Suggestions is the actionable metadata derived from a Prediction.
type Suggestions struct {
	EstimatedResolution string   `json:"estimated_resolution"`
	RequiredDepartment  string   `json:"required_department"`
	FollowUpNeeded      bool     `json:"follow_up_needed"`
	ImagesProcessed     int      `json:"images_processed"`
	RecommendedActions  []string `json:"recommended_actions"`
}

// ReportRequest is the body accepted by POST /categorize.
type ReportRequest struct {
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"` // data:image/<type>;base64,<payload>
}

// CategoryResponse is the envelope returned for a categorized report.
type CategoryResponse struct {
	Category       Category    `json:"category"`
	Confidence     float64     `json:"confidence"`
	Department     string      `json:"department"`
	Priority       Priority    `json:"priority"`
	Suggestions    Suggestions `json:"suggestions"`
	ProcessingTime float64     `json:"processing_time"`
	Timestamp      string      `json:"timestamp"`
	RequestID      string      `json:"request_id,omitempty"`
}

// ModelStats is the payload of GET /stats.
type ModelStats struct {
	ModelVersion        string           `json:"model_version"`
	SupportedCategories int              `json:"supported_categories"`
	Accuracy            float64          `json:"accuracy"`
	TotalPredictions    int64            `json:"total_predictions"`
	ByCategory          map[string]int64 `json:"by_category"`
	ByPriority          map[string]int64 `json:"by_priority"`
	ImagesProcessed     int64            `json:"images_processed"`
	ImagesRejected      int64            `json:"images_rejected"`
}
