package model

// SemesterSummary is the per-semester part of a Report.
type SemesterSummary struct {
	SemesterID string   `json:"semester_id"`
	Credits    float64  `json:"credits"`
	Index      *float64 `json:"index"`
	Error      string   `json:"error,omitempty"`
}

// Report aggregates every metric computed from a transcript.
type Report struct {
	Semesters       []SemesterSummary `json:"semesters"`
	TotalCredits    float64           `json:"total_credits"`
	CumulativeIndex float64           `json:"cumulative_index"`
	ConvertedIndex  float64           `json:"converted_index"`
}

// IndexResponse is returned by the single-metric endpoints.
type IndexResponse struct {
	Metric     string  `json:"metric"`
	SemesterID string  `json:"semester_id,omitempty"`
	Value      float64 `json:"value"`
}

// ScaleOverride replaces parts of the default grading scale for one request.
// Nil fields keep the configured tables.
type ScaleOverride struct {
	GradePoints  map[string]float64 `json:"grade_points" binding:"omitempty,dive,gte=0"`
	GradeLetters map[string]string  `json:"grade_letters" binding:"omitempty,dive,required"`
	LetterPoints map[string]float64 `json:"letter_points" binding:"omitempty,dive,gte=0"`
	Excluded     []string           `json:"excluded_courses" binding:"omitempty,dive,required"`
}

// EvaluateRequest is the payload for computing a report over an ad-hoc transcript.
type EvaluateRequest struct {
	Transcript Transcript     `json:"transcript" binding:"required,min=1,dive,min=1,dive"`
	Scale      *ScaleOverride `json:"scale" binding:"omitempty"`
}
