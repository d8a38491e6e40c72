package lessons

// Error message constants
const (
	ErrInvalidRequest   = "Invalid request data"
	ErrTemplateNotFound = "Lesson template not found"
	ErrFailedFetch      = "Failed to fetch lesson settings"
	ErrFailedSave       = "Failed to save lesson settings"
	ErrFailedFetchTmpl  = "Failed to fetch lesson templates"
	ErrFailedCreateTmpl = "Failed to create lesson template"
	ErrFailedUpdateTmpl = "Failed to update lesson template"
	ErrFailedDeleteTmpl = "Failed to delete lesson template"
	ErrFailedApplyTmpl  = "Failed to apply lesson template"
	ErrInvalidApplyMode = "Invalid apply mode"
)

// LessonStatusResponse is the public clock contract
type LessonStatusResponse struct {
	IsHardDeadline bool    `json:"is_hard_deadline"`
	HardDeadline   *string `json:"hard_deadline"`
	SoftDeadline   *string `json:"soft_deadline"`
}

// StartLessonRequest model for starting or extending the lesson window
type StartLessonRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1"`
	DelayMinutes    int `json:"delay_minutes"` // defaults to 0
}

// TemplateRequest model for creating or updating a lesson template
type TemplateRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ChallengeIDs []uint `json:"challenge_ids"`
}

// ApplyTemplateRequest model for applying a template to the catalog
type ApplyTemplateRequest struct {
	Mode string `json:"mode" binding:"required"` // exclusive, enable, disable
}

// TemplateResponse is a template with its derived totals
type TemplateResponse struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ChallengeCount int    `json:"challenge_count"`
	TotalPoints    int    `json:"total_points"`
	ChallengeIDs   []uint `json:"challenge_ids"`
}
