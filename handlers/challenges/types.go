package challenges

// Error message constants
const (
	ErrChallengeNotFound    = "Challenge not found"
	ErrCategoryNotFound     = "Category not found"
	ErrInvalidRequest       = "Invalid request data"
	ErrInvalidDifficulty    = "Invalid difficulty"
	ErrNegativePoints       = "Points must not be negative"
	ErrNegativeAttempts     = "Max attempts must not be negative"
	ErrFailedFetch          = "Failed to fetch challenges"
	ErrFailedCreate         = "Failed to create challenge"
	ErrFailedUpdate         = "Failed to update challenge"
	ErrFailedDelete         = "Failed to delete challenge"
	ErrFailedBulkAction     = "Failed to apply bulk action"
	ErrUnknownBulkAction    = "Unknown bulk action"
	ErrFailedExport         = "Failed to export challenges"
	ErrFailedFetchCategory  = "Failed to fetch categories"
	ErrFailedCreateCategory = "Failed to create category"
	ErrFailedDeleteCategory = "Failed to delete category"
)

// ChallengeRequest model for creating or updating a challenge
type ChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Description string `json:"description"`
	Points      *int   `json:"points"`
	Difficulty  string `json:"difficulty"`
	Flag        string `json:"flag" binding:"required"`
	Author      string `json:"author"`
	MaxAttempts *int   `json:"max_attempts"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryRequest model for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// BulkActionRequest model for bulk challenge toggles
type BulkActionRequest struct {
	Action       string `json:"action" binding:"required"` // activate, deactivate, delete
	ChallengeIDs []uint `json:"challenge_ids" binding:"required"`
}

// SolverInfo is one of the recent solvers shown on a challenge card
type SolverInfo struct {
	User string `json:"user"`
	Date string `json:"date"`
}

// ChallengeListItem is the participant-facing view of a challenge. The flag
// never appears here.
type ChallengeListItem struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	Points       int          `json:"points"`
	Difficulty   string       `json:"difficulty"`
	Description  string       `json:"desc"`
	Author       string       `json:"author"`
	Solved       bool         `json:"solved"`
	Failed       bool         `json:"failed"`
	AttemptsUsed int          `json:"attempts_used"`
	MaxAttempts  int          `json:"max_attempts"`
	Solvers      []SolverInfo `json:"solves"`
}
