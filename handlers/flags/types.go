package flags

// Response message constants for the submission endpoint
const (
	MsgCorrectFlag      = "Correct flag!"
	MsgIncorrectFlag    = "Incorrect flag"
	MsgMaxAttempts      = "Max attempts reached!"
	MsgAlreadySolved    = "Already solved!"
	MsgChallengeMissing = "Challenge not found"
	MsgLessonLocked     = "Lesson is over, submissions are locked"
	MsgInvalidRequest   = "Invalid request data"
	MsgSubmitFailed     = "Failed to process submission"
)

// SubmitFlagRequest model for submitting a candidate flag
type SubmitFlagRequest struct {
	ChallengeID uint   `json:"challenge_id" binding:"required"`
	Flag        string `json:"flag" binding:"required"`
}

// SubmitFlagResponse is the structured outcome of a flag submission
type SubmitFlagResponse struct {
	Status          string `json:"status"` // "success" or "error"
	Message         string `json:"message"`
	ChallengeFailed bool   `json:"challenge_failed,omitempty"`
}

// SolveInfo is one entry of a challenge's recent-solvers list
type SolveInfo struct {
	User string `json:"user"`
	Date string `json:"date"`
}
