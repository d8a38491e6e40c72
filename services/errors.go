package services

import "errors"

// Expected submission outcomes. Handlers translate these into structured
// responses, they never bubble up as generic failures.
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrLessonLocked      = errors.New("lesson is locked")
	ErrAttemptsExhausted = errors.New("max attempts reached")
	ErrAlreadySolved     = errors.New("challenge already solved")

	ErrTemplateNotFound = errors.New("lesson template not found")
	ErrInvalidApplyMode = errors.New("invalid template apply mode")
)
