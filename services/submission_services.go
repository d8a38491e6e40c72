package services

import (
	"errors"
	"fmt"
	"time"

	"ctfrange/database"
	"ctfrange/metrics"
	"ctfrange/models"
	"ctfrange/realtime"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionResult is the outcome of one flag submission
type SubmissionResult struct {
	Accepted        bool
	Correct         bool
	ChallengeFailed bool // this incorrect submission consumed the final attempt
}

// Verdict is the decision of the submission checks, computed before any row
// is written. Reject carries the outcome sentinel when the submission is
// refused without recording an attempt.
type Verdict struct {
	Reject          error
	Correct         bool
	ChallengeFailed bool
}

// EvaluateSubmission applies the submission checks in their user-facing
// precedence order: lesson lock, attempts exhausted, already solved, then
// flag comparison. The order decides which rejection a client sees when
// several hold at once, so it must not change.
func EvaluateSubmission(challenge models.Challenge, priorAttempts int, alreadySolved bool, lessonLocked bool, flagInput string) Verdict {
	if lessonLocked {
		return Verdict{Reject: ErrLessonLocked}
	}
	if challenge.MaxAttempts > 0 && priorAttempts >= challenge.MaxAttempts {
		return Verdict{Reject: ErrAttemptsExhausted}
	}
	if alreadySolved {
		return Verdict{Reject: ErrAlreadySolved}
	}

	// Exact match, case sensitive, no normalization
	correct := flagInput == challenge.Flag
	failed := !correct && challenge.MaxAttempts > 0 && priorAttempts+1 >= challenge.MaxAttempts
	return Verdict{Correct: correct, ChallengeFailed: failed}
}

// SubmitFlag validates and records one flag submission for the user. Expected
// rejections are returned as the sentinel errors from this package; any other
// error is a storage fault.
func SubmitFlag(user models.User, challengeID uint, flagInput string) (SubmissionResult, error) {
	var challenge models.Challenge
	err := database.DB.First(&challenge, "id = ? AND is_active = ?", challengeID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// An inactive challenge is unreachable for scoring
			metrics.FlagSubmissions.WithLabelValues("not_found").Inc()
			return SubmissionResult{}, ErrChallengeNotFound
		}
		return SubmissionResult{}, fmt.Errorf("failed to fetch challenge: %w", err)
	}

	settings, err := GetLessonSettings()
	if err != nil {
		return SubmissionResult{}, err
	}

	var priorAttempts int64
	err = database.DB.Model(&models.Attempt{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
		Count(&priorAttempts).Error
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("failed to count attempts: %w", err)
	}

	var solved int64
	err = database.DB.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
		Count(&solved).Error
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("failed to check solves: %w", err)
	}

	verdict := EvaluateSubmission(challenge, int(priorAttempts), solved > 0, settings.IsHardDeadlinePassed(), flagInput)
	if verdict.Reject != nil {
		// Refused submissions record nothing
		metrics.FlagSubmissions.WithLabelValues(outcomeLabel(verdict.Reject)).Inc()
		return SubmissionResult{}, verdict.Reject
	}

	result := SubmissionResult{Correct: verdict.Correct, ChallengeFailed: verdict.ChallengeFailed}
	solveDate := time.Now()
	defer metrics.RecordDBOperation("record_submission", "attempts", solveDate)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		attempt := models.Attempt{
			UserID:      user.ID,
			ChallengeID: challenge.ID,
			FlagInput:   flagInput,
			IsCorrect:   verdict.Correct,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		if !verdict.Correct {
			return nil
		}

		// The unique index on (user_id, challenge_id) is the authoritative
		// guard against double credit. A concurrent correct submission that
		// already claimed the solve leaves RowsAffected at zero, which we
		// report as an already-solved outcome while keeping this attempt.
		solve := models.Solve{UserID: user.ID, ChallengeID: challenge.ID, Date: solveDate}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&solve)
		if res.Error != nil {
			return fmt.Errorf("failed to record solve: %w", res.Error)
		}
		result.Accepted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return SubmissionResult{}, err
	}

	if verdict.Correct && !result.Accepted {
		metrics.FlagSubmissions.WithLabelValues("already_solved").Inc()
		return SubmissionResult{}, ErrAlreadySolved
	}

	if result.Accepted {
		metrics.FlagSubmissions.WithLabelValues("correct").Inc()
		metrics.Solves.Inc()
		InvalidateScoreboardCache()
		realtime.BroadcastSolve(realtime.SolveEvent{
			Username:       user.Username,
			ChallengeID:    challenge.ID,
			ChallengeTitle: challenge.Title,
			Points:         challenge.Points,
			Date:           solveDate,
		})
	} else {
		metrics.FlagSubmissions.WithLabelValues("incorrect").Inc()
	}

	return result, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrLessonLocked):
		return "locked"
	case errors.Is(err, ErrAttemptsExhausted):
		return "exhausted"
	case errors.Is(err, ErrAlreadySolved):
		return "already_solved"
	default:
		return "not_found"
	}
}

// IsChallengeFailed is the display projection for an unsolved challenge: it
// is failed once the attempts are spent or the lesson is locked. Never
// persisted, always recomputed.
func IsChallengeFailed(attemptsCount int, maxAttempts int, isSolved bool, hardDeadlinePassed bool) bool {
	if isSolved {
		return false
	}
	if maxAttempts > 0 && attemptsCount >= maxAttempts {
		return true
	}
	return hardDeadlinePassed
}
