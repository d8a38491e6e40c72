package services

import (
	"errors"
	"testing"

	"ctfrange/models"
)

func testChallenge(maxAttempts int) models.Challenge {
	return models.Challenge{
		ID:          1,
		Title:       "SQL injection 101",
		Flag:        "CTF{union_select}",
		Points:      100,
		MaxAttempts: maxAttempts,
		IsActive:    true,
	}
}

func TestEvaluateSubmissionCorrectFlag(t *testing.T) {
	v := EvaluateSubmission(testChallenge(0), 3, false, false, "CTF{union_select}")
	if v.Reject != nil {
		t.Fatalf("expected no rejection, got %v", v.Reject)
	}
	if !v.Correct {
		t.Fatalf("expected a correct verdict")
	}
	if v.ChallengeFailed {
		t.Fatalf("correct submission must never fail the challenge")
	}
}

func TestEvaluateSubmissionIsCaseSensitive(t *testing.T) {
	v := EvaluateSubmission(testChallenge(0), 0, false, false, "ctf{union_select}")
	if v.Reject != nil {
		t.Fatalf("expected no rejection, got %v", v.Reject)
	}
	if v.Correct {
		t.Fatalf("flag comparison must be case sensitive")
	}
}

func TestEvaluateSubmissionLessonLockWinsOverEverything(t *testing.T) {
	// All the rejection conditions hold at once; the lock must be reported
	v := EvaluateSubmission(testChallenge(1), 5, true, true, "CTF{union_select}")
	if !errors.Is(v.Reject, ErrLessonLocked) {
		t.Fatalf("expected ErrLessonLocked, got %v", v.Reject)
	}
}

func TestEvaluateSubmissionExhaustedBeforeAlreadySolved(t *testing.T) {
	v := EvaluateSubmission(testChallenge(3), 3, true, false, "CTF{union_select}")
	if !errors.Is(v.Reject, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", v.Reject)
	}
}

func TestEvaluateSubmissionAlreadySolved(t *testing.T) {
	v := EvaluateSubmission(testChallenge(0), 1, true, false, "CTF{union_select}")
	if !errors.Is(v.Reject, ErrAlreadySolved) {
		t.Fatalf("expected ErrAlreadySolved, got %v", v.Reject)
	}
}

func TestEvaluateSubmissionFinalAttemptFailsChallenge(t *testing.T) {
	challenge := testChallenge(3)

	// Second incorrect attempt of three, one still remains
	v := EvaluateSubmission(challenge, 1, false, false, "wrong")
	if v.Reject != nil || v.Correct {
		t.Fatalf("expected a plain incorrect verdict, got %+v", v)
	}
	if v.ChallengeFailed {
		t.Fatalf("challenge must not fail while an attempt remains")
	}

	// Third incorrect attempt consumes the last one
	v = EvaluateSubmission(challenge, 2, false, false, "wrong")
	if v.Reject != nil || v.Correct {
		t.Fatalf("expected a plain incorrect verdict, got %+v", v)
	}
	if !v.ChallengeFailed {
		t.Fatalf("expected the final incorrect attempt to fail the challenge")
	}

	// A fourth submission is refused outright
	v = EvaluateSubmission(challenge, 3, false, false, "wrong")
	if !errors.Is(v.Reject, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", v.Reject)
	}
}

func TestEvaluateSubmissionUnlimitedAttemptsNeverFail(t *testing.T) {
	v := EvaluateSubmission(testChallenge(0), 50, false, false, "wrong")
	if v.Reject != nil {
		t.Fatalf("expected no rejection, got %v", v.Reject)
	}
	if v.ChallengeFailed {
		t.Fatalf("unlimited attempts must never fail the challenge")
	}
}

func TestIsChallengeFailed(t *testing.T) {
	if IsChallengeFailed(3, 3, true, true) {
		t.Fatalf("a solved challenge is never failed")
	}
	if !IsChallengeFailed(3, 3, false, false) {
		t.Fatalf("expected failed once attempts are spent")
	}
	if IsChallengeFailed(2, 3, false, false) {
		t.Fatalf("expected not failed while attempts remain")
	}
	if !IsChallengeFailed(0, 0, false, true) {
		t.Fatalf("expected failed once the lesson is locked")
	}
	if IsChallengeFailed(10, 0, false, false) {
		t.Fatalf("unlimited attempts never fail an open challenge")
	}
}
