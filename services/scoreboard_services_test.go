package services

import (
	"math"
	"testing"
	"time"
)

func TestRankUsersOrdering(t *testing.T) {
	scores := []UserScore{
		{UserID: 3, Username: "carol", TotalPoints: 100, SolvedCount: 1},
		{UserID: 1, Username: "alice", TotalPoints: 300, SolvedCount: 3},
		{UserID: 2, Username: "bob", TotalPoints: 300, SolvedCount: 2},
	}

	ranked := RankUsers(scores)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranked))
	}
	if ranked[0].Username != "alice" || ranked[0].Rank != 1 {
		t.Fatalf("expected alice first (more solves on equal points), got %+v", ranked[0])
	}
	if ranked[1].Username != "bob" || ranked[1].Rank != 2 {
		t.Fatalf("expected bob second, got %+v", ranked[1])
	}
	if ranked[2].Username != "carol" || ranked[2].Rank != 3 {
		t.Fatalf("expected carol third, got %+v", ranked[2])
	}
}

func TestRankUsersTieBreaksByUserID(t *testing.T) {
	scores := []UserScore{
		{UserID: 9, Username: "late", TotalPoints: 200, SolvedCount: 2},
		{UserID: 4, Username: "early", TotalPoints: 200, SolvedCount: 2},
	}

	ranked := RankUsers(scores)
	if ranked[0].UserID != 4 {
		t.Fatalf("expected the lower user id to win a full tie, got %d", ranked[0].UserID)
	}
}

func TestRankUsersDropsZeroScorers(t *testing.T) {
	scores := []UserScore{
		{UserID: 1, Username: "alice", TotalPoints: 100, SolvedCount: 1},
		{UserID: 2, Username: "idle", TotalPoints: 0, SolvedCount: 0},
	}

	ranked := RankUsers(scores)
	if len(ranked) != 1 {
		t.Fatalf("expected zero scorers off the board, got %d entries", len(ranked))
	}
	if ranked[0].Username != "alice" {
		t.Fatalf("expected alice only, got %+v", ranked[0])
	}
}

func TestCompletionPercentage(t *testing.T) {
	if got := CompletionPercentage(125, 500); math.Abs(got-25.0) > 1e-9 {
		t.Fatalf("expected 25.00, got %f", got)
	}
	if got := CompletionPercentage(0, 500); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
	if got := CompletionPercentage(100, 0); got != 0 {
		t.Fatalf("expected 0 when no challenges are active, got %f", got)
	}
}

func TestBuildProgressionStepSeries(t *testing.T) {
	origin := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := origin.Add(60 * time.Minute)
	users := []ProgressionUser{
		{
			UserID:   1,
			Username: "alice",
			Solves: []ProgressionSolve{
				{Date: origin.Add(10 * time.Minute), Points: 100},
				{Date: origin.Add(30 * time.Minute), Points: 50},
			},
		},
	}

	series := BuildProgression(users, origin, now)
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}

	points := series[0].Points
	if len(points) != 4 {
		t.Fatalf("expected origin + 2 steps + flat end, got %d points", len(points))
	}
	if points[0].Minutes != 0 || points[0].Points != 0 {
		t.Fatalf("expected a zero origin point, got %+v", points[0])
	}
	if points[1].Minutes != 10 || points[1].Points != 100 {
		t.Fatalf("expected first step at 10min/100pts, got %+v", points[1])
	}
	if points[2].Minutes != 30 || points[2].Points != 150 {
		t.Fatalf("expected cumulative step at 30min/150pts, got %+v", points[2])
	}
	if points[3].Minutes != 60 || points[3].Points != 150 {
		t.Fatalf("expected the line held flat to now, got %+v", points[3])
	}
}

func TestBuildProgressionUserWithoutSolves(t *testing.T) {
	origin := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := origin.Add(20 * time.Minute)

	series := BuildProgression([]ProgressionUser{{UserID: 2, Username: "bob"}}, origin, now)
	points := series[0].Points
	if len(points) != 2 {
		t.Fatalf("expected origin and flat end only, got %d points", len(points))
	}
	if points[1].Minutes != 20 || points[1].Points != 0 {
		t.Fatalf("expected a flat zero line, got %+v", points[1])
	}
}
