package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"ctfrange/database"
	"ctfrange/metrics"
	"ctfrange/models"
)

const (
	leaderboardCacheKey = "scoreboard:leaderboard"
	leaderboardCacheTTL = 30 * time.Second
)

// UserScore is the aggregated standing of one user before ranking
type UserScore struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url"`
	TotalPoints int    `json:"total_points"`
	SolvedCount int    `json:"solved_count"`
}

// RankedEntry is one row of the public leaderboard
type RankedEntry struct {
	Rank int `json:"rank"`
	UserScore
}

// RankUsers orders the population by total points, then solve count, then
// user id for a deterministic tie order, and drops zero scorers from the
// public board
func RankUsers(scores []UserScore) []RankedEntry {
	sorted := make([]UserScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		if sorted[i].SolvedCount != sorted[j].SolvedCount {
			return sorted[i].SolvedCount > sorted[j].SolvedCount
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	ranked := make([]RankedEntry, 0, len(sorted))
	for _, s := range sorted {
		if s.TotalPoints <= 0 {
			continue
		}
		ranked = append(ranked, RankedEntry{Rank: len(ranked) + 1, UserScore: s})
	}
	return ranked
}

// LoadUserScores aggregates solve points for every competing user. Superusers
// and mentors stay off the competitive board.
func LoadUserScores() ([]UserScore, error) {
	defer metrics.RecordDBOperation("aggregate_scores", "solves", time.Now())

	var scores []UserScore
	err := database.DB.Raw(`
        SELECT u.id AS user_id, u.username, u.avatar_url,
               COALESCE(SUM(c.points), 0) AS total_points,
               COUNT(s.id) AS solved_count
        FROM users u
        LEFT JOIN solves s ON s.user_id = u.id
        LEFT JOIN challenges c ON c.id = s.challenge_id
        WHERE u.is_superuser = false
          AND u.id NOT IN (
              SELECT ug.user_id FROM user_groups ug
              JOIN groups g ON g.id = ug.group_id
              WHERE g.name = ?
          )
        GROUP BY u.id, u.username, u.avatar_url
    `, models.MentorsGroup).Scan(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user scores: %w", err)
	}
	return scores, nil
}

// GetLeaderboard returns the ranked public leaderboard, served from the redis
// cache when fresh
func GetLeaderboard(ctx context.Context) ([]RankedEntry, error) {
	if database.REDIS != nil {
		if cached, err := database.REDIS.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var ranked []RankedEntry
			if err := json.Unmarshal([]byte(cached), &ranked); err == nil {
				return ranked, nil
			}
		}
	}

	scores, err := LoadUserScores()
	if err != nil {
		return nil, err
	}
	ranked := RankUsers(scores)

	if database.REDIS != nil {
		if payload, err := json.Marshal(ranked); err == nil {
			if err := database.REDIS.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard: %v", err)
			}
		}
	}
	return ranked, nil
}

// InvalidateScoreboardCache drops every cached scoreboard view after a solve
func InvalidateScoreboardCache() {
	if database.REDIS == nil {
		return
	}
	ctx := context.Background()
	if keys, err := database.REDIS.Keys(ctx, "scoreboard:*").Result(); err == nil && len(keys) > 0 {
		if err := database.REDIS.Del(ctx, keys...).Err(); err != nil {
			log.Printf("Failed to invalidate scoreboard cache: %v", err)
		}
	}
}

// MaxPossiblePoints sums the points of the currently active challenges
func MaxPossiblePoints() (int, error) {
	var total int64
	err := database.DB.Model(&models.Challenge{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum active challenge points: %w", err)
	}
	return int(total), nil
}

// CompletionPercentage is the share of the available points the user holds
func CompletionPercentage(totalPoints int, maxPossible int) float64 {
	if maxPossible <= 0 {
		return 0
	}
	return float64(totalPoints) / float64(maxPossible) * 100
}

// ProgressionSolve is one scoring step of a user's progression line
type ProgressionSolve struct {
	Date   time.Time
	Points int
}

// ProgressionUser is the input series of one charted user
type ProgressionUser struct {
	UserID   uint
	Username string
	Solves   []ProgressionSolve // ordered by date ascending
}

// ProgressionPoint is one point of the rendered step function: cumulative
// score at minutes elapsed since the earliest solve of the population
type ProgressionPoint struct {
	Minutes float64 `json:"minutes"`
	Points  int     `json:"points"`
}

// ProgressionSeries is the rendered score-over-time line of one user
type ProgressionSeries struct {
	UserID   uint               `json:"user_id"`
	Username string             `json:"username"`
	Points   []ProgressionPoint `json:"points"`
}

// BuildProgression renders cumulative score step functions. Every solve adds
// a step at its own offset and a final point at now holds the last score
// flat, so the chart extends to the present even without new solves.
func BuildProgression(users []ProgressionUser, origin time.Time, now time.Time) []ProgressionSeries {
	series := make([]ProgressionSeries, 0, len(users))
	for _, u := range users {
		points := []ProgressionPoint{{Minutes: 0, Points: 0}}
		total := 0
		for _, s := range u.Solves {
			total += s.Points
			points = append(points, ProgressionPoint{
				Minutes: s.Date.Sub(origin).Minutes(),
				Points:  total,
			})
		}
		points = append(points, ProgressionPoint{
			Minutes: now.Sub(origin).Minutes(),
			Points:  total,
		})
		series = append(series, ProgressionSeries{UserID: u.UserID, Username: u.Username, Points: points})
	}
	return series
}

// GetProgression charts the top-N users plus the requesting user when they
// score but sit outside the top N
func GetProgression(topN int, requester models.User) ([]ProgressionSeries, error) {
	scores, err := LoadUserScores()
	if err != nil {
		return nil, err
	}
	ranked := RankUsers(scores)

	selected := make([]UserScore, 0, topN+1)
	requesterIncluded := false
	for i, entry := range ranked {
		if i >= topN {
			break
		}
		selected = append(selected, entry.UserScore)
		if entry.UserID == requester.ID {
			requesterIncluded = true
		}
	}
	if !requesterIncluded {
		for _, entry := range ranked[min(topN, len(ranked)):] {
			if entry.UserID == requester.ID {
				selected = append(selected, entry.UserScore)
				break
			}
		}
	}
	if len(selected) == 0 {
		return []ProgressionSeries{}, nil
	}

	// The chart origin is the earliest solve of the competing population.
	// Mentor and superuser solves must not shift the offsets.
	var origin time.Time
	err = database.DB.Raw(`
        SELECT COALESCE(MIN(s.date), NOW())
        FROM solves s
        JOIN users u ON u.id = s.user_id
        WHERE u.is_superuser = false
          AND u.id NOT IN (
              SELECT ug.user_id FROM user_groups ug
              JOIN groups g ON g.id = ug.group_id
              WHERE g.name = ?
          )
    `, models.MentorsGroup).Scan(&origin).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest solve: %w", err)
	}

	users := make([]ProgressionUser, 0, len(selected))
	for _, s := range selected {
		var solves []models.Solve
		err := database.DB.Preload("Challenge").
			Where("user_id = ?", s.UserID).
			Order("date asc").
			Find(&solves).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load solves for user %d: %w", s.UserID, err)
		}

		pu := ProgressionUser{UserID: s.UserID, Username: s.Username}
		for _, solve := range solves {
			points := 0
			if solve.Challenge != nil {
				points = solve.Challenge.Points
			}
			pu.Solves = append(pu.Solves, ProgressionSolve{Date: solve.Date, Points: points})
		}
		users = append(users, pu)
	}

	return BuildProgression(users, origin, time.Now()), nil
}

// ProfileStats are the standing numbers shown on a user's profile page
type ProfileStats struct {
	Score      int `json:"score"`
	FlagsCount int `json:"flags_count"`
	Rank       int `json:"rank"`
}

// GetProfileStats computes a user's score, solve count, and rank (one more
// than the number of users holding strictly more points)
func GetProfileStats(user models.User) (ProfileStats, error) {
	var stats ProfileStats
	err := database.DB.Raw(`
        SELECT COALESCE(SUM(c.points), 0)
        FROM solves s JOIN challenges c ON c.id = s.challenge_id
        WHERE s.user_id = ?
    `, user.ID).Scan(&stats.Score).Error
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to sum user points: %w", err)
	}

	var flags int64
	if err := database.DB.Model(&models.Solve{}).Where("user_id = ?", user.ID).Count(&flags).Error; err != nil {
		return ProfileStats{}, fmt.Errorf("failed to count user solves: %w", err)
	}
	stats.FlagsCount = int(flags)

	var above int
	err = database.DB.Raw(`
        SELECT COUNT(*) FROM (
            SELECT s.user_id, SUM(c.points) AS total
            FROM solves s JOIN challenges c ON c.id = s.challenge_id
            GROUP BY s.user_id
        ) totals WHERE totals.total > ?
    `, stats.Score).Scan(&above).Error
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to compute rank: %w", err)
	}
	stats.Rank = above + 1

	return stats, nil
}
