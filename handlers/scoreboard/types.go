package scoreboard

// Error message constants
const (
	ErrFailedFetchScores = "Failed to fetch scoreboard"
	ErrFailedExport      = "Failed to export standings"
)

// LeaderboardEntry is one public leaderboard row with the requester marker
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	Points int    `json:"points"`
	Solved int    `json:"solved"`
	IsMe   bool   `json:"isMe"`
	Avatar string `json:"avatar"`
}

// CompletionResponse is the caller's share of the available points
type CompletionResponse struct {
	TotalPoints       int     `json:"total_points"`
	MaxPossiblePoints int     `json:"max_possible_points"`
	Percentage        float64 `json:"percentage"`
}

// DashboardStats are the mentor dashboard headline numbers
type DashboardStats struct {
	TotalUsers      int64         `json:"total_users"`
	TotalChallenges int64         `json:"total_challenges"`
	TotalSolves     int64         `json:"total_solves"`
	RecentSolves    []RecentSolve `json:"recent_solves"`
}

// RecentSolve is one row of the mentor dashboard activity log
type RecentSolve struct {
	User      string `json:"user"`
	Challenge string `json:"challenge"`
	Points    int    `json:"points"`
	Date      string `json:"date"`
}
