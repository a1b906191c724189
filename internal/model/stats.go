package model

// UserStats is derived from the ledger and today's date. It is never the
// source of truth.
type UserStats struct {
	TotalSolved   int                `json:"total_solved"`
	ByDifficulty  map[Difficulty]int `json:"by_difficulty"`
	CurrentStreak int                `json:"current_streak"`
	LongestStreak int                `json:"longest_streak"`

	// Heatmap holds one symbol per day of the trailing window, oldest first.
	Heatmap string `json:"heatmap"`
}
