package models

import "time"

// VerifiedAction records a community action that passed external verification
// (PostgreSQL). The leaderboard ranks users by counting these rows.
type VerifiedAction struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Kind       string    `json:"kind" gorm:"size:40"`
	VerifiedAt time.Time `json:"verified_at"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	ActionCount int64  `json:"action_count"`
}
