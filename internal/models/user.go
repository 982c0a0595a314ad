package models

import "gorm.io/gorm"

// User is a row in the authoritative identity store (PostgreSQL). This core reads it
// only for display-name resolution and the leaderboard join, never for authorization.
type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"`
}
