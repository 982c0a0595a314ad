package repositories

import (
	"github.com/ecovibe/community/backend/internal/models"
	"gorm.io/gorm"
)

// ActionCount is the per-user tally of verified actions the leaderboard ranks on.
type ActionCount struct {
	UserID      uint  `json:"user_id"`
	ActionCount int64 `json:"action_count"`
}

// ActionRepository defines the read surface over verified action records.
type ActionRepository interface {
	TopUserActionCounts(limit int) ([]ActionCount, error)
}

// PostgresActionRepository implements ActionRepository for PostgreSQL
type PostgresActionRepository struct {
	db *gorm.DB
}

// NewPostgresActionRepository creates a new PostgresActionRepository
func NewPostgresActionRepository(db *gorm.DB) *PostgresActionRepository {
	return &PostgresActionRepository{db: db}
}

// TopUserActionCounts returns the users with the most verified actions, count
// descending with user id ascending as the tie-break.
func (r *PostgresActionRepository) TopUserActionCounts(limit int) ([]ActionCount, error) {
	var counts []ActionCount
	err := r.db.Model(&models.VerifiedAction{}).
		Select("user_id, COUNT(*) AS action_count").
		Group("user_id").
		Order("action_count DESC, user_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
