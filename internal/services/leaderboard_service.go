package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	leaderboardLimit    = 10
	leaderboardCacheKey = "leaderboard:verified"
	leaderboardCacheTTL = 5 * time.Minute
)

// LeaderboardService ranks users by their verified action counts, joining the
// identity store for display names. Ranking is deterministic: count descending, user
// id ascending on ties.
type LeaderboardService struct {
	actions repositories.ActionRepository
	users   repositories.UserRepository
	cache   *redis.Client
}

// NewLeaderboardService creates a new LeaderboardService. cache may be nil.
func NewLeaderboardService(actions repositories.ActionRepository, users repositories.UserRepository, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{actions: actions, users: users, cache: cache}
}

// ComputeLeaderboard returns the top 10 users ranked 1..10 by verified action count.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var cached []models.LeaderboardEntry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	counts, err := s.actions.TopUserActionCounts(leaderboardLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(counts))
	for i, c := range counts {
		ids[i] = c.UserID
	}

	names := make(map[uint]string, len(ids))
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	entries := make([]models.LeaderboardEntry, len(counts))
	for i, c := range counts {
		name, ok := names[c.UserID]
		if !ok || name == "" {
			name = models.FallbackDisplayName
		}
		entries[i] = models.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      c.UserID,
			Name:        name,
			ActionCount: c.ActionCount,
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("leaderboard cache write failed")
			}
		}
	}
	return entries, nil
}
