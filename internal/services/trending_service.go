package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	trendingWindow   = 7 * 24 * time.Hour
	trendingLimit    = 10
	trendingCacheKey = "trending:hashtags"
	trendingCacheTTL = 5 * time.Minute
)

// TrendingService computes the top hashtags over the trailing seven days. Results are
// cached in Redis for a few minutes when a client is configured; the cache is never a
// correctness dependency.
type TrendingService struct {
	posts repositories.PostRepository
	cache *redis.Client
}

// NewTrendingService creates a new TrendingService. cache may be nil.
func NewTrendingService(posts repositories.PostRepository, cache *redis.Client) *TrendingService {
	return &TrendingService{posts: posts, cache: cache}
}

// ComputeTrending returns the top 10 hashtags by post count over the trailing 7 days.
// Ties are broken by the most recent contributing post's timestamp, newest first.
func (s *TrendingService) ComputeTrending(ctx context.Context) ([]models.TrendingTag, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, trendingCacheKey).Result(); err == nil {
			var cached []models.TrendingTag
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	since := time.Now().Add(-trendingWindow)
	posts, err := s.posts.GetTaggedPostsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	tags := rankHashtags(posts, trendingLimit)

	if s.cache != nil {
		if raw, err := json.Marshal(tags); err == nil {
			if err := s.cache.Set(ctx, trendingCacheKey, raw, trendingCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("trending cache write failed")
			}
		}
	}
	return tags, nil
}

// rankHashtags tallies one count per post for each of the post's distinct hashtags
// and ranks by count descending, then by the newest contributing post.
func rankHashtags(posts []models.Post, limit int) []models.TrendingTag {
	byTag := make(map[string]*models.TrendingTag)
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			entry, ok := byTag[tag]
			if !ok {
				entry = &models.TrendingTag{Tag: tag}
				byTag[tag] = entry
			}
			entry.PostCount++
			if post.CreatedAt.After(entry.LastTagged) {
				entry.LastTagged = post.CreatedAt
			}
		}
	}

	tags := make([]models.TrendingTag, 0, len(byTag))
	for _, entry := range byTag {
		tags = append(tags, *entry)
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].PostCount != tags[j].PostCount {
			return tags[i].PostCount > tags[j].PostCount
		}
		if !tags[i].LastTagged.Equal(tags[j].LastTagged) {
			return tags[i].LastTagged.After(tags[j].LastTagged)
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
