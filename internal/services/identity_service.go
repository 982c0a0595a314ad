package services

import (
	"context"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

const backfillTimeout = 10 * time.Second

// IdentityService resolves display names across the two stores: the relational
// identity store is authoritative, content documents only cache a name. Resolution
// never fails the caller; the worst case is the generic fallback label.
type IdentityService struct {
	users repositories.UserRepository
	posts repositories.PostRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(users repositories.UserRepository, posts repositories.PostRepository) *IdentityService {
	return &IdentityService{users: users, posts: posts}
}

// ResolveDisplayName resolves a principal to a display name. Fallback chain:
// name claim, admin sentinel, identity store lookup, generic label.
func (s *IdentityService) ResolveDisplayName(ctx context.Context, p models.Principal) string {
	if p.Name != "" {
		return p.Name
	}
	if p.IsAdmin {
		return models.AdminDisplayName
	}

	user, err := s.users.GetUserByID(p.ID)
	if err != nil || user.Name == "" {
		return models.FallbackDisplayName
	}
	return user.Name
}

// BackfillAuthorNames inspects a batch of posts just read and, for every author whose
// cached name is still the placeholder, asynchronously rewrites their documents once
// the identity store has a real name. The write is detached from the request and
// droppable: failures are logged and swallowed.
func (s *IdentityService) BackfillAuthorNames(posts []models.Post) {
	pending := make(map[uint]struct{})
	for _, p := range posts {
		if p.AuthorName == models.FallbackDisplayName || p.AuthorName == "" {
			pending[p.AuthorID] = struct{}{}
		}
	}

	for authorID := range pending {
		go s.backfillAuthor(authorID)
	}
}

func (s *IdentityService) backfillAuthor(authorID uint) {
	user, err := s.users.GetUserByID(authorID)
	if err != nil || user.Name == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
	defer cancel()

	for _, placeholder := range []string{models.FallbackDisplayName, ""} {
		if _, err := s.posts.RewriteAuthorName(ctx, authorID, placeholder, user.Name); err != nil {
			logrus.WithError(err).WithField("author_id", authorID).Warn("author name backfill failed")
			return
		}
	}
}
