package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
)

// StoryService owns the ephemeral story lifecycle: quota-checked upload, listing,
// archive toggle, share counting and explicit deletion. Passive TTL expiry is the
// Sweeper's job.
type StoryService struct {
	stories  repositories.StoryRepository
	identity *IdentityService
	notifier *NotificationService
}

// NewStoryService creates a new StoryService
func NewStoryService(stories repositories.StoryRepository, identity *IdentityService, notifier *NotificationService) *StoryService {
	return &StoryService{stories: stories, identity: identity, notifier: notifier}
}

// CreateStory uploads a story. The media type is inferred from the content type the
// media intake reported; only image and video are allowed. The per-author quota is a
// count of the trailing 24 hours, checked before the insert: concurrent uploads can
// occasionally slip past the cap, which is an accepted race, not a bug.
func (s *StoryService) CreateStory(ctx context.Context, p models.Principal, mediaURL, contentType string) (*models.Story, error) {
	if mediaURL == "" {
		return nil, fmt.Errorf("%w: media URL is required", models.ErrValidation)
	}

	mediaType := models.MediaTypeFromContentType(contentType)
	if mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		return nil, fmt.Errorf("%w: story media must be an image or a video", models.ErrValidation)
	}

	since := time.Now().Add(-models.StoryTTL)
	count, err := s.stories.CountStoriesByAuthorSince(ctx, p.ID, since)
	if err != nil {
		return nil, err
	}
	if count >= models.DailyStoryQuota {
		return nil, fmt.Errorf("%w: at most %d stories per 24 hours", models.ErrQuotaExceeded, models.DailyStoryQuota)
	}

	story := &models.Story{
		AuthorID:   p.ID,
		AuthorName: s.identity.ResolveDisplayName(ctx, p),
		Community:  p.Community(),
		Media:      models.Media{URL: mediaURL, Type: mediaType},
	}

	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// ListStories returns one community's stories, newest first. Archived stories are
// included; hiding them is a presentation concern.
func (s *StoryService) ListStories(ctx context.Context, community string) ([]models.Story, error) {
	return s.stories.GetStoriesByCommunity(ctx, community)
}

// ToggleArchive flips the archive flag on the principal's own story and returns the
// new state. An archived story is skipped by the TTL sweep.
func (s *StoryService) ToggleArchive(ctx context.Context, p models.Principal, id string) (bool, error) {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return false, err
	}
	if story.AuthorID != p.ID {
		return false, models.ErrForbidden
	}

	archived := !story.IsArchived
	if err := s.stories.SetArchived(ctx, id, archived); err != nil {
		return false, err
	}
	return archived, nil
}

// DeleteStory deletes the principal's own story.
func (s *StoryService) DeleteStory(ctx context.Context, p models.Principal, id string) error {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return err
	}
	if story.AuthorID != p.ID {
		return models.ErrForbidden
	}

	return s.stories.DeleteStory(ctx, id)
}

// ShareStory bumps the story's monotonic share counter and notifies the owner unless
// the sharer is the owner.
func (s *StoryService) ShareStory(ctx context.Context, p models.Principal, id string) error {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.stories.IncrementShares(ctx, id); err != nil {
		return err
	}

	senderName := s.identity.ResolveDisplayName(ctx, p)
	s.notifier.Emit(ctx, &models.Notification{
		RecipientID: story.AuthorID,
		SenderID:    p.ID,
		SenderName:  senderName,
		Type:        models.NotificationStoryShare,
		RefID:       id,
		RefKind:     "story",
		Message:     fmt.Sprintf("%s shared your story", senderName),
	})
	return nil
}
