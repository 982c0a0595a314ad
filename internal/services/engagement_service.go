package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/google/uuid"
)

// Notification snippets are cut to this many runes.
const snippetLength = 80

// ContentKind selects which aggregate root an engagement operation targets.
type ContentKind string

const (
	ContentKindPost  ContentKind = "post"
	ContentKindStory ContentKind = "story"
)

func (k ContentKind) likeType() string {
	if k == ContentKindStory {
		return models.NotificationStoryLike
	}
	return models.NotificationPostLike
}

func (k ContentKind) commentType() string {
	if k == ContentKindStory {
		return models.NotificationStoryComment
	}
	return models.NotificationPostComment
}

// EngagementService implements the like toggle and comment operations uniformly over
// posts and stories, and triggers the notification fan-out.
type EngagementService struct {
	posts    repositories.PostRepository
	stories  repositories.StoryRepository
	identity *IdentityService
	notifier *NotificationService
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(posts repositories.PostRepository, stories repositories.StoryRepository, identity *IdentityService, notifier *NotificationService) *EngagementService {
	return &EngagementService{posts: posts, stories: stories, identity: identity, notifier: notifier}
}

func (s *EngagementService) repo(kind ContentKind) (repositories.EngagementRepository, error) {
	switch kind {
	case ContentKindPost:
		return s.posts, nil
	case ContentKindStory:
		return s.stories, nil
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", models.ErrValidation, kind)
	}
}

// ToggleLike is a true set-membership toggle on the content's likes set: present
// means unlike, absent means like. Returns whether the principal now likes the
// content. Each branch is a single atomic set mutation, so concurrent toggles from
// different principals never corrupt each other's membership. A fresh like of someone
// else's content fans out a notification.
func (s *EngagementService) ToggleLike(ctx context.Context, p models.Principal, kind ContentKind, contentID string) (bool, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return false, err
	}

	ref, err := repo.GetContentRef(ctx, contentID)
	if err != nil {
		return false, err
	}

	removed, err := repo.RemoveLike(ctx, contentID, p.ID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	added, err := repo.AddLike(ctx, contentID, p.ID)
	if err != nil {
		return false, err
	}
	if !added {
		// the document vanished between the reference read and the mutation
		return false, models.ErrNotFound
	}

	if ref.AuthorID != p.ID {
		senderName := s.identity.ResolveDisplayName(ctx, p)
		s.notifier.Emit(ctx, &models.Notification{
			RecipientID: ref.AuthorID,
			SenderID:    p.ID,
			SenderName:  senderName,
			Type:        kind.likeType(),
			RefID:       contentID,
			RefKind:     string(kind),
			Message:     fmt.Sprintf("%s liked your %s", senderName, kind),
			Snippet:     snippet(ref.Text),
		})
	}
	return true, nil
}

// AddComment appends a comment to the content's ordered comment list and notifies the
// content owner unless the commenter is the owner.
func (s *EngagementService) AddComment(ctx context.Context, p models.Principal, kind ContentKind, contentID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", models.ErrValidation)
	}

	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}

	ref, err := repo.GetContentRef(ctx, contentID)
	if err != nil {
		return nil, err
	}

	senderName := s.identity.ResolveDisplayName(ctx, p)
	comment := models.Comment{
		ID:         uuid.NewString(),
		AuthorID:   p.ID,
		AuthorName: senderName,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	if err := repo.AppendComment(ctx, contentID, comment); err != nil {
		return nil, err
	}

	if ref.AuthorID != p.ID {
		s.notifier.Emit(ctx, &models.Notification{
			RecipientID: ref.AuthorID,
			SenderID:    p.ID,
			SenderName:  senderName,
			Type:        kind.commentType(),
			RefID:       contentID,
			RefKind:     string(kind),
			Message:     fmt.Sprintf("%s commented on your %s", senderName, kind),
			Snippet:     snippet(text),
		})
	}
	return &comment, nil
}

// UpdateComment rewrites a comment's text. Only the comment's original author may do
// this; anyone else gets ErrForbidden and the comment is unchanged.
func (s *EngagementService) UpdateComment(ctx context.Context, p models.Principal, kind ContentKind, contentID, commentID, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment text is required", models.ErrValidation)
	}

	repo, err := s.repo(kind)
	if err != nil {
		return err
	}

	comment, err := repo.FindComment(ctx, contentID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != p.ID {
		return models.ErrForbidden
	}

	return repo.SetCommentText(ctx, contentID, commentID, p.ID, text)
}

// DeleteComment removes a comment, preserving the relative order of the remaining
// ones. Only the comment's original author may do this.
func (s *EngagementService) DeleteComment(ctx context.Context, p models.Principal, kind ContentKind, contentID, commentID string) error {
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}

	comment, err := repo.FindComment(ctx, contentID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != p.ID {
		return models.ErrForbidden
	}

	return repo.RemoveComment(ctx, contentID, commentID, p.ID)
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength])
}
