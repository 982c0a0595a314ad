package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
)

// A community listing returns at most this many posts.
const postListLimit = 100

// PostService owns the persistent post lifecycle: create, list, update, delete.
// Engagement on posts (likes, comments) goes through the EngagementService.
type PostService struct {
	posts    repositories.PostRepository
	identity *IdentityService
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, identity *IdentityService) *PostService {
	return &PostService{posts: posts, identity: identity}
}

// CreatePost creates a post for the principal's community. Hashtags are derived from
// the text; the author name is resolved and cached on the document.
func (s *PostService) CreatePost(ctx context.Context, p models.Principal, text, mediaURL, mediaContentType string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", models.ErrValidation)
	}

	media := models.Media{Type: models.MediaTypeNone}
	if mediaURL != "" {
		media = models.Media{URL: mediaURL, Type: models.MediaTypeFromContentType(mediaContentType)}
	}

	post := &models.Post{
		AuthorID:   p.ID,
		AuthorName: s.identity.ResolveDisplayName(ctx, p),
		Community:  p.Community(),
		Text:       text,
		Media:      media,
		Hashtags:   models.ExtractHashtags(text),
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns the newest posts in the principal's community, capped at 100.
// Reading a batch also triggers the asynchronous author-name backfill.
func (s *PostService) ListPosts(ctx context.Context, p models.Principal) ([]models.Post, error) {
	posts, err := s.posts.GetPostsByCommunity(ctx, p.Community(), postListLimit)
	if err != nil {
		return nil, err
	}

	s.identity.BackfillAuthorNames(posts)
	return posts, nil
}

// GetPost retrieves a single post by id.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// ListPostsByAuthor returns all of one author's posts, newest first.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.posts.GetPostsByAuthor(ctx, authorID)
}

// UpdatePost replaces the text of the principal's own post and re-derives its
// hashtags.
func (s *PostService) UpdatePost(ctx context.Context, p models.Principal, id, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", models.ErrValidation)
	}

	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != p.ID {
		return nil, models.ErrForbidden
	}

	hashtags := models.ExtractHashtags(text)
	if err := s.posts.UpdatePostText(ctx, id, text, hashtags); err != nil {
		return nil, err
	}

	post.Text = text
	post.Hashtags = hashtags
	return post, nil
}

// DeletePost deletes the principal's own post. Embedded comments are removed with the
// aggregate.
func (s *PostService) DeletePost(ctx context.Context, p models.Principal, id string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != p.ID {
		return models.ErrForbidden
	}

	return s.posts.DeletePost(ctx, id)
}
