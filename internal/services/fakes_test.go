package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. Mutations hold a mutex so tests can
// exercise concurrent paths.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]models.User
	fail  bool
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("identity store unreachable")
	}
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("identity store unreachable")
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeActionRepo struct {
	counts []repositories.ActionCount
}

func (r *fakeActionRepo) TopUserActionCounts(limit int) ([]repositories.ActionCount, error) {
	if len(r.counts) > limit {
		return r.counts[:limit], nil
	}
	return r.counts, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetPostsByCommunity(_ context.Context, community string, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.Community == community {
			out = append(out, *p)
		}
	}
	sortPostsNewestFirst(out)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	sortPostsNewestFirst(out)
	return out, nil
}

func (r *fakePostRepo) UpdatePostText(_ context.Context, id, text string, hashtags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Text = text
	p.Hashtags = hashtags
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) GetTaggedPostsSince(_ context.Context, since time.Time) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if len(p.Hashtags) > 0 && !p.CreatedAt.Before(since) {
			out = append(out, *p)
		}
	}
	sortPostsNewestFirst(out)
	return out, nil
}

func (r *fakePostRepo) RewriteAuthorName(_ context.Context, authorID uint, placeholder, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if p.AuthorID == authorID && p.AuthorName == placeholder {
			p.AuthorName = name
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) GetContentRef(_ context.Context, contentID string) (*repositories.ContentRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &repositories.ContentRef{AuthorID: p.AuthorID, Text: p.Text}, nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, contentID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return false, nil
	}
	removed := removeFromSet(&p.Likes, userID)
	return removed, nil
}

func (r *fakePostRepo) AddLike(_ context.Context, contentID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return false, nil
	}
	added := addToSet(&p.Likes, userID)
	return added, nil
}

func (r *fakePostRepo) AppendComment(_ context.Context, contentID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return models.ErrNotFound
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

func (r *fakePostRepo) FindComment(_ context.Context, contentID, commentID string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return findComment(p.Comments, commentID)
}

func (r *fakePostRepo) SetCommentText(_ context.Context, contentID, commentID string, authorID uint, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return models.ErrNotFound
	}
	return setCommentText(p.Comments, commentID, authorID, text)
}

func (r *fakePostRepo) RemoveComment(_ context.Context, contentID, commentID string, authorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[contentID]
	if !ok {
		return models.ErrNotFound
	}
	return removeComment(&p.Comments, commentID, authorID)
}

type fakeStoryRepo struct {
	mu      sync.Mutex
	stories map[string]*models.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: make(map[string]*models.Story)}
}

func (r *fakeStoryRepo) CreateStory(_ context.Context, story *models.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	story.ID = primitive.NewObjectID()
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	if story.Likes == nil {
		story.Likes = []uint{}
	}
	if story.Comments == nil {
		story.Comments = []models.Comment{}
	}
	cp := *story
	r.stories[story.ID.Hex()] = &cp
	return nil
}

func (r *fakeStoryRepo) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoryRepo) GetStoriesByCommunity(_ context.Context, community string) ([]models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Story
	for _, s := range r.stories {
		if s.Community == community {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) CountStoriesByAuthorSince(_ context.Context, authorID uint, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.stories {
		if s.AuthorID == authorID && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeStoryRepo) SetArchived(_ context.Context, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return models.ErrNotFound
	}
	s.IsArchived = archived
	return nil
}

func (r *fakeStoryRepo) IncrementShares(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return models.ErrNotFound
	}
	s.Shares++
	return nil
}

func (r *fakeStoryRepo) DeleteStory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stories[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.stories, id)
	return nil
}

func (r *fakeStoryRepo) DeleteExpiredStories(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.stories {
		if !s.IsArchived && !s.CreatedAt.After(cutoff) {
			delete(r.stories, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeStoryRepo) GetContentRef(_ context.Context, contentID string) (*repositories.ContentRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &repositories.ContentRef{AuthorID: s.AuthorID}, nil
}

func (r *fakeStoryRepo) RemoveLike(_ context.Context, contentID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return false, nil
	}
	return removeFromSet(&s.Likes, userID), nil
}

func (r *fakeStoryRepo) AddLike(_ context.Context, contentID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return false, nil
	}
	return addToSet(&s.Likes, userID), nil
}

func (r *fakeStoryRepo) AppendComment(_ context.Context, contentID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return models.ErrNotFound
	}
	s.Comments = append(s.Comments, comment)
	return nil
}

func (r *fakeStoryRepo) FindComment(_ context.Context, contentID, commentID string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return findComment(s.Comments, commentID)
}

func (r *fakeStoryRepo) SetCommentText(_ context.Context, contentID, commentID string, authorID uint, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return models.ErrNotFound
	}
	return setCommentText(s.Comments, commentID, authorID, text)
}

func (r *fakeStoryRepo) RemoveComment(_ context.Context, contentID, commentID string, authorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[contentID]
	if !ok {
		return models.ErrNotFound
	}
	return removeComment(&s.Comments, commentID, authorID)
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	fail          bool
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("notification store unreachable")
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipient(_ context.Context, recipientID uint, limit int64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := len(r.notifications) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.notifications[i].RecipientID == recipientID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, notif := range r.notifications {
		if notif.RecipientID == recipientID && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string, recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID.Hex() == id && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID && !r.notifications[i].Read {
			r.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Notification
	var n int64
	for _, notif := range r.notifications {
		if notif.CreatedAt.After(cutoff) {
			kept = append(kept, notif)
		} else {
			n++
		}
	}
	r.notifications = kept
	return n, nil
}

func (r *fakeNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// shared helpers

func sortPostsNewestFirst(posts []models.Post) {
	for i := 1; i < len(posts); i++ {
		for j := i; j > 0 && posts[j].CreatedAt.After(posts[j-1].CreatedAt); j-- {
			posts[j], posts[j-1] = posts[j-1], posts[j]
		}
	}
}

func addToSet(set *[]uint, v uint) bool {
	for _, existing := range *set {
		if existing == v {
			return false
		}
	}
	*set = append(*set, v)
	return true
}

func removeFromSet(set *[]uint, v uint) bool {
	for i, existing := range *set {
		if existing == v {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return true
		}
	}
	return false
}

func findComment(comments []models.Comment, commentID string) (*models.Comment, error) {
	for i := range comments {
		if comments[i].ID == commentID {
			cp := comments[i]
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func setCommentText(comments []models.Comment, commentID string, authorID uint, text string) error {
	for i := range comments {
		if comments[i].ID == commentID && comments[i].AuthorID == authorID {
			comments[i].Text = text
			return nil
		}
	}
	return models.ErrNotFound
}

func removeComment(comments *[]models.Comment, commentID string, authorID uint) error {
	for i := range *comments {
		if (*comments)[i].ID == commentID && (*comments)[i].AuthorID == authorID {
			*comments = append((*comments)[:i], (*comments)[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
