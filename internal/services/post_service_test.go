package services

import (
	"context"
	"testing"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture() (*PostService, *fakePostRepo) {
	posts := newFakePostRepo()
	users := newFakeUserRepo(models.User{ID: 1, Name: "Alice"}, models.User{ID: 2, Name: "Bob"})
	svc := NewPostService(posts, NewIdentityService(users, posts))
	return svc, posts
}

func TestCreatePostExtractsHashtagsAndCommunity(t *testing.T) {
	svc, _ := newPostFixture()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, models.Principal{ID: 1, Name: "Alice"},
		"Cleaned up #Riverside today #riverside!! #Earth_Day", "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"riverside", "earth_day"}, post.Hashtags)
	assert.Equal(t, "General", post.Community)
	assert.Equal(t, "Alice", post.AuthorName)
	assert.Equal(t, models.MediaTypeNone, post.Media.Type)

	withLocation, err := svc.CreatePost(ctx,
		models.Principal{ID: 1, Name: "Alice", CommunityLocation: "Harborview"},
		"no tags here", "https://cdn.example.com/p.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Harborview", withLocation.Community)
	assert.Equal(t, models.MediaTypeImage, withLocation.Media.Type)
	assert.Empty(t, withLocation.Hashtags)
}

func TestCreatePostRejectsBlankText(t *testing.T) {
	svc, _ := newPostFixture()

	_, err := svc.CreatePost(context.Background(), models.Principal{ID: 1}, "  \t ", "", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListPostsFiltersCommunityNewestFirst(t *testing.T) {
	svc, _ := newPostFixture()
	ctx := context.Background()
	harbor := models.Principal{ID: 1, Name: "Alice", CommunityLocation: "Harborview"}
	general := models.Principal{ID: 2, Name: "Bob"}

	_, err := svc.CreatePost(ctx, harbor, "harbor one", "", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, general, "general one", "", "")
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, harbor)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "harbor one", posts[0].Text)
}

func TestUpdatePostOwnershipAndHashtagRederive(t *testing.T) {
	svc, _ := newPostFixture()
	ctx := context.Background()
	alice := models.Principal{ID: 1, Name: "Alice"}
	bob := models.Principal{ID: 2, Name: "Bob"}

	post, err := svc.CreatePost(ctx, alice, "before #old", "", "")
	require.NoError(t, err)
	id := post.ID.Hex()

	_, err = svc.UpdatePost(ctx, bob, id, "sneaky edit")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.UpdatePost(ctx, alice, "64b000000000000000000000", "whatever")
	assert.ErrorIs(t, err, models.ErrNotFound)

	updated, err := svc.UpdatePost(ctx, alice, id, "after #new #New")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, updated.Hashtags)
	assert.Equal(t, "after #new #New", updated.Text)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, posts := newPostFixture()
	ctx := context.Background()
	alice := models.Principal{ID: 1, Name: "Alice"}
	bob := models.Principal{ID: 2, Name: "Bob"}

	post, err := svc.CreatePost(ctx, alice, "to be deleted", "", "")
	require.NoError(t, err)
	id := post.ID.Hex()

	assert.ErrorIs(t, svc.DeletePost(ctx, bob, id), models.ErrForbidden)
	require.NoError(t, svc.DeletePost(ctx, alice, id))

	_, err = posts.GetPostByID(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListPostsByAuthor(t *testing.T) {
	svc, _ := newPostFixture()
	ctx := context.Background()
	alice := models.Principal{ID: 1, Name: "Alice"}

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, alice, "post", "", "")
		require.NoError(t, err)
	}

	posts, err := svc.ListPostsByAuthor(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}
