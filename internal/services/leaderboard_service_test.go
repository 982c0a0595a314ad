package services

import (
	"context"
	"testing"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLeaderboardRanksAndJoinsNames(t *testing.T) {
	actions := &fakeActionRepo{counts: []repositories.ActionCount{
		{UserID: 2, ActionCount: 9},
		{UserID: 1, ActionCount: 4},
		{UserID: 5, ActionCount: 1},
	}}
	users := newFakeUserRepo(
		models.User{ID: 1, Name: "Alice"},
		models.User{ID: 2, Name: "Bob"},
	)
	svc := NewLeaderboardService(actions, users, nil)

	entries, err := svc.ComputeLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Bob", entries[0].Name)
	assert.Equal(t, int64(9), entries[0].ActionCount)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Alice", entries[1].Name)

	// User 5 has no identity row; the generic label stands in.
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, models.FallbackDisplayName, entries[2].Name)
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	svc := NewLeaderboardService(&fakeActionRepo{}, newFakeUserRepo(), nil)

	entries, err := svc.ComputeLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
