package repository

import (
	"context"
	"testing"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	action := domain.NewCreateEventAction("Take a break", "step away from the desk", start, start.Add(15*time.Minute), nil)
	s := testutil.NewTestSuggestion("Time for a break", testutil.WithAction(action))
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindBreakNeeded, got.Kind)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, "Time for a break", got.Title)
	require.NotNil(t, got.Action)
	assert.Equal(t, domain.ActionCreateEvent, got.Action.Kind)
	assert.True(t, got.Action.Start.Equal(start))
}

func TestSuggestionRepo_Upsert_ReplacesExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSuggestion("original")
	require.NoError(t, repo.Upsert(ctx, s))

	s.Title = "updated"
	s.Dismissed = true
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Title)
	assert.True(t, got.Dismissed)
}

func TestSuggestionRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestionRepo_ListActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	active := testutil.NewTestSuggestion("active",
		testutil.WithCreatedAt(now.Add(-10*time.Minute)),
		testutil.WithExpiresAt(now.Add(time.Hour)))
	expired := testutil.NewTestSuggestion("expired",
		testutil.WithCreatedAt(now.Add(-2*time.Hour)),
		testutil.WithExpiresAt(now.Add(-time.Hour)))
	dismissed := testutil.NewTestSuggestion("dismissed",
		testutil.WithExpiresAt(now.Add(time.Hour)),
		testutil.WithDismissed())
	older := testutil.NewTestSuggestion("older",
		testutil.WithCreatedAt(now.Add(-30*time.Minute)),
		testutil.WithExpiresAt(now.Add(time.Hour)))
	for _, s := range []*domain.PlannerSuggestion{active, expired, dismissed, older} {
		require.NoError(t, repo.Upsert(ctx, s))
	}

	got, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "expired", got[0].Title, "oldest first, expired rows included for the store sweep")
	assert.Equal(t, "older", got[1].Title)
	assert.Equal(t, "active", got[2].Title)
}

func TestSuggestionRepo_DeleteExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	keep := testutil.NewTestSuggestion("keep", testutil.WithExpiresAt(now.Add(time.Minute)))
	gone := testutil.NewTestSuggestion("gone", testutil.WithExpiresAt(now.Add(-time.Minute)))
	require.NoError(t, repo.Upsert(ctx, keep))
	require.NoError(t, repo.Upsert(ctx, gone))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestSuggestionRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSuggestionRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSuggestion("to delete")
	require.NoError(t, repo.Upsert(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), ErrNotFound)
}
