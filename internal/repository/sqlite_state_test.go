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

func TestPlannerStateRepo_Get_FirstRunDefaultsToOpen(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlannerStateRepo(db)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateOpen, got.RhythmState)
	assert.Nil(t, got.FocusStartedAt)
}

func TestPlannerStateRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlannerStateRepo(db)
	ctx := context.Background()

	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	state := &PlannerState{
		RhythmState:    domain.StateFocus,
		FocusStartedAt: &started,
		UpdatedAt:      started.Add(5 * time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, state))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateFocus, got.RhythmState)
	require.NotNil(t, got.FocusStartedAt)
	assert.True(t, got.FocusStartedAt.Equal(started))
}

func TestPlannerStateRepo_Upsert_SingleRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlannerStateRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &PlannerState{RhythmState: domain.StateFocus, UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &PlannerState{RhythmState: domain.StateRecover, UpdatedAt: now.Add(time.Hour)}))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM planner_state`).Scan(&count))
	assert.Equal(t, 1, count)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateRecover, got.RhythmState)
	assert.Nil(t, got.FocusStartedAt, "focus start cleared when absent")
}
