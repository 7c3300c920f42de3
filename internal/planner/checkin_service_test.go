package planner

import (
	"context"
	"testing"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/evanmoray/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInService_Create_FillsDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCheckInRepo(db)
	svc := NewCheckInService(repo, nil)
	ctx := context.Background()

	ci := &domain.CheckIn{Task: "write report", Slot: testBase.Add(time.Hour)}
	require.NoError(t, svc.Create(ctx, ci))
	assert.NotEmpty(t, ci.ID)
	assert.Equal(t, "task", ci.Category)
	assert.False(t, ci.LoggedAt.IsZero())

	got, err := svc.GetByID(ctx, ci.ID)
	require.NoError(t, err)
	assert.Equal(t, "write report", got.Task)
}

func TestCheckInService_Create_RejectsEmptyTask(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCheckInService(repository.NewSQLiteCheckInRepo(db), nil)

	err := svc.Create(context.Background(), &domain.CheckIn{Slot: testBase})
	assert.Error(t, err)
}

func TestCheckInService_MutationsTriggerAnalysis(t *testing.T) {
	fx := newTestPlanner(t, nil)
	svc := NewCheckInService(fx.checkIns, fx.svc)
	ctx := context.Background()

	anchor := &domain.CheckIn{
		Task:     "standup",
		Slot:     testBase.Add(10 * time.Minute),
		IsAnchor: true,
	}
	require.NoError(t, svc.Create(ctx, anchor))

	active, err := fx.svc.Suggestions(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, byKind(active, domain.KindAnchorReminder),
		"creating a check-in runs the data-updated pass")
}

func TestCheckInService_MarkDoneAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCheckInRepo(db)
	svc := NewCheckInService(repo, nil)
	ctx := context.Background()

	ci := &domain.CheckIn{Task: "task", Slot: testBase}
	require.NoError(t, svc.Create(ctx, ci))
	require.NoError(t, svc.MarkDone(ctx, ci.ID))

	got, err := svc.GetByID(ctx, ci.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	require.NoError(t, svc.Delete(ctx, ci.ID))
	_, err = svc.GetByID(ctx, ci.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWaveService_Validation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewWaveService(repository.NewSQLiteWaveRepo(db))
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.Wave{StartHour: 6, EndHour: 12}), "name required")
	assert.Error(t, svc.Create(ctx, &domain.Wave{Name: "bad", StartHour: 12, EndHour: 6}), "hours must be ordered")

	w := &domain.Wave{Name: "Morning", Color: "#aadd88", StartHour: 6, EndHour: 12}
	require.NoError(t, svc.Create(ctx, w))
	assert.NotEmpty(t, w.ID)

	waves, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, waves, 1)
}
