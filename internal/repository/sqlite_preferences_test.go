package repository

import (
	"context"
	"testing"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRepo_Get_EmptyReturnsDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(db)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), *got)
}

func TestPreferencesRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(db)
	ctx := context.Background()

	p := domain.DefaultPreferences()
	p.FocusBreakThresholdMin = 120
	p.AutoScheduleBreaks = true
	p.WorkingHoursStartMin = 8 * 60
	p.RequireConfirmation = false
	require.NoError(t, repo.Upsert(ctx, &p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, got.FocusBreakThresholdMin)
	assert.True(t, got.AutoScheduleBreaks)
	assert.Equal(t, 8*60, got.WorkingHoursStartMin)
	assert.False(t, got.RequireConfirmation)
}

func TestPreferencesRepo_Get_IgnoresMalformedValues(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)`, prefFocusBreakThreshold, "not-a-number")
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences().FocusBreakThresholdMin, got.FocusBreakThresholdMin)
}

func TestPreferencesRepo_Get_IgnoresUnknownKeys(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES ('legacy_setting', '42')`)
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), *got)
}
