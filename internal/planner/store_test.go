package planner

import (
	"testing"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func TestStore_Insert_DedupPerKind(t *testing.T) {
	st := newSuggestionStore(5)

	first := testutil.NewTestSuggestion("first", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ := st.Insert(first, storeNow)
	require.True(t, inserted)

	dup := testutil.NewTestSuggestion("dup", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ = st.Insert(dup, storeNow)
	assert.False(t, inserted, "second active suggestion of the same kind rejected")

	other := testutil.NewTestSuggestion("other kind",
		testutil.WithKind(domain.KindFocusBlock),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ = st.Insert(other, storeNow)
	assert.True(t, inserted)
}

func TestStore_Insert_AnchorDedupPerAnchorID(t *testing.T) {
	st := newSuggestionStore(5)

	a := testutil.NewTestSuggestion("anchor a",
		testutil.WithKind(domain.KindAnchorReminder),
		testutil.WithAnchorID("anchor-1"),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ := st.Insert(a, storeNow)
	require.True(t, inserted)

	sameAnchor := testutil.NewTestSuggestion("anchor a again",
		testutil.WithKind(domain.KindAnchorReminder),
		testutil.WithAnchorID("anchor-1"),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ = st.Insert(sameAnchor, storeNow)
	assert.False(t, inserted)

	otherAnchor := testutil.NewTestSuggestion("anchor b",
		testutil.WithKind(domain.KindAnchorReminder),
		testutil.WithAnchorID("anchor-2"),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ = st.Insert(otherAnchor, storeNow)
	assert.True(t, inserted, "different anchor ids coexist")
}

func TestStore_Insert_DedupIgnoresExpiredAndDismissed(t *testing.T) {
	st := newSuggestionStore(5)

	expired := testutil.NewTestSuggestion("expired", testutil.WithExpiresAt(storeNow.Add(-time.Minute)))
	_, _ = st.Insert(expired, storeNow.Add(-2*time.Hour))

	fresh := testutil.NewTestSuggestion("fresh", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, _ := st.Insert(fresh, storeNow)
	assert.True(t, inserted, "expired record does not block a new one")
}

func TestStore_Eviction_DismissedFirstThenRankThenAge(t *testing.T) {
	st := newSuggestionStore(3)

	dismissed := testutil.NewTestSuggestion("dismissed",
		testutil.WithKind(domain.KindFocusBlock),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithDismissed(),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	lowOld := testutil.NewTestSuggestion("low old",
		testutil.WithKind(domain.KindFrictionWarning),
		testutil.WithPriority(domain.PriorityLow),
		testutil.WithCreatedAt(storeNow.Add(-time.Hour)),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	highNew := testutil.NewTestSuggestion("high new",
		testutil.WithKind(domain.KindBreakNeeded),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithCreatedAt(storeNow),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	for _, s := range []*domain.PlannerSuggestion{dismissed, lowOld, highNew} {
		inserted, _ := st.Insert(s, storeNow)
		require.True(t, inserted)
	}

	next := testutil.NewTestSuggestion("incoming",
		testutil.WithKind(domain.KindReflectionReminder),
		testutil.WithPriority(domain.PriorityMedium),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, evicted := st.Insert(next, storeNow)
	require.True(t, inserted)
	require.Equal(t, []string{dismissed.ID}, evicted, "dismissed records go first")

	another := testutil.NewTestSuggestion("incoming 2",
		testutil.WithKind(domain.KindAnchorReminder),
		testutil.WithAnchorID("a"),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	inserted, evicted = st.Insert(another, storeNow)
	require.True(t, inserted)
	require.Equal(t, []string{lowOld.ID}, evicted, "then the lowest rank")

	_, ok := st.Get(highNew.ID)
	assert.True(t, ok, "high priority survives")
}

func TestStore_Sweep_RemovesExpired(t *testing.T) {
	st := newSuggestionStore(5)

	gone := testutil.NewTestSuggestion("gone", testutil.WithExpiresAt(storeNow))
	keep := testutil.NewTestSuggestion("keep",
		testutil.WithKind(domain.KindFocusBlock),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	_, _ = st.Insert(gone, storeNow.Add(-time.Hour))
	_, _ = st.Insert(keep, storeNow.Add(-time.Hour))

	expired := st.Sweep(storeNow)
	assert.Equal(t, []string{gone.ID}, expired)

	_, ok := st.Get(gone.ID)
	assert.False(t, ok)
	_, ok = st.Get(keep.ID)
	assert.True(t, ok)
}

func TestStore_Dismiss(t *testing.T) {
	st := newSuggestionStore(5)
	s := testutil.NewTestSuggestion("s", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	_, _ = st.Insert(s, storeNow)

	updated, err := st.Dismiss(s.ID)
	require.NoError(t, err)
	assert.True(t, updated.Dismissed)

	_, err = st.Dismiss(s.ID)
	assert.Error(t, err, "dismissing twice rejected by the lifecycle")
}

func TestStore_MarkAutoScheduled(t *testing.T) {
	st := newSuggestionStore(5)
	s := testutil.NewTestSuggestion("s", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	_, _ = st.Insert(s, storeNow)

	start := storeNow.Add(30 * time.Minute)
	updated, err := st.MarkAutoScheduled(s.ID, "ev-1", "Scheduled: Break", "desc", start, start.Add(15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.KindAutoScheduled, updated.Kind)
	assert.Equal(t, "ev-1", updated.EventID)
	require.NotNil(t, updated.Action)
	assert.Equal(t, domain.ActionAutoScheduled, updated.Action.Kind)

	_, err = st.Dismiss(s.ID)
	assert.Error(t, err, "auto-scheduled records cannot be dismissed")

	require.NoError(t, st.Cancel(s.ID))
	_, ok := st.Get(s.ID)
	assert.False(t, ok)
}

func TestStore_Cancel_RequiresAutoScheduled(t *testing.T) {
	st := newSuggestionStore(5)
	s := testutil.NewTestSuggestion("s", testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	_, _ = st.Insert(s, storeNow)

	assert.Error(t, st.Cancel(s.ID), "proposed records cannot be cancelled")
}

func TestStore_Active_SortedAndCloned(t *testing.T) {
	st := newSuggestionStore(5)

	low := testutil.NewTestSuggestion("low",
		testutil.WithKind(domain.KindFocusBlock),
		testutil.WithPriority(domain.PriorityLow),
		testutil.WithCreatedAt(storeNow.Add(-time.Minute)),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)))
	high := testutil.NewTestSuggestion("high",
		testutil.WithKind(domain.KindFrictionWarning),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithCreatedAt(storeNow),
		testutil.WithExpiresAt(storeNow.Add(time.Hour)),
		testutil.WithAction(domain.NewNavigateAction("today")))
	_, _ = st.Insert(low, storeNow)
	_, _ = st.Insert(high, storeNow)

	active := st.Active(storeNow)
	require.Len(t, active, 2)
	assert.Equal(t, "high", active[0].Title)

	// mutating the returned copy must not leak into the store
	active[0].Title = "mutated"
	active[0].Action.Target = "elsewhere"
	fresh, ok := st.Get(high.ID)
	require.True(t, ok)
	assert.Equal(t, "high", fresh.Title)
	assert.Equal(t, "today", fresh.Action.Target)
}
