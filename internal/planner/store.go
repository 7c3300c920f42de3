package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/repository"
)

// suggestionStore owns the in-memory suggestion set for one engine instance.
// It enforces per-kind dedup, the capacity cap, and the lifecycle rules;
// callers only ever see clones of its records. The store itself is not
// goroutine safe, the engine serializes access through its own mutex.
type suggestionStore struct {
	max      int
	items    map[string]*domain.PlannerSuggestion
	machines map[string]*lifecycle
}

func newSuggestionStore(maxActive int) *suggestionStore {
	if maxActive < 1 {
		maxActive = 1
	}
	return &suggestionStore{
		max:      maxActive,
		items:    make(map[string]*domain.PlannerSuggestion),
		machines: make(map[string]*lifecycle),
	}
}

// Load replaces the store contents with persisted records. Records that fail
// lifecycle reconstruction are skipped rather than poisoning the whole load.
func (st *suggestionStore) Load(rows []*domain.PlannerSuggestion) {
	st.items = make(map[string]*domain.PlannerSuggestion, len(rows))
	st.machines = make(map[string]*lifecycle, len(rows))
	for _, row := range rows {
		m, err := lifecycleFor(row)
		if err != nil {
			continue
		}
		copied := row.Clone()
		st.items[row.ID] = &copied
		st.machines[row.ID] = m
	}
}

// SetCapacity adjusts the cap; it takes effect on the next insertion.
func (st *suggestionStore) SetCapacity(maxActive int) {
	if maxActive >= 1 {
		st.max = maxActive
	}
}

// Insert adds a candidate unless an equivalent active suggestion exists.
// Returns whether it was inserted and the IDs evicted to make room.
func (st *suggestionStore) Insert(s *domain.PlannerSuggestion, now time.Time) (bool, []string) {
	if st.hasActiveEquivalent(s.Kind, s.AnchorID, now) {
		return false, nil
	}

	m, err := lifecycleFor(s)
	if err != nil {
		return false, nil
	}

	evicted := st.evictForCapacity()
	copied := s.Clone()
	st.items[s.ID] = &copied
	st.machines[s.ID] = m
	return true, evicted
}

// hasActiveEquivalent implements the dedup rule: one active suggestion per
// kind, except anchor reminders which are unique per anchor id.
func (st *suggestionStore) hasActiveEquivalent(kind domain.SuggestionKind, anchorID string, now time.Time) bool {
	for _, s := range st.items {
		if s.Kind != kind || !s.Active(now) {
			continue
		}
		if kind == domain.KindAnchorReminder && s.AnchorID != anchorID {
			continue
		}
		return true
	}
	return false
}

// evictForCapacity removes records until one slot is free. Dismissed records
// go first, then the lowest priority rank, then the oldest.
func (st *suggestionStore) evictForCapacity() []string {
	var evicted []string
	for len(st.items) >= st.max {
		victim := st.pickEvictionVictim()
		if victim == "" {
			break
		}
		delete(st.items, victim)
		delete(st.machines, victim)
		evicted = append(evicted, victim)
	}
	return evicted
}

func (st *suggestionStore) pickEvictionVictim() string {
	var victim *domain.PlannerSuggestion
	for _, s := range st.items {
		if victim == nil || evictBefore(s, victim) {
			victim = s
		}
	}
	if victim == nil {
		return ""
	}
	return victim.ID
}

func evictBefore(a, b *domain.PlannerSuggestion) bool {
	if a.Dismissed != b.Dismissed {
		return a.Dismissed
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Sweep drops every record whose expiry has passed and returns their IDs.
func (st *suggestionStore) Sweep(now time.Time) []string {
	var expired []string
	for id, s := range st.items {
		if now.Before(s.ExpiresAt) {
			continue
		}
		if m := st.machines[id]; m != nil {
			_ = m.fire(eventExpire)
		}
		delete(st.items, id)
		delete(st.machines, id)
		expired = append(expired, id)
	}
	return expired
}

// Dismiss flips the dismissed flag if the lifecycle allows it.
func (st *suggestionStore) Dismiss(id string) (*domain.PlannerSuggestion, error) {
	s, m, err := st.get(id)
	if err != nil {
		return nil, err
	}
	if err := m.fire(eventDismiss); err != nil {
		return nil, err
	}
	s.Dismissed = true
	copied := s.Clone()
	return &copied, nil
}

// MarkAutoScheduled rewrites a committed proposal into its auto-scheduled form.
func (st *suggestionStore) MarkAutoScheduled(id, eventID, title, description string, start, end time.Time) (*domain.PlannerSuggestion, error) {
	s, m, err := st.get(id)
	if err != nil {
		return nil, err
	}
	if err := m.fire(eventAutoSchedule); err != nil {
		return nil, err
	}
	s.Kind = domain.KindAutoScheduled
	s.Title = title
	s.Description = description
	s.EventID = eventID
	s.Action = domain.NewAutoScheduledAction(eventID, start, end)
	copied := s.Clone()
	return &copied, nil
}

// Cancel removes an auto-scheduled record after its calendar event is gone.
func (st *suggestionStore) Cancel(id string) error {
	_, m, err := st.get(id)
	if err != nil {
		return err
	}
	if err := m.fire(eventCancel); err != nil {
		return err
	}
	delete(st.items, id)
	delete(st.machines, id)
	return nil
}

// Get returns a clone of the record.
func (st *suggestionStore) Get(id string) (domain.PlannerSuggestion, bool) {
	s, ok := st.items[id]
	if !ok {
		return domain.PlannerSuggestion{}, false
	}
	return s.Clone(), true
}

// Active returns clones of the live records, highest priority first, oldest
// first within a priority.
func (st *suggestionStore) Active(now time.Time) []domain.PlannerSuggestion {
	var out []domain.PlannerSuggestion
	for _, s := range st.items {
		if s.Active(now) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank(); ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (st *suggestionStore) get(id string) (*domain.PlannerSuggestion, *lifecycle, error) {
	s, ok := st.items[id]
	if !ok {
		return nil, nil, fmt.Errorf("suggestion %s: %w", id, repository.ErrNotFound)
	}
	return s, st.machines[id], nil
}
