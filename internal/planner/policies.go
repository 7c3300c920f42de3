package planner

import (
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/schedule"
)

const (
	// overdueGraceMin is how far past its slot a check-in may run before the
	// friction policy counts it.
	overdueGraceMin = 15

	// regroupDurationMin sizes the short slot a friction warning points at.
	regroupDurationMin = 15

	// anchorExpiryGraceMin keeps an anchor reminder visible slightly past the
	// anchor's own start.
	anchorExpiryGraceMin = 5
)

// policyContext is the read-only snapshot one analysis pass works from. It is
// assembled under the engine lock; policies never touch live state.
type policyContext struct {
	now            time.Time
	cfg            domain.Config
	state          domain.RhythmState
	prevState      domain.RhythmState
	focusStartedAt *time.Time
	today          []domain.CheckIn
	finder         *schedule.SlotFinder
}

// analysisPolicy produces zero or more suggestion candidates from a snapshot.
// Policies never error: anything that prevents a suggestion degrades to a
// warning string, which the engine audits.
type analysisPolicy struct {
	name string
	run  func(p *policyContext) ([]*domain.PlannerSuggestion, []string)
}

func analysisPolicies() []analysisPolicy {
	return []analysisPolicy{
		{name: "extended_focus_break", run: breakPolicy},
		{name: "anchor_reminder", run: anchorPolicy},
		{name: "friction", run: frictionPolicy},
		{name: "idle_focus_block", run: focusBlockPolicy},
		{name: "reflection", run: reflectionPolicy},
	}
}

// breakPolicy watches how long a focus-like state has been running. It fires
// while still inside the state past the threshold, and also on the pass that
// leaves it, so a long stretch is never silently dropped.
func breakPolicy(p *policyContext) ([]*domain.PlannerSuggestion, []string) {
	if p.focusStartedAt == nil {
		return nil, nil
	}
	inFocus := p.state.IsFocusLike()
	leftFocus := !inFocus && p.prevState.IsFocusLike()
	if !inFocus && !leftFocus {
		return nil, nil
	}

	elapsed := int(p.now.Sub(*p.focusStartedAt) / time.Minute)
	if elapsed <= p.cfg.FocusBreakThresholdMin {
		return nil, nil
	}

	priority := domain.PriorityMedium
	if elapsed > 120 {
		priority = domain.PriorityHigh
	}

	slot := p.finder.FindSlot(p.cfg.DefaultBreakDurationMin, p.now)
	if slot == nil {
		return nil, []string{fmt.Sprintf("no free slot for a %d min break", p.cfg.DefaultBreakDurationMin)}
	}

	s := newCandidate(p, domain.KindBreakNeeded, priority,
		"Time for a break",
		fmt.Sprintf("You have been focused for %d minutes. Step away for %d.", elapsed, p.cfg.DefaultBreakDurationMin))
	s.Action = domain.NewCreateEventAction("Break", "Recovery break", slot.Start, slot.End, nil)
	return []*domain.PlannerSuggestion{s}, nil
}

// anchorPolicy reminds about each upcoming anchor once its lead window opens.
// One candidate per anchor id; dedup in the store keeps re-runs quiet.
func anchorPolicy(p *policyContext) ([]*domain.PlannerSuggestion, []string) {
	var out []*domain.PlannerSuggestion
	lead := time.Duration(p.cfg.AnchorReminderLeadMin) * time.Minute

	for _, ci := range p.today {
		if !ci.IsAnchor || ci.Done {
			continue
		}
		until := ci.Slot.Sub(p.now)
		if until < 0 || until > lead {
			continue
		}

		s := newCandidate(p, domain.KindAnchorReminder, domain.PriorityMedium,
			fmt.Sprintf("Upcoming: %s", ci.Task),
			fmt.Sprintf("%s starts at %s.", ci.Task, ci.Slot.Format("15:04")))
		s.AnchorID = ci.ID
		s.ExpiresAt = ci.Slot.Add(anchorExpiryGraceMin * time.Minute)
		s.Action = domain.NewNavigateAction("today")
		out = append(out, s)
	}
	return out, nil
}

// frictionPolicy detects a day sliding off the rails: too many check-ins well
// past their slot. It emits one warning, pointed at a short regroup slot when
// one exists.
func frictionPolicy(p *policyContext) ([]*domain.PlannerSuggestion, []string) {
	overdue := 0
	for _, ci := range p.today {
		if ci.Done {
			continue
		}
		if p.now.Sub(ci.Slot) > overdueGraceMin*time.Minute {
			overdue++
		}
	}
	if overdue < p.cfg.FrictionThreshold {
		return nil, nil
	}

	s := newCandidate(p, domain.KindFrictionWarning, domain.PriorityHigh,
		"Day needs a regroup",
		fmt.Sprintf("%d check-ins are overdue. Take %d minutes to re-plan.", overdue, regroupDurationMin))

	var warnings []string
	if slot := p.finder.FindSlot(regroupDurationMin, p.now); slot != nil {
		s.Action = domain.NewCreateEventAction("Regroup", "Re-plan the rest of the day", slot.Start, slot.End, nil)
	} else {
		s.Action = domain.NewNavigateAction("today")
		warnings = append(warnings, "no free slot for a regroup block")
	}
	return []*domain.PlannerSuggestion{s}, warnings
}

// focusBlockPolicy proposes using an open stretch: neutral state, inside
// working hours, nothing left on today's list.
func focusBlockPolicy(p *policyContext) ([]*domain.PlannerSuggestion, []string) {
	if p.state != domain.StateOpen {
		return nil, nil
	}
	if !withinWorkingHours(p.now, p.cfg) {
		return nil, nil
	}
	for _, ci := range p.today {
		if !ci.Done && !ci.Slot.Before(p.now) {
			return nil, nil
		}
	}

	slot := p.finder.FindSlot(p.cfg.DefaultFocusBlockDurationMin, p.now)
	if slot == nil {
		return nil, []string{fmt.Sprintf("no free slot for a %d min focus block", p.cfg.DefaultFocusBlockDurationMin)}
	}

	s := newCandidate(p, domain.KindFocusBlock, domain.PriorityLow,
		"Open time ahead",
		fmt.Sprintf("Nothing scheduled. Use %d minutes for focused work.", p.cfg.DefaultFocusBlockDurationMin))
	s.Action = domain.NewCreateEventAction("Focus block", "Deep work", slot.Start, slot.End, nil)
	return []*domain.PlannerSuggestion{s}, nil
}

// reflectionPolicy fires only on the pass that enters the reflect state, and
// only if nothing has been journaled today.
func reflectionPolicy(p *policyContext) ([]*domain.PlannerSuggestion, []string) {
	if p.state != domain.StateReflect || p.prevState == domain.StateReflect {
		return nil, nil
	}
	for _, ci := range p.today {
		if ci.Category == "journal" {
			return nil, nil
		}
	}

	s := newCandidate(p, domain.KindReflectionReminder, domain.PriorityLow,
		"Capture the day",
		"You are winding down. A short journal entry keeps the day from blurring.")
	s.Action = domain.NewNavigateAction("journal")
	return []*domain.PlannerSuggestion{s}, nil
}

func newCandidate(p *policyContext, kind domain.SuggestionKind, priority domain.SuggestionPriority, title, description string) *domain.PlannerSuggestion {
	return &domain.PlannerSuggestion{
		ID:          schedule.NewID(),
		Kind:        kind,
		Priority:    priority,
		Title:       title,
		Description: description,
		CreatedAt:   p.now,
		ExpiresAt:   p.now.Add(time.Duration(p.cfg.SuggestionTTLMin) * time.Minute),
	}
}

func withinWorkingHours(t time.Time, cfg domain.Config) bool {
	minute := t.Hour()*60 + t.Minute()
	return minute >= cfg.WorkingHoursStartMin && minute < cfg.WorkingHoursEndMin
}
