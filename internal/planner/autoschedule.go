package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/audit"
	"github.com/evanmoray/cadence/internal/calendar"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/schedule"
)

// commitJob is a create_event candidate the scheduling policy wants to push
// to the calendar. The action is copied out so the job survives unchanged
// even if the store record mutates while the gateway call is in flight.
type commitJob struct {
	id     string
	action domain.SuggestionAction
}

// autoScheduleJob decides whether a freshly inserted candidate qualifies for
// automatic commit: a create_event action, the matching toggle on, a gateway
// attached, and no confirmation required.
func autoScheduleJob(cand *domain.PlannerSuggestion, cfg domain.Config, gateway calendar.Gateway) (commitJob, bool) {
	if gateway == nil || cfg.RequireConfirmation {
		return commitJob{}, false
	}
	if cand.Action == nil || cand.Action.Kind != domain.ActionCreateEvent {
		return commitJob{}, false
	}
	if !cfg.AutoScheduleFor(cand.Kind) {
		return commitJob{}, false
	}
	return commitJob{id: cand.ID, action: *cand.Action}, true
}

func (s *plannerService) commitAll(ctx context.Context, jobs []commitJob, cfg domain.Config, pending []domain.CheckIn, now time.Time, warnings *[]string) []string {
	var committed []string
	for _, job := range jobs {
		if s.commit(ctx, job, cfg, pending, now, warnings) {
			committed = append(committed, job.id)
		}
	}
	return committed
}

// commit pushes one job through the gateway. The dedup and slot checks that
// originally admitted the candidate are repeated under the lock immediately
// before the call: a suggestion dismissed or a slot taken since analysis
// downgrades the commit to a plain proposal instead of double-booking.
func (s *plannerService) commit(ctx context.Context, job commitJob, cfg domain.Config, pending []domain.CheckIn, now time.Time, warnings *[]string) bool {
	s.mu.Lock()
	sugg, ok := s.store.Get(job.id)
	if !ok || sugg.Dismissed || sugg.Kind == domain.KindAutoScheduled {
		s.mu.Unlock()
		return false
	}
	detector := schedule.NewConflictDetector(s.events, pending)
	finder := schedule.NewSlotFinder(detector, cfg, s.clock)
	probe := finder.Probe(job.action.Start, job.action.DurationMin)
	s.mu.Unlock()

	if !probe.Available {
		*warnings = append(*warnings, fmt.Sprintf("slot for %q conflicted before commit, left as proposal", job.action.Summary))
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditAutoSchedule,
			Severity:  domain.SeverityWarning,
			Message:   "slot conflicted before commit, left as proposal",
			Metadata:  map[string]any{"suggestion_id": job.id, "conflicts": probe.ConflictIDs},
			CreatedAt: now,
		})
		return false
	}

	ev, err := s.gateway.CreateEvent(ctx, calendar.CreateEventRequest{
		Summary:     job.action.Summary,
		Description: job.action.Description,
		Start:       job.action.Start,
		End:         job.action.End,
		ColorID:     job.action.ColorID,
	})
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("auto-schedule of %q failed: %v", job.action.Summary, err))
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditAutoSchedule,
			Severity:  domain.SeverityError,
			Message:   "calendar create failed: " + err.Error(),
			Metadata:  map[string]any{"suggestion_id": job.id},
			CreatedAt: now,
		})
		return false
	}

	s.mu.Lock()
	updated, err := s.store.MarkAutoScheduled(job.id, ev.ID,
		fmt.Sprintf("Scheduled: %s", job.action.Summary),
		fmt.Sprintf("%s at %s", job.action.Summary, ev.Start.Format("15:04")),
		ev.Start, ev.End)
	if err != nil {
		s.mu.Unlock()
		// The suggestion was dismissed while the call was in flight. Drop the
		// orphan event rather than leaving it on the calendar.
		_ = s.gateway.DeleteEvent(ctx, ev.ID)
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditAutoSchedule,
			Severity:  domain.SeverityWarning,
			Message:   "suggestion changed during commit, event rolled back",
			Metadata:  map[string]any{"suggestion_id": job.id, "event_id": ev.ID},
			CreatedAt: now,
		})
		return false
	}
	persistErr := s.suggestions.Upsert(ctx, updated)
	// Later commits in the same pass must probe against this event, or two
	// candidates found against the same free window would both get through.
	s.events = append(s.events, *ev)
	s.mu.Unlock()

	if persistErr != nil {
		*warnings = append(*warnings, fmt.Sprintf("persisting auto-scheduled suggestion: %v", persistErr))
	}
	s.sink.AddEntry(ctx, audit.Entry{
		Category:  domain.AuditAutoSchedule,
		Severity:  domain.SeveritySuccess,
		Message:   "auto-scheduled: " + job.action.Summary,
		Metadata:  map[string]any{"suggestion_id": job.id, "event_id": ev.ID},
		CreatedAt: now,
	})
	return true
}
