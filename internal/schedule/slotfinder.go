package schedule

import (
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

const (
	// startRoundingStep aligns candidate starts to clean clock boundaries.
	startRoundingStep = 5 * time.Minute

	// fallbackAdvance is the fixed step used when a conflicting probe yields
	// no usable jump target.
	fallbackAdvance = 15 * time.Minute
)

// SlotFinder performs a greedy first-fit search for a free interval inside
// the configured working hours. It accepts the first slot that satisfies the
// constraints rather than searching for an optimum; under dense competing
// constraints the result is not optimal, but the search is bounded and
// side-effect-free.
type SlotFinder struct {
	detector *ConflictDetector
	cfg      domain.Config
	clock    Clock
}

func NewSlotFinder(detector *ConflictDetector, cfg domain.Config, clock Clock) *SlotFinder {
	return &SlotFinder{detector: detector, cfg: cfg, clock: clock}
}

// FindSlot searches for a conflict-free interval of durationMin minutes
// starting at or after earliest (zero means now). The search stays within the
// working hours of earliest's calendar day and returns nil when exhausted.
func (f *SlotFinder) FindSlot(durationMin int, earliest time.Time) *domain.TimeSlot {
	if durationMin <= 0 {
		return nil
	}
	if earliest.IsZero() {
		earliest = f.clock.Now()
	}

	duration := time.Duration(durationMin) * time.Minute
	gap := time.Duration(f.cfg.MinEventGapMin) * time.Minute

	candidate := RoundUpToStep(earliest, startRoundingStep)
	if dayStart := atMinuteOfDay(candidate, f.cfg.WorkingHoursStartMin); candidate.Before(dayStart) {
		candidate = dayStart
	}
	dayEnd := atMinuteOfDay(candidate, f.cfg.WorkingHoursEndMin)

	for {
		end := candidate.Add(duration)
		if end.After(dayEnd) {
			return nil
		}

		conflicts := f.detector.Detect(candidate, end)
		if len(conflicts) == 0 {
			return &domain.TimeSlot{Start: candidate, End: end, Available: true}
		}

		next := latestEnd(conflicts).Add(gap)
		if !next.After(candidate) {
			next = candidate.Add(fallbackAdvance)
		}
		candidate = next
	}
}

// Probe checks a specific interval and reports its availability along with
// the identifiers of any conflicting entries. Used to re-validate a slot
// immediately before committing it to the calendar.
func (f *SlotFinder) Probe(start time.Time, durationMin int) domain.TimeSlot {
	end := start.Add(time.Duration(durationMin) * time.Minute)
	conflicts := f.detector.Detect(start, end)

	slot := domain.TimeSlot{Start: start, End: end, Available: len(conflicts) == 0}
	for _, c := range conflicts {
		slot.ConflictIDs = append(slot.ConflictIDs, c.ID)
	}
	return slot
}

func latestEnd(conflicts []Conflict) time.Time {
	latest := conflicts[0].End
	for _, c := range conflicts[1:] {
		if c.End.After(latest) {
			latest = c.End
		}
	}
	return latest
}
