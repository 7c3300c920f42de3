package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo over the flat key-value
// preferences table. Unknown keys are ignored on read; missing keys fall back
// to defaults, so the record needs no versioning or migration logic.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

// Preference keys as stored in the flat record.
const (
	prefFocusBreakThreshold   = "focus_break_threshold_min"
	prefDefaultBreakDuration  = "default_break_duration_min"
	prefDefaultFocusDuration  = "default_focus_block_duration_min"
	prefAutoScheduleBreaks    = "auto_schedule_breaks"
	prefAutoScheduleFocus     = "auto_schedule_focus_blocks"
	prefRequireConfirmation   = "require_confirmation"
	prefWorkingHoursStart     = "working_hours_start_min"
	prefWorkingHoursEnd       = "working_hours_end_min"
	prefMinEventGap           = "min_event_gap_min"
	prefFrictionThreshold     = "friction_threshold"
	prefAnchorReminderLead    = "anchor_reminder_lead_min"
	prefMaxActiveSuggestions  = "max_active_suggestions"
	prefSuggestionTTL         = "suggestion_ttl_min"
	prefNotificationsEnabled  = "notifications_enabled"
)

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (*domain.Preferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning preference row: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	p := domain.DefaultPreferences()
	readInt(kv, prefFocusBreakThreshold, &p.FocusBreakThresholdMin)
	readInt(kv, prefDefaultBreakDuration, &p.DefaultBreakDurationMin)
	readInt(kv, prefDefaultFocusDuration, &p.DefaultFocusBlockDurationMin)
	readBool(kv, prefAutoScheduleBreaks, &p.AutoScheduleBreaks)
	readBool(kv, prefAutoScheduleFocus, &p.AutoScheduleFocusBlocks)
	readBool(kv, prefRequireConfirmation, &p.RequireConfirmation)
	readInt(kv, prefWorkingHoursStart, &p.WorkingHoursStartMin)
	readInt(kv, prefWorkingHoursEnd, &p.WorkingHoursEndMin)
	readInt(kv, prefMinEventGap, &p.MinEventGapMin)
	readInt(kv, prefFrictionThreshold, &p.FrictionThreshold)
	readInt(kv, prefAnchorReminderLead, &p.AnchorReminderLeadMin)
	readInt(kv, prefMaxActiveSuggestions, &p.MaxActiveSuggestions)
	readInt(kv, prefSuggestionTTL, &p.SuggestionTTLMin)
	readBool(kv, prefNotificationsEnabled, &p.NotificationsEnabled)
	return &p, nil
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p *domain.Preferences) error {
	pairs := map[string]string{
		prefFocusBreakThreshold:  strconv.Itoa(p.FocusBreakThresholdMin),
		prefDefaultBreakDuration: strconv.Itoa(p.DefaultBreakDurationMin),
		prefDefaultFocusDuration: strconv.Itoa(p.DefaultFocusBlockDurationMin),
		prefAutoScheduleBreaks:   strconv.FormatBool(p.AutoScheduleBreaks),
		prefAutoScheduleFocus:    strconv.FormatBool(p.AutoScheduleFocusBlocks),
		prefRequireConfirmation:  strconv.FormatBool(p.RequireConfirmation),
		prefWorkingHoursStart:    strconv.Itoa(p.WorkingHoursStartMin),
		prefWorkingHoursEnd:      strconv.Itoa(p.WorkingHoursEndMin),
		prefMinEventGap:          strconv.Itoa(p.MinEventGapMin),
		prefFrictionThreshold:    strconv.Itoa(p.FrictionThreshold),
		prefAnchorReminderLead:   strconv.Itoa(p.AnchorReminderLeadMin),
		prefMaxActiveSuggestions: strconv.Itoa(p.MaxActiveSuggestions),
		prefSuggestionTTL:        strconv.Itoa(p.SuggestionTTLMin),
		prefNotificationsEnabled: strconv.FormatBool(p.NotificationsEnabled),
	}

	for k, v := range pairs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("upserting preference %s: %w", k, err)
		}
	}
	return nil
}

func readInt(kv map[string]string, key string, dst *int) {
	if v, ok := kv[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func readBool(kv map[string]string, key string, dst *bool) {
	if v, ok := kv[key]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
