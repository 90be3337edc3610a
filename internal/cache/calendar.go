package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"postpilot/internal/middleware"
	"postpilot/internal/models"
	"postpilot/internal/observability"
)

const (
	calendarKeyPrefix = "calendar:%d"

	// CalendarTTL bounds how long a generated calendar may be served without
	// calling the generator again. Plan edits do not invalidate the entry;
	// only plan deletion does.
	CalendarTTL = time.Hour
)

// CalendarKey returns the cache key for a plan's generated calendar.
func CalendarKey(planID uint) string {
	return fmt.Sprintf(calendarKeyPrefix, planID)
}

// GetCalendar looks up the cached generated calendar for the plan.
// Returns (nil, false) on miss, deserialization failure, or store failure;
// a broken cache entry must never abort generation.
func GetCalendar(ctx context.Context, planID uint) (*models.GeneratedCalendar, bool) {
	var cal models.GeneratedCalendar
	found, err := GetJSON(ctx, CalendarKey(planID), &cal)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "calendar cache read failed",
			slog.Any("plan_id", planID), slog.String("error", err.Error()))
		observability.CalendarCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	if !found {
		observability.CalendarCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.CalendarCacheHits.WithLabelValues("hit").Inc()
	return &cal, true
}

// SetCalendar stores the generated calendar for the plan with the standard TTL.
func SetCalendar(ctx context.Context, planID uint, cal *models.GeneratedCalendar) {
	if err := SetJSON(ctx, CalendarKey(planID), cal, CalendarTTL); err != nil {
		middleware.Logger.WarnContext(ctx, "calendar cache write failed",
			slog.Any("plan_id", planID), slog.String("error", err.Error()))
	}
}

// InvalidateCalendar removes the plan's cached calendar. Called on plan deletion.
func InvalidateCalendar(ctx context.Context, planID uint) {
	Invalidate(ctx, CalendarKey(planID))
}
