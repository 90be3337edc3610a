// Package service holds the business workflows sitting between HTTP
// handlers and repositories.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"postpilot/internal/cache"
	"postpilot/internal/generator"
	"postpilot/internal/middleware"
	"postpilot/internal/models"
	"postpilot/internal/ratelimit"
	"postpilot/internal/repository"
)

const (
	// defaultPostTime is used when a generated entry carries no posting time.
	defaultPostTime = "09:00"

	// generateTimeout bounds one full generation cycle, model call included.
	generateTimeout = 2 * time.Minute
)

// CalendarService orchestrates calendar generation: rate limiting, cache
// lookup, the model call, post materialization and persistence.
type CalendarService struct {
	plans   repository.PlanRepository
	posts   repository.PostRepository
	client  generator.Client
	limiter *ratelimit.Limiter

	// now is swappable in tests so materialized dates are deterministic.
	now func() time.Time
}

func NewCalendarService(plans repository.PlanRepository, posts repository.PostRepository,
	client generator.Client, limiter *ratelimit.Limiter) *CalendarService {
	return &CalendarService{
		plans:   plans,
		posts:   posts,
		client:  client,
		limiter: limiter,
		now:     time.Now,
	}
}

// Generate produces the 30-day calendar for the plan and replaces its posts.
// A cached calendar skips the model call but still rewrites the posts, so
// repeating the operation within the cache TTL is idempotent. The plan is
// returned with its fresh posts loaded in day order.
func (s *CalendarService) Generate(ctx context.Context, userID, planID uint) (*models.Plan, error) {
	if res := s.limiter.Check(ctx, strconv.FormatUint(uint64(userID), 10)); !res.Allowed {
		return nil, models.NewRateLimitError(res.RetryAfter)
	}

	plan, err := s.plans.GetByIDForUser(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	cal, cached := cache.GetCalendar(ctx, planID)
	if !cached {
		cal, err = s.client.Generate(ctx, generator.Input{
			Niche:    plan.Niche,
			Platform: plan.Platform,
			Goal:     plan.Goal,
			Tone:     plan.Tone,
		})
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "calendar generation failed",
				slog.Any("plan_id", planID), slog.String("error", err.Error()))
			return nil, models.NewGenerationError(err)
		}
	}

	posts := s.materialize(cal)
	if err := s.posts.ReplaceForPlan(ctx, planID, posts); err != nil {
		return nil, err
	}

	// Cache only after the posts are durably stored, so a cached calendar
	// always corresponds to a calendar that was persisted at least once.
	if !cached {
		cache.SetCalendar(ctx, planID, cal)
	}

	return s.plans.GetByIDForUserWithPosts(ctx, planID, userID)
}

// materialize turns generated entries into draft Post rows. Day N lands N-1
// days after today, at the entry's posting time.
func (s *CalendarService) materialize(cal *models.GeneratedCalendar) []models.Post {
	base := s.now()
	posts := make([]models.Post, 0, len(cal.Posts))
	for _, entry := range cal.Posts {
		hour, minute := parsePostTime(entry.Time)
		date := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location()).
			AddDate(0, 0, entry.Day-1)

		posts = append(posts, models.Post{
			Day:         entry.Day,
			Date:        date,
			Format:      entry.Format,
			Caption:     entry.Caption,
			Hashtags:    entry.Hashtags,
			Status:      models.PostStatusDraft,
			ScheduledAt: &date,
		})
	}
	return posts
}

// parsePostTime parses "HH:MM", falling back to the default posting time.
func parsePostTime(t string) (hour, minute int) {
	if t == "" {
		t = defaultPostTime
	}
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		parts = strings.SplitN(defaultPostTime, ":", 2)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		hour = 9
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		minute = 0
	}
	return hour, minute
}
