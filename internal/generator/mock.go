package generator

import (
	"context"
	"fmt"
	"sync"

	"postpilot/internal/models"
)

// MockClient is a test double for Client. With no GenerateFunc it returns a
// valid 30-day calendar derived from the input.
type MockClient struct {
	GenerateFunc func(ctx context.Context, in Input) (*models.GeneratedCalendar, error)

	mu    sync.Mutex
	calls int
}

func (m *MockClient) Generate(ctx context.Context, in Input) (*models.GeneratedCalendar, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return StaticCalendar(in), nil
}

// Calls reports how many times Generate was invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// StaticCalendar builds a deterministic, valid 30-day calendar for tests.
func StaticCalendar(in Input) *models.GeneratedCalendar {
	cal := &models.GeneratedCalendar{
		PlanName: in.Niche + " plan",
		Platform: in.Platform,
		Posts:    make([]models.CalendarEntry, 0, calendarDays),
	}
	for day := 1; day <= calendarDays; day++ {
		cal.Posts = append(cal.Posts, models.CalendarEntry{
			Day:      day,
			Format:   "post",
			Caption:  fmt.Sprintf("Day %d: %s content for %s", day, in.Tone, in.Niche),
			Hashtags: []string{"#" + in.Niche, "#daily"},
			Time:     "09:00",
		})
	}
	return cal
}
