package generator

import (
	"fmt"
	"regexp"
	"strings"

	"postpilot/internal/models"
)

const calendarDays = 30

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validate checks a generated calendar against the shape the rest of the
// system depends on: exactly 30 posts covering days 1 through 30 with no
// duplicates, non-empty format and caption on every post, and any posting
// time expressed as 24-hour HH:MM. It normalizes entries in place (trimmed
// strings, empty hashtags dropped) so callers can persist the result as-is.
func Validate(cal *models.GeneratedCalendar) error {
	if cal == nil {
		return fmt.Errorf("calendar is empty")
	}
	if len(cal.Posts) != calendarDays {
		return fmt.Errorf("expected %d posts, got %d", calendarDays, len(cal.Posts))
	}

	seen := make(map[int]bool, calendarDays)
	for i := range cal.Posts {
		p := &cal.Posts[i]

		if p.Day < 1 || p.Day > calendarDays {
			return fmt.Errorf("post %d: day %d out of range", i, p.Day)
		}
		if seen[p.Day] {
			return fmt.Errorf("duplicate day %d", p.Day)
		}
		seen[p.Day] = true

		p.Format = strings.TrimSpace(p.Format)
		if p.Format == "" {
			return fmt.Errorf("day %d: empty format", p.Day)
		}
		p.Caption = strings.TrimSpace(p.Caption)
		if p.Caption == "" {
			return fmt.Errorf("day %d: empty caption", p.Day)
		}

		p.Time = strings.TrimSpace(p.Time)
		if p.Time != "" && !timeOfDayRegex.MatchString(p.Time) {
			return fmt.Errorf("day %d: invalid time %q", p.Day, p.Time)
		}

		tags := p.Hashtags[:0]
		for _, tag := range p.Hashtags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		p.Hashtags = tags
	}
	return nil
}
