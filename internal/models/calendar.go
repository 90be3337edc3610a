package models

// GeneratedCalendar is the transient output of the calendar generator. It
// exists between the generation call and Post-row materialization and is
// cached verbatim as JSON; it is never persisted directly.
type GeneratedCalendar struct {
	PlanName string          `json:"planName"`
	Platform string          `json:"platform"`
	Posts    []CalendarEntry `json:"posts"`
}

// CalendarEntry is one day of a generated calendar.
type CalendarEntry struct {
	Day      int      `json:"day"`
	Format   string   `json:"format"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Time     string   `json:"time"`
}
