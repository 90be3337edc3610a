// Package generator builds 30-day content calendars by prompting an
// OpenAI-compatible chat-completions API and validating the structured
// output before anyone is allowed to persist it.
package generator

import (
	"context"

	"postpilot/internal/models"
)

// Input carries the plan fields the prompt is built from.
type Input struct {
	Niche    string
	Platform string
	Goal     string
	Tone     string
}

// Client generates a content calendar for the given input. Implementations
// make at most one attempt per invocation; callers do not retry.
type Client interface {
	Generate(ctx context.Context, in Input) (*models.GeneratedCalendar, error)
}
