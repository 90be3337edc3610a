package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// ExportService renders a plan's calendar as a downloadable document.
type ExportService struct {
	plans repository.PlanRepository
}

func NewExportService(plans repository.PlanRepository) *ExportService {
	return &ExportService{plans: plans}
}

// Export renders the plan's posts in the requested format ("csv" or "json";
// anything else falls back to JSON). It returns the document bytes, the
// Content-Type to serve them with and a suggested filename.
func (s *ExportService) Export(ctx context.Context, userID, planID uint, format string) ([]byte, string, string, error) {
	plan, err := s.plans.GetByIDForUserWithPosts(ctx, planID, userID)
	if err != nil {
		return nil, "", "", err
	}

	if strings.EqualFold(format, "csv") {
		data := renderCSV(plan)
		return data, "text/csv", fmt.Sprintf("calendar-%d.csv", plan.ID), nil
	}

	data, err := renderJSON(plan)
	if err != nil {
		return nil, "", "", models.NewInternalError(err)
	}
	return data, "application/json", fmt.Sprintf("calendar-%d.json", plan.ID), nil
}

// renderCSV writes the calendar as CSV. Every field except Day is quoted,
// with embedded quotes doubled, so downstream spreadsheet imports never
// misparse captions containing commas or newlines.
func renderCSV(plan *models.Plan) []byte {
	var b strings.Builder
	b.WriteString("Day,Date,Platform,Format,Caption,Hashtags,Status,Scheduled At\n")

	for _, post := range plan.Posts {
		scheduled := ""
		if post.ScheduledAt != nil {
			scheduled = post.ScheduledAt.Format("2006-01-02 15:04")
		}
		fields := []string{
			post.Date.Format("2006-01-02"),
			plan.Platform,
			post.Format,
			post.Caption,
			strings.Join(post.Hashtags, " "),
			string(post.Status),
			scheduled,
		}

		b.WriteString(fmt.Sprintf("%d", post.Day))
		for _, f := range fields {
			b.WriteByte(',')
			b.WriteString(quoteCSV(f))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func renderJSON(plan *models.Plan) ([]byte, error) {
	posts := plan.Posts
	bare := *plan
	bare.Posts = nil

	return json.MarshalIndent(struct {
		Plan  models.Plan   `json:"plan"`
		Posts []models.Post `json:"posts"`
	}{Plan: bare, Posts: posts}, "", "  ")
}
