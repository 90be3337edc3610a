package server

import (
	"fmt"
	"strings"

	"postpilot/internal/cache"
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// supportedPlatforms are the platforms a plan may target. The generator
// knows the content format vocabulary for each.
var supportedPlatforms = map[string]bool{
	"instagram": true,
	"linkedin":  true,
	"x":         true,
	"tiktok":    true,
}

// GetPlans handles GET /api/plans
func (s *Server) GetPlans(c *fiber.Ctx) error {
	plans, err := s.planRepo.ListByUser(c.Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

// GetPlan handles GET /api/plans/:id
func (s *Server) GetPlan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plan, err := s.planRepo.GetByIDForUserWithPosts(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// CreatePlan handles POST /api/plans
func (s *Server) CreatePlan(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Niche    string `json:"niche"`
		Platform string `json:"platform"`
		Goal     string `json:"goal"`
		Tone     string `json:"tone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Niche = strings.TrimSpace(req.Niche)
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	req.Goal = strings.TrimSpace(req.Goal)
	req.Tone = strings.TrimSpace(req.Tone)

	if req.Name == "" || req.Niche == "" || req.Platform == "" || req.Goal == "" || req.Tone == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, niche, platform, goal, and tone are required"))
	}
	if !supportedPlatforms[req.Platform] {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Unsupported platform %q", req.Platform)))
	}

	plan := &models.Plan{
		UserID:   userID(c),
		Name:     req.Name,
		Niche:    req.Niche,
		Platform: req.Platform,
		Goal:     req.Goal,
		Tone:     req.Tone,
	}
	if err := s.planRepo.Create(c.Context(), plan); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

// DeletePlan handles DELETE /api/plans/:id
func (s *Server) DeletePlan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.planRepo.DeleteForUser(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}

	// The cached calendar is orphaned once the plan is gone.
	cache.InvalidateCalendar(c.Context(), id)

	return c.JSON(fiber.Map{"deleted": true})
}

// GenerateCalendar handles POST /api/plans/:id/generate
func (s *Server) GenerateCalendar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plan, err := s.calendarService.Generate(c.Context(), userID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// ExportCalendar handles GET /api/plans/:id/export?format=csv|json
func (s *Server) ExportCalendar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	format := c.Query("format", "json")
	data, contentType, filename, err := s.exportService.Export(c.Context(), userID(c), id, format)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
