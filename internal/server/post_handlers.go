package server

import (
	"encoding/json"
	"strings"
	"time"

	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UpdatePost handles PUT /api/posts/:id. Only the provided fields change;
// omitted fields keep their current values. Editable fields are caption,
// hashtags, status and scheduled_at.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Caption     *string    `json:"caption"`
		Hashtags    *[]string  `json:"hashtags"`
		Status      *string    `json:"status"`
		ScheduledAt *time.Time `json:"scheduled_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Ownership check before anything else; non-owned posts are not found.
	if _, err := s.postRepo.GetByIDForUser(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}

	fields := map[string]any{}
	if req.Caption != nil {
		caption := strings.TrimSpace(*req.Caption)
		if caption == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Caption cannot be empty"))
		}
		fields["caption"] = caption
	}
	if req.Hashtags != nil {
		// Column-level update bypasses the model serializer, so encode here.
		raw, err := json.Marshal(*req.Hashtags)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid hashtags"))
		}
		fields["hashtags"] = string(raw)
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		if !status.IsValid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Status must be one of draft, scheduled, published"))
		}
		fields["status"] = status
	}
	if req.ScheduledAt != nil {
		fields["scheduled_at"] = *req.ScheduledAt
	}

	if len(fields) > 0 {
		if err := s.postRepo.UpdateFields(c.Context(), id, fields); err != nil {
			return respondError(c, err)
		}
	}

	post, err := s.postRepo.GetByIDForUser(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
