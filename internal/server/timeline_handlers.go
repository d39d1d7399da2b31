package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTimeline handles GET /api/timeline. Authenticated callers get their
// home feed (own messages plus followed users', newest first, capped at
// 100); anonymous callers get the logged-out variant with no messages.
// @Summary Home timeline
// @Tags timeline
// @Produce json
// @Success 200 {object} service.Timeline
// @Router /timeline [get]
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	var userID *uint
	if id, ok := c.Locals("userID").(uint); ok {
		userID = &id
	}

	timeline, err := s.timeline.Home(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(timeline)
}
