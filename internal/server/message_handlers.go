package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages
// @Summary Post a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{text=string} true "Message text (max 140 characters)"
// @Success 201 {object} models.Message
// @Failure 400 {object} object{error=string}
// @Router /messages [post]
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messages.CreateMessage(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessage handles GET /api/messages/:id
// @Summary Get a message
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.Message
// @Failure 404 {object} object{error=string}
// @Router /messages/{id} [get]
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messages.GetMessage(c.Context(), id, viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(message)
}

// DeleteMessage handles DELETE /api/messages/:id. Only the author may
// delete a message.
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /messages/{id} [delete]
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messages.DeleteMessage(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Message deleted",
	})
}

// LikeMessage handles POST /api/messages/:id/like
// @Summary Like a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 201 {object} models.Like
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /messages/{id}/like [post]
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.affinity.Like(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikeMessage handles DELETE /api/messages/:id/like
// @Summary Remove a like
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /messages/{id}/like [delete]
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.affinity.Unlike(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Like removed",
	})
}
