package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users. An optional q parameter filters by
// username substring.
// @Summary List users
// @Tags users
// @Produce json
// @Param q query string false "Username filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{users=[]models.User}
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var (
		users []models.User
		err   error
	)
	if q := c.Query("q"); q != "" {
		users, err = s.identity.SearchUsers(c.Context(), q, p.Limit, p.Offset)
	} else {
		users, err = s.identity.ListUsers(c.Context(), p.Limit, p.Offset)
	}
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return s.respondWithProfile(c, currentUserID(c))
}

// GetUserProfile handles GET /api/users/:id
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.respondWithProfile(c, id)
}

func (s *Server) respondWithProfile(c *fiber.Ctx, id uint) error {
	user, err := s.identity.GetUser(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	following, followers, err := s.graph.Counts(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	user.FollowingCount = following
	user.FollowersCount = followers

	if viewer := viewerID(c); viewer != 0 && viewer != id {
		isFollowing, err := s.graph.IsFollowing(c.Context(), viewer, id)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		user.Following = isFollowing
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. The current password must be
// supplied; edits are refused without it.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{password=string,username=string,email=string,bio=string,location=string,image_url=string,header_image_url=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Password       string `json:"password"`
		Username       string `json:"username"`
		Email          string `json:"email"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		ImageURL       string `json:"image_url"`
		HeaderImageURL string `json:"header_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Current password is required"))
	}

	user, err := s.identity.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		Password:       req.Password,
		Username:       req.Username,
		Email:          req.Email,
		Bio:            req.Bio,
		Location:       req.Location,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// ChangePassword handles POST /api/users/me/password
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{current_password=string,new_password=string} true "Passwords"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /users/me/password [post]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.identity.ChangePassword(c.Context(), currentUserID(c),
		req.CurrentPassword, req.NewPassword); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// DeleteMyAccount handles DELETE /api/users/me. The account, its messages,
// and its follow and like edges are all removed.
// @Summary Delete own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.identity.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}

// GetUserMessages handles GET /api/users/:id/messages
// @Summary List a user's messages
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{messages=[]models.Message}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/messages [get]
func (s *Server) GetUserMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	messages, err := s.messages.ListByAuthor(c.Context(), id, viewerID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// GetUserLikes handles GET /api/users/:id/likes
// @Summary List messages a user has liked
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{messages=[]models.Message}
// @Router /users/{id}/likes [get]
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.affinity.ListLiked(c.Context(), id, viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// GetFollowing handles GET /api/users/:id/following
// @Summary List users someone follows
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{users=[]models.User}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.graph.ListFollowing(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetFollowers handles GET /api/users/:id/followers
// @Summary List someone's followers
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{users=[]models.User}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.graph.ListFollowers(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}
