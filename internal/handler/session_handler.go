package handler

import (
	"strings"

	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	userService service.UserService
}

func NewSessionHandler(userService service.UserService) *SessionHandler {
	return &SessionHandler{userService: userService}
}

// SwitchUserRequest selects the active user
type SwitchUserRequest struct {
	UserID string `json:"user_id"`
}

// SwitchUser makes another user active and returns a session token
// POST /api/v1/session
func (h *SessionHandler) SwitchUser(c *fiber.Ctx) error {
	var req SwitchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}

	session, err := h.userService.SwitchUser(middleware.CurrentUser(c), req.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}

// GetSession returns the active user and the view it may open
// GET /api/v1/session?view=SETTINGS
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	requested := model.View(strings.ToUpper(c.Query("view", string(model.ViewDashboard))))
	return c.JSON(fiber.Map{
		"user":       user,
		"view":       service.ResolveView(user, requested),
		"privileges": user.Permissions.Codes(),
	})
}
