package middleware

import (
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const localUser = "user"

// RequireAuth validates the session token and loads the active user. The
// user is read fresh on every request so permission edits apply at once.
func RequireAuth(signer *jwt.Signer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		user, status, msg := authenticate(signer, userRepo, authHeader)
		if user == nil {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// OptionalAuth loads the active user when a valid token is present and lets
// the request through either way.
func OptionalAuth(signer *jwt.Signer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get("Authorization"); authHeader != "" {
			if user, _, _ := authenticate(signer, userRepo, authHeader); user != nil {
				c.Locals(localUser, user)
			}
		}
		return c.Next()
	}
}

func authenticate(signer *jwt.Signer, userRepo repository.UserRepository, authHeader string) (*model.User, int, string) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, 401, "Invalid authorization format. Use: Bearer <token>"
	}

	claims, err := signer.ValidateToken(parts[1])
	if err != nil {
		return nil, 401, "Invalid or expired token"
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, 401, "User not found"
	}
	return user, 0, ""
}

// CurrentUser returns the user set by RequireAuth or OptionalAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localUser).(*model.User)
	return user
}

// RequirePermission checks that the active user holds the capability
func RequirePermission(capability model.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c).HasPermission(capability) {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + string(capability) + "' permission",
		})
	}
}

// RequireAnyPermission checks that the active user holds at least one of the capabilities
func RequireAnyPermission(capabilities ...model.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		names := make([]string, 0, len(capabilities))
		for _, capability := range capabilities {
			if user.HasPermission(capability) {
				return c.Next()
			}
			names = append(names, string(capability))
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(names, ", ") + " permissions",
		})
	}
}
