package middleware

import (
	"strings"

	"go-pantry-mind/internal/repository"
	"go-pantry-mind/internal/service"
	"go-pantry-mind/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// CallerKey is the fiber.Ctx locals key holding the service.CallerContext
// built from the validated token.
const CallerKey = "caller"

// RequireAuth is middleware that validates JWT token and sets the caller
// context for downstream handlers.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The token carries the kitchen scope, but the user row is the
		// source of truth; a removed or deactivated member loses access
		// before the token expires.
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}
		if user.KitchenID == nil || *user.KitchenID != claims.KitchenID {
			return c.Status(401).JSON(fiber.Map{"error": "Kitchen membership changed, please log in again"})
		}

		c.Locals(CallerKey, service.CallerFromClaims(claims.UserID, claims.KitchenID))

		return c.Next()
	}
}

// Caller extracts the caller context set by RequireAuth.
func Caller(c *fiber.Ctx) service.CallerContext {
	caller, _ := c.Locals(CallerKey).(service.CallerContext)
	return caller
}
