package middleware

import (
	"strings"

	"go-pos-inventory/internal/model"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator resolves a bearer token to the staff member it was issued to.
type TokenValidator interface {
	ValidateToken(tokenString string) (*model.Staff, error)
}

// RequireAuth is middleware that validates the bearer token and sets staff info in context
func RequireAuth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		staff, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("staff_id", staff.ID)
		c.Locals("staff_email", staff.Email)
		c.Locals("staff_name", staff.Name)
		c.Locals("staff_role", string(staff.Role))

		return c.Next()
	}
}
