package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/me", MeAPI)
}

// AuthMiddleware validates JWT and sets user context
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	// Set user context
	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)

	return c.Next()
}

// RoleMiddleware checks if user has required role
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
