package auth

import (
	"database/sql"
	"time"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"

	"github.com/gofiber/fiber/v2"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName, user.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	// Track the login server-side as well
	session := &models.Session{
		ID:        GenerateSessionID().String(),
		UserID:    user.ID,
		ExpiresAt: GetSessionExpiry(),
	}
	if err := database.CreateSession(config.GetDB(), session); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "session_id",
		Value:    session.ID,
		Expires:  GetSessionExpiry(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	if sid := c.Cookies("session_id"); sid != "" {
		_ = database.DeleteSession(config.GetDB(), sid)
	}

	// Clear cookies
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "session_id",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// MeAPI returns the authenticated user's profile.
func MeAPI(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"user": user})
}
