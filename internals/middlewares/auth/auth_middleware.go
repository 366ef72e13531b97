package auth

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
	authModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helpers "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

// AuthMiddleware resolves the bearer token to its server-side session row
// and loads the matching account. A deleted session row (logout) or an
// archived/deactivated account invalidates the token immediately.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		secret := configs.JWTSecret
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		sid, _ := claims["sid"].(string)
		if sid == "" {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid session token")
		}

		var session authModel.UserSessionModel
		if err := db.Where("id = ?", sid).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.JsonError(c, fiber.StatusUnauthorized, "No active session")
			}
			log.Printf("[ERROR] session lookup: %v", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		if time.Now().UTC().After(session.ExpiresAt) {
			_ = db.Delete(&session).Error
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Session expired")
		}

		var user userModel.UserModel
		if err := db.First(&user, session.UserID).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid session")
		}
		if !user.CanAuthenticate() {
			// Account was deactivated or archived after login; kill the session.
			_ = db.Delete(&session).Error
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid session")
		}

		c.Locals("session_id", session.ID.String())
		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user_name", sessionName(session, user))

		return c.Next()
	}
}

// RequireRoles guards a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return helpers.JsonError(c, fiber.StatusForbidden, "Insufficient permissions")
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}
	if cookie := strings.TrimSpace(c.Cookies("access_token")); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Missing authorization token")
}

// sessionName prefers the merged display name stored at login ("Rakib &
// Rahim") over the primary account's own name.
func sessionName(session authModel.UserSessionModel, user userModel.UserModel) string {
	var payload struct {
		Name string `json:"name"`
	}
	if len(session.Payload) > 0 {
		if err := json.Unmarshal(session.Payload, &payload); err == nil && payload.Name != "" {
			return payload.Name
		}
	}
	return user.FullName()
}
