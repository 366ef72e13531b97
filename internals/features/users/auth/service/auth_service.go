package service

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
	authModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helpers "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

/* ==========================
   Const & helpers
========================== */

const sessionTTL = 7 * 24 * time.Hour

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	return secret, nil
}

/* ==========================
   LOGIN (phone + password)
========================== */

// LoginResolveUsers fetches every account that may authenticate with this
// normalized phone number, in stable query order (primary account first).
func LoginResolveUsers(db *gorm.DB, phone string) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	err := db.
		Preload("Batches").
		Where("phone_number = ? AND is_active = ?", phone, true).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		PhoneNumber string `json:"phoneNumber"`
		Phone       string `json:"phone"`
		Username    string `json:"username"`
		Password    string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Request data is required")
	}

	// phoneNumber (frontend), phone (legacy) and username (form) are all
	// accepted for the same field.
	rawPhone := input.PhoneNumber
	if rawPhone == "" {
		rawPhone = input.Phone
	}
	if rawPhone == "" {
		rawPhone = input.Username
	}
	if rawPhone == "" || input.Password == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Phone number and password are required")
	}

	phone := helpers.NormalizePhone(rawPhone)
	if phone == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid phone number format")
	}

	users, err := LoginResolveUsers(db, phone)
	if err != nil {
		log.Printf("[ERROR] login lookup: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if len(users) == 0 {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid phone number or password")
	}

	// One archived sibling blocks the whole phone-number login.
	for _, u := range users {
		if u.IsArchived {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Account is archived and cannot log in")
		}
	}

	primary := users[0]
	if err := checkLoginPassword(primary, input.Password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrUnknownHashScheme) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid phone number or password")
		}
		log.Printf("[ERROR] login verify: %v", err)
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid phone number or password")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	sessionUser := BuildSessionUser(users)
	now := nowUTC()

	payload, err := json.Marshal(sessionUser)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to build session")
	}

	session := authModel.UserSessionModel{
		ID:        uuid.New(),
		UserID:    primary.ID,
		Role:      primary.Role,
		Payload:   datatypes.JSON(payload),
		UserAgent: c.Get("User-Agent"),
		IP:        c.IP(),
		ExpiresAt: now.Add(sessionTTL),
	}

	// last_login stamp and session persistence are one unit; any earlier
	// session for this account (including a pending student selection) is
	// replaced, not kept alongside.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", primary.ID).
			Update("last_login", now).Error; err != nil {
			return err
		}
		if err := tx.
			Where("user_id = ?", primary.ID).
			Delete(&authModel.UserSessionModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		log.Printf("[ERROR] login persist: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	token, err := signSessionToken(secret, session, now)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"user":    sessionUser,
			"token":   token,
			"message": "Login successful",
		},
		"timestamp": now.Format(time.RFC3339),
	})
}

// checkLoginPassword is role dependent: students use the shared
// passphrase, staff verify against their stored hash.
func checkLoginPassword(user userModel.UserModel, password string) error {
	if user.Role == userModel.RoleStudent {
		if password == configs.StudentPassword {
			return nil
		}
		return ErrPasswordMismatch
	}
	if user.PasswordHash == "" {
		return ErrPasswordMismatch
	}
	return VerifyPassword(user.PasswordHash, password)
}

func signSessionToken(secret string, session authModel.UserSessionModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"typ":  "access",
		"sid":  session.ID.String(),
		"sub":  session.UserID,
		"role": session.Role,
		"iat":  now.Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	sid, ok := c.Locals("session_id").(string)
	if !ok || sid == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No active session")
	}
	if err := db.Where("id = ?", sid).Delete(&authModel.UserSessionModel{}).Error; err != nil {
		log.Printf("[ERROR] logout: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	return helpers.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No active session")
	}

	var user userModel.UserModel
	if err := db.Preload("Batches").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to get user data")
	}

	data := fiber.Map{
		"id":           user.ID,
		"phoneNumber":  user.PhoneNumber,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"name":         user.FullName(),
		"email":        user.Email,
		"role":         user.Role,
		"profileImage": user.ProfileImage,
		"smsCount":     user.SMSCount,
		"lastLogin":    user.LastLogin,
		"createdAt":    user.CreatedAt,
	}
	if user.Role == userModel.RoleStudent {
		batches := make([]SessionBatch, 0, len(user.Batches))
		for _, b := range user.Batches {
			if !b.IsActive {
				continue
			}
			batches = append(batches, SessionBatch{
				ID:          b.ID,
				Name:        b.Name,
				Description: b.Description,
				FeeAmount:   b.FeeAmount,
				IsActive:    b.IsActive,
			})
		}
		data["batches"] = batches
	}

	return helpers.JsonOK(c, "User data retrieved", data)
}

/* ==========================
   CHANGE PASSWORD (staff only)
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No active session")
	}

	var user userModel.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if user.Role == userModel.RoleStudent {
		return helpers.JsonError(c, fiber.StatusForbidden, "Students cannot change password")
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Current password and new password are required")
	}

	if user.PasswordHash == "" || VerifyPassword(user.PasswordHash, input.CurrentPassword) != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	if len(input.NewPassword) < 6 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "New password must be at least 6 characters long")
	}

	newHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Model(&user).Update("password_hash", newHash).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to change password")
	}

	return helpers.JsonOK(c, "Password changed successfully", nil)
}

/* ==========================
   SESSION CHECK
========================== */

func SessionCheck(db *gorm.DB, c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No active session")
	}
	role, _ := c.Locals("user_role").(string)
	name, _ := c.Locals("user_name").(string)

	return helpers.JsonOK(c, "Session is valid", fiber.Map{
		"user_id":   userID,
		"user_role": role,
		"user_name": name,
	})
}
