package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	authModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

func authTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&batchModel.BatchModel{},
		&authModel.UserSessionModel{},
	))
	return db
}

func loginApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return Login(db, c)
	})
	return app
}

func doLogin(t *testing.T, app *fiber.App, body map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestLoginStudentSharedPassphrase(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	student := userModel.UserModel{
		PhoneNumber: "01712345678",
		FirstName:   "Rahim",
		Role:        userModel.RoleStudent,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&student).Error)

	app := loginApp(db)
	resp, body := doLogin(t, app, map[string]string{
		"phoneNumber": "+8801712345678",
		"password":    "student123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	var sessions []authModel.UserSessionModel
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, student.ID, sessions[0].UserID)
}

func TestLoginWrongPassphraseRejected(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	require.NoError(t, db.Create(&userModel.UserModel{
		PhoneNumber: "01712345678",
		FirstName:   "Rahim",
		Role:        userModel.RoleStudent,
		IsActive:    true,
	}).Error)

	app := loginApp(db)
	resp, body := doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678",
		"password":    "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid phone number or password", body["error"])
}

func TestLoginArchivedSiblingBlocksPhone(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	require.NoError(t, db.Create(&userModel.UserModel{
		PhoneNumber: "01712345678", FirstName: "Rahim",
		Role: userModel.RoleStudent, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{
		PhoneNumber: "01712345678", FirstName: "Karim",
		Role: userModel.RoleStudent, IsActive: true, IsArchived: true,
	}).Error)

	app := loginApp(db)
	resp, body := doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678",
		"password":    "student123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Account is archived and cannot log in", body["error"])
}

func TestLoginMergesSiblingsIntoOneSession(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	batch := batchModel.BatchModel{Name: "Class 9", IsActive: true}
	require.NoError(t, db.Create(&batch).Error)

	a := userModel.UserModel{
		PhoneNumber: "01712345678", FirstName: "Rahim",
		Role: userModel.RoleStudent, IsActive: true,
		Batches: []batchModel.BatchModel{batch},
	}
	require.NoError(t, db.Create(&a).Error)
	b := userModel.UserModel{
		PhoneNumber: "01712345678", FirstName: "Karim",
		Role: userModel.RoleStudent, IsActive: true,
		Batches: []batchModel.BatchModel{batch},
	}
	require.NoError(t, db.Create(&b).Error)

	app := loginApp(db)
	resp, body := doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678",
		"password":    "student123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "Rahim & Karim", user["name"])
	assert.Equal(t, true, user["isMultiStudent"])
	assert.Len(t, user["batches"], 1)
	assert.Len(t, user["allStudents"], 2)
}

func TestLoginReplacesPriorSession(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	student := userModel.UserModel{
		PhoneNumber: "01712345678", FirstName: "Rahim",
		Role: userModel.RoleStudent, IsActive: true,
	}
	require.NoError(t, db.Create(&student).Error)

	app := loginApp(db)
	resp, _ := doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678", "password": "student123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var firstSession authModel.UserSessionModel
	require.NoError(t, db.First(&firstSession).Error)

	resp, _ = doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678", "password": "student123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []authModel.UserSessionModel
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1, "second login replaces the first session")
	assert.NotEqual(t, firstSession.ID, sessions[0].ID)

	var refreshed userModel.UserModel
	require.NoError(t, db.First(&refreshed, student.ID).Error)
	assert.NotNil(t, refreshed.LastLogin)
}

func TestLoginStaffVerifiesStoredHash(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.StudentPassword = "student123"

	db := authTestDB(t)
	hash, err := HashPassword("teacherpass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&userModel.UserModel{
		PhoneNumber: "01799999999", FirstName: "Teacher",
		Role: userModel.RoleTeacher, IsActive: true, PasswordHash: hash,
	}).Error)

	app := loginApp(db)

	resp, _ := doLogin(t, app, map[string]string{
		"phoneNumber": "01799999999", "password": "teacherpass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The shared student passphrase does not open staff accounts.
	resp, _ = doLogin(t, app, map[string]string{
		"phoneNumber": "01799999999", "password": "student123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownPhone(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := authTestDB(t)
	app := loginApp(db)

	resp, body := doLogin(t, app, map[string]string{
		"phoneNumber": "01712345678", "password": "student123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid phone number or password", body["error"])
}

func TestLogoutDeletesSession(t *testing.T) {
	db := authTestDB(t)
	session := authModel.UserSessionModel{
		ID:     uuid.New(),
		UserID: 1,
		Role:   userModel.RoleStudent,
	}
	require.NoError(t, db.Create(&session).Error)

	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		c.Locals("session_id", session.ID.String())
		return Logout(db, c)
	})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&authModel.UserSessionModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
