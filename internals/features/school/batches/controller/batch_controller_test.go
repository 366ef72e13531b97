package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&batchModel.BatchModel{},
	))
	return db
}

func batchApp(db *gorm.DB) *fiber.App {
	ctl := NewBatchController(db, nil)
	app := fiber.New()
	app.Get("/batches", ctl.List)
	app.Delete("/batches/:id", ctl.Delete)
	return app
}

func TestDeleteDeactivatesBatch(t *testing.T) {
	db := testDB(t)
	batch := batchModel.BatchModel{Name: "Class 9", IsActive: true}
	require.NoError(t, db.Create(&batch).Error)

	app := batchApp(db)
	req := httptest.NewRequest(http.MethodDelete, "/batches/"+strconv.Itoa(int(batch.ID)), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Row survives; listing active batches no longer shows it.
	var stored batchModel.BatchModel
	require.NoError(t, db.First(&stored, batch.ID).Error)
	assert.False(t, stored.IsActive)

	req = httptest.NewRequest(http.MethodGet, "/batches?active_only=true", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	var body struct {
		Success bool                    `json:"success"`
		Data    []batchModel.BatchModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Data)
}

func TestDeleteAlreadyDeactivatedBatch(t *testing.T) {
	db := testDB(t)
	batch := batchModel.BatchModel{Name: "Closed", IsActive: false}
	// The model's default:true tag makes GORM drop the zero-value false on
	// Create, so force the deactivated state explicitly.
	require.NoError(t, db.Create(&batch).Error)
	require.NoError(t, db.Model(&batch).Update("is_active", false).Error)

	app := batchApp(db)
	req := httptest.NewRequest(http.MethodDelete, "/batches/"+strconv.Itoa(int(batch.ID)), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteUnknownBatch(t *testing.T) {
	db := testDB(t)
	app := batchApp(db)
	req := httptest.NewRequest(http.MethodDelete, "/batches/999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
