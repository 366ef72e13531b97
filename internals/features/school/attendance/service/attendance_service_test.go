package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	attendanceModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/model"
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
		&attendanceModel.AttendanceModel{},
	))
	return db
}

func seedBatchWithStudents(t *testing.T, db *gorm.DB, n int) (batchModel.BatchModel, []userModel.UserModel) {
	t.Helper()
	batch := batchModel.BatchModel{Name: "Class 9", IsActive: true}
	require.NoError(t, db.Create(&batch).Error)

	names := []string{"Anik", "Babu", "Chandan", "Dipu"}
	students := make([]userModel.UserModel, 0, n)
	for i := 0; i < n; i++ {
		s := userModel.UserModel{
			PhoneNumber: fmt.Sprintf("0171234567%d", i),
			FirstName:   names[i],
			Role:        userModel.RoleStudent,
			IsActive:    true,
			Batches:     []batchModel.BatchModel{batch},
		}
		require.NoError(t, db.Create(&s).Error)
		students = append(students, s)
	}
	return batch, students
}

func TestBulkMarkUpserts(t *testing.T) {
	db := testDB(t)
	batch, students := seedBatchWithStudents(t, db, 2)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	saved, err := BulkMark(db, batch.ID, day, 99, []BulkEntry{
		{StudentID: students[0].ID, Status: attendanceModel.AttendanceStatusPresent},
		{StudentID: students[1].ID, Status: attendanceModel.AttendanceStatusAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	// Same day again flips a status in place instead of duplicating.
	saved, err = BulkMark(db, batch.ID, day, 99, []BulkEntry{
		{StudentID: students[1].ID, Status: attendanceModel.AttendanceStatusLate},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	var rows []attendanceModel.AttendanceModel
	require.NoError(t, db.Order("user_id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, attendanceModel.AttendanceStatusPresent, rows[0].Status)
	assert.Equal(t, attendanceModel.AttendanceStatusLate, rows[1].Status)
	assert.Equal(t, uint(99), rows[1].MarkedBy)
}

func TestBulkMarkRejectsBadInput(t *testing.T) {
	db := testDB(t)
	batch, students := seedBatchWithStudents(t, db, 1)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := BulkMark(db, 999, day, 1, []BulkEntry{
		{StudentID: students[0].ID, Status: attendanceModel.AttendanceStatusPresent},
	})
	assert.ErrorIs(t, err, ErrBatchNotFound)

	_, err = BulkMark(db, batch.ID, day, 1, []BulkEntry{
		{StudentID: students[0].ID, Status: "holiday"},
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = BulkMark(db, batch.ID, day, 1, []BulkEntry{
		{StudentID: 999, Status: attendanceModel.AttendanceStatusPresent},
	})
	assert.ErrorIs(t, err, ErrStudentNotInBatch)

	// Nothing persisted from rejected calls.
	var count int64
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDailyIncludesUnmarkedStudents(t *testing.T) {
	db := testDB(t)
	batch, students := seedBatchWithStudents(t, db, 2)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := BulkMark(db, batch.ID, day, 1, []BulkEntry{
		{StudentID: students[0].ID, Status: attendanceModel.AttendanceStatusPresent, Notes: "on time"},
	})
	require.NoError(t, err)

	rows, err := Daily(db, batch.ID, day)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, attendanceModel.AttendanceStatusPresent, rows[0].Status)
	assert.Equal(t, "on time", rows[0].Notes)
	assert.Empty(t, rows[1].Status, "unmarked student keeps an empty status")
}

func TestMonthlyCounts(t *testing.T) {
	db := testDB(t)
	batch, students := seedBatchWithStudents(t, db, 1)

	days := map[int]string{
		3: attendanceModel.AttendanceStatusPresent,
		4: attendanceModel.AttendanceStatusPresent,
		5: attendanceModel.AttendanceStatusAbsent,
		6: attendanceModel.AttendanceStatusLate,
		7: attendanceModel.AttendanceStatusLeave,
	}
	for d, status := range days {
		day := time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
		_, err := BulkMark(db, batch.ID, day, 1, []BulkEntry{
			{StudentID: students[0].ID, Status: status},
		})
		require.NoError(t, err)
	}
	// A different month does not leak into the summary.
	_, err := BulkMark(db, batch.ID, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 1, []BulkEntry{
		{StudentID: students[0].ID, Status: attendanceModel.AttendanceStatusPresent},
	})
	require.NoError(t, err)

	rows, err := Monthly(db, batch.ID, 3, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Present)
	assert.Equal(t, 1, rows[0].Absent)
	assert.Equal(t, 1, rows[0].Late)
	assert.Equal(t, 1, rows[0].Leave)
}
