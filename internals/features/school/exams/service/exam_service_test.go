package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	examModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&examModel.MonthlyExamModel{},
		&examModel.IndividualExamModel{},
		&examModel.MonthlyMarkModel{},
		&examModel.MonthlyRankingModel{},
	))
	return db
}

func seedExam(t *testing.T, db *gorm.DB, ceilings ...int) (examModel.MonthlyExamModel, []examModel.IndividualExamModel) {
	t.Helper()
	exam := examModel.MonthlyExamModel{
		BatchID: 1, Month: 3, Year: 2025, Title: "March Exam",
		Status: examModel.ExamStatusActive, CreatedBy: 1,
	}
	require.NoError(t, db.Create(&exam).Error)

	subjects := make([]examModel.IndividualExamModel, 0, len(ceilings))
	for i, ceiling := range ceilings {
		s := examModel.IndividualExamModel{
			MonthlyExamID: exam.ID,
			Title:         "Subject",
			Subject:       "Subject",
			Marks:         ceiling,
			OrderIndex:    i,
		}
		require.NoError(t, db.Create(&s).Error)
		subjects = append(subjects, s)
	}
	require.NoError(t, RecomputeTotalMarks(db, exam.ID))
	require.NoError(t, db.First(&exam, exam.ID).Error)
	return exam, subjects
}

func TestRecomputeTotalMarksTracksSubjects(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100, 100, 100)
	assert.Equal(t, 300, exam.TotalMarks)

	// Edit a ceiling.
	subjects[0].Marks = 50
	require.NoError(t, db.Save(&subjects[0]).Error)
	require.NoError(t, RecomputeTotalMarks(db, exam.ID))
	require.NoError(t, db.First(&exam, exam.ID).Error)
	assert.Equal(t, 250, exam.TotalMarks)

	// Remove a subject.
	require.NoError(t, db.Delete(&subjects[1]).Error)
	require.NoError(t, RecomputeTotalMarks(db, exam.ID))
	require.NoError(t, db.First(&exam, exam.ID).Error)
	assert.Equal(t, 150, exam.TotalMarks)

	// Remove the rest; total falls back to zero.
	require.NoError(t, db.Delete(&subjects[0]).Error)
	require.NoError(t, db.Delete(&subjects[2]).Error)
	require.NoError(t, RecomputeTotalMarks(db, exam.ID))
	require.NoError(t, db.First(&exam, exam.ID).Error)
	assert.Equal(t, 0, exam.TotalMarks)
}

func TestSaveMarksValidation(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100)

	err := SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 101},
	})
	assert.ErrorIs(t, err, ErrMarksExceedCeiling)

	err = SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: 9999, MarksObtained: 10},
	})
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestSaveMarksGradesAndUpserts(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100)

	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 80},
	}))

	var mark examModel.MonthlyMarkModel
	require.NoError(t, db.Where("user_id = ?", 1).First(&mark).Error)
	assert.Equal(t, 80, mark.MarksObtained)
	assert.InDelta(t, 80.0, mark.Percentage, 0.001)
	assert.Equal(t, "A+", mark.Grade)
	assert.Equal(t, 5.0, mark.GPA)

	// Re-entry overwrites, never duplicates.
	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 55},
	}))
	var count int64
	require.NoError(t, db.Model(&examModel.MonthlyMarkModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Where("user_id = ?", 1).First(&mark).Error)
	assert.Equal(t, "B", mark.Grade)
}

func TestCeilingChangeRegradesMarksAndRankings(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100, 100)

	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 90},
		{UserID: 1, IndividualExamID: subjects[1].ID, MarksObtained: 60},
	}))

	// Raise one subject's ceiling 100 -> 120, the way the update handler
	// does it: save, recompute the monthly total, reconcile.
	subjects[0].Marks = 120
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&subjects[0]).Error; err != nil {
			return err
		}
		if err := RecomputeTotalMarks(tx, exam.ID); err != nil {
			return err
		}
		return ReconcileCeilingChange(tx, &subjects[0])
	}))

	var mark examModel.MonthlyMarkModel
	require.NoError(t, db.Where("individual_exam_id = ?", subjects[0].ID).First(&mark).Error)
	assert.Equal(t, 120, mark.TotalMarks)
	assert.InDelta(t, 75.0, mark.Percentage, 0.001)
	assert.Equal(t, "A", mark.Grade)
	assert.Equal(t, 4.0, mark.GPA)

	var ranking examModel.MonthlyRankingModel
	require.NoError(t, db.Where("user_id = ?", 1).First(&ranking).Error)
	assert.Equal(t, 150, ranking.TotalMarks)
	assert.Equal(t, 220, ranking.PossibleMarks)
	assert.InDelta(t, float64(150)/220*100, ranking.Percentage, 0.01)
}

func TestCeilingBelowRecordedMarkRejected(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100)

	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 90},
	}))

	subjects[0].Marks = 50
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&subjects[0]).Error; err != nil {
			return err
		}
		if err := RecomputeTotalMarks(tx, exam.ID); err != nil {
			return err
		}
		return ReconcileCeilingChange(tx, &subjects[0])
	})
	assert.ErrorIs(t, err, ErrCeilingBelowObtained)

	// Rollback keeps the old ceiling, monthly total and mark intact.
	var subject examModel.IndividualExamModel
	require.NoError(t, db.First(&subject, subjects[0].ID).Error)
	assert.Equal(t, 100, subject.Marks)
	require.NoError(t, db.First(&exam, exam.ID).Error)
	assert.Equal(t, 100, exam.TotalMarks)
	var mark examModel.MonthlyMarkModel
	require.NoError(t, db.Where("user_id = ?", 1).First(&mark).Error)
	assert.Equal(t, 90, mark.MarksObtained)
	assert.Equal(t, 100, mark.TotalMarks)
}

func TestRankingsWorkedExample(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100, 100, 100)

	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 80},
		{UserID: 1, IndividualExamID: subjects[1].ID, MarksObtained: 75},
		{UserID: 1, IndividualExamID: subjects[2].ID, MarksObtained: 90},
		{UserID: 2, IndividualExamID: subjects[0].ID, MarksObtained: 60},
		{UserID: 2, IndividualExamID: subjects[1].ID, MarksObtained: 55},
		{UserID: 2, IndividualExamID: subjects[2].ID, MarksObtained: 50},
	}))

	var rankings []examModel.MonthlyRankingModel
	require.NoError(t, db.Order("position ASC").Find(&rankings).Error)
	require.Len(t, rankings, 2)

	first := rankings[0]
	assert.Equal(t, uint(1), first.UserID)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 245, first.TotalMarks)
	assert.Equal(t, 300, first.PossibleMarks)
	assert.InDelta(t, 81.666, first.Percentage, 0.01)
	assert.Equal(t, "A+", first.Grade)
	assert.Equal(t, 5.0, first.GPA)

	second := rankings[1]
	assert.Equal(t, uint(2), second.UserID)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 165, second.TotalMarks)
	assert.InDelta(t, 55.0, second.Percentage, 0.01)
	assert.Equal(t, "B", second.Grade)
}

func TestRankingsTiesKeepAccountOrder(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100)

	require.NoError(t, SaveMarks(db, exam.ID, []MarkEntry{
		{UserID: 7, IndividualExamID: subjects[0].ID, MarksObtained: 70},
		{UserID: 3, IndividualExamID: subjects[0].ID, MarksObtained: 70},
		{UserID: 5, IndividualExamID: subjects[0].ID, MarksObtained: 90},
	}))

	var rankings []examModel.MonthlyRankingModel
	require.NoError(t, db.Order("position ASC").Find(&rankings).Error)
	require.Len(t, rankings, 3)
	assert.Equal(t, uint(5), rankings[0].UserID)
	assert.Equal(t, uint(3), rankings[1].UserID, "tied students rank by ascending account id")
	assert.Equal(t, uint(7), rankings[2].UserID)
}

func TestRankingsRecomputationIsIdempotent(t *testing.T) {
	db := testDB(t)
	exam, subjects := seedExam(t, db, 100)

	entries := []MarkEntry{
		{UserID: 1, IndividualExamID: subjects[0].ID, MarksObtained: 80},
		{UserID: 2, IndividualExamID: subjects[0].ID, MarksObtained: 60},
	}
	require.NoError(t, SaveMarks(db, exam.ID, entries))

	var before []examModel.MonthlyRankingModel
	require.NoError(t, db.Order("position ASC").Find(&before).Error)

	require.NoError(t, RecomputeRankings(db, &exam))

	var after []examModel.MonthlyRankingModel
	require.NoError(t, db.Order("position ASC").Find(&after).Error)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].UserID, after[i].UserID)
		assert.Equal(t, before[i].Position, after[i].Position)
		assert.Equal(t, before[i].TotalMarks, after[i].TotalMarks)
	}
}

func TestRankingsEmptyMarksIsNoOp(t *testing.T) {
	db := testDB(t)
	exam, _ := seedExam(t, db, 100)

	require.NoError(t, RecomputeRankings(db, &exam))
	var count int64
	require.NoError(t, db.Model(&examModel.MonthlyRankingModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
