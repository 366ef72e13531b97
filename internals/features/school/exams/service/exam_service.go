package service

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	examModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/model"
)

var (
	ErrMarksExceedCeiling   = errors.New("marks obtained exceed the exam ceiling")
	ErrNegativeMarks        = errors.New("marks obtained cannot be negative")
	ErrExamNotFound         = errors.New("individual exam does not belong to this monthly exam")
	ErrCeilingBelowObtained = errors.New("ceiling is below an already recorded mark")
)

/* ==========================
   Total-marks maintenance
========================== */

// RecomputeTotalMarks restores the invariant that a monthly exam's
// total_marks equals the sum of its individual exam ceilings. Call inside
// the same transaction as any individual-exam write.
func RecomputeTotalMarks(tx *gorm.DB, monthlyExamID uint) error {
	var total int64
	if err := tx.Model(&examModel.IndividualExamModel{}).
		Where("monthly_exam_id = ?", monthlyExamID).
		Select("COALESCE(SUM(marks), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&examModel.MonthlyExamModel{}).
		Where("id = ?", monthlyExamID).
		Update("total_marks", total).Error
}

// ReconcileCeilingChange re-grades a subject's stored marks against its
// new ceiling and rebuilds the monthly ranking, in the caller's
// transaction. A ceiling below any recorded mark is rejected so the
// marks_obtained <= ceiling invariant survives the edit. Call after
// RecomputeTotalMarks so the ranking sees the fresh monthly total.
func ReconcileCeilingChange(tx *gorm.DB, subject *examModel.IndividualExamModel) error {
	var marks []examModel.MonthlyMarkModel
	if err := tx.Where("individual_exam_id = ?", subject.ID).Find(&marks).Error; err != nil {
		return err
	}
	for i := range marks {
		if marks[i].MarksObtained > subject.Marks {
			return ErrCeilingBelowObtained
		}
	}
	for i := range marks {
		m := &marks[i]
		m.TotalMarks = subject.Marks
		m.Percentage = float64(m.MarksObtained) / float64(subject.Marks) * 100
		m.Grade, m.GPA = GradeForPercentage(m.Percentage)
		if err := tx.Save(m).Error; err != nil {
			return err
		}
	}

	var parent examModel.MonthlyExamModel
	if err := tx.First(&parent, subject.MonthlyExamID).Error; err != nil {
		return err
	}
	return RecomputeRankings(tx, &parent)
}

/* ==========================
   Mark entry
========================== */

type MarkEntry struct {
	UserID           uint `json:"user_id" validate:"required"`
	IndividualExamID uint `json:"individual_exam_id" validate:"required"`
	MarksObtained    int  `json:"marks_obtained" validate:"min=0"`
}

// SaveMarks upserts a batch of mark rows for one monthly exam and
// recomputes the ranking, all in the caller's transaction so readers never
// see marks without a matching ranking.
func SaveMarks(tx *gorm.DB, monthlyExamID uint, entries []MarkEntry) error {
	var exam examModel.MonthlyExamModel
	if err := tx.First(&exam, monthlyExamID).Error; err != nil {
		return err
	}

	// Ceilings of the exam's own subjects; anything else is rejected.
	var subjects []examModel.IndividualExamModel
	if err := tx.Where("monthly_exam_id = ?", monthlyExamID).Find(&subjects).Error; err != nil {
		return err
	}
	ceilings := make(map[uint]int, len(subjects))
	for _, s := range subjects {
		ceilings[s.ID] = s.Marks
	}

	for _, e := range entries {
		ceiling, ok := ceilings[e.IndividualExamID]
		if !ok {
			return ErrExamNotFound
		}
		if e.MarksObtained < 0 {
			return ErrNegativeMarks
		}
		if e.MarksObtained > ceiling {
			return ErrMarksExceedCeiling
		}

		percentage := float64(e.MarksObtained) / float64(ceiling) * 100
		grade, gpa := GradeForPercentage(percentage)

		mark := examModel.MonthlyMarkModel{
			MonthlyExamID:    monthlyExamID,
			UserID:           e.UserID,
			IndividualExamID: e.IndividualExamID,
			MarksObtained:    e.MarksObtained,
			TotalMarks:       ceiling,
			Percentage:       percentage,
			Grade:            grade,
			GPA:              gpa,
		}

		var existing examModel.MonthlyMarkModel
		err := tx.Where(
			"monthly_exam_id = ? AND user_id = ? AND individual_exam_id = ?",
			monthlyExamID, e.UserID, e.IndividualExamID,
		).First(&existing).Error
		switch {
		case err == nil:
			mark.ID = existing.ID
			mark.CreatedAt = existing.CreatedAt
			if err := tx.Save(&mark).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&mark).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}

	return RecomputeRankings(tx, &exam)
}

/* ==========================
   Ranking computation
========================== */

type studentTotal struct {
	userID uint
	total  int
}

// RecomputeRankings fully replaces the ranking rows of one monthly exam:
// delete everything, then insert a fresh row per student that has at least
// one mark. Students are enumerated in ascending account-id order and the
// sort on descending total is stable, so equal totals keep enumeration
// order. Idempotent on unchanged marks.
func RecomputeRankings(tx *gorm.DB, exam *examModel.MonthlyExamModel) error {
	if err := tx.Where("monthly_exam_id = ?", exam.ID).
		Delete(&examModel.MonthlyRankingModel{}).Error; err != nil {
		return err
	}

	var marks []examModel.MonthlyMarkModel
	if err := tx.Where("monthly_exam_id = ?", exam.ID).
		Order("user_id ASC, id ASC").
		Find(&marks).Error; err != nil {
		return err
	}
	if len(marks) == 0 || exam.TotalMarks <= 0 {
		return nil
	}

	totals := make([]studentTotal, 0)
	index := make(map[uint]int)
	for _, m := range marks {
		if i, ok := index[m.UserID]; ok {
			totals[i].total += m.MarksObtained
			continue
		}
		index[m.UserID] = len(totals)
		totals = append(totals, studentTotal{userID: m.UserID, total: m.MarksObtained})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].total > totals[j].total
	})

	rankings := make([]examModel.MonthlyRankingModel, 0, len(totals))
	for pos, st := range totals {
		percentage := float64(st.total) / float64(exam.TotalMarks) * 100
		grade, gpa := GradeForPercentage(percentage)
		rankings = append(rankings, examModel.MonthlyRankingModel{
			MonthlyExamID: exam.ID,
			UserID:        st.userID,
			Position:      pos + 1,
			TotalMarks:    st.total,
			PossibleMarks: exam.TotalMarks,
			Percentage:    percentage,
			Grade:         grade,
			GPA:           gpa,
		})
	}
	return tx.Create(&rankings).Error
}
