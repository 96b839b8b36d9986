package repository

import (
	"errors"
	"fmt"

	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSessionConflict is returned when a session row could not be created or read back
// after the conflict retry.
var ErrSessionConflict = errors.New("test session conflict")

// sessionUpsertAttempts bounds get-or-create: the first try plus one read-after-conflict retry.
const sessionUpsertAttempts = 2

type ClearStats struct {
	Results  int64
	Sessions int64
}

type TestSessionRepository interface {
	// RecordAnswer gets or creates the (student, category) session, appends a result and
	// bumps the counters, all in one transaction.
	RecordAnswer(studentID, categoryID, vocabularyID uint, isCorrect bool) (*model.TestSession, *model.Result, error)
	FindByStudentAndCategory(studentID, categoryID uint) (*model.TestSession, error)
	FindByStudentsAndCategory(studentIDs []uint, categoryID uint) ([]model.TestSession, error)
	DeleteByStudent(studentID uint) (ClearStats, error)
}

type testSessionRepository struct {
	db *gorm.DB
}

func NewTestSessionRepository(db *gorm.DB) TestSessionRepository {
	return &testSessionRepository{db: db}
}

func (r *testSessionRepository) RecordAnswer(studentID, categoryID, vocabularyID uint, isCorrect bool) (*model.TestSession, *model.Result, error) {
	var session model.TestSession
	var result model.Result

	err := r.db.Transaction(func(tx *gorm.DB) error {
		current, err := getOrCreateSession(tx, studentID, categoryID)
		if err != nil {
			return err
		}

		result = model.Result{
			SessionID:    current.ID,
			VocabularyID: vocabularyID,
			IsCorrect:    isCorrect,
		}
		if err := tx.Create(&result).Error; err != nil {
			return fmt.Errorf("failed to append result: %w", err)
		}

		correctIncrement := 0
		if isCorrect {
			correctIncrement = 1
		}
		// Increment in SQL so concurrent answers on the same row serialize on the row lock.
		update := tx.Model(&model.TestSession{}).Where("id = ?", current.ID).Updates(map[string]interface{}{
			"total_questions": gorm.Expr("total_questions + ?", 1),
			"correct_answers": gorm.Expr("correct_answers + ?", correctIncrement),
		})
		if update.Error != nil {
			return fmt.Errorf("failed to update session counters: %w", update.Error)
		}
		if update.RowsAffected == 0 {
			return ErrSessionConflict
		}

		return tx.First(&session, current.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &session, &result, nil
}

// getOrCreateSession inserts the session if absent and reads it back. The insert is a no-op
// when the unique (student_id, category_id) row already exists, so two racing requests end up
// on the same row.
func getOrCreateSession(tx *gorm.DB, studentID, categoryID uint) (*model.TestSession, error) {
	for attempt := 0; attempt < sessionUpsertAttempts; attempt++ {
		candidate := model.TestSession{StudentID: studentID, CategoryID: categoryID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "category_id"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert test session: %w", err)
		}

		var session model.TestSession
		err = tx.Where("student_id = ? AND category_id = ?", studentID, categoryID).First(&session).Error
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// The conflicting row vanished between insert and read (a concurrent clear); try again.
	}
	return nil, ErrSessionConflict
}

func (r *testSessionRepository) FindByStudentAndCategory(studentID, categoryID uint) (*model.TestSession, error) {
	var session model.TestSession
	if err := r.db.Where("student_id = ? AND category_id = ?", studentID, categoryID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *testSessionRepository) FindByStudentsAndCategory(studentIDs []uint, categoryID uint) ([]model.TestSession, error) {
	var sessions []model.TestSession
	if len(studentIDs) == 0 {
		return sessions, nil
	}
	if err := r.db.Where("student_id IN ? AND category_id = ?", studentIDs, categoryID).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *testSessionRepository) DeleteByStudent(studentID uint) (ClearStats, error) {
	var stats ClearStats
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = deleteSessionsOf(tx, []uint{studentID})
		return err
	})
	if err != nil {
		return ClearStats{}, err
	}
	return stats, nil
}

// deleteSessionsOf removes results first, then sessions, so it works on stores without
// ON DELETE CASCADE. studentIDs is a []uint or a subquery selecting student ids.
func deleteSessionsOf(tx *gorm.DB, studentIDs interface{}) (ClearStats, error) {
	sessionIDs := tx.Model(&model.TestSession{}).Select("id").Where("student_id IN (?)", studentIDs)

	results := tx.Where("session_id IN (?)", sessionIDs).Delete(&model.Result{})
	if results.Error != nil {
		return ClearStats{}, fmt.Errorf("failed to delete results: %w", results.Error)
	}
	sessions := tx.Where("student_id IN (?)", studentIDs).Delete(&model.TestSession{})
	if sessions.Error != nil {
		return ClearStats{}, fmt.Errorf("failed to delete test sessions: %w", sessions.Error)
	}
	return ClearStats{Results: results.RowsAffected, Sessions: sessions.RowsAffected}, nil
}
