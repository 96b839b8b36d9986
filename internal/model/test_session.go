package model

import "time"

// TestSession is the running aggregate for one (student, category) pair.
// The composite unique index is what makes get-or-create safe under concurrency.
type TestSession struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_session_student_category"`
	Student        *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	CategoryID     uint      `json:"category_id" gorm:"not null;uniqueIndex:idx_session_student_category"`
	Category       *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	TotalQuestions int       `json:"total_questions" gorm:"not null;default:0"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null;default:0"`
	Results        []Result  `json:"results,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
