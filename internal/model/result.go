package model

import "time"

// Result is append-only. Rows disappear only when their session is cleared.
type Result struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	SessionID    uint        `json:"session_id" gorm:"not null;index"`
	VocabularyID uint        `json:"vocabulary_id" gorm:"not null;index"`
	Vocabulary   *Vocabulary `json:"vocabulary,omitempty" gorm:"foreignKey:VocabularyID;constraint:OnDelete:CASCADE"`
	IsCorrect    bool        `json:"is_correct" gorm:"not null"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
}
