package model

import "time"

type Category struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	Name         string       `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_category_name_teacher"`
	TeacherID    uint         `json:"teacher_id" gorm:"not null;uniqueIndex:idx_category_name_teacher"`
	Vocabularies []Vocabulary `json:"vocabularies,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
