package model

import "time"

type Vocabulary struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CategoryID uint      `json:"category_id" gorm:"not null;index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Word       string    `json:"word" gorm:"type:varchar(100);not null"`
	// ImageRef is an opaque reference handed out by the media store.
	ImageRef  string    `json:"image" gorm:"type:varchar(500)"`
	TeacherID uint      `json:"teacher_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
