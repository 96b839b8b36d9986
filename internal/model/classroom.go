package model

import "time"

type Classroom struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	TeacherID uint      `json:"teacher_id" gorm:"not null;index"`
	Students  []Student `json:"students,omitempty" gorm:"foreignKey:ClassroomID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
