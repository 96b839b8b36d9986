package model

import "time"

// Student is a roster entry. Students never log in; the owning teacher acts for them.
type Student struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	FullName    string     `json:"full_name" gorm:"type:varchar(150);not null"`
	ClassroomID uint       `json:"classroom_id" gorm:"not null;index"`
	Classroom   *Classroom `json:"classroom,omitempty" gorm:"foreignKey:ClassroomID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
