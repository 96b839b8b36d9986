package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type IdentityResponse struct {
	TeacherID uint   `json:"teacher_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type StudentResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	ClassroomID uint      `json:"classroom_id"`
	ClassName   string    `json:"class_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClassroomResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	TeacherID    uint              `json:"teacher_id"`
	StudentCount int               `json:"student_count"`
	Students     []StudentResponse `json:"students,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	TeacherID uint      `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

type VocabularyResponse struct {
	ID           uint      `json:"id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Word         string    `json:"word"`
	ImageURL     string    `json:"image_url"`
	TeacherID    uint      `json:"teacher_id"`
	CreatedAt    time.Time `json:"created_at"`
}
