package dto

type CreateClassroomRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateStudentRequest struct {
	FullName    string `json:"full_name" binding:"required,max=150"`
	ClassroomID uint   `json:"classroom_id" binding:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateVocabularyRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Word       string `json:"word" binding:"required,max=100"`
	Image      string `json:"image" binding:"max=500"`
}

type VocabularyItem struct {
	Word  string `json:"word" binding:"required,max=100"`
	Image string `json:"image" binding:"max=500"`
}

// BulkCreateVocabularyRequest adds many words to one category at once.
type BulkCreateVocabularyRequest struct {
	CategoryID uint             `json:"category_id" binding:"required"`
	Items      []VocabularyItem `json:"items" binding:"required,min=1,dive"`
}
