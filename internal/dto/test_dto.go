package dto

import "time"

// OptionDTO is one choice shown to the student. Images are only sent for the asked word.
type OptionDTO struct {
	ID   uint   `json:"id"`
	Word string `json:"word"`
}

type TestQuestionDTO struct {
	VocabID       uint        `json:"vocab_id"`
	Word          string      `json:"word"`
	ImageURL      string      `json:"image_url"`
	Options       []OptionDTO `json:"options"`
	QuestionToken string      `json:"question_token,omitempty"`
}

type TestFinishedDTO struct {
	Finished bool   `json:"finished"`
	Message  string `json:"message"`
}

// SubmitAnswerRequest is what the client posts back after a question.
// In token mode QuestionToken is authoritative and VocabID may be omitted.
type SubmitAnswerRequest struct {
	VocabID          uint   `json:"vocab_id"`
	SelectedOptionID uint   `json:"selected_option_id" binding:"required"`
	QuestionToken    string `json:"question_token"`
}

type AnswerOutcomeDTO struct {
	Correct        bool    `json:"correct"`
	CorrectAnswer  string  `json:"correct_answer"`
	ResultID       uint    `json:"result_id"`
	SessionID      uint    `json:"session_id"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Percentage     float64 `json:"percentage"`
}

type ResultDTO struct {
	ID            uint      `json:"id"`
	VocabID       uint      `json:"vocab_id"`
	VocabWord     string    `json:"vocab_word"`
	VocabCategory string    `json:"vocab_category"`
	VocabImageURL string    `json:"vocab_image_url"`
	Correct       bool      `json:"correct"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

type StudentSummaryDTO struct {
	StudentID          uint        `json:"student_id"`
	StudentName        string      `json:"student_name"`
	TotalTests         int         `json:"total_tests"`
	CorrectAnswers     int         `json:"correct_answers"`
	IncorrectAnswers   int         `json:"incorrect_answers"`
	AccuracyPercentage float64     `json:"accuracy_percentage"`
	Results            []ResultDTO `json:"results"`
}

type StudentSessionSummaryDTO struct {
	StudentID        uint    `json:"student_id"`
	StudentName      string  `json:"student_name"`
	SessionID        *uint   `json:"session_id,omitempty"`
	TotalQuestions   int     `json:"total_questions"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	Percentage       float64 `json:"percentage"`
}

type ClearResultsDTO struct {
	StudentID       uint   `json:"student_id"`
	DeletedResults  int64  `json:"deleted_results"`
	DeletedSessions int64  `json:"deleted_sessions"`
	Message         string `json:"message"`
}
