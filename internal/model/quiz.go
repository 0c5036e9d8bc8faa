package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizStatus enumerates the possible states of a quiz.
type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "DRAFT"
	QuizStatusPublished QuizStatus = "PUBLISHED"
	QuizStatusArchived  QuizStatus = "ARCHIVED"
)

// Quiz represents a quiz entity scoped to a course and subject.
type Quiz struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	CourseID         uuid.UUID  `json:"course_id"`
	SubjectID        uuid.UUID  `json:"subject_id"`
	TotalTimeMinutes int        `json:"total_time_minutes"`
	NegativeMarking  float64    `json:"negative_marking"`
	Status           QuizStatus `json:"status"`
	QuestionCount    int        `json:"question_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuestionOption is one answer choice of a question, stored as part of
// the question's options document.
type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question represents a single quiz question.
type Question struct {
	ID           uuid.UUID        `json:"id"`
	QuizID       uuid.UUID        `json:"quiz_id"`
	QuestionText string           `json:"question_text"`
	Options      []QuestionOption `json:"options"`
	Marks        float64          `json:"marks"`
	ImageURL     string           `json:"image_url,omitempty"`
	OrderNum     int              `json:"order_num"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CreateQuizRequest is the payload for creating a new quiz.
type CreateQuizRequest struct {
	Title            string    `json:"title" binding:"required,min=3,max=255"`
	CourseID         uuid.UUID `json:"course_id" binding:"required"`
	SubjectID        uuid.UUID `json:"subject_id" binding:"required"`
	TotalTimeMinutes int       `json:"total_time_minutes" binding:"required,min=1,max=480"`
	NegativeMarking  float64   `json:"negative_marking" binding:"gte=0"`
}

// UpdateQuizRequest is the payload for updating a draft quiz.
type UpdateQuizRequest struct {
	Title            string   `json:"title" binding:"omitempty,min=3,max=255"`
	TotalTimeMinutes int      `json:"total_time_minutes" binding:"omitempty,min=1,max=480"`
	NegativeMarking  *float64 `json:"negative_marking" binding:"omitempty,gte=0"`
}

// OptionRequest is one answer choice in a question payload.
type OptionRequest struct {
	Text      string `json:"text" binding:"required,min=1,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// AddQuestionRequest is the payload for adding a question to a quiz.
type AddQuestionRequest struct {
	QuestionText string          `json:"question_text" binding:"required,min=1,max=2000"`
	Options      []OptionRequest `json:"options" binding:"required,min=2,max=10,dive"`
	Marks        float64         `json:"marks" binding:"required,gt=0"`
	ImageURL     string          `json:"image_url" binding:"omitempty,max=500"`
	OrderNum     int             `json:"order_num" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing questions.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"dive"`
}

// QuestionForTaker is a question without the correct flags, sent to
// quiz takers.
type QuestionForTaker struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	Marks        float64   `json:"marks"`
	ImageURL     string    `json:"image_url,omitempty"`
	OrderNum     int       `json:"order_num"`
}

// QuizPayload is the Redis-cached payload sent to takers (no correct answers).
type QuizPayload struct {
	QuizID           uuid.UUID          `json:"quiz_id"`
	Title            string             `json:"title"`
	TotalTimeMinutes int                `json:"total_time_minutes"`
	NegativeMarking  float64            `json:"negative_marking"`
	Questions        []QuestionForTaker `json:"questions"`
}
