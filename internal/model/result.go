package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is a persisted record of one finalized quiz session.
type QuizResult struct {
	ID               uuid.UUID `json:"id"`
	QuizID           uuid.UUID `json:"quiz_id"`
	QuizTitle        string    `json:"quiz_title"`
	UserID           int       `json:"user_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	Score            float64   `json:"score"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	SkippedCount     int       `json:"skipped_count"`
	FinalizedBy      string    `json:"finalized_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// ResultReport is the queue payload produced once per finalized session.
// The mail worker renders it field-for-field into the operator e-mail.
type ResultReport struct {
	QuizID           string  `json:"quiz_id"`
	QuizTitle        string  `json:"quiz_title"`
	UserID           int     `json:"user_id"`
	UserName         string  `json:"user_name"`
	UserEmail        string  `json:"user_email"`
	Score            float64 `json:"score"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	SkippedCount     int     `json:"skipped_count"`
	FinalizedBy      string  `json:"finalized_by"`
}
