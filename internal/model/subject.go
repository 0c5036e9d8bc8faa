package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject is one study area within a course. Quizzes are scoped to a
// course + subject pair.
type Subject struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSubjectRequest is the payload for adding a subject to a course.
type CreateSubjectRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=2,max=255"`
}

// UpdateSubjectRequest is the payload for renaming a subject.
type UpdateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
