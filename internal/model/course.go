package model

import (
	"time"

	"github.com/google/uuid"
)

// Course groups subjects a learner can enrol in.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
}

// UpdateCourseRequest is the payload for renaming a course.
type UpdateCourseRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
}
