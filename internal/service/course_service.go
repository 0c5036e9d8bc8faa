package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
)

// CourseService handles course business logic.
type CourseService struct {
	repo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.repo.Create(ctx, course)
}

func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	return s.repo.Update(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
