package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
)

// SubjectService handles subject business logic.
type SubjectService struct {
	repo *repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(repo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{repo: repo}
}

func (s *SubjectService) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SubjectService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Subject, error) {
	subjects, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

func (s *SubjectService) Create(ctx context.Context, subject *model.Subject) error {
	return s.repo.Create(ctx, subject)
}

func (s *SubjectService) Update(ctx context.Context, subject *model.Subject) error {
	return s.repo.Update(ctx, subject)
}

func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
