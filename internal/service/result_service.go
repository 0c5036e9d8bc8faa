package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
)

// ResultService reads persisted quiz results.
type ResultService struct {
	repo *repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(repo *repository.ResultRepository) *ResultService {
	return &ResultService{repo: repo}
}

// ListByQuiz retrieves a quiz's results for the admin panel.
func (s *ResultService) ListByQuiz(ctx context.Context, quizID uuid.UUID, page, perPage int) ([]model.QuizResult, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	results, total, err := s.repo.ListByQuiz(ctx, quizID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.QuizResult{}
	}
	return results, paginationFor(page, perPage, total), nil
}

// ListByUser retrieves a learner's own result history.
func (s *ResultService) ListByUser(ctx context.Context, userID, page, perPage int) ([]model.QuizResult, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	results, total, err := s.repo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.QuizResult{}
	}
	return results, paginationFor(page, perPage, total), nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func paginationFor(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
