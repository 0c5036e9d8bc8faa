package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/engine"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	ErrNoQuestions      = errors.New("quiz has no questions, cannot publish")
	ErrQuizNotDraft     = errors.New("quiz status is not DRAFT")
	ErrQuizNotPublished = errors.New("quiz status is not PUBLISHED")
	ErrQuizNotAvailable = errors.New("quiz not available")
)

// QuizService handles quiz business logic and Redis caching.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "quiz_service").Logger(),
	}
}

// GetByID retrieves a quiz by its UUID.
func (s *QuizService) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return s.quizRepo.GetByID(ctx, id)
}

// ListBySubject retrieves quizzes under a subject, optionally filtered by status.
func (s *QuizService) ListBySubject(ctx context.Context, subjectID uuid.UUID, status model.QuizStatus) ([]model.Quiz, error) {
	quizzes, err := s.quizRepo.ListBySubject(ctx, subjectID, status)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

// List retrieves quizzes for the admin panel with pagination.
func (s *QuizService) List(ctx context.Context, page, perPage int) ([]model.Quiz, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	quizzes, total, err := s.quizRepo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if quizzes == nil {
		quizzes = []model.Quiz{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return quizzes, pagination, nil
}

// Create inserts a new quiz as DRAFT.
func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz) error {
	quiz.Status = model.QuizStatusDraft
	return s.quizRepo.Create(ctx, quiz)
}

// Update modifies an existing draft quiz.
func (s *QuizService) Update(ctx context.Context, quiz *model.Quiz) error {
	existing, err := s.quizRepo.GetByID(ctx, quiz.ID)
	if err != nil {
		return err
	}
	if existing.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}
	return s.quizRepo.Update(ctx, quiz)
}

// Delete removes a draft quiz.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}
	return s.quizRepo.Delete(ctx, id)
}

// Publish changes quiz status to PUBLISHED and caches the payload + full
// definition in Redis. This is the critical path that populates the fast lane.
func (s *QuizService) Publish(ctx context.Context, quizID uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}

	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}

	// Prewarm cache for this quiz.
	if err := s.WarmQuizCache(ctx, quiz); err != nil {
		return err
	}

	// Update status in PostgreSQL.
	if err := s.quizRepo.UpdateStatus(ctx, quizID, model.QuizStatusPublished); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.log.Info().Str("quiz_id", quizID.String()).Msg("Quiz published")
	return nil
}

// Archive retires a published quiz and drops its cache entries so new
// sessions can no longer start.
func (s *QuizService) Archive(ctx context.Context, quizID uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}
	if quiz.Status != model.QuizStatusPublished {
		return ErrQuizNotPublished
	}

	if err := s.quizRepo.UpdateStatus(ctx, quizID, model.QuizStatusArchived); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.QuizPayloadKey(quizID.String()))
	pipe.Del(ctx, config.CacheKey.QuizDefinitionKey(quizID.String()))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("Failed to drop cache entries")
	}

	s.log.Info().Str("quiz_id", quizID.String()).Msg("Quiz archived")
	return nil
}

// RefreshCache re-caches the payload + definition for a published quiz.
// Called when questions are updated after publish.
func (s *QuizService) RefreshCache(ctx context.Context, quizID uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}

	if quiz.Status != model.QuizStatusPublished {
		return ErrQuizNotPublished
	}

	if err := s.WarmQuizCache(ctx, quiz); err != nil {
		return err
	}

	s.log.Info().Str("quiz_id", quizID.String()).Msg("Cache refreshed")
	return nil
}

// WarmQuizCache loads a quiz's taker payload and full definition from
// PostgreSQL into Redis. The payload never carries correct flags; the
// definition does and is only read server-side by the session engine.
func (s *QuizService) WarmQuizCache(ctx context.Context, quiz *model.Quiz) error {
	questions, err := s.questionRepo.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	// Build taker-facing payload (without correct flags).
	takerQuestions := make([]model.QuestionForTaker, len(questions))
	for i, q := range questions {
		options := make([]string, len(q.Options))
		for j, opt := range q.Options {
			options[j] = opt.Text
		}
		takerQuestions[i] = model.QuestionForTaker{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      options,
			Marks:        q.Marks,
			ImageURL:     q.ImageURL,
			OrderNum:     q.OrderNum,
		}
	}

	payload := model.QuizPayload{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		TotalTimeMinutes: quiz.TotalTimeMinutes,
		NegativeMarking:  quiz.NegativeMarking,
		Questions:        takerQuestions,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	// Build the full definition used by server-side sessions.
	def := buildDefinition(quiz, questions)
	defJSON, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	// Cache both atomically via pipeline.
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.QuizPayloadKey(quiz.ID.String()), payloadJSON, 0)
	pipe.Set(ctx, config.CacheKey.QuizDefinitionKey(quiz.ID.String()), defJSON, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("quiz_id", quiz.ID.String()).
		Int("questions", len(questions)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads all published quizzes into Redis on application startup.
// This prevents any lazy-loading race conditions under thundering herd traffic.
func (s *QuizService) PrewarmAllCaches(ctx context.Context) error {
	quizzes, err := s.quizRepo.ListByStatus(ctx, model.QuizStatusPublished)
	if err != nil {
		return fmt.Errorf("list published quizzes: %w", err)
	}

	if len(quizzes) == 0 {
		s.log.Info().Msg("No published quizzes to prewarm")
		return nil
	}

	s.log.Info().Int("count", len(quizzes)).Msg("Prewarming published quizzes...")

	warmed := 0
	for i := range quizzes {
		if err := s.WarmQuizCache(ctx, &quizzes[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("quiz_id", quizzes[i].ID.String()).
				Msg("Failed to warm quiz, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(quizzes)).
		Msg("Prewarming complete")
	return nil
}

// GetQuizPayload retrieves the cached taker payload from Redis.
func (s *QuizService) GetQuizPayload(ctx context.Context, quizID uuid.UUID) (*model.QuizPayload, error) {
	key := config.CacheKey.QuizPayloadKey(quizID.String())
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuizNotAvailable
		}
		return nil, fmt.Errorf("get payload: %w", err)
	}

	var payload model.QuizPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &payload, nil
}

// GetQuizDefinition retrieves the full definition (correct flags included)
// from Redis for a new session. Falls back to PostgreSQL on a cache miss so
// a flushed Redis does not block quiz taking.
func (s *QuizService) GetQuizDefinition(ctx context.Context, quizID uuid.UUID) (*engine.QuizDefinition, error) {
	key := config.CacheKey.QuizDefinitionKey(quizID.String())
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var def engine.QuizDefinition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("unmarshal definition: %w", err)
		}
		return &def, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get definition: %w", err)
	}

	// Cache miss: rebuild from PostgreSQL and rewarm.
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, ErrQuizNotAvailable
	}
	if quiz.Status != model.QuizStatusPublished {
		return nil, ErrQuizNotAvailable
	}
	if err := s.WarmQuizCache(ctx, quiz); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	def := buildDefinition(quiz, questions)
	return &def, nil
}

func buildDefinition(quiz *model.Quiz, questions []model.Question) engine.QuizDefinition {
	engineQuestions := make([]engine.Question, len(questions))
	for i, q := range questions {
		options := make([]engine.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = engine.Option{Text: opt.Text, IsCorrect: opt.IsCorrect}
		}
		engineQuestions[i] = engine.Question{
			Text:     q.QuestionText,
			Marks:    q.Marks,
			Options:  options,
			ImageURL: q.ImageURL,
		}
	}
	return engine.QuizDefinition{
		ID:               quiz.ID.String(),
		Title:            quiz.Title,
		TotalTimeMinutes: quiz.TotalTimeMinutes,
		NegativeMarking:  quiz.NegativeMarking,
		Questions:        engineQuestions,
	}
}
