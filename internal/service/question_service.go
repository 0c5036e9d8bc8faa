package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
)

// ErrNoCorrectOption is returned when a question payload marks no option
// correct. Such a question could never be answered correctly.
var ErrNoCorrectOption = errors.New("question must mark at least one option correct")

// QuestionService handles question business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	quizRepo     *repository.QuizRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, quizRepo *repository.QuizRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, quizRepo: quizRepo}
}

// ListByQuiz retrieves the questions of a quiz in presentation order.
func (s *QuestionService) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Add appends a question to a draft quiz.
func (s *QuestionService) Add(ctx context.Context, quizID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizStatusDraft {
		return nil, ErrQuizNotDraft
	}

	question, err := buildQuestion(quizID, req)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ReplaceAll swaps the full question set of a draft quiz.
func (s *QuestionService) ReplaceAll(ctx context.Context, quizID uuid.UUID, req *model.ReplaceQuestionsRequest) ([]model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizStatusDraft {
		return nil, ErrQuizNotDraft
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		q, err := buildQuestion(quizID, &req.Questions[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	if err := s.questionRepo.ReplaceAll(ctx, quizID, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Delete removes a question from a draft quiz.
func (s *QuestionService) Delete(ctx context.Context, quizID, questionID uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}
	return s.questionRepo.Delete(ctx, questionID)
}

func buildQuestion(quizID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	options := make([]model.QuestionOption, len(req.Options))
	hasCorrect := false
	for i, opt := range req.Options {
		options[i] = model.QuestionOption{Text: opt.Text, IsCorrect: opt.IsCorrect}
		if opt.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return nil, ErrNoCorrectOption
	}

	return &model.Question{
		QuizID:       quizID,
		QuestionText: req.QuestionText,
		Options:      options,
		Marks:        req.Marks,
		ImageURL:     req.ImageURL,
		OrderNum:     req.OrderNum,
	}, nil
}
