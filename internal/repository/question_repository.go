package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
)

// QuestionRepository handles question data access. Options are stored as a
// jsonb column so the option list travels with its question row.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByQuiz retrieves the questions of a quiz in presentation order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, question_text, options, marks, image_url, order_num, created_at
		 FROM questions WHERE quiz_id = $1 ORDER BY order_num`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var optionsRaw []byte
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &optionsRaw,
			&q.Marks, &q.ImageURL, &q.OrderNum, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(optionsRaw, &q.Options); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountByQuiz returns the number of questions in a quiz.
func (r *QuestionRepository) CountByQuiz(ctx context.Context, quizID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE quiz_id = $1`, quizID).Scan(&count)
	return count, err
}

// Create appends a question at the end of the quiz.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	optionsRaw, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (quiz_id, question_text, options, marks, image_url, order_num)
		 VALUES ($1, $2, $3, $4, $5,
		         (SELECT COALESCE(MAX(order_num), 0) + 1 FROM questions WHERE quiz_id = $1))
		 RETURNING id, order_num, created_at`,
		q.QuizID, q.QuestionText, optionsRaw, q.Marks, q.ImageURL,
	).Scan(&q.ID, &q.OrderNum, &q.CreatedAt)
}

// ReplaceAll swaps the full question set of a quiz inside one transaction.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, quizID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		optionsRaw, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (quiz_id, question_text, options, marks, image_url, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at`,
			quizID, q.QuestionText, optionsRaw, q.Marks, q.ImageURL, i+1,
		).Scan(&q.ID, &q.CreatedAt)
		if err != nil {
			return err
		}
		q.QuizID = quizID
		q.OrderNum = i + 1
	}

	return tx.Commit(ctx)
}

// Delete removes a single question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
