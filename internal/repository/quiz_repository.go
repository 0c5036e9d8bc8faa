package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// GetByID retrieves a quiz by its UUID.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := r.pool.QueryRow(ctx,
		`SELECT q.id, q.title, q.course_id, q.subject_id, q.total_time_minutes,
		        q.negative_marking, q.status, q.created_at, q.updated_at,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
		 FROM quizzes q WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.CourseID, &q.SubjectID, &q.TotalTimeMinutes,
		&q.NegativeMarking, &q.Status, &q.CreatedAt, &q.UpdatedAt, &q.QuestionCount)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListBySubject retrieves quizzes under a subject, optionally filtered by status.
func (r *QuizRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID, status model.QuizStatus) ([]model.Quiz, error) {
	query := `SELECT q.id, q.title, q.course_id, q.subject_id, q.total_time_minutes,
	                 q.negative_marking, q.status, q.created_at, q.updated_at,
	                 (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
	          FROM quizzes q WHERE q.subject_id = $1`
	args := []any{subjectID}
	if status != "" {
		query += ` AND q.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY q.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.CourseID, &q.SubjectID, &q.TotalTimeMinutes,
			&q.NegativeMarking, &q.Status, &q.CreatedAt, &q.UpdatedAt, &q.QuestionCount); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// ListPaginated retrieves quizzes for the admin panel with a total count.
func (r *QuizRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Quiz, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title, q.course_id, q.subject_id, q.total_time_minutes,
		        q.negative_marking, q.status, q.created_at, q.updated_at,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
		 FROM quizzes q ORDER BY q.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.CourseID, &q.SubjectID, &q.TotalTimeMinutes,
			&q.NegativeMarking, &q.Status, &q.CreatedAt, &q.UpdatedAt, &q.QuestionCount); err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, total, rows.Err()
}

// ListByStatus retrieves every quiz in the given status. Used for cache prewarming.
func (r *QuizRepository) ListByStatus(ctx context.Context, status model.QuizStatus) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title, q.course_id, q.subject_id, q.total_time_minutes,
		        q.negative_marking, q.status, q.created_at, q.updated_at,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
		 FROM quizzes q WHERE q.status = $1`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.CourseID, &q.SubjectID, &q.TotalTimeMinutes,
			&q.NegativeMarking, &q.Status, &q.CreatedAt, &q.UpdatedAt, &q.QuestionCount); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// Create inserts a new quiz in DRAFT status.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, course_id, subject_id, total_time_minutes, negative_marking, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		q.Title, q.CourseID, q.SubjectID, q.TotalTimeMinutes, q.NegativeMarking, q.Status,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update rewrites the quiz metadata.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, total_time_minutes = $2, negative_marking = $3, updated_at = NOW()
		 WHERE id = $4`,
		q.Title, q.TotalTimeMinutes, q.NegativeMarking, q.ID)
	return err
}

// UpdateStatus moves a quiz between lifecycle states.
func (r *QuizRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.QuizStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

// Delete removes a quiz and, through cascades, its questions and results.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
