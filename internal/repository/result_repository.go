package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
)

// ResultRepository handles persisted quiz results.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create inserts a single result row. Used as the worker's fallback path.
func (r *ResultRepository) Create(ctx context.Context, res *model.QuizResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_results
		   (quiz_id, quiz_title, user_id, user_name, user_email,
		    score, correct_answers, incorrect_answers, skipped_count, finalized_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		res.QuizID, res.QuizTitle, res.UserID, res.UserName, res.UserEmail,
		res.Score, res.CorrectAnswers, res.IncorrectAnswers, res.SkippedCount, res.FinalizedBy,
	).Scan(&res.ID, &res.CreatedAt)
}

// BulkCreate inserts a batch of result rows with a single UNNEST statement.
func (r *ResultRepository) BulkCreate(ctx context.Context, batch []model.QuizResult) error {
	n := len(batch)
	if n == 0 {
		return nil
	}

	quizIDs := make([]uuid.UUID, 0, n)
	quizTitles := make([]string, 0, n)
	userIDs := make([]int, 0, n)
	userNames := make([]string, 0, n)
	userEmails := make([]string, 0, n)
	scores := make([]float64, 0, n)
	corrects := make([]int, 0, n)
	incorrects := make([]int, 0, n)
	skips := make([]int, 0, n)
	finalizedBys := make([]string, 0, n)

	for _, res := range batch {
		quizIDs = append(quizIDs, res.QuizID)
		quizTitles = append(quizTitles, res.QuizTitle)
		userIDs = append(userIDs, res.UserID)
		userNames = append(userNames, res.UserName)
		userEmails = append(userEmails, res.UserEmail)
		scores = append(scores, res.Score)
		corrects = append(corrects, res.CorrectAnswers)
		incorrects = append(incorrects, res.IncorrectAnswers)
		skips = append(skips, res.SkippedCount)
		finalizedBys = append(finalizedBys, res.FinalizedBy)
	}

	query := `
		INSERT INTO quiz_results
		  (quiz_id, quiz_title, user_id, user_name, user_email,
		   score, correct_answers, incorrect_answers, skipped_count, finalized_by)
		SELECT
			u.quiz_id,
			u.quiz_title,
			u.user_id,
			u.user_name,
			u.user_email,
			u.score,
			u.correct_answers,
			u.incorrect_answers,
			u.skipped_count,
			u.finalized_by
		FROM UNNEST(
			$1::uuid[],
			$2::text[],
			$3::int[],
			$4::text[],
			$5::text[],
			$6::double precision[],
			$7::int[],
			$8::int[],
			$9::int[],
			$10::text[]
		) AS u (quiz_id, quiz_title, user_id, user_name, user_email,
		        score, correct_answers, incorrect_answers, skipped_count, finalized_by)
	`

	_, err := r.pool.Exec(ctx, query,
		quizIDs, quizTitles, userIDs, userNames, userEmails,
		scores, corrects, incorrects, skips, finalizedBys)
	return err
}

// ListByQuiz retrieves the results of a quiz for the admin panel, newest first.
func (r *ResultRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID, limit, offset int) ([]model.QuizResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_results WHERE quiz_id = $1`, quizID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, quiz_title, user_id, user_name, user_email,
		        score, correct_answers, incorrect_answers, skipped_count, finalized_by, created_at
		 FROM quiz_results WHERE quiz_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, quizID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		var res model.QuizResult
		if err := rows.Scan(&res.ID, &res.QuizID, &res.QuizTitle, &res.UserID, &res.UserName,
			&res.UserEmail, &res.Score, &res.CorrectAnswers, &res.IncorrectAnswers,
			&res.SkippedCount, &res.FinalizedBy, &res.CreatedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}

// ListByUser retrieves a learner's own result history, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]model.QuizResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, quiz_title, user_id, user_name, user_email,
		        score, correct_answers, incorrect_answers, skipped_count, finalized_by, created_at
		 FROM quiz_results WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		var res model.QuizResult
		if err := rows.Scan(&res.ID, &res.QuizID, &res.QuizTitle, &res.UserID, &res.UserName,
			&res.UserEmail, &res.Score, &res.CorrectAnswers, &res.IncorrectAnswers,
			&res.SkippedCount, &res.FinalizedBy, &res.CreatedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}
