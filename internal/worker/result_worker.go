package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains the persist queue and writes quiz_results rows in
// batches. A failed batch falls back to single inserts; a failed single
// insert is requeued so nothing is lost across restarts.
type ResultWorker struct {
	resultRepo *repository.ResultRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

func NewResultWorker(resultRepo *repository.ResultRepository, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		resultRepo: resultRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "result_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*model.ResultReport, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var report model.ResultReport
			if err := json.Unmarshal([]byte(item[1]), &report); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &report)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper with fallback + requeue
// ----------------------------------------------------------------

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*model.ResultReport) {
	if len(batch) == 0 {
		return
	}

	rows := make([]model.QuizResult, 0, len(batch))
	for _, report := range batch {
		row, err := toResultRow(report)
		if err != nil {
			w.log.Error().Err(err).Str("quiz_id", report.QuizID).Msg("Malformed report dropped")
			continue
		}
		rows = append(rows, *row)
	}

	if err := w.resultRepo.BulkCreate(ctx, rows); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for i := range rows {
			if err := w.resultRepo.Create(ctx, &rows[i]); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(resultReportFromRow(&rows[i]))
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("rows", len(rows)).Msg("Result batch persisted")
}

func toResultRow(report *model.ResultReport) (*model.QuizResult, error) {
	quizID, err := uuid.Parse(report.QuizID)
	if err != nil {
		return nil, err
	}
	return &model.QuizResult{
		QuizID:           quizID,
		QuizTitle:        report.QuizTitle,
		UserID:           report.UserID,
		UserName:         report.UserName,
		UserEmail:        report.UserEmail,
		Score:            report.Score,
		CorrectAnswers:   report.CorrectAnswers,
		IncorrectAnswers: report.IncorrectAnswers,
		SkippedCount:     report.SkippedCount,
		FinalizedBy:      report.FinalizedBy,
	}, nil
}

func resultReportFromRow(row *model.QuizResult) model.ResultReport {
	return model.ResultReport{
		QuizID:           row.QuizID.String(),
		QuizTitle:        row.QuizTitle,
		UserID:           row.UserID,
		UserName:         row.UserName,
		UserEmail:        row.UserEmail,
		Score:            row.Score,
		CorrectAnswers:   row.CorrectAnswers,
		IncorrectAnswers: row.IncorrectAnswers,
		SkippedCount:     row.SkippedCount,
		FinalizedBy:      row.FinalizedBy,
	}
}
