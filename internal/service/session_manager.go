package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/engine"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QueueReporter pushes a finalized result onto the persistence and mail
// queues. Workers drain both independently so a slow SMTP server never
// blocks row inserts.
type QueueReporter struct {
	rdb     *redis.Client
	profile model.Profile
	log     zerolog.Logger
}

// NewQueueReporter creates a reporter bound to one learner's identity.
func NewQueueReporter(rdb *redis.Client, profile model.Profile, log zerolog.Logger) *QueueReporter {
	return &QueueReporter{
		rdb:     rdb,
		profile: profile,
		log:     log.With().Str("component", "queue_reporter").Logger(),
	}
}

// Report enqueues the result exactly once per finalized session. The
// engine guarantees single invocation; this method only has to deliver.
func (r *QueueReporter) Report(summary engine.ResultSummary) {
	report := model.ResultReport{
		QuizID:           summary.QuizID,
		QuizTitle:        summary.QuizTitle,
		UserID:           r.profile.ID,
		UserName:         r.profile.Name,
		UserEmail:        r.profile.Email,
		Score:            summary.Score,
		CorrectAnswers:   summary.CorrectCount,
		IncorrectAnswers: summary.IncorrectCount,
		SkippedCount:     summary.SkippedCount,
		FinalizedBy:      string(summary.FinalizedBy),
	}

	raw, err := json.Marshal(report)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to marshal result report")
		return
	}

	ctx := context.Background()
	pipe := r.rdb.Pipeline()
	pipe.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
	pipe.RPush(ctx, config.WorkerKey.MailResultsQueue, raw)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Error().
			Err(err).
			Str("quiz_id", summary.QuizID).
			Int("user_id", r.profile.ID).
			Msg("Failed to enqueue result report")
		return
	}

	r.log.Info().
		Str("quiz_id", summary.QuizID).
		Int("user_id", r.profile.ID).
		Float64("score", summary.Score).
		Str("finalized_by", string(summary.FinalizedBy)).
		Msg("Result report enqueued")
}

// SessionManager tracks the live quiz session of each learner. One
// learner holds at most one session per quiz; starting a new one closes
// the previous session without finalizing it.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*engine.Session
	log      zerolog.Logger
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager(log zerolog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*engine.Session),
		log:      log.With().Str("component", "session_manager").Logger(),
	}
}

func sessionKey(userID int, quizID string) string {
	return fmt.Sprintf("%d:%s", userID, quizID)
}

// Start creates a fresh session for the learner and quiz, replacing any
// existing one. The replaced session is closed, not finalized, so no
// stray report is produced.
func (m *SessionManager) Start(userID int, def engine.QuizDefinition, reporter engine.Reporter) *engine.Session {
	key := sessionKey(userID, def.ID)

	m.mu.Lock()
	if old, ok := m.sessions[key]; ok {
		old.Close()
		m.log.Warn().
			Int("user_id", userID).
			Str("quiz_id", def.ID).
			Msg("Replacing live session")
	}
	session := engine.NewSession(def, engine.NewWallTicker(), reporter)
	m.sessions[key] = session
	m.mu.Unlock()

	m.log.Info().
		Int("user_id", userID).
		Str("quiz_id", def.ID).
		Int("questions", len(def.Questions)).
		Msg("Session started")
	return session
}

// Get returns the learner's live session for a quiz, or nil.
func (m *SessionManager) Get(userID int, quizID string) *engine.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionKey(userID, quizID)]
}

// Release drops the session from the registry and stops its ticker. The
// session itself stays valid for final reads by the caller.
func (m *SessionManager) Release(userID int, quizID string) {
	key := sessionKey(userID, quizID)

	m.mu.Lock()
	session, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if ok {
		session.Close()
		m.log.Debug().
			Int("user_id", userID).
			Str("quiz_id", quizID).
			Msg("Session released")
	}
}

// Count returns the number of live sessions. Exposed for the health endpoint.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
