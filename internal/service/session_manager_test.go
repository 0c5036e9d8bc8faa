package service

import (
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/engine"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type noopReporter struct{}

func (noopReporter) Report(engine.ResultSummary) {}

func testDefinition(id string) engine.QuizDefinition {
	return engine.QuizDefinition{
		ID:               id,
		Title:            "General Knowledge",
		TotalTimeMinutes: 5,
		Questions: []engine.Question{
			{
				Text:  "Capital of France?",
				Marks: 1,
				Options: []engine.Option{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
		},
	}
}

func TestSessionManagerStartGetRelease(t *testing.T) {
	m := NewSessionManager(zerolog.Nop())

	def := testDefinition("quiz-1")
	s := m.Start(7, def, noopReporter{})
	if s == nil {
		t.Fatal("expected a session")
	}
	if got := m.Get(7, "quiz-1"); got != s {
		t.Fatal("Get returned a different session")
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}

	m.Release(7, "quiz-1")
	if got := m.Get(7, "quiz-1"); got != nil {
		t.Fatal("session still present after Release")
	}
	if m.Count() != 0 {
		t.Fatalf("count = %d, want 0", m.Count())
	}
}

func TestSessionManagerStartReplacesExisting(t *testing.T) {
	m := NewSessionManager(zerolog.Nop())

	def := testDefinition("quiz-1")
	first := m.Start(7, def, noopReporter{})
	second := m.Start(7, def, noopReporter{})
	if first == second {
		t.Fatal("expected a fresh session on restart")
	}
	if got := m.Get(7, "quiz-1"); got != second {
		t.Fatal("registry should hold the replacement session")
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
}

func TestSessionManagerIsolatesUsersAndQuizzes(t *testing.T) {
	m := NewSessionManager(zerolog.Nop())

	a := m.Start(1, testDefinition("quiz-1"), noopReporter{})
	b := m.Start(2, testDefinition("quiz-1"), noopReporter{})
	c := m.Start(1, testDefinition("quiz-2"), noopReporter{})

	if a == b || a == c || b == c {
		t.Fatal("sessions must be distinct")
	}
	if m.Count() != 3 {
		t.Fatalf("count = %d, want 3", m.Count())
	}
	if m.Get(1, "quiz-1") != a || m.Get(2, "quiz-1") != b || m.Get(1, "quiz-2") != c {
		t.Fatal("lookup returned wrong session")
	}
}

func TestQueueReporterPushesBothQueues(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	profile := model.Profile{ID: 42, Name: "Asha Verma", Email: "asha@example.com"}
	reporter := NewQueueReporter(rdb, profile, zerolog.Nop())

	reporter.Report(engine.ResultSummary{
		QuizID:         "quiz-1",
		QuizTitle:      "General Knowledge",
		Score:          3.5,
		CorrectCount:   4,
		IncorrectCount: 2,
		SkippedCount:   1,
		FinalizedBy:    engine.CauseNavigation,
	})

	for _, queue := range []string{config.WorkerKey.PersistResultsQueue, config.WorkerKey.MailResultsQueue} {
		raw, err := mr.Lpop(queue)
		if err != nil {
			t.Fatalf("pop %s: %v", queue, err)
		}

		var report model.ResultReport
		if err := json.Unmarshal([]byte(raw), &report); err != nil {
			t.Fatalf("unmarshal %s: %v", queue, err)
		}
		if report.UserID != 42 || report.UserName != "Asha Verma" || report.UserEmail != "asha@example.com" {
			t.Errorf("%s: wrong identity: %+v", queue, report)
		}
		if report.Score != 3.5 || report.CorrectAnswers != 4 || report.IncorrectAnswers != 2 || report.SkippedCount != 1 {
			t.Errorf("%s: wrong tallies: %+v", queue, report)
		}
		if report.FinalizedBy != string(engine.CauseNavigation) {
			t.Errorf("%s: finalized_by = %q", queue, report.FinalizedBy)
		}
	}
}
