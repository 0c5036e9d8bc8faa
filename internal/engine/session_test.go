package engine

import (
	"testing"
)

// manualTicker drives the countdown deterministically from the test.
type manualTicker struct {
	tick    func()
	stopped int
}

func (t *manualTicker) Start(tick func()) { t.tick = tick }
func (t *manualTicker) Stop()             { t.stopped++ }

func (t *manualTicker) elapse(seconds int) {
	for i := 0; i < seconds; i++ {
		t.tick()
	}
}

// countingReporter records every dispatched summary.
type countingReporter struct {
	calls int
	last  ResultSummary
}

func (r *countingReporter) Report(summary ResultSummary) {
	r.calls++
	r.last = summary
}

func threeQuestionQuiz() QuizDefinition {
	return QuizDefinition{
		ID:               "quiz-1",
		Title:            "General Knowledge",
		TotalTimeMinutes: 2,
		NegativeMarking:  0.25,
		Questions: []Question{
			{
				Text:  "Capital of India?",
				Marks: 1,
				Options: []Option{
					{Text: "Mumbai"},
					{Text: "New Delhi", IsCorrect: true},
				},
			},
			{
				Text:  "Largest planet?",
				Marks: 1,
				Options: []Option{
					{Text: "Jupiter", IsCorrect: true},
					{Text: "Saturn"},
				},
			},
			{
				Text:  "2 + 2 * 2?",
				Marks: 2,
				Options: []Option{
					{Text: "6", IsCorrect: true},
					{Text: "8"},
				},
			},
		},
	}
}

func TestManualFinishScenario(t *testing.T) {
	ticker := &manualTicker{}
	reporter := &countingReporter{}
	s := NewSession(threeQuestionQuiz(), ticker, reporter)

	// Q1 correct, Q2 incorrect, Q3 skipped, then advance past the end.
	s.SubmitAnswer(0, "New Delhi")
	s.Advance(Forward)
	s.SubmitAnswer(1, "Saturn")
	s.Advance(Forward)
	s.Advance(Forward)

	if s.Phase() != PhaseFinalized {
		t.Fatalf("phase = %s, want FINALIZED", s.Phase())
	}

	res, ok := s.Result()
	if !ok {
		t.Fatal("no result after finalize")
	}
	if res.CorrectCount != 1 || res.IncorrectCount != 1 || res.SkippedCount != 1 {
		t.Fatalf("partition = %d/%d/%d, want 1/1/1",
			res.CorrectCount, res.IncorrectCount, res.SkippedCount)
	}
	if res.Score != 0.75 {
		t.Fatalf("score = %v, want 0.75", res.Score)
	}
	if res.FinalizedBy != CauseNavigation {
		t.Fatalf("finalized by %s, want NAVIGATION", res.FinalizedBy)
	}
	if reporter.calls != 1 {
		t.Fatalf("reporter called %d times, want 1", reporter.calls)
	}
	if len(res.Incorrect) != 1 || res.Incorrect[0].CorrectAnswerText != "Jupiter" {
		t.Fatalf("unexpected review entries: %+v", res.Incorrect)
	}
}

func TestTimeoutScenario(t *testing.T) {
	ticker := &manualTicker{}
	reporter := &countingReporter{}
	s := NewSession(threeQuestionQuiz(), ticker, reporter)

	// Nobody answers anything; the clock runs out.
	ticker.elapse(120)

	if s.Phase() != PhaseFinalized {
		t.Fatal("session not finalized by timeout")
	}
	res, _ := s.Result()
	if res.CorrectCount != 0 || res.IncorrectCount != 0 || res.SkippedCount != 3 {
		t.Fatalf("partition = %d/%d/%d, want 0/0/3",
			res.CorrectCount, res.IncorrectCount, res.SkippedCount)
	}
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}
	if res.FinalizedBy != CauseTimeout {
		t.Fatalf("finalized by %s, want TIMEOUT", res.FinalizedBy)
	}
	if reporter.calls != 1 {
		t.Fatalf("reporter called %d times, want 1", reporter.calls)
	}

	// Stray ticks after expiry change nothing.
	ticker.elapse(5)
	if reporter.calls != 1 || s.SecondsRemaining() != 0 {
		t.Fatal("stale ticks mutated a finalized session")
	}
}

func TestScoreConsistency(t *testing.T) {
	def := threeQuestionQuiz()
	s := NewSession(def, nil, nil)

	s.SubmitAnswer(0, "Mumbai")
	s.Advance(Forward)
	s.SubmitAnswer(1, "Jupiter")
	s.Advance(Forward)
	s.SubmitAnswer(2, "8")

	running := s.Tallies()
	s.Finalize(CauseNavigation)
	res, _ := s.Result()

	if res.Score != running.Score {
		t.Fatalf("final score %v != incremental score %v", res.Score, running.Score)
	}
	if res.CorrectCount != running.CorrectCount || res.IncorrectCount != running.IncorrectCount {
		t.Fatalf("final counts %d/%d != incremental %d/%d",
			res.CorrectCount, res.IncorrectCount, running.CorrectCount, running.IncorrectCount)
	}
}

func TestPartitionCompleteness(t *testing.T) {
	def := threeQuestionQuiz()

	plays := [][]struct {
		index  int
		option string
	}{
		{},
		{{0, "New Delhi"}},
		{{0, "Mumbai"}, {2, "6"}},
		{{0, "New Delhi"}, {1, "Jupiter"}, {2, "6"}},
	}

	for i, play := range plays {
		s := NewSession(def, nil, nil)
		for _, p := range play {
			s.SubmitAnswer(p.index, p.option)
		}
		s.Finalize(CauseNavigation)
		res, _ := s.Result()
		if got := res.CorrectCount + res.IncorrectCount + res.SkippedCount; got != len(def.Questions) {
			t.Errorf("play %d: partition sums to %d, want %d", i, got, len(def.Questions))
		}
	}
}

func TestAnswerImmutable(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil, nil)

	first := s.SubmitAnswer(0, "New Delhi")
	second := s.SubmitAnswer(0, "Mumbai")

	if first != second {
		t.Fatalf("resubmit changed tallies: %+v -> %+v", first, second)
	}

	s.Finalize(CauseNavigation)
	res, _ := s.Result()
	if res.CorrectCount != 1 {
		t.Fatalf("first answer not preserved: %+v", res)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	ticker := &manualTicker{}
	reporter := &countingReporter{}
	s := NewSession(threeQuestionQuiz(), ticker, reporter)

	s.SubmitAnswer(0, "New Delhi")
	for i := 0; i < 5; i++ {
		s.Finalize(CauseNavigation)
	}
	// The race partner: a tick arriving right after manual finish.
	ticker.elapse(3)

	if reporter.calls != 1 {
		t.Fatalf("reporter called %d times, want 1", reporter.calls)
	}
	if ticker.stopped == 0 {
		t.Fatal("ticker never stopped")
	}

	// Post-finalize operations are all no-ops.
	s.SubmitAnswer(1, "Jupiter")
	s.Advance(Forward)
	res, _ := s.Result()
	if res.CorrectCount != 1 || res.SkippedCount != 2 {
		t.Fatalf("finalized session mutated: %+v", res)
	}
}

func TestTimeoutMatchesManualFinish(t *testing.T) {
	def := threeQuestionQuiz()

	byNav := NewSession(def, nil, nil)
	byNav.SubmitAnswer(0, "New Delhi")
	byNav.SubmitAnswer(1, "Saturn")
	byNav.Finalize(CauseNavigation)

	ticker := &manualTicker{}
	byTime := NewSession(def, ticker, nil)
	byTime.SubmitAnswer(0, "New Delhi")
	byTime.SubmitAnswer(1, "Saturn")
	ticker.elapse(120)

	a, _ := byNav.Result()
	b, _ := byTime.Result()

	if a.Score != b.Score ||
		a.CorrectCount != b.CorrectCount ||
		a.IncorrectCount != b.IncorrectCount ||
		a.SkippedCount != b.SkippedCount {
		t.Fatalf("deadline result %+v differs from manual result %+v", b, a)
	}
}

func TestBackwardClampsAtZero(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil, nil)

	s.Advance(Backward)
	if s.CurrentIndex() != 0 {
		t.Fatalf("index = %d after backward at 0, want 0", s.CurrentIndex())
	}

	s.Advance(Forward)
	s.Advance(Backward)
	s.Advance(Backward)
	if s.CurrentIndex() != 0 {
		t.Fatalf("index = %d, want 0", s.CurrentIndex())
	}
	if s.Phase() != PhaseRunning {
		t.Fatal("backward navigation must never finalize")
	}
}

func TestSnapshotView(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil, nil)

	snap := s.Snapshot()
	if snap.QuestionNumber != 1 || snap.TotalQuestions != 3 {
		t.Fatalf("position %d/%d, want 1/3", snap.QuestionNumber, snap.TotalQuestions)
	}
	if snap.Clock != "2:00" {
		t.Fatalf("clock = %q, want 2:00", snap.Clock)
	}
	if len(snap.Options) != 2 || snap.Options[1] != "New Delhi" {
		t.Fatalf("options = %v", snap.Options)
	}
	if snap.Chosen != nil {
		t.Fatal("chosen set before any answer")
	}

	s.SubmitAnswer(0, "New Delhi")
	snap = s.Snapshot()
	if snap.Chosen == nil || *snap.Chosen != "New Delhi" {
		t.Fatalf("chosen = %v, want New Delhi", snap.Chosen)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:   "0:00",
		9:   "0:09",
		60:  "1:00",
		75:  "1:15",
		600: "10:00",
		-3:  "0:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
