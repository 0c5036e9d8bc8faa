package engine

import (
	"fmt"
	"sync"
)

// Phase is the session lifecycle state. Running is entered on
// construction; Finalized is terminal and permits no further mutation.
type Phase string

const (
	PhaseRunning   Phase = "RUNNING"
	PhaseFinalized Phase = "FINALIZED"
)

// Direction is a navigation request.
type Direction string

const (
	Forward  Direction = "FORWARD"
	Backward Direction = "BACKWARD"
)

// Reporter receives the result summary exactly once per session, on the
// first finalize transition. Implementations are fire-and-forget; a
// failing reporter must not block the on-screen result.
type Reporter interface {
	Report(summary ResultSummary)
}

// Tallies are the running score counters maintained at answer time for
// immediate feedback. They must always agree with a fresh Summarize over
// the answer slots.
type Tallies struct {
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	IncorrectCount int     `json:"incorrect_count"`
}

// Session is one user's timed attempt at a quiz definition. It owns its
// countdown ticker and answer record exclusively; the mutex serializes
// the UI-driven operations against the ticker callback, which are the
// only two event sources.
type Session struct {
	mu       sync.Mutex
	def      QuizDefinition
	ticker   Ticker
	reporter Reporter

	phase            Phase
	current          int
	answers          []*string
	visited          []bool
	secondsRemaining int
	tallies          Tallies
	result           *ResultSummary
}

// NewSession starts a Running session over def with a full clock. The
// ticker begins immediately; reporter and ticker may be nil for callers
// that drive the session manually.
func NewSession(def QuizDefinition, ticker Ticker, reporter Reporter) *Session {
	s := &Session{
		def:              def,
		ticker:           ticker,
		reporter:         reporter,
		phase:            PhaseRunning,
		answers:          make([]*string, len(def.Questions)),
		visited:          make([]bool, len(def.Questions)),
		secondsRemaining: def.TotalTimeMinutes * 60,
	}
	if len(s.visited) > 0 {
		s.visited[0] = true
	}
	if ticker != nil {
		ticker.Start(s.tick)
	}
	return s
}

// SubmitAnswer records the choice for the question at index. The slot is
// write-once: a second submit for the same index is a no-op, as is any
// submit after finalization or with an out-of-range index. Returns the
// running tallies either way.
func (s *Session) SubmitAnswer(index int, option string) Tallies {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning || index < 0 || index >= len(s.answers) || s.answers[index] != nil {
		return s.tallies
	}

	chosen := option
	s.answers[index] = &chosen
	s.visited[index] = true

	out := Score(s.def.Questions[index], s.def.NegativeMarking, &chosen)
	s.tallies.Score += out.Points
	switch out.Verdict {
	case VerdictCorrect:
		s.tallies.CorrectCount++
	case VerdictIncorrect:
		s.tallies.IncorrectCount++
	}

	return s.tallies
}

// Advance moves the cursor. Backward clamps at the first question.
// Forward from the last question is the end-of-quiz signal and
// finalizes instead of moving. Any navigation marks the left and the
// newly shown question as visited, so an explicitly skipped question is
// distinguishable from one never reached.
func (s *Session) Advance(dir Direction) {
	s.mu.Lock()

	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return
	}

	switch dir {
	case Backward:
		if s.current > 0 {
			s.current--
			s.visited[s.current] = true
		}
	case Forward:
		if s.current >= len(s.def.Questions)-1 {
			summary := s.finalizeLocked(CauseNavigation)
			s.mu.Unlock()
			s.dispatch(summary)
			return
		}
		s.visited[s.current] = true
		s.current++
		s.visited[s.current] = true
	}

	s.mu.Unlock()
}

// Finalize freezes the session. Safe to call any number of times from
// either the navigation path or the ticker expiry; only the first call
// produces and reports a summary.
func (s *Session) Finalize(cause FinalizeCause) {
	s.mu.Lock()
	summary := s.finalizeLocked(cause)
	s.mu.Unlock()
	s.dispatch(summary)
}

// finalizeLocked performs the one-way transition. Returns nil when the
// session was already finalized. Caller holds the mutex.
func (s *Session) finalizeLocked(cause FinalizeCause) *ResultSummary {
	if s.phase == PhaseFinalized {
		return nil
	}
	s.phase = PhaseFinalized

	summary := Summarize(s.def, s.answers, cause)
	s.result = &summary
	return &summary
}

// dispatch stops the ticker and hands the summary to the reporter,
// outside the session mutex. summary is nil on repeat finalize calls.
func (s *Session) dispatch(summary *ResultSummary) {
	if summary == nil {
		return
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	if s.reporter != nil {
		s.reporter.Report(*summary)
	}
}

// tick is the ticker callback: one wall-clock second elapsed. Ticks
// arriving after finalization are expected stale events and ignored.
func (s *Session) tick() {
	s.mu.Lock()

	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return
	}

	if s.secondsRemaining > 0 {
		s.secondsRemaining--
	}

	var summary *ResultSummary
	if s.secondsRemaining == 0 {
		summary = s.finalizeLocked(CauseTimeout)
	}

	s.mu.Unlock()
	s.dispatch(summary)
}

// Close tears the ticker down without finalizing. Used when the owner
// abandons the session; a stray tick must never mutate a dead session.
func (s *Session) Close() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SecondsRemaining returns the countdown value.
func (s *Session) SecondsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secondsRemaining
}

// Tallies returns the running counters.
func (s *Session) Tallies() Tallies {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tallies
}

// Result returns the summary once finalized.
func (s *Session) Result() (ResultSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return ResultSummary{}, false
	}
	return *s.result, true
}

// Definition returns the immutable definition the session runs against.
func (s *Session) Definition() QuizDefinition {
	return s.def
}

// Snapshot is the client-facing view of a running session: the shown
// question without its correct flags, the remaining clock, and the
// running tallies.
type Snapshot struct {
	Phase            Phase    `json:"phase"`
	QuestionNumber   int      `json:"question_number"`
	TotalQuestions   int      `json:"total_questions"`
	QuestionText     string   `json:"question_text"`
	ImageURL         string   `json:"image_url,omitempty"`
	Options          []string `json:"options"`
	Chosen           *string  `json:"chosen,omitempty"`
	SecondsRemaining int      `json:"seconds_remaining"`
	Clock            string   `json:"clock"`
	Tallies          Tallies  `json:"tallies"`
}

// Snapshot captures the current view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:            s.phase,
		QuestionNumber:   s.current + 1,
		TotalQuestions:   len(s.def.Questions),
		SecondsRemaining: s.secondsRemaining,
		Clock:            FormatClock(s.secondsRemaining),
		Tallies:          s.tallies,
	}

	if s.current < len(s.def.Questions) {
		q := s.def.Questions[s.current]
		snap.QuestionText = q.Text
		snap.ImageURL = q.ImageURL
		snap.Options = make([]string, len(q.Options))
		for i, o := range q.Options {
			snap.Options[i] = o.Text
		}
		snap.Chosen = s.answers[s.current]
	}

	return snap
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
