package engine

// Verdict classifies a question's outcome. Every question lands in
// exactly one class at finalization.
type Verdict string

const (
	VerdictCorrect   Verdict = "CORRECT"
	VerdictIncorrect Verdict = "INCORRECT"
	VerdictSkipped   Verdict = "SKIPPED"
)

// Outcome is the scored result of a single question.
type Outcome struct {
	Verdict Verdict
	Points  float64
}

// Score grades one question against the chosen option text. A nil choice
// is a skip worth zero. A choice matching the correct option's text earns
// the question's marks; anything else, including text that matches no
// option at all, costs the quiz's negative marking.
func Score(q Question, negativeMarking float64, chosen *string) Outcome {
	if chosen == nil {
		return Outcome{Verdict: VerdictSkipped}
	}
	if *chosen == q.CorrectText() {
		return Outcome{Verdict: VerdictCorrect, Points: q.Marks}
	}
	return Outcome{Verdict: VerdictIncorrect, Points: -negativeMarking}
}

// ReviewEntry describes one incorrectly answered question for the
// post-quiz review.
type ReviewEntry struct {
	QuestionText      string `json:"question_text"`
	CorrectAnswerText string `json:"correct_answer_text"`
	UserAnswerText    string `json:"user_answer_text"`
}

// FinalizeCause records which path froze the session.
type FinalizeCause string

const (
	CauseNavigation FinalizeCause = "NAVIGATION"
	CauseTimeout    FinalizeCause = "TIMEOUT"
)

// ResultSummary is the one-shot product of finalization.
// CorrectCount + IncorrectCount + SkippedCount always equals the number
// of questions in the definition.
type ResultSummary struct {
	QuizID         string        `json:"quiz_id"`
	QuizTitle      string        `json:"quiz_title"`
	Score          float64       `json:"score"`
	CorrectCount   int           `json:"correct_count"`
	IncorrectCount int           `json:"incorrect_count"`
	SkippedCount   int           `json:"skipped_count"`
	Incorrect      []ReviewEntry `json:"incorrect,omitempty"`
	FinalizedBy    FinalizeCause `json:"finalized_by"`
}

// Summarize re-derives the full result from the answer slots alone,
// walking questions in index order so floating-point accumulation is
// deterministic. The session's incrementally tracked tallies must agree
// with this derivation; the summary is the authoritative record.
func Summarize(def QuizDefinition, answers []*string, cause FinalizeCause) ResultSummary {
	sum := ResultSummary{
		QuizID:      def.ID,
		QuizTitle:   def.Title,
		FinalizedBy: cause,
	}

	for i, q := range def.Questions {
		var chosen *string
		if i < len(answers) {
			chosen = answers[i]
		}
		out := Score(q, def.NegativeMarking, chosen)
		sum.Score += out.Points

		switch out.Verdict {
		case VerdictCorrect:
			sum.CorrectCount++
		case VerdictIncorrect:
			sum.IncorrectCount++
			sum.Incorrect = append(sum.Incorrect, ReviewEntry{
				QuestionText:      q.Text,
				CorrectAnswerText: q.CorrectText(),
				UserAnswerText:    *chosen,
			})
		case VerdictSkipped:
			sum.SkippedCount++
		}
	}

	return sum
}
