package engine

// Option is a single answer choice of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is one quiz question with its ordered answer choices.
type Question struct {
	Text     string   `json:"text"`
	Marks    float64  `json:"marks"`
	Options  []Option `json:"options"`
	ImageURL string   `json:"image_url,omitempty"`
}

// CorrectText returns the text of the first option marked correct.
// Authoring is expected to mark exactly one, but the engine tolerates
// defective data: with several marked, the first wins; with none, the
// empty string is returned, which can never match a real choice.
func (q Question) CorrectText() string {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.Text
		}
	}
	return ""
}

// QuizDefinition is the immutable definition a session runs against.
// It is loaded once at session start and never mutated; question order
// is significant and fixed for the session's lifetime.
type QuizDefinition struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	TotalTimeMinutes int        `json:"total_time_minutes"`
	NegativeMarking  float64    `json:"negative_marking"`
	Questions        []Question `json:"questions"`
}
