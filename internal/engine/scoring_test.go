package engine

import "testing"

func strptr(s string) *string { return &s }

func TestScoreVerdicts(t *testing.T) {
	q := Question{
		Text:  "Pick one",
		Marks: 2,
		Options: []Option{
			{Text: "A"},
			{Text: "B", IsCorrect: true},
			{Text: "C"},
		},
	}

	cases := []struct {
		name   string
		chosen *string
		want   Outcome
	}{
		{"correct", strptr("B"), Outcome{VerdictCorrect, 2}},
		{"incorrect", strptr("A"), Outcome{VerdictIncorrect, -0.5}},
		{"skipped", nil, Outcome{VerdictSkipped, 0}},
		{"unknown option text", strptr("Z"), Outcome{VerdictIncorrect, -0.5}},
	}

	for _, tc := range cases {
		if got := Score(q, 0.5, tc.chosen); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestScoreNoNegativeMarking(t *testing.T) {
	q := Question{Marks: 1, Options: []Option{{Text: "yes", IsCorrect: true}, {Text: "no"}}}
	if got := Score(q, 0, strptr("no")); got.Points != 0 || got.Verdict != VerdictIncorrect {
		t.Fatalf("got %+v, want incorrect worth 0", got)
	}
}

// Defective authoring: several options marked correct. The first marked
// option is authoritative.
func TestMultipleCorrectFirstWins(t *testing.T) {
	q := Question{
		Marks: 1,
		Options: []Option{
			{Text: "A"},
			{Text: "B", IsCorrect: true},
			{Text: "C", IsCorrect: true},
		},
	}

	if got := q.CorrectText(); got != "B" {
		t.Fatalf("CorrectText() = %q, want B", got)
	}
	if out := Score(q, 1, strptr("C")); out.Verdict != VerdictIncorrect {
		t.Fatalf("second marked option scored %s, want INCORRECT", out.Verdict)
	}
	if out := Score(q, 1, strptr("B")); out.Verdict != VerdictCorrect {
		t.Fatalf("first marked option scored %s, want CORRECT", out.Verdict)
	}
}

// Defective authoring: no option marked correct. Every selection scores
// as incorrect and an unanswered slot stays skipped; nothing panics.
func TestNoCorrectOption(t *testing.T) {
	q := Question{
		Marks:   1,
		Options: []Option{{Text: "A"}, {Text: "B"}},
	}

	if got := q.CorrectText(); got != "" {
		t.Fatalf("CorrectText() = %q, want empty", got)
	}
	if out := Score(q, 0.25, strptr("A")); out.Verdict != VerdictIncorrect {
		t.Fatalf("got %s, want INCORRECT", out.Verdict)
	}
	if out := Score(q, 0.25, nil); out.Verdict != VerdictSkipped {
		t.Fatalf("got %s, want SKIPPED", out.Verdict)
	}
}

func TestSummarizeDeterministicOrder(t *testing.T) {
	def := QuizDefinition{
		ID:              "q",
		NegativeMarking: 0.1,
		Questions: []Question{
			{Text: "q1", Marks: 0.3, Options: []Option{{Text: "a", IsCorrect: true}}},
			{Text: "q2", Marks: 0.3, Options: []Option{{Text: "a", IsCorrect: true}}},
			{Text: "q3", Marks: 0.3, Options: []Option{{Text: "a", IsCorrect: true}}},
		},
	}
	answers := []*string{strptr("a"), strptr("b"), strptr("a")}

	first := Summarize(def, answers, CauseNavigation)
	for i := 0; i < 100; i++ {
		if again := Summarize(def, answers, CauseNavigation); again.Score != first.Score {
			t.Fatalf("run %d: score %v != %v", i, again.Score, first.Score)
		}
	}

	if first.CorrectCount != 2 || first.IncorrectCount != 1 || first.SkippedCount != 0 {
		t.Fatalf("partition = %d/%d/%d", first.CorrectCount, first.IncorrectCount, first.SkippedCount)
	}
}

func TestSummarizeShortAnswerSlice(t *testing.T) {
	def := QuizDefinition{
		Questions: []Question{
			{Text: "q1", Marks: 1, Options: []Option{{Text: "a", IsCorrect: true}}},
			{Text: "q2", Marks: 1, Options: []Option{{Text: "a", IsCorrect: true}}},
		},
	}

	// A slice shorter than the question list treats the tail as skipped.
	res := Summarize(def, []*string{strptr("a")}, CauseTimeout)
	if res.CorrectCount != 1 || res.SkippedCount != 1 {
		t.Fatalf("got %d correct / %d skipped, want 1/1", res.CorrectCount, res.SkippedCount)
	}
}
