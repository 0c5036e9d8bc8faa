package worker

import (
	"testing"

	"github.com/kryptaroid/lms-career-shiksha/internal/model"
)

func TestToResultRow(t *testing.T) {
	report := sampleReport()
	row, err := toResultRow(&report)
	if err != nil {
		t.Fatal(err)
	}

	if row.QuizID.String() != report.QuizID {
		t.Errorf("quiz id = %s, want %s", row.QuizID, report.QuizID)
	}
	if row.UserID != 42 || row.UserName != "Asha Verma" || row.UserEmail != "asha@example.com" {
		t.Errorf("identity mismatch: %+v", row)
	}
	if row.Score != 7.25 || row.CorrectAnswers != 8 || row.IncorrectAnswers != 3 || row.SkippedCount != 1 {
		t.Errorf("tally mismatch: %+v", row)
	}
	if row.FinalizedBy != "TIMEOUT" {
		t.Errorf("finalized_by = %q", row.FinalizedBy)
	}
}

func TestToResultRowRejectsBadQuizID(t *testing.T) {
	report := model.ResultReport{QuizID: "not-a-uuid"}
	if _, err := toResultRow(&report); err == nil {
		t.Fatal("expected an error for malformed quiz id")
	}
}

func TestResultRowRoundTrip(t *testing.T) {
	report := sampleReport()
	row, err := toResultRow(&report)
	if err != nil {
		t.Fatal(err)
	}
	if got := resultReportFromRow(row); got != report {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, report)
	}
}
