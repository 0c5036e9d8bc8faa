package worker

import (
	"context"
	"encoding/json"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func sampleReport() model.ResultReport {
	return model.ResultReport{
		QuizID:           "8d6f4f6e-4a6c-4c39-9d35-0a4a4f38b111",
		QuizTitle:        "General Knowledge",
		UserID:           42,
		UserName:         "Asha Verma",
		UserEmail:        "asha@example.com",
		Score:            7.25,
		CorrectAnswers:   8,
		IncorrectAnswers: 3,
		SkippedCount:     1,
		FinalizedBy:      "TIMEOUT",
	}
}

func TestBuildReportMail(t *testing.T) {
	report := sampleReport()
	msg := string(buildReportMail("noreply@example.com", "ops@example.com", &report))

	for _, want := range []string{
		"Subject: Quiz Result: General Knowledge",
		"Score: 7.25",
		"Correct Answers: 8",
		"Incorrect Answers: 3",
		"Skipped: 1",
		"User Name: Asha Verma",
		"User Email: asha@example.com",
		"Finalized By: TIMEOUT",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("mail missing %q:\n%s", want, msg)
		}
	}
}

func TestMailerWorkerDeliversQueuedReport(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := &config.Config{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        "587",
		SMTPUser:        "noreply@example.com",
		ReportRecipient: "ops@example.com",
	}

	var mu sync.Mutex
	var sentTo []string
	var sentMsg []byte

	w := NewMailerWorker(cfg, rdb, zerolog.Nop())
	w.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		mu.Lock()
		defer mu.Unlock()
		sentTo = append(sentTo, to...)
		sentMsg = msg
		return nil
	}

	report := sampleReport()
	raw, _ := json.Marshal(report)
	if err := rdb.RPush(context.Background(), config.WorkerKey.MailResultsQueue, raw).Err(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		delivered := len(sentTo) > 0
		mu.Unlock()
		if delivered {
			break
		}
		select {
		case <-deadline:
			t.Fatal("report was never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if sentTo[0] != "ops@example.com" {
		t.Errorf("sent to %q, want ops@example.com", sentTo[0])
	}
	if !strings.Contains(string(sentMsg), "General Knowledge") {
		t.Error("mail body missing quiz title")
	}
}

func TestMailerWorkerDropsFailedSend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := &config.Config{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        "587",
		ReportRecipient: "ops@example.com",
	}

	attempts := make(chan struct{}, 8)
	w := NewMailerWorker(cfg, rdb, zerolog.Nop())
	w.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		attempts <- struct{}{}
		return context.DeadlineExceeded
	}

	report := sampleReport()
	raw, _ := json.Marshal(report)
	rdb.RPush(context.Background(), config.WorkerKey.MailResultsQueue, raw)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-attempts:
	case <-time.After(3 * time.Second):
		t.Fatal("send was never attempted")
	}

	// A failed send is dropped, not requeued.
	select {
	case <-attempts:
		t.Fatal("failed send was retried")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	<-done

	if n, _ := rdb.LLen(context.Background(), config.WorkerKey.MailResultsQueue).Result(); n != 0 {
		t.Errorf("queue length = %d, want 0", n)
	}
}
