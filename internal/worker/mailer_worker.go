package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const MailPollTimeout = 1 * time.Second

// MailerWorker drains the mail queue and delivers one report e-mail per
// finalized session. Delivery is best effort: a failed send is logged
// and dropped, never retried, so a dead SMTP relay cannot grow the queue
// without bound.
type MailerWorker struct {
	cfg *config.Config
	rdb *redis.Client
	log zerolog.Logger

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailerWorker(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *MailerWorker {
	return &MailerWorker{
		cfg:  cfg,
		rdb:  rdb,
		log:  log.With().Str("component", "mailer_worker").Logger(),
		send: smtp.SendMail,
	}
}

func (w *MailerWorker) Start(ctx context.Context) {
	if w.cfg.SMTPHost == "" || w.cfg.ReportRecipient == "" {
		w.log.Warn().Msg("SMTP not configured, draining mail queue without sending")
	} else {
		w.log.Info().Msg("MailerWorker started")
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, MailPollTimeout, config.WorkerKey.MailResultsQueue).Result()
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

			w.deliver(&report)
		}
	}
}

func (w *MailerWorker) deliver(report *model.ResultReport) {
	if w.cfg.SMTPHost == "" || w.cfg.ReportRecipient == "" {
		return
	}

	msg := buildReportMail(w.cfg.SMTPUser, w.cfg.ReportRecipient, report)
	addr := w.cfg.SMTPHost + ":" + w.cfg.SMTPPort

	var auth smtp.Auth
	if w.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", w.cfg.SMTPUser, w.cfg.SMTPPassword, w.cfg.SMTPHost)
	}

	if err := w.send(addr, auth, w.cfg.SMTPUser, []string{w.cfg.ReportRecipient}, msg); err != nil {
		w.log.Error().
			Err(err).
			Str("quiz_id", report.QuizID).
			Int("user_id", report.UserID).
			Msg("Report mail failed, dropping")
		return
	}

	w.log.Info().
		Str("quiz_id", report.QuizID).
		Int("user_id", report.UserID).
		Msg("Report mail sent")
}

func buildReportMail(from, to string, report *model.ResultReport) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Quiz Result: %s\r\n", report.QuizTitle)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")

	fmt.Fprintf(&b, "Quiz: %s\r\n", report.QuizTitle)
	fmt.Fprintf(&b, "Score: %.2f\r\n", report.Score)
	fmt.Fprintf(&b, "Correct Answers: %d\r\n", report.CorrectAnswers)
	fmt.Fprintf(&b, "Incorrect Answers: %d\r\n", report.IncorrectAnswers)
	fmt.Fprintf(&b, "Skipped: %d\r\n", report.SkippedCount)
	fmt.Fprintf(&b, "User Name: %s\r\n", report.UserName)
	fmt.Fprintf(&b, "User Email: %s\r\n", report.UserEmail)
	fmt.Fprintf(&b, "Finalized By: %s\r\n", report.FinalizedBy)
	return []byte(b.String())
}
