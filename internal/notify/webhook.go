package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"medidispatch/internal/config"
	"medidispatch/internal/domain"
)

// Sender delivers one notification job to a matched candidate's channel.
type Sender interface {
	Send(ctx context.Context, job domain.NotificationJob) error
}

type WebhookSender struct {
	logger *slog.Logger
	cfg    config.WebhookConfig
	http   *http.Client
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig) *WebhookSender {
	return &WebhookSender{
		logger: logger,
		cfg:    cfg,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, job domain.NotificationJob) error {
	const maxRetries = 3

	body, err := json.Marshal(job)
	if err != nil {
		s.logger.Error("marshal notification payload failed", slog.String("error", err.Error()))
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create notification request failed", slog.String("error", err.Error()))
			return err
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return nil
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
			lastErr = err
		} else if resp != nil {
			reason = resp.Status
			lastErr = &StatusError{Status: resp.StatusCode}
		}

		s.logger.Warn("notification webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("candidate_id", job.CandidateID.String()),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
	return lastErr
}

type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return http.StatusText(e.Status)
}
