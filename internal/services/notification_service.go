package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

// EmailSender delivers a single email. The default implementation only logs;
// wiring a real SMTP/SES sender is a deployment concern.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type logEmailSender struct{}

func NewLogEmailSender() EmailSender {
	return &logEmailSender{}
}

func (s *logEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Printf("EMAIL to=%s subject=%q bytes=%d", recipient, subject, len(body))
	return nil
}

// NotificationService persists outbound messages as outbox rows and
// dispatches them. Every message is written before any delivery attempt, so
// a crash mid-dispatch loses nothing.
type NotificationService interface {
	Notify(ctx context.Context, notification *models.Notification) error
	RetryPending(ctx context.Context, limit int) (sent int, failed int, err error)
	ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error)
}

// notificationMaxRetries matches the storage default so an exhausted retry
// budget can be expressed before the row is written.
const notificationMaxRetries = 3

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	emailSender      EmailSender
	httpClient       *http.Client
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, emailSender EmailSender) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		emailSender:      emailSender,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify records the notification and attempts immediate delivery. A failed
// delivery is not an error to the caller: the row stays retryable and the
// background job picks it up.
func (s *notificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if notification.Recipient == "" {
		notification.Status = models.NotificationStatusFailed
		// Exhaust the retry budget up front: retrying cannot conjure an
		// address, and a zero MaxRetries would be re-defaulted by storage.
		if notification.MaxRetries == 0 {
			notification.MaxRetries = notificationMaxRetries
		}
		notification.RetryCount = notification.MaxRetries
		errMsg := "no recipient address"
		notification.Error = &errMsg
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("record undeliverable notification: %w", err)
		}
		return fmt.Errorf("notification %s has no recipient", notification.EventType)
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("record notification: %w", err)
	}

	if err := s.dispatch(ctx, notification); err != nil {
		log.Printf("notification %s dispatch failed (will retry): %v", notification.ID, err)
		if markErr := s.notificationRepo.MarkFailed(ctx, notification.ID, err.Error()); markErr != nil {
			log.Printf("failed to mark notification %s failed: %v", notification.ID, markErr)
		}
		return err
	}
	return s.notificationRepo.MarkSent(ctx, notification.ID, time.Now())
}

func (s *notificationService) dispatch(ctx context.Context, notification *models.Notification) error {
	switch notification.Type {
	case models.NotificationTypeEmail:
		subject := ""
		if notification.Subject != nil {
			subject = *notification.Subject
		}
		return s.emailSender.Send(ctx, notification.Recipient, subject, notification.Body)
	case models.NotificationTypeWebhook:
		return s.postWebhook(ctx, notification)
	default:
		return fmt.Errorf("unknown notification type %q", notification.Type)
	}
}

func (s *notificationService) postWebhook(ctx context.Context, notification *models.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notification.Recipient, bytes.NewBufferString(notification.Body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-FlowMarine-Event", notification.EventType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// RetryPending re-dispatches notifications that are still pending or failed
// and under their retry budget. Called from the background scheduler.
func (s *notificationService) RetryPending(ctx context.Context, limit int) (int, int, error) {
	if limit <= 0 {
		limit = 100
	}
	retryable, err := s.notificationRepo.ListRetryable(ctx, limit)
	if err != nil {
		return 0, 0, fmt.Errorf("list retryable notifications: %w", err)
	}

	sent, failed := 0, 0
	for _, notification := range retryable {
		if err := s.dispatch(ctx, notification); err != nil {
			failed++
			if markErr := s.notificationRepo.MarkFailed(ctx, notification.ID, err.Error()); markErr != nil {
				log.Printf("failed to mark notification %s failed: %v", notification.ID, markErr)
			}
			continue
		}
		if err := s.notificationRepo.MarkSent(ctx, notification.ID, time.Now()); err != nil {
			log.Printf("failed to mark notification %s sent: %v", notification.ID, err)
		}
		sent++
	}
	return sent, failed, nil
}

func (s *notificationService) ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error) {
	return s.notificationRepo.ListByEvent(ctx, eventType, eventID)
}
