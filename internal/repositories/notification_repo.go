package repositories

import (
	"context"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	ListRetryable(ctx context.Context, limit int) ([]*models.Notification, error)
	ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error)
}

type notificationRepo struct {
	db Database
}

func NewNotificationRepo(db Database) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Status == "" {
		notification.Status = models.NotificationStatusPending
	}
	if notification.MaxRetries == 0 {
		notification.MaxRetries = 3
	}
	query := `
		INSERT INTO notifications (id, type, event_type, event_id, recipient, subject, body, status, error, sent_at, retry_count, max_retries, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.Type, notification.EventType, notification.EventID, notification.Recipient, notification.Subject, notification.Body, notification.Status, notification.Error, notification.SentAt, notification.RetryCount, notification.MaxRetries)
	return err
}

func (r *notificationRepo) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `UPDATE notifications SET status = 'sent', sent_at = $1, error = NULL WHERE id = $2`
	_, err := r.db.Exec(ctx, query, sentAt, id)
	return err
}

func (r *notificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	query := `UPDATE notifications SET status = 'failed', error = $1, retry_count = retry_count + 1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, errMsg, id)
	return err
}

// ListRetryable returns pending or failed notifications that still have
// retries left, oldest first.
func (r *notificationRepo) ListRetryable(ctx context.Context, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, type, event_type, event_id, recipient, subject, body, status, error, sent_at, retry_count, max_retries, created_at
		FROM notifications
		WHERE status IN ('pending', 'failed') AND retry_count < max_retries
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.Type, &n.EventType, &n.EventID, &n.Recipient, &n.Subject, &n.Body, &n.Status, &n.Error, &n.SentAt, &n.RetryCount, &n.MaxRetries, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error) {
	query := `
		SELECT id, type, event_type, event_id, recipient, subject, body, status, error, sent_at, retry_count, max_retries, created_at
		FROM notifications
		WHERE event_type = $1 AND event_id = $2
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, eventType, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.Type, &n.EventType, &n.EventID, &n.Recipient, &n.Subject, &n.Body, &n.Status, &n.Error, &n.SentAt, &n.RetryCount, &n.MaxRetries, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
