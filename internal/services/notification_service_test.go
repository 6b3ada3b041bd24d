package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowmarine/internal/models"
)

func emailNotification(recipient string) *models.Notification {
	subject := "Request for Quotation RFQ-2026-0001"
	return &models.Notification{
		Type:      models.NotificationTypeEmail,
		EventType: models.EventRFQDistributed,
		EventID:   "rfq-1",
		Recipient: recipient,
		Subject:   &subject,
		Body:      "You are invited to quote.",
	}
}

func TestNotify_RecordsThenSends(t *testing.T) {
	repo := new(MockNotificationRepository)
	sender := new(MockEmailSender)
	svc := NewNotificationService(repo, sender)

	notification := emailNotification("buyer@vendor.test")
	repo.On("Create", mock.Anything, notification).Return(nil)
	sender.On("Send", mock.Anything, "buyer@vendor.test", *notification.Subject, notification.Body).Return(nil)
	repo.On("MarkSent", mock.Anything, notification.ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Notify(context.Background(), notification)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestNotify_SendFailureMarksFailedButKeepsRow(t *testing.T) {
	repo := new(MockNotificationRepository)
	sender := new(MockEmailSender)
	svc := NewNotificationService(repo, sender)

	notification := emailNotification("buyer@vendor.test")
	repo.On("Create", mock.Anything, notification).Return(nil)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp: timeout"))
	repo.On("MarkFailed", mock.Anything, notification.ID, "smtp: timeout").Return(nil)

	err := svc.Notify(context.Background(), notification)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestNotify_MissingRecipientFailsDeterministically(t *testing.T) {
	repo := new(MockNotificationRepository)
	sender := new(MockEmailSender)
	svc := NewNotificationService(repo, sender)

	notification := emailNotification("")
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Status == models.NotificationStatusFailed && n.Error != nil
	})).Return(nil)

	err := svc.Notify(context.Background(), notification)

	assert.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_MissingRecipientRowIsNotRetryable(t *testing.T) {
	repo := new(MockNotificationRepository)
	sender := new(MockEmailSender)
	svc := NewNotificationService(repo, sender)

	var persisted *models.Notification
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Notification)
	}).Return(nil)

	err := svc.Notify(context.Background(), emailNotification(""))

	assert.Error(t, err)
	require.NotNil(t, persisted)
	// Storage re-defaults a zero MaxRetries to 3, so the budget must be
	// concrete and already spent or the retry job would pick the row up.
	assert.Greater(t, persisted.MaxRetries, 0)
	assert.Equal(t, persisted.MaxRetries, persisted.RetryCount)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetryPending_CountsOutcomes(t *testing.T) {
	repo := new(MockNotificationRepository)
	sender := new(MockEmailSender)
	svc := NewNotificationService(repo, sender)

	good := emailNotification("ok@vendor.test")
	bad := emailNotification("down@vendor.test")
	repo.On("ListRetryable", mock.Anything, 100).Return([]*models.Notification{good, bad}, nil)
	sender.On("Send", mock.Anything, "ok@vendor.test", mock.Anything, mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, "down@vendor.test", mock.Anything, mock.Anything).Return(errors.New("smtp: refused"))
	repo.On("MarkSent", mock.Anything, good.ID, mock.AnythingOfType("time.Time")).Return(nil)
	repo.On("MarkFailed", mock.Anything, bad.ID, "smtp: refused").Return(nil)

	sent, failed, err := svc.RetryPending(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	repo.AssertExpectations(t)
}
