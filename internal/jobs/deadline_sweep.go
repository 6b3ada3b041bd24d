package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
	"flowmarine/internal/services"

	"github.com/google/uuid"
)

const (
	deadlineSweepLimit = 200
	procurementMailbox = "procurement@flowmarine.local"
)

type DeadlineSweepService struct {
	rfqRepo         repositories.RFQRepository
	quoteRepo       repositories.QuoteRepository
	notificationSvc services.NotificationService
}

type DeadlineAlert struct {
	RFQID            uuid.UUID
	RFQNumber        string
	Title            string
	ResponseDeadline time.Time
	QuoteCount       int
}

func NewDeadlineSweepService(rfqRepo repositories.RFQRepository, quoteRepo repositories.QuoteRepository, notificationSvc services.NotificationService) *DeadlineSweepService {
	return &DeadlineSweepService{
		rfqRepo:         rfqRepo,
		quoteRepo:       quoteRepo,
		notificationSvc: notificationSvc,
	}
}

// CheckPastDeadlines finds SENT RFQs whose response deadline has lapsed and
// that have not been flagged yet. The outbox doubles as the dedupe record:
// an existing rfq.deadline_passed row means the sweep already saw this RFQ.
func (d *DeadlineSweepService) CheckPastDeadlines(ctx context.Context, limit int) ([]DeadlineAlert, error) {
	if limit <= 0 {
		limit = deadlineSweepLimit
	}

	rfqs, err := d.rfqRepo.ListPastDeadline(ctx, limit)
	if err != nil {
		log.Printf("Failed to list past-deadline RFQs: %v", err)
		return nil, err
	}

	var alerts []DeadlineAlert

	for _, rfq := range rfqs {
		existing, err := d.notificationSvc.ListByEvent(ctx, models.EventRFQDeadlinePassed, rfq.ID.String())
		if err != nil {
			log.Printf("Failed to check deadline notifications for RFQ %s: %v", rfq.ID.String(), err)
			continue
		}
		if len(existing) > 0 {
			continue
		}

		quotes, err := d.quoteRepo.ListByRFQ(ctx, rfq.ID)
		if err != nil {
			log.Printf("Failed to count quotes for RFQ %s: %v", rfq.ID.String(), err)
			continue
		}

		alerts = append(alerts, DeadlineAlert{
			RFQID:            rfq.ID,
			RFQNumber:        rfq.RFQNumber,
			Title:            rfq.Title,
			ResponseDeadline: rfq.ResponseDeadline,
			QuoteCount:       len(quotes),
		})
	}

	return alerts, nil
}

// NotifyPastDeadlines queues one outbox notification per alert so the
// procurement desk can close out or extend the RFQ.
func (d *DeadlineSweepService) NotifyPastDeadlines(ctx context.Context, alerts []DeadlineAlert) (int, error) {
	queued := 0

	for _, alert := range alerts {
		subject := fmt.Sprintf("RFQ %s response deadline passed", alert.RFQNumber)
		body := fmt.Sprintf("RFQ %s (%s) closed for responses at %s with %d quote(s) received.",
			alert.RFQNumber,
			alert.Title,
			alert.ResponseDeadline.Format(time.RFC3339),
			alert.QuoteCount)

		notification := &models.Notification{
			Type:      models.NotificationTypeEmail,
			EventType: models.EventRFQDeadlinePassed,
			EventID:   alert.RFQID.String(),
			Recipient: procurementMailbox,
			Subject:   &subject,
			Body:      body,
		}

		if err := d.notificationSvc.Notify(ctx, notification); err != nil {
			log.Printf("Failed to queue deadline notification for RFQ %s: %v", alert.RFQNumber, err)
			continue
		}
		queued++
	}

	return queued, nil
}

// RunSweep is the scheduled job entry point.
func (d *DeadlineSweepService) RunSweep(ctx context.Context) error {
	alerts, err := d.CheckPastDeadlines(ctx, deadlineSweepLimit)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		log.Println("Deadline sweep found no newly lapsed RFQs")
		return nil
	}

	queued, err := d.NotifyPastDeadlines(ctx, alerts)
	if err != nil {
		return err
	}

	log.Printf("Deadline sweep flagged %d RFQs, queued %d notifications", len(alerts), queued)
	return nil
}
