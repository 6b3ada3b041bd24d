package background

import (
	"context"
	"log"
	"sync"
	"time"

	"flowmarine/internal/jobs"
	"flowmarine/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const (
	notificationRetryBatch = 100
	certificateScanWindow  = 30 * 24 * time.Hour
	certificateScanLimit   = 200
)

// JobScheduler manages background jobs for distributed environment
type JobScheduler struct {
	scheduler       gocron.Scheduler
	notificationSvc services.NotificationService
	complianceSvc   services.ComplianceServiceInterface
	deadlineSvc     *jobs.DeadlineSweepService
	jobJobs         map[string]gocron.Job
	mu              sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(notificationSvc services.NotificationService, complianceSvc services.ComplianceServiceInterface,
	deadlineSvc *jobs.DeadlineSweepService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		notificationSvc: notificationSvc,
		complianceSvc:   complianceSvc,
		deadlineSvc:     deadlineSvc,
		jobJobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Notification retry job - every 5 minutes
	retryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.retryPendingNotifications, context.Background()),
		gocron.WithName("notification-retry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create notification retry job: %v", err)
	} else {
		js.jobJobs["notification-retry"] = retryJob
	}

	// RFQ deadline sweep - every hour
	deadlineJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepRFQDeadlines, context.Background()),
		gocron.WithName("rfq-deadline-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create deadline sweep job: %v", err)
	} else {
		js.jobJobs["rfq-deadline-sweep"] = deadlineJob
	}

	// Certificate expiry scan - daily
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.scanCertificateExpiry, context.Background()),
		gocron.WithName("certificate-expiry-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create certificate expiry job: %v", err)
	} else {
		js.jobJobs["certificate-expiry-scan"] = expiryJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

// retryPendingNotifications re-dispatches failed outbox rows
func (js *JobScheduler) retryPendingNotifications(ctx context.Context) error {
	log.Printf("Starting notification retry pass")

	sent, failed, err := js.notificationSvc.RetryPending(ctx, notificationRetryBatch)
	if err != nil {
		log.Printf("Notification retry pass failed: %v", err)
		return err
	}

	log.Printf("Notification retry pass completed: %d sent, %d still failing", sent, failed)
	return nil
}

// sweepRFQDeadlines flags SENT RFQs whose response deadline has lapsed
func (js *JobScheduler) sweepRFQDeadlines(ctx context.Context) error {
	log.Printf("Starting RFQ deadline sweep")

	if err := js.deadlineSvc.RunSweep(ctx); err != nil {
		log.Printf("RFQ deadline sweep failed: %v", err)
		return err
	}

	log.Printf("Completed RFQ deadline sweep")
	return nil
}

// scanCertificateExpiry queues alerts for vessel certificates lapsing soon
func (js *JobScheduler) scanCertificateExpiry(ctx context.Context) error {
	log.Printf("Starting certificate expiry scan")

	alerts, err := js.complianceSvc.ScanExpiringCertificates(ctx, certificateScanWindow, certificateScanLimit)
	if err != nil {
		log.Printf("Certificate expiry scan failed: %v", err)
		return err
	}

	log.Printf("Certificate expiry scan completed: %d certificates expiring within %s", len(alerts), certificateScanWindow)
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)

	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobJobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobJobs, name)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	names := make([]string, 0, len(js.jobJobs))

	for name := range js.jobJobs {
		names = append(names, name)
	}

	status["jobs"] = names

	return status
}
