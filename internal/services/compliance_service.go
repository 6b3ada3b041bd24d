package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"flowmarine/internal/caching"
	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

const (
	complianceReportTTL = 15 * time.Minute
	expiryWarningWindow = 30 * 24 * time.Hour
)

type ComplianceServiceInterface interface {
	GenerateVesselReport(ctx context.Context, vesselID uuid.UUID) (*models.ComplianceReport, error)
	ListExpiringCertificates(ctx context.Context, window time.Duration, limit int) ([]*models.ComplianceAlert, error)
	ScanExpiringCertificates(ctx context.Context, window time.Duration, limit int) ([]*models.ComplianceAlert, error)
}

type complianceService struct {
	vesselRepo      repositories.VesselRepository
	certificateRepo repositories.CertificateRepository
	notificationSvc NotificationService
	cacheSvc        caching.CacheService
}

func NewComplianceService(vesselRepo repositories.VesselRepository, certificateRepo repositories.CertificateRepository, notificationSvc NotificationService, cacheSvc caching.CacheService) ComplianceServiceInterface {
	return &complianceService{
		vesselRepo:      vesselRepo,
		certificateRepo: certificateRepo,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

// GenerateVesselReport scores a vessel's SOLAS, MARPOL and ISM certificate
// coverage. A convention with no certificate on file scores zero and raises
// a critical alert.
func (s *complianceService) GenerateVesselReport(ctx context.Context, vesselID uuid.UUID) (*models.ComplianceReport, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetComplianceReport(ctx, vesselID); err == nil && cached != nil {
			return cached, nil
		}
	}

	vessel, err := s.vesselRepo.GetByID(ctx, vesselID)
	if err != nil {
		return nil, fmt.Errorf("fetch vessel %s: %w", vesselID, err)
	}
	if vessel == nil {
		return nil, common.NewAppError("vessel not found", http.StatusNotFound, "VESSEL_NOT_FOUND")
	}

	certificates, err := s.certificateRepo.ListByVessel(ctx, vesselID)
	if err != nil {
		return nil, fmt.Errorf("fetch certificates for vessel %s: %w", vesselID, err)
	}

	report := buildComplianceReport(vesselID, certificates, time.Now())

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetComplianceReport(ctx, report, complianceReportTTL); err != nil {
			log.Printf("cache compliance report for vessel %s: %v", vesselID, err)
		}
	}
	return report, nil
}

func buildComplianceReport(vesselID uuid.UUID, certificates []*models.Certificate, now time.Time) *models.ComplianceReport {
	conventions := []string{models.ConventionSOLAS, models.ConventionMARPOL, models.ConventionISM}

	report := &models.ComplianceReport{
		VesselID:          vesselID,
		GeneratedAt:       now,
		ConventionScores:  make(map[string]float64, len(conventions)),
		TotalCertificates: len(certificates),
	}

	byConvention := make(map[string][]*models.Certificate)
	for _, cert := range certificates {
		byConvention[cert.Convention] = append(byConvention[cert.Convention], cert)
	}

	total := 0.0
	for _, convention := range conventions {
		certs := byConvention[convention]
		if len(certs) == 0 {
			report.ConventionScores[convention] = 0
			report.Alerts = append(report.Alerts, &models.ComplianceAlert{
				VesselID:   vesselID,
				Convention: convention,
				Severity:   "critical",
				Message:    fmt.Sprintf("no %s certificate on file", convention),
			})
			continue
		}

		valid := 0
		for _, cert := range certs {
			switch {
			case cert.Expired(now):
				report.Alerts = append(report.Alerts, &models.ComplianceAlert{
					VesselID:      vesselID,
					CertificateID: cert.ID,
					Convention:    convention,
					Severity:      "critical",
					Message:       fmt.Sprintf("%s expired on %s", cert.Name, cert.ExpiresAt.Format("2006-01-02")),
					ExpiresAt:     cert.ExpiresAt,
				})
			case cert.ExpiringWithin(now, expiryWarningWindow):
				valid++
				report.Alerts = append(report.Alerts, &models.ComplianceAlert{
					VesselID:      vesselID,
					CertificateID: cert.ID,
					Convention:    convention,
					Severity:      "warning",
					Message:       fmt.Sprintf("%s expires on %s", cert.Name, cert.ExpiresAt.Format("2006-01-02")),
					ExpiresAt:     cert.ExpiresAt,
				})
			default:
				valid++
			}
		}
		report.ValidCertificates += valid
		score := float64(valid) / float64(len(certs)) * 100
		report.ConventionScores[convention] = score
	}

	for _, convention := range conventions {
		total += report.ConventionScores[convention]
	}
	report.OverallScore = total / float64(len(conventions))
	return report
}

// ListExpiringCertificates builds alerts for certificates lapsing inside
// the window. Pure read: nothing is queued or sent.
func (s *complianceService) ListExpiringCertificates(ctx context.Context, window time.Duration, limit int) ([]*models.ComplianceAlert, error) {
	if window <= 0 {
		window = expiryWarningWindow
	}
	if limit <= 0 {
		limit = 200
	}
	now := time.Now()
	certificates, err := s.certificateRepo.ListExpiringBefore(ctx, now.Add(window), limit)
	if err != nil {
		return nil, fmt.Errorf("list expiring certificates: %w", err)
	}

	var alerts []*models.ComplianceAlert
	for _, cert := range certificates {
		severity := "warning"
		message := fmt.Sprintf("%s (%s) expires on %s", cert.Name, cert.Convention, cert.ExpiresAt.Format("2006-01-02"))
		if cert.Expired(now) {
			severity = "critical"
			message = fmt.Sprintf("%s (%s) expired on %s", cert.Name, cert.Convention, cert.ExpiresAt.Format("2006-01-02"))
		}
		alerts = append(alerts, &models.ComplianceAlert{
			VesselID:      cert.VesselID,
			CertificateID: cert.ID,
			Convention:    cert.Convention,
			Severity:      severity,
			Message:       message,
			ExpiresAt:     cert.ExpiresAt,
		})
	}
	return alerts, nil
}

// ScanExpiringCertificates queues an expiry notification per lapsing
// certificate. An existing certificate.expiry outbox row suppresses
// re-alerting, so the daily job does not re-send the same alert for the
// whole warning window. Called from the scheduler.
func (s *complianceService) ScanExpiringCertificates(ctx context.Context, window time.Duration, limit int) ([]*models.ComplianceAlert, error) {
	alerts, err := s.ListExpiringCertificates(ctx, window, limit)
	if err != nil {
		return nil, err
	}

	for _, alert := range alerts {
		existing, err := s.notificationSvc.ListByEvent(ctx, models.EventCertificateExpiry, alert.CertificateID.String())
		if err != nil {
			log.Printf("certificate expiry dedupe check for %s failed: %v", alert.CertificateID, err)
			continue
		}
		if len(existing) > 0 {
			continue
		}

		subject := fmt.Sprintf("Certificate expiry: %s (%s)", alert.Convention, alert.Severity)
		if err := s.notificationSvc.Notify(ctx, &models.Notification{
			Type:      models.NotificationTypeEmail,
			EventType: models.EventCertificateExpiry,
			EventID:   alert.CertificateID.String(),
			Recipient: "fleet-compliance@flowmarine.local",
			Subject:   &subject,
			Body:      alert.Message,
		}); err != nil {
			log.Printf("certificate expiry notification for %s failed: %v", alert.CertificateID, err)
		}
	}
	return alerts, nil
}
