package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowmarine/internal/models"
)

func certificate(vesselID uuid.UUID, convention, name string, expiresAt time.Time) *models.Certificate {
	return &models.Certificate{
		ID:         uuid.New(),
		VesselID:   vesselID,
		Convention: convention,
		Name:       name,
		IssuedAt:   expiresAt.AddDate(-5, 0, 0),
		ExpiresAt:  expiresAt,
	}
}

func TestBuildComplianceReport_FullyValid(t *testing.T) {
	vesselID := uuid.New()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	farFuture := now.AddDate(2, 0, 0)

	certs := []*models.Certificate{
		certificate(vesselID, models.ConventionSOLAS, "Safety Construction", farFuture),
		certificate(vesselID, models.ConventionMARPOL, "IOPP", farFuture),
		certificate(vesselID, models.ConventionISM, "Safety Management", farFuture),
	}

	report := buildComplianceReport(vesselID, certs, now)

	assert.Equal(t, 100.0, report.OverallScore)
	assert.Equal(t, 100.0, report.ConventionScores[models.ConventionSOLAS])
	assert.Equal(t, 3, report.TotalCertificates)
	assert.Equal(t, 3, report.ValidCertificates)
	assert.Empty(t, report.Alerts)
}

func TestBuildComplianceReport_MissingConventionScoresZero(t *testing.T) {
	vesselID := uuid.New()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	farFuture := now.AddDate(2, 0, 0)

	certs := []*models.Certificate{
		certificate(vesselID, models.ConventionSOLAS, "Safety Construction", farFuture),
		certificate(vesselID, models.ConventionMARPOL, "IOPP", farFuture),
		// no ISM certificate at all
	}

	report := buildComplianceReport(vesselID, certs, now)

	assert.Equal(t, 0.0, report.ConventionScores[models.ConventionISM])
	assert.InDelta(t, (100.0+100.0+0.0)/3.0, report.OverallScore, 1e-9)

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, "critical", report.Alerts[0].Severity)
	assert.Equal(t, models.ConventionISM, report.Alerts[0].Convention)
}

func TestBuildComplianceReport_ExpiredAndExpiring(t *testing.T) {
	vesselID := uuid.New()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	certs := []*models.Certificate{
		certificate(vesselID, models.ConventionSOLAS, "Expired Safety Cert", now.AddDate(0, -1, 0)),
		certificate(vesselID, models.ConventionSOLAS, "Valid Safety Cert", now.AddDate(1, 0, 0)),
		certificate(vesselID, models.ConventionMARPOL, "Expiring IOPP", now.AddDate(0, 0, 14)),
		certificate(vesselID, models.ConventionISM, "Safety Management", now.AddDate(1, 0, 0)),
	}

	report := buildComplianceReport(vesselID, certs, now)

	// SOLAS: 1 of 2 valid
	assert.InDelta(t, 50.0, report.ConventionScores[models.ConventionSOLAS], 1e-9)
	// MARPOL certificate inside the warning window still counts as valid
	assert.InDelta(t, 100.0, report.ConventionScores[models.ConventionMARPOL], 1e-9)
	assert.Equal(t, 3, report.ValidCertificates)

	var severities []string
	for _, alert := range report.Alerts {
		severities = append(severities, alert.Severity)
	}
	assert.Contains(t, severities, "critical") // expired SOLAS cert
	assert.Contains(t, severities, "warning")  // expiring MARPOL cert
}

func TestScanExpiringCertificates_QueuesNotifications(t *testing.T) {
	vesselRepo := new(MockVesselRepository)
	certificateRepo := new(MockCertificateRepository)
	notificationSvc := new(MockNotificationService)
	svc := NewComplianceService(vesselRepo, certificateRepo, notificationSvc, nil)

	vesselID := uuid.New()
	expiring := certificate(vesselID, models.ConventionSOLAS, "Safety Construction", time.Now().AddDate(0, 0, 10))

	certificateRepo.On("ListExpiringBefore", mock.Anything, mock.AnythingOfType("time.Time"), 200).
		Return([]*models.Certificate{expiring}, nil)
	notificationSvc.On("ListByEvent", mock.Anything, models.EventCertificateExpiry, expiring.ID.String()).
		Return([]*models.Notification{}, nil)
	notificationSvc.On("Notify", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventType == models.EventCertificateExpiry && n.EventID == expiring.ID.String()
	})).Return(nil)

	alerts, err := svc.ScanExpiringCertificates(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Severity)
	assert.Equal(t, vesselID, alerts[0].VesselID)
	certificateRepo.AssertExpectations(t)
	notificationSvc.AssertExpectations(t)
}

func TestScanExpiringCertificates_SkipsAlreadyAlerted(t *testing.T) {
	vesselRepo := new(MockVesselRepository)
	certificateRepo := new(MockCertificateRepository)
	notificationSvc := new(MockNotificationService)
	svc := NewComplianceService(vesselRepo, certificateRepo, notificationSvc, nil)

	vesselID := uuid.New()
	alerted := certificate(vesselID, models.ConventionSOLAS, "Safety Construction", time.Now().AddDate(0, 0, 10))
	fresh := certificate(vesselID, models.ConventionMARPOL, "Oil Pollution Prevention", time.Now().AddDate(0, 0, 5))

	certificateRepo.On("ListExpiringBefore", mock.Anything, mock.AnythingOfType("time.Time"), 200).
		Return([]*models.Certificate{alerted, fresh}, nil)
	notificationSvc.On("ListByEvent", mock.Anything, models.EventCertificateExpiry, alerted.ID.String()).
		Return([]*models.Notification{{ID: uuid.New(), EventType: models.EventCertificateExpiry}}, nil)
	notificationSvc.On("ListByEvent", mock.Anything, models.EventCertificateExpiry, fresh.ID.String()).
		Return([]*models.Notification{}, nil)
	notificationSvc.On("Notify", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventID == fresh.ID.String()
	})).Return(nil).Once()

	alerts, err := svc.ScanExpiringCertificates(context.Background(), 0, 0)

	// Both alerts are reported; only the un-alerted certificate notifies.
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	notificationSvc.AssertNumberOfCalls(t, "Notify", 1)
	notificationSvc.AssertExpectations(t)
}

func TestListExpiringCertificates_DoesNotNotify(t *testing.T) {
	vesselRepo := new(MockVesselRepository)
	certificateRepo := new(MockCertificateRepository)
	notificationSvc := new(MockNotificationService)
	svc := NewComplianceService(vesselRepo, certificateRepo, notificationSvc, nil)

	vesselID := uuid.New()
	expiring := certificate(vesselID, models.ConventionISM, "Safety Management", time.Now().AddDate(0, 0, 3))

	certificateRepo.On("ListExpiringBefore", mock.Anything, mock.AnythingOfType("time.Time"), 200).
		Return([]*models.Certificate{expiring}, nil)

	alerts, err := svc.ListExpiringCertificates(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	notificationSvc.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	notificationSvc.AssertNotCalled(t, "ListByEvent", mock.Anything, mock.Anything, mock.Anything)
}
