package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

// Mock repositories and collaborators shared by the service tests

type MockRFQRepository struct {
	mock.Mock
}

func (m *MockRFQRepository) Create(ctx context.Context, rfq *models.RFQ) error {
	args := m.Called(ctx, rfq)
	return args.Error(0)
}

func (m *MockRFQRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RFQ), args.Error(1)
}

func (m *MockRFQRepository) ExistsForRequisition(ctx context.Context, requisitionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, requisitionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRFQRepository) Update(ctx context.Context, rfq *models.RFQ) error {
	args := m.Called(ctx, rfq)
	return args.Error(0)
}

func (m *MockRFQRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRFQRepository) List(ctx context.Context, filter *models.RFQSearchFilter) ([]*models.RFQ, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.RFQ), args.Error(1)
}

func (m *MockRFQRepository) NextRFQNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockRFQRepository) ListPastDeadline(ctx context.Context, limit int) ([]*models.RFQ, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.RFQ), args.Error(1)
}

type MockRequisitionRepository struct {
	mock.Mock
}

func (m *MockRequisitionRepository) Create(ctx context.Context, requisition *models.Requisition, items []*models.RequisitionItem) error {
	args := m.Called(ctx, requisition, items)
	return args.Error(0)
}

func (m *MockRequisitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Requisition), args.Error(1)
}

func (m *MockRequisitionRepository) GetItems(ctx context.Context, requisitionID uuid.UUID) ([]*models.RequisitionItem, error) {
	args := m.Called(ctx, requisitionID)
	return args.Get(0).([]*models.RequisitionItem), args.Error(1)
}

func (m *MockRequisitionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRequisitionRepository) List(ctx context.Context, filter *models.RequisitionSearchFilter) ([]*models.Requisition, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Requisition), args.Error(1)
}

type MockRFQVendorRepository struct {
	mock.Mock
}

func (m *MockRFQVendorRepository) CreateBatch(ctx context.Context, rfqID uuid.UUID, vendorIDs []uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, rfqID, vendorIDs, sentAt)
	return args.Error(0)
}

func (m *MockRFQVendorRepository) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.RFQVendor, error) {
	args := m.Called(ctx, rfqID)
	return args.Get(0).([]*models.RFQVendor), args.Error(1)
}

func (m *MockRFQVendorRepository) MarkResponded(ctx context.Context, rfqID, vendorID uuid.UUID, respondedAt time.Time) error {
	args := m.Called(ctx, rfqID, vendorID, respondedAt)
	return args.Error(0)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetActiveApprovedByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Vendor, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) List(ctx context.Context, filter *models.VendorSearchFilter) ([]*models.Vendor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindEligible(ctx context.Context, criteria *models.VendorSelectionCriteria) ([]*models.Vendor, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

type MockVesselRepository struct {
	mock.Mock
}

func (m *MockVesselRepository) Create(ctx context.Context, vessel *models.Vessel) error {
	args := m.Called(ctx, vessel)
	return args.Error(0)
}

func (m *MockVesselRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vessel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vessel), args.Error(1)
}

func (m *MockVesselRepository) Update(ctx context.Context, vessel *models.Vessel) error {
	args := m.Called(ctx, vessel)
	return args.Error(0)
}

func (m *MockVesselRepository) List(ctx context.Context, limit, offset int) ([]*models.Vessel, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Vessel), args.Error(1)
}

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.Quote, error) {
	args := m.Called(ctx, rfqID)
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ExistsForRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, rfqID, vendorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Create(ctx context.Context, certificate *models.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func (m *MockCertificateRepository) ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]*models.Certificate, error) {
	args := m.Called(ctx, vesselID)
	return args.Get(0).([]*models.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Certificate, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]*models.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) Update(ctx context.Context, certificate *models.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListRetryable(ctx context.Context, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error) {
	args := m.Called(ctx, eventType, eventID)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) LogActivity(ctx context.Context, resource, resourceID, action string, userID *uuid.UUID, oldValues, newValues, metadata models.JSONB) error {
	args := m.Called(ctx, resource, resourceID, action, userID, oldValues, newValues, metadata)
	return args.Error(0)
}

func (m *MockAuditLogsService) ListAuditLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditLogsService) GetResourceHistory(ctx context.Context, resource, resourceID string, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(ctx, resource, resourceID, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationService) RetryPending(ctx context.Context, limit int) (int, int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockNotificationService) ListByEvent(ctx context.Context, eventType, eventID string) ([]*models.Notification, error) {
	args := m.Called(ctx, eventType, eventID)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

// stubTxRunner invokes the callback with the suite's mock repositories, so
// transactional paths exercise the same expectations as everything else.
type stubTxRunner struct {
	rfqRepo         repositories.RFQRepository
	requisitionRepo repositories.RequisitionRepository
	rfqVendorRepo   repositories.RFQVendorRepository
	beginErr        error
}

func (s *stubTxRunner) RunRFQ(ctx context.Context, fn func(
	rfqRepo repositories.RFQRepository,
	requisitionRepo repositories.RequisitionRepository,
	rfqVendorRepo repositories.RFQVendorRepository,
) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	return fn(s.rfqRepo, s.requisitionRepo, s.rfqVendorRepo)
}
