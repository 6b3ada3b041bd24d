package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRFQRepository mocks the RFQRepository interface for testing
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RFQ), args.Error(1)
}

// MockQuoteRepository mocks the QuoteRepository interface for testing
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

// MockNotificationService mocks the NotificationService interface for testing
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

// DeadlineSweepServiceTestSuite is the test suite for DeadlineSweepService
type DeadlineSweepServiceTestSuite struct {
	suite.Suite
	mockRFQRepo         *MockRFQRepository
	mockQuoteRepo       *MockQuoteRepository
	mockNotificationSvc *MockNotificationService
	service             *DeadlineSweepService
}

// SetupTest initializes test dependencies
func (suite *DeadlineSweepServiceTestSuite) SetupTest() {
	suite.mockRFQRepo = &MockRFQRepository{}
	suite.mockQuoteRepo = &MockQuoteRepository{}
	suite.mockNotificationSvc = &MockNotificationService{}
	suite.service = NewDeadlineSweepService(suite.mockRFQRepo, suite.mockQuoteRepo, suite.mockNotificationSvc)
}

// TearDownTest cleans up test dependencies
func (suite *DeadlineSweepServiceTestSuite) TearDownTest() {
	suite.mockRFQRepo.AssertExpectations(suite.T())
	suite.mockQuoteRepo.AssertExpectations(suite.T())
	suite.mockNotificationSvc.AssertExpectations(suite.T())
}

func pastDeadlineRFQ(number string) *models.RFQ {
	return &models.RFQ{
		ID:               uuid.New(),
		RFQNumber:        number,
		Title:            "Engine spares for MV Test",
		Status:           models.RFQStatusSent,
		ResponseDeadline: time.Now().Add(-2 * time.Hour),
	}
}

// TestCheckPastDeadlines_BuildsAlertsWithQuoteCounts verifies the sweep
// collects lapsed RFQs and counts their quotes
func (suite *DeadlineSweepServiceTestSuite) TestCheckPastDeadlines_BuildsAlertsWithQuoteCounts() {
	ctx := context.Background()

	rfq1 := pastDeadlineRFQ("RFQ-2026-0001")
	rfq2 := pastDeadlineRFQ("RFQ-2026-0002")

	suite.mockRFQRepo.On("ListPastDeadline", ctx, 200).Return([]*models.RFQ{rfq1, rfq2}, nil).Once()
	suite.mockNotificationSvc.On("ListByEvent", ctx, models.EventRFQDeadlinePassed, rfq1.ID.String()).Return([]*models.Notification{}, nil).Once()
	suite.mockNotificationSvc.On("ListByEvent", ctx, models.EventRFQDeadlinePassed, rfq2.ID.String()).Return([]*models.Notification{}, nil).Once()
	suite.mockQuoteRepo.On("ListByRFQ", ctx, rfq1.ID).Return([]*models.Quote{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()
	suite.mockQuoteRepo.On("ListByRFQ", ctx, rfq2.ID).Return([]*models.Quote{}, nil).Once()

	alerts, err := suite.service.CheckPastDeadlines(ctx, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 2)
	assert.Equal(suite.T(), "RFQ-2026-0001", alerts[0].RFQNumber)
	assert.Equal(suite.T(), 2, alerts[0].QuoteCount)
	assert.Equal(suite.T(), 0, alerts[1].QuoteCount)
}

// TestCheckPastDeadlines_SkipsAlreadyFlaggedRFQs verifies an existing
// deadline notification suppresses a second alert for the same RFQ
func (suite *DeadlineSweepServiceTestSuite) TestCheckPastDeadlines_SkipsAlreadyFlaggedRFQs() {
	ctx := context.Background()

	flagged := pastDeadlineRFQ("RFQ-2026-0003")
	fresh := pastDeadlineRFQ("RFQ-2026-0004")

	existing := []*models.Notification{{ID: uuid.New(), EventType: models.EventRFQDeadlinePassed, EventID: flagged.ID.String()}}

	suite.mockRFQRepo.On("ListPastDeadline", ctx, 200).Return([]*models.RFQ{flagged, fresh}, nil).Once()
	suite.mockNotificationSvc.On("ListByEvent", ctx, models.EventRFQDeadlinePassed, flagged.ID.String()).Return(existing, nil).Once()
	suite.mockNotificationSvc.On("ListByEvent", ctx, models.EventRFQDeadlinePassed, fresh.ID.String()).Return([]*models.Notification{}, nil).Once()
	suite.mockQuoteRepo.On("ListByRFQ", ctx, fresh.ID).Return([]*models.Quote{}, nil).Once()
	// No quote lookup for the flagged RFQ

	alerts, err := suite.service.CheckPastDeadlines(ctx, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), fresh.ID, alerts[0].RFQID)
}

// TestCheckPastDeadlines_RepositoryError tests error handling from the RFQ repository
func (suite *DeadlineSweepServiceTestSuite) TestCheckPastDeadlines_RepositoryError() {
	ctx := context.Background()

	suite.mockRFQRepo.On("ListPastDeadline", ctx, 200).Return(nil, errors.New("database connection failed")).Once()

	alerts, err := suite.service.CheckPastDeadlines(ctx, 0)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), alerts)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

// TestNotifyPastDeadlines_QueuesOnePerAlert verifies notification content
func (suite *DeadlineSweepServiceTestSuite) TestNotifyPastDeadlines_QueuesOnePerAlert() {
	ctx := context.Background()

	alert := DeadlineAlert{
		RFQID:            uuid.New(),
		RFQNumber:        "RFQ-2026-0005",
		Title:            "Lube oil resupply",
		ResponseDeadline: time.Now().Add(-time.Hour),
		QuoteCount:       3,
	}

	suite.mockNotificationSvc.On("Notify", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventType == models.EventRFQDeadlinePassed &&
			n.EventID == alert.RFQID.String() &&
			n.Recipient == procurementMailbox &&
			n.Type == models.NotificationTypeEmail
	})).Return(nil).Once()

	queued, err := suite.service.NotifyPastDeadlines(ctx, []DeadlineAlert{alert})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, queued)
}

// TestNotifyPastDeadlines_CountsOnlySuccessfulQueues tests partial failure
func (suite *DeadlineSweepServiceTestSuite) TestNotifyPastDeadlines_CountsOnlySuccessfulQueues() {
	ctx := context.Background()

	ok := DeadlineAlert{RFQID: uuid.New(), RFQNumber: "RFQ-2026-0006", ResponseDeadline: time.Now()}
	bad := DeadlineAlert{RFQID: uuid.New(), RFQNumber: "RFQ-2026-0007", ResponseDeadline: time.Now()}

	suite.mockNotificationSvc.On("Notify", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventID == ok.RFQID.String()
	})).Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventID == bad.RFQID.String()
	})).Return(errors.New("smtp unavailable")).Once()

	queued, err := suite.service.NotifyPastDeadlines(ctx, []DeadlineAlert{ok, bad})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, queued)
}

// TestRunSweep_NoLapsedRFQs verifies a quiet sweep queues nothing
func (suite *DeadlineSweepServiceTestSuite) TestRunSweep_NoLapsedRFQs() {
	ctx := context.Background()

	suite.mockRFQRepo.On("ListPastDeadline", ctx, 200).Return([]*models.RFQ{}, nil).Once()

	err := suite.service.RunSweep(ctx)
	assert.NoError(suite.T(), err)
}

// TestRunSweep_EndToEnd runs the full check-then-notify path
func (suite *DeadlineSweepServiceTestSuite) TestRunSweep_EndToEnd() {
	ctx := context.Background()

	rfq := pastDeadlineRFQ("RFQ-2026-0008")

	suite.mockRFQRepo.On("ListPastDeadline", ctx, 200).Return([]*models.RFQ{rfq}, nil).Once()
	suite.mockNotificationSvc.On("ListByEvent", ctx, models.EventRFQDeadlinePassed, rfq.ID.String()).Return([]*models.Notification{}, nil).Once()
	suite.mockQuoteRepo.On("ListByRFQ", ctx, rfq.ID).Return([]*models.Quote{{ID: uuid.New()}}, nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.EventID == rfq.ID.String()
	})).Return(nil).Once()

	err := suite.service.RunSweep(ctx)
	assert.NoError(suite.T(), err)
}

func TestDeadlineSweepServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DeadlineSweepServiceTestSuite))
}
