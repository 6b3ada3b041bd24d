package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
)

type QuoteServiceTestSuite struct {
	suite.Suite
	quoteRepo     *MockQuoteRepository
	rfqRepo       *MockRFQRepository
	rfqVendorRepo *MockRFQVendorRepository
	auditSvc      *MockAuditLogsService
	service       QuoteServiceInterface
	ctx           context.Context
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.quoteRepo = new(MockQuoteRepository)
	suite.rfqRepo = new(MockRFQRepository)
	suite.rfqVendorRepo = new(MockRFQVendorRepository)
	suite.auditSvc = new(MockAuditLogsService)
	suite.service = NewQuoteService(suite.quoteRepo, suite.rfqRepo, suite.rfqVendorRepo, suite.auditSvc)
	suite.ctx = context.Background()
}

func (suite *QuoteServiceTestSuite) TearDownTest() {
	suite.quoteRepo.AssertExpectations(suite.T())
	suite.rfqRepo.AssertExpectations(suite.T())
	suite.rfqVendorRepo.AssertExpectations(suite.T())
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

func (suite *QuoteServiceTestSuite) sentRFQ() *models.RFQ {
	return &models.RFQ{
		ID:               uuid.New(),
		RFQNumber:        "RFQ-2026-0003",
		Status:           models.RFQStatusSent,
		Currency:         "USD",
		ResponseDeadline: time.Now().Add(48 * time.Hour),
	}
}

func (suite *QuoteServiceTestSuite) TestSubmitQuote_Success() {
	rfq := suite.sentRFQ()
	vendorID := uuid.New()

	suite.rfqRepo.On("GetByID", suite.ctx, rfq.ID).Return(rfq, nil)
	suite.rfqVendorRepo.On("ListByRFQ", suite.ctx, rfq.ID).Return([]*models.RFQVendor{{RFQID: rfq.ID, VendorID: vendorID}}, nil)
	suite.quoteRepo.On("ExistsForRFQAndVendor", suite.ctx, rfq.ID, vendorID).Return(false, nil)
	suite.quoteRepo.On("Create", suite.ctx, mock.MatchedBy(func(q *models.Quote) bool {
		return q.RFQID == rfq.ID && q.VendorID == vendorID && q.Status == models.QuoteStatusSubmitted && q.Currency == "USD"
	})).Return(nil)
	suite.rfqVendorRepo.On("MarkResponded", suite.ctx, rfq.ID, vendorID, mock.AnythingOfType("time.Time")).Return(nil)
	suite.auditSvc.On("LogActivity", suite.ctx, "quote", mock.Anything, models.ActionCreate, (*uuid.UUID)(nil), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	quote, err := suite.service.SubmitQuote(suite.ctx, &SubmitQuoteInput{
		RFQID:       rfq.ID,
		VendorID:    vendorID,
		TotalAmount: 12500.50,
	})

	suite.Require().NoError(err)
	suite.Equal(12500.50, quote.TotalAmount)
	suite.Equal("USD", quote.Currency) // inherited from the RFQ
}

func (suite *QuoteServiceTestSuite) TestSubmitQuote_RejectsPastDeadline() {
	rfq := suite.sentRFQ()
	rfq.ResponseDeadline = time.Now().Add(-time.Hour)
	suite.rfqRepo.On("GetByID", suite.ctx, rfq.ID).Return(rfq, nil)

	quote, err := suite.service.SubmitQuote(suite.ctx, &SubmitQuoteInput{RFQID: rfq.ID, VendorID: uuid.New(), TotalAmount: 100})

	suite.Nil(quote)
	var appErr *common.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(common.CodeRFQDeadlinePassed, appErr.Code)
	suite.quoteRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestSubmitQuote_RejectsUninvitedVendor() {
	rfq := suite.sentRFQ()
	suite.rfqRepo.On("GetByID", suite.ctx, rfq.ID).Return(rfq, nil)
	suite.rfqVendorRepo.On("ListByRFQ", suite.ctx, rfq.ID).Return([]*models.RFQVendor{}, nil)

	quote, err := suite.service.SubmitQuote(suite.ctx, &SubmitQuoteInput{RFQID: rfq.ID, VendorID: uuid.New(), TotalAmount: 100})

	suite.Nil(quote)
	var appErr *common.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(common.CodeInvalidVendors, appErr.Code)
}

func (suite *QuoteServiceTestSuite) TestSubmitQuote_RejectsDuplicateQuote() {
	rfq := suite.sentRFQ()
	vendorID := uuid.New()
	suite.rfqRepo.On("GetByID", suite.ctx, rfq.ID).Return(rfq, nil)
	suite.rfqVendorRepo.On("ListByRFQ", suite.ctx, rfq.ID).Return([]*models.RFQVendor{{RFQID: rfq.ID, VendorID: vendorID}}, nil)
	suite.quoteRepo.On("ExistsForRFQAndVendor", suite.ctx, rfq.ID, vendorID).Return(true, nil)

	quote, err := suite.service.SubmitQuote(suite.ctx, &SubmitQuoteInput{RFQID: rfq.ID, VendorID: vendorID, TotalAmount: 100})

	suite.Nil(quote)
	var appErr *common.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal("QUOTE_ALREADY_EXISTS", appErr.Code)
}

func (suite *QuoteServiceTestSuite) TestSubmitQuote_RejectsDraftRFQ() {
	rfq := suite.sentRFQ()
	rfq.Status = models.RFQStatusDraft
	suite.rfqRepo.On("GetByID", suite.ctx, rfq.ID).Return(rfq, nil)

	quote, err := suite.service.SubmitQuote(suite.ctx, &SubmitQuoteInput{RFQID: rfq.ID, VendorID: uuid.New(), TotalAmount: 100})

	suite.Nil(quote)
	var appErr *common.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(common.CodeInvalidRFQStatus, appErr.Code)
}

func (suite *QuoteServiceTestSuite) TestAcceptQuote_OnlyFromSubmitted() {
	actorID := uuid.New()
	accepted := &models.Quote{ID: uuid.New(), Status: models.QuoteStatusAccepted}
	suite.quoteRepo.On("GetByID", suite.ctx, accepted.ID).Return(accepted, nil)

	err := suite.service.AcceptQuote(suite.ctx, accepted.ID, actorID)

	var appErr *common.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal("INVALID_QUOTE_STATUS", appErr.Code)
	suite.quoteRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestRejectQuote_Success() {
	actorID := uuid.New()
	quote := &models.Quote{ID: uuid.New(), Status: models.QuoteStatusSubmitted}
	suite.quoteRepo.On("GetByID", suite.ctx, quote.ID).Return(quote, nil)
	suite.quoteRepo.On("UpdateStatus", suite.ctx, quote.ID, models.QuoteStatusRejected).Return(nil)
	suite.auditSvc.On("LogActivity", suite.ctx, "quote", quote.ID.String(), models.ActionUpdate, &actorID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := suite.service.RejectQuote(suite.ctx, quote.ID, actorID)

	suite.Require().NoError(err)
}
