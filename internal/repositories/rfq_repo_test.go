package repositories

import (
	"context"
	"testing"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RFQRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    RFQRepository
	rfqID   uuid.UUID
	reqID   uuid.UUID
	context context.Context
}

func (suite *RFQRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRFQRepo(mock)
	suite.rfqID = uuid.New()
	suite.reqID = uuid.New()
	suite.context = context.Background()
}

func (suite *RFQRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestRFQRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RFQRepoTestSuite))
}

func (suite *RFQRepoTestSuite) TestNextRFQNumber_FirstOfYear() {
	suite.mock.ExpectQuery(`WITH upsert AS \(`).
		WithArgs(2026).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(1))

	number, err := suite.repo.NextRFQNumber(suite.context, 2026)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "RFQ-2026-0001", number)
}

func (suite *RFQRepoTestSuite) TestNextRFQNumber_PadsSequence() {
	suite.mock.ExpectQuery(`WITH upsert AS \(`).
		WithArgs(2026).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(42))

	number, err := suite.repo.NextRFQNumber(suite.context, 2026)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "RFQ-2026-0042", number)
}

func (suite *RFQRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, rfq_number, requisition_id`).
		WithArgs(suite.rfqID).
		WillReturnError(pgx.ErrNoRows)

	rfq, err := suite.repo.GetByID(suite.context, suite.rfqID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), rfq)
}

func (suite *RFQRepoTestSuite) TestExistsForRequisition() {
	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM rfqs WHERE requisition_id = \$1\)`).
		WithArgs(suite.reqID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.ExistsForRequisition(suite.context, suite.reqID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *RFQRepoTestSuite) TestUpdateStatus_NotFound() {
	suite.mock.ExpectExec(`UPDATE rfqs SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.RFQStatusSent, suite.rfqID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.UpdateStatus(suite.context, suite.rfqID, models.RFQStatusSent)
	assert.Error(suite.T(), err)
}

func (suite *RFQRepoTestSuite) TestCreate() {
	deadline := time.Now().Add(7 * 24 * time.Hour)
	rfq := &models.RFQ{
		ID:               suite.rfqID,
		RFQNumber:        "RFQ-2026-0007",
		RequisitionID:    suite.reqID,
		Title:            "Engine spares",
		Status:           models.RFQStatusDraft,
		Currency:         "USD",
		DeliveryLocation: "Rotterdam, NLRTM, Netherlands",
		ResponseDeadline: deadline,
		CreatedBy:        uuid.New(),
	}

	suite.mock.ExpectExec(`INSERT INTO rfqs`).
		WithArgs(rfq.ID, rfq.RFQNumber, rfq.RequisitionID, rfq.Title, rfq.Description, rfq.Status, rfq.Currency, rfq.DeliveryLocation, rfq.DeliveryDate, rfq.ResponseDeadline, rfq.CreatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, rfq)
	assert.NoError(suite.T(), err)
}
