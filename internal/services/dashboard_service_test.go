package services

import (
	"context"
	"testing"

	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	service         DashboardService
	companyID       uuid.UUID
	ctx             context.Context
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = &MockPaymentRepository{}
	suite.service = NewDashboardService(suite.mockPaymentRepo)
	suite.companyID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (suite *DashboardServiceTestSuite) TestStats_SumsRemaindersOfSentInvoices() {
	suite.mockPaymentRepo.On("TotalIncome", mock.Anything, suite.companyID).
		Return(decimal.NewFromInt(50), nil).Once()
	suite.mockPaymentRepo.On("OutstandingByCompany", mock.Anything, suite.companyID).
		Return([]repositories.InvoiceBalance{
			{InvoiceID: uuid.New(), Total: decimal.NewFromInt(100), Paid: decimal.NewFromInt(50)},
			{InvoiceID: uuid.New(), Total: decimal.NewFromInt(200), Paid: decimal.Zero},
		}, nil).Once()
	suite.mockPaymentRepo.On("RecentTransactions", mock.Anything, suite.companyID, recentTransactionLimit).
		Return([]models.Transaction{}, nil).Once()

	stats, err := suite.service.Stats(suite.ctx, suite.companyID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), stats.DueAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(suite.T(), 2, stats.DueCount)
	assert.True(suite.T(), stats.TotalIncome.Equal(decimal.NewFromInt(50)))
}

func (suite *DashboardServiceTestSuite) TestStats_SkipsNonPositiveRemainders() {
	suite.mockPaymentRepo.On("TotalIncome", mock.Anything, suite.companyID).
		Return(decimal.NewFromInt(310), nil).Once()
	suite.mockPaymentRepo.On("OutstandingByCompany", mock.Anything, suite.companyID).
		Return([]repositories.InvoiceBalance{
			{InvoiceID: uuid.New(), Total: decimal.NewFromInt(100), Paid: decimal.NewFromInt(100)},
			{InvoiceID: uuid.New(), Total: decimal.NewFromInt(100), Paid: decimal.NewFromInt(110)},
			{InvoiceID: uuid.New(), Total: decimal.NewFromInt(100), Paid: decimal.NewFromInt(90)},
		}, nil).Once()
	suite.mockPaymentRepo.On("RecentTransactions", mock.Anything, suite.companyID, recentTransactionLimit).
		Return([]models.Transaction{}, nil).Once()

	stats, err := suite.service.Stats(suite.ctx, suite.companyID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), stats.DueAmount.Equal(decimal.NewFromInt(10)))
	assert.Equal(suite.T(), 1, stats.DueCount)
}

func (suite *DashboardServiceTestSuite) TestStats_EmptyCompany() {
	suite.mockPaymentRepo.On("TotalIncome", mock.Anything, suite.companyID).
		Return(decimal.Zero, nil).Once()
	suite.mockPaymentRepo.On("OutstandingByCompany", mock.Anything, suite.companyID).
		Return([]repositories.InvoiceBalance{}, nil).Once()
	suite.mockPaymentRepo.On("RecentTransactions", mock.Anything, suite.companyID, recentTransactionLimit).
		Return([]models.Transaction{}, nil).Once()

	stats, err := suite.service.Stats(suite.ctx, suite.companyID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), stats.DueAmount.IsZero())
	assert.Equal(suite.T(), 0, stats.DueCount)
	assert.Empty(suite.T(), stats.RecentTransactions)
}
