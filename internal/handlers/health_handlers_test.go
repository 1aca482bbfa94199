package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type stubCacheService struct {
	mock.Mock
}

func (m *stubCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *stubCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *stubCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *stubCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type HealthHandlersTestSuite struct {
	suite.Suite
	mockDB   pgxmock.PgxPoolIface
	cache    *stubCacheService
	handlers *HealthHandlers
	echo     *echo.Echo
}

func (suite *HealthHandlersTestSuite) SetupTest() {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mockDB = mockDB
	suite.cache = &stubCacheService{}
	suite.handlers = NewHealthHandlers(mockDB, suite.cache)
	suite.echo = echo.New()
}

func (suite *HealthHandlersTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mockDB.ExpectationsWereMet())
	suite.mockDB.Close()
	suite.cache.AssertExpectations(suite.T())
}

func TestHealthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlersTestSuite))
}

func (suite *HealthHandlersTestSuite) TestHealth_LivenessNeedsNoDependencies() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.Health(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"ok"`)
}

func (suite *HealthHandlersTestSuite) TestReady_AllDependenciesUp() {
	suite.mockDB.ExpectExec(`SELECT 1`).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	suite.cache.On("Ping", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.Ready(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *HealthHandlersTestSuite) TestReady_DatabaseDownReturns503() {
	suite.mockDB.ExpectExec(`SELECT 1`).WillReturnError(assert.AnError)
	suite.cache.On("Ping", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.Ready(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "database")
}

func (suite *HealthHandlersTestSuite) TestReady_CacheDownReturns503() {
	suite.mockDB.ExpectExec(`SELECT 1`).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	suite.cache.On("Ping", mock.Anything).Return(assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.Ready(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
}
