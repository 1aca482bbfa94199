package services

import (
	"bytes"
	"context"
	"testing"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	mockStorage      *MockStorageService
	service          SettingsService
	companyID        uuid.UUID
	ctx              context.Context
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = &MockSettingsRepository{}
	suite.mockStorage = &MockStorageService{}
	suite.service = NewSettingsService(suite.mockSettingsRepo, suite.mockStorage, "invoicehub")
	suite.companyID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *SettingsServiceTestSuite) TearDownTest() {
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockStorage.AssertExpectations(suite.T())
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (suite *SettingsServiceTestSuite) stored() *models.Settings {
	return &models.Settings{
		ID:             uuid.New(),
		CompanyID:      suite.companyID,
		CompanyName:    defaultCompanyName,
		Email:          defaultEmail,
		Currency:       defaultCurrency,
		DefaultTaxRate: decimal.Zero,
	}
}

func (suite *SettingsServiceTestSuite) TestGet_FirstReadSynthesizesDefaults() {
	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.MatchedBy(func(d *models.Settings) bool {
		return d.CompanyID == suite.companyID && d.Currency == "USD" && d.CompanyName == "My Company"
	})).Return(suite.stored(), nil).Once()

	settings, err := suite.service.Get(suite.ctx, suite.companyID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.companyID, settings.CompanyID)
	assert.Equal(suite.T(), "USD", settings.Currency)
}

func (suite *SettingsServiceTestSuite) TestUpdate_MergePatch() {
	name := "Studio North"
	rate := decimal.RequireFromString("7.5")

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(suite.stored(), nil).Once()
	suite.mockSettingsRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *models.Settings) bool {
		return s.CompanyName == name && s.DefaultTaxRate.Equal(rate) && s.Email == defaultEmail
	})).Return(nil).Once()

	settings, err := suite.service.Update(suite.ctx, suite.companyID, &UpdateSettingsRequest{
		CompanyName:    &name,
		DefaultTaxRate: &rate,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), name, settings.CompanyName)
	assert.Equal(suite.T(), defaultCurrency, settings.Currency)
}

func (suite *SettingsServiceTestSuite) TestUpdate_RejectsInvalidEmail() {
	bad := "not-an-email"

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(suite.stored(), nil).Once()

	_, err := suite.service.Update(suite.ctx, suite.companyID, &UpdateSettingsRequest{Email: &bad})

	assert.Error(suite.T(), err)
}

func (suite *SettingsServiceTestSuite) TestUpdate_RejectsOutOfRangeTaxRate() {
	rate := decimal.NewFromInt(101)

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(suite.stored(), nil).Once()

	_, err := suite.service.Update(suite.ctx, suite.companyID, &UpdateSettingsRequest{DefaultTaxRate: &rate})

	assert.Error(suite.T(), err)
}

func (suite *SettingsServiceTestSuite) TestUploadLogo_StoresObjectAndPersistsURL() {
	body := bytes.NewBufferString("png-bytes")
	objectName := "logos/" + suite.companyID.String() + ".png"
	url := "https://storage.test/invoicehub/" + objectName

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(suite.stored(), nil).Once()
	suite.mockStorage.On("Upload", mock.Anything, "invoicehub", objectName, body, int64(9)).Return(nil).Once()
	suite.mockStorage.On("ObjectURL", "invoicehub", objectName).Return(url).Once()
	suite.mockSettingsRepo.On("UpdateLogoURL", mock.Anything, suite.companyID, url).Return(nil).Once()

	got, err := suite.service.UploadLogo(suite.ctx, suite.companyID, "logo.png", body, 9)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), url, got)
}

func (suite *SettingsServiceTestSuite) TestUploadLogo_ReplacingWithNewExtensionRemovesOldObject() {
	body := bytes.NewBufferString("png-bytes")
	oldObject := "logos/" + suite.companyID.String() + ".jpg"
	newObject := "logos/" + suite.companyID.String() + ".png"
	newURL := "https://storage.test/invoicehub/" + newObject

	stored := suite.stored()
	oldURL := "https://storage.test/invoicehub/" + oldObject
	stored.LogoURL = &oldURL

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(stored, nil).Once()
	suite.mockStorage.On("Upload", mock.Anything, "invoicehub", newObject, body, int64(9)).Return(nil).Once()
	suite.mockStorage.On("Remove", mock.Anything, "invoicehub", oldObject).Return(nil).Once()
	suite.mockStorage.On("ObjectURL", "invoicehub", newObject).Return(newURL).Once()
	suite.mockSettingsRepo.On("UpdateLogoURL", mock.Anything, suite.companyID, newURL).Return(nil).Once()

	got, err := suite.service.UploadLogo(suite.ctx, suite.companyID, "logo.png", body, 9)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newURL, got)
}

func (suite *SettingsServiceTestSuite) TestUploadLogo_SameExtensionOverwritesInPlace() {
	body := bytes.NewBufferString("png-bytes")
	objectName := "logos/" + suite.companyID.String() + ".png"
	url := "https://storage.test/invoicehub/" + objectName

	stored := suite.stored()
	stored.LogoURL = &url

	suite.mockSettingsRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(stored, nil).Once()
	suite.mockStorage.On("Upload", mock.Anything, "invoicehub", objectName, body, int64(9)).Return(nil).Once()
	suite.mockStorage.On("ObjectURL", "invoicehub", objectName).Return(url).Once()
	suite.mockSettingsRepo.On("UpdateLogoURL", mock.Anything, suite.companyID, url).Return(nil).Once()

	got, err := suite.service.UploadLogo(suite.ctx, suite.companyID, "logo.png", body, 9)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), url, got)
}
