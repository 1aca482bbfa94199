package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Defaults used when a company reads its settings for the first time.
const (
	defaultCurrency    = "USD"
	defaultCompanyName = "My Company"
	defaultEmail       = "billing@example.com"
)

type UpdateSettingsRequest struct {
	CompanyName    *string          `json:"company_name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	Currency       *string          `json:"currency"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate"`
	LogoURL        *string          `json:"logo_url"`
}

type SettingsService interface {
	Get(ctx context.Context, companyID uuid.UUID) (*models.Settings, error)
	Update(ctx context.Context, companyID uuid.UUID, req *UpdateSettingsRequest) (*models.Settings, error)
	UploadLogo(ctx context.Context, companyID uuid.UUID, filename string, reader io.Reader, size int64) (string, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	storage      StorageService
	bucket       string
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, storage StorageService, bucket string) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		storage:      storage,
		bucket:       bucket,
	}
}

// Get returns the company's settings row, synthesizing and persisting the
// defaults on first read. Concurrent first reads converge on one row via the
// company_id uniqueness constraint behind GetOrCreate.
func (s *settingsService) Get(ctx context.Context, companyID uuid.UUID) (*models.Settings, error) {
	defaults := &models.Settings{
		ID:             uuid.New(),
		CompanyID:      companyID,
		CompanyName:    defaultCompanyName,
		Email:          defaultEmail,
		Currency:       defaultCurrency,
		DefaultTaxRate: decimal.Zero,
	}
	settings, err := s.settingsRepo.GetOrCreate(ctx, defaults)
	if err != nil {
		return nil, fmt.Errorf("get or create settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, companyID uuid.UUID, req *UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		if err := common.ValidateRequiredString(*req.CompanyName, "company_name"); err != nil {
			return nil, err
		}
		settings.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		if err := common.ValidateEmail(*req.Email, "email"); err != nil {
			return nil, err
		}
		settings.Email = *req.Email
	}
	if req.Phone != nil {
		settings.Phone = req.Phone
	}
	if req.Address != nil {
		settings.Address = req.Address
	}
	if req.Currency != nil {
		if err := common.ValidateRequiredString(*req.Currency, "currency"); err != nil {
			return nil, err
		}
		settings.Currency = *req.Currency
	}
	if req.DefaultTaxRate != nil {
		if err := common.ValidateTaxRate(*req.DefaultTaxRate); err != nil {
			return nil, err
		}
		settings.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.LogoURL != nil {
		settings.LogoURL = req.LogoURL
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return settings, nil
}

// UploadLogo stores the company logo in object storage and persists its URL.
// Logos live at a fixed per-company key, so a same-extension replacement
// overwrites in place; an extension change leaves the old object behind and
// it is removed best-effort.
func (s *settingsService) UploadLogo(ctx context.Context, companyID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	settings, err := s.Get(ctx, companyID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("logos/%s%s", companyID, path.Ext(filename))
	if err := s.storage.Upload(ctx, s.bucket, objectName, reader, size); err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	if settings.LogoURL != nil {
		oldObject := fmt.Sprintf("logos/%s%s", companyID, path.Ext(*settings.LogoURL))
		if oldObject != objectName {
			if err := s.storage.Remove(ctx, s.bucket, oldObject); err != nil {
				zap.L().Warn("Failed to remove previous logo object", zap.String("object", oldObject), zap.Error(err))
			}
		}
	}

	logoURL := s.storage.ObjectURL(s.bucket, objectName)
	if err := s.settingsRepo.UpdateLogoURL(ctx, companyID, logoURL); err != nil {
		return "", fmt.Errorf("persist logo url: %w", err)
	}
	return logoURL, nil
}
