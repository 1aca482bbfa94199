package repositories

import (
	"context"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SettingsRepository interface {
	GetOrCreate(ctx context.Context, defaults *models.Settings) (*models.Settings, error)
	GetByCompany(ctx context.Context, companyID uuid.UUID) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
	UpdateLogoURL(ctx context.Context, companyID uuid.UUID, logoURL string) error
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepo(db DB) SettingsRepository {
	return &settingsRepo{db: db}
}

const settingsColumns = "id, company_id, company_name, email, phone, address, currency, default_tax_rate, logo_url, created_at, updated_at"

// GetOrCreate inserts the defaults unless a row already exists, then reads
// whichever row won. The unique constraint on company_id makes concurrent
// first reads converge on a single row.
func (r *settingsRepo) GetOrCreate(ctx context.Context, defaults *models.Settings) (*models.Settings, error) {
	insertQuery := `
		INSERT INTO settings (id, company_id, company_name, email, phone, address, currency, default_tax_rate, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (company_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, insertQuery, defaults.ID, defaults.CompanyID, defaults.CompanyName, defaults.Email, defaults.Phone, defaults.Address, defaults.Currency, defaults.DefaultTaxRate, defaults.LogoURL)
	if err != nil {
		return nil, err
	}
	return r.GetByCompany(ctx, defaults.CompanyID)
}

func (r *settingsRepo) GetByCompany(ctx context.Context, companyID uuid.UUID) (*models.Settings, error) {
	settings := &models.Settings{}
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE company_id = $1`
	err := r.db.QueryRow(ctx, query, companyID).Scan(&settings.ID, &settings.CompanyID, &settings.CompanyName, &settings.Email, &settings.Phone, &settings.Address, &settings.Currency, &settings.DefaultTaxRate, &settings.LogoURL, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepo) Update(ctx context.Context, settings *models.Settings) error {
	query := `
		UPDATE settings
		SET company_name = $1, email = $2, phone = $3, address = $4, currency = $5, default_tax_rate = $6, logo_url = $7, updated_at = NOW()
		WHERE company_id = $8
	`
	tag, err := r.db.Exec(ctx, query, settings.CompanyName, settings.Email, settings.Phone, settings.Address, settings.Currency, settings.DefaultTaxRate, settings.LogoURL, settings.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *settingsRepo) UpdateLogoURL(ctx context.Context, companyID uuid.UUID, logoURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE settings SET logo_url = $1, updated_at = NOW() WHERE company_id = $2`, logoURL, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
