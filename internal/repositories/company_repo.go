package repositories

import (
	"context"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	CreateTx(ctx context.Context, tx pgx.Tx, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Company, error)
}

type companyRepo struct {
	db DB
}

func NewCompanyRepo(db DB) CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = "id, name, email, phone, address, active, created_at, updated_at"

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, name, email, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, company.ID, company.Name, company.Email, company.Phone, company.Address, company.Active)
	return err
}

// CreateTx inserts a company inside an existing transaction. Registration
// creates the company and its first user atomically.
func (r *companyRepo) CreateTx(ctx context.Context, tx pgx.Tx, company *models.Company) error {
	query := `
		INSERT INTO companies (id, name, email, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := tx.Exec(ctx, query, company.ID, company.Name, company.Email, company.Phone, company.Address, company.Active)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&company.ID, &company.Name, &company.Email, &company.Phone, &company.Address, &company.Active, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, email = $2, phone = $3, address = $4, active = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, company.Name, company.Email, company.Phone, company.Address, company.Active, company.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a company together with its settings row and users. The
// service refuses to call this while the company still owns clients or
// invoices.
func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM settings WHERE company_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE company_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company := &models.Company{}
		if err := rows.Scan(&company.ID, &company.Name, &company.Email, &company.Phone, &company.Address, &company.Active, &company.CreatedAt, &company.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}
