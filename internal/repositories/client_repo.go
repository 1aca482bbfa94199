package repositories

import (
	"context"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error)
}

type clientRepo struct {
	db DB
}

func NewClientRepo(db DB) ClientRepository {
	return &clientRepo{db: db}
}

const clientColumns = "id, company_id, name, email, phone, address, created_at, updated_at"

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, company_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, client.ID, client.CompanyID, client.Name, client.Email, client.Phone, client.Address)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, companyID, id).Scan(&client.ID, &client.CompanyID, &client.Name, &client.Email, &client.Phone, &client.Address, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE company_id = $5 AND id = $6
	`
	tag, err := r.db.Exec(ctx, query, client.Name, client.Email, client.Phone, client.Address, client.CompanyID, client.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(&client.ID, &client.CompanyID, &client.Name, &client.Email, &client.Phone, &client.Address, &client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *clientRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}
