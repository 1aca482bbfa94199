package repositories

import (
	"context"
	"encoding/json"

	"invoicehub/internal/models"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Insert(ctx context.Context, log *models.AuditLog) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogRepo struct {
	db DB
}

func NewAuditLogRepo(db DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Insert(ctx context.Context, log *models.AuditLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO audit_logs (id, company_id, action, path, user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, log.ID, log.CompanyID, log.Action, log.Path, log.UserID, details)
	return err
}

func (r *auditLogRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, company_id, action, path, user_id, details, created_at
		FROM audit_logs
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.CompanyID, &entry.Action, &entry.Path, &entry.UserID, &details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, err
			}
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
