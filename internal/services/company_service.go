package services

import (
	"context"
	"time"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// CompanyService is the tenant directory behind the super-admin console.
type CompanyService interface {
	Create(ctx context.Context, req *CreateCompanyRequest) (*models.Company, error)
	Get(ctx context.Context, companyID uuid.UUID) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]*models.Company, error)
	Update(ctx context.Context, companyID uuid.UUID, req *UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, companyID uuid.UUID) error
}

type companyService struct {
	companyRepo repositories.CompanyRepository
	clientRepo  repositories.ClientRepository
	invoiceRepo repositories.InvoiceRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository, clientRepo repositories.ClientRepository, invoiceRepo repositories.InvoiceRepository) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *companyService) Create(ctx context.Context, req *CreateCompanyRequest) (*models.Company, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email, "email"); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &models.Company{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Get(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	return s.companyRepo.List(ctx, limit, offset)
}

func (s *companyService) Update(ctx context.Context, companyID uuid.UUID, req *UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		company.Name = *req.Name
	}
	if req.Email != nil {
		if err := common.ValidateEmail(*req.Email, "email"); err != nil {
			return nil, err
		}
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = req.Phone
	}
	if req.Address != nil {
		company.Address = req.Address
	}
	if req.Active != nil {
		company.Active = *req.Active
	}

	company.UpdatedAt = time.Now()
	if err := s.companyRepo.Update(ctx, company); err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return company, nil
}

// Delete refuses to remove a company that still owns clients or invoices.
// When the guard passes, the company row goes away together with its users
// and settings in one transaction.
func (s *companyService) Delete(ctx context.Context, companyID uuid.UUID) error {
	clients, err := s.clientRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	invoices, err := s.invoiceRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if clients > 0 || invoices > 0 {
		return common.ErrCompanyNotEmpty
	}

	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		if common.IsNotFound(err) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}
