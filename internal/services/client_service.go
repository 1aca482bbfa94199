package services

import (
	"context"
	"time"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type ClientService interface {
	Create(ctx context.Context, companyID uuid.UUID, req *CreateClientRequest) (*models.Client, error)
	Get(ctx context.Context, companyID, clientID uuid.UUID) (*models.Client, error)
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error)
	Update(ctx context.Context, companyID, clientID uuid.UUID, req *UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, companyID, clientID uuid.UUID) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
}

func NewClientService(clientRepo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, companyID uuid.UUID, req *CreateClientRequest) (*models.Client, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email, "email"); err != nil {
		return nil, err
	}

	now := time.Now()
	client := &models.Client{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, companyID, clientID uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, companyID, clientID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	return s.clientRepo.List(ctx, companyID, limit, offset)
}

func (s *clientService) Update(ctx context.Context, companyID, clientID uuid.UUID, req *UpdateClientRequest) (*models.Client, error) {
	client, err := s.Get(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		client.Name = *req.Name
	}
	if req.Email != nil {
		if err := common.ValidateEmail(*req.Email, "email"); err != nil {
			return nil, err
		}
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Address != nil {
		client.Address = req.Address
	}

	client.UpdatedAt = time.Now()
	if err := s.clientRepo.Update(ctx, client); err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// Delete is unconditional: invoices referencing the client keep their
// client_id and simply lose the join.
func (s *clientService) Delete(ctx context.Context, companyID, clientID uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, companyID, clientID); err != nil {
		if common.IsNotFound(err) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}
