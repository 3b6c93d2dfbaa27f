package service

import (
	"context"
	"errors"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c, false)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	resp := customerToResponse(c, true)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerToResponse(&customers[i], false))
	}
	return &dto.CustomerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c, false)
	return &resp, nil
}

// Delete refuses while the customer still owns vehicles; vehicles carry the
// billing history and must be removed (debt-free) first.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.CountVehicles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("customer still has registered vehicles")
	}
	return s.repo.Delete(ctx, id)
}

func customerToResponse(c *model.Customer, withVehicles bool) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if withVehicles {
		for i := range c.Vehicles {
			resp.Vehicles = append(resp.Vehicles, vehicleToResponse(&c.Vehicles[i]))
		}
	}
	return resp
}
