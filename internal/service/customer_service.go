package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealership/internal/model"
	"dealership/internal/repository"
	"dealership/internal/validation"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerService orchestrates customer operations
type CustomerService interface {
	CreateCustomer(ctx context.Context, data *validation.CustomerData) (*model.Customer, error)
	GetCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, data *validation.CustomerData) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type customerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) CreateCustomer(ctx context.Context, data *validation.CustomerData) (*model.Customer, error) {
	now := time.Now()
	customer := &model.Customer{
		Name:          *data.Name,
		IdentDocument: *data.IdentDocument,
		BirthDate:     data.BirthDate,
		StreetName:    *data.StreetName,
		HouseNumber:   *data.HouseNumber,
		Complements:   data.Complements,
		District:      *data.District,
		Municipality:  *data.Municipality,
		State:         *data.State,
		Phone:         *data.Phone,
		Email:         *data.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer in repo: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers from repo: %w", err)
	}
	return customers, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, data *validation.CustomerData) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to find customer for update: %w", err)
	}

	if data.Name != nil {
		existing.Name = *data.Name
	}
	if data.IdentDocument != nil {
		existing.IdentDocument = *data.IdentDocument
	}
	if data.BirthDateSet {
		existing.BirthDate = data.BirthDate
	}
	if data.StreetName != nil {
		existing.StreetName = *data.StreetName
	}
	if data.HouseNumber != nil {
		existing.HouseNumber = *data.HouseNumber
	}
	if data.ComplementsSet {
		existing.Complements = data.Complements
	}
	if data.District != nil {
		existing.District = *data.District
	}
	if data.Municipality != nil {
		existing.Municipality = *data.Municipality
	}
	if data.State != nil {
		existing.State = *data.State
	}
	if data.Phone != nil {
		existing.Phone = *data.Phone
	}
	if data.Email != nil {
		existing.Email = *data.Email
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to update customer in repo: %w", err)
	}
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer in repo: %w", err)
	}
	return nil
}
