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

var ErrCarNotFound = errors.New("car not found")

// CarService orchestrates car operations. Validation has already happened
// at the handler boundary; the service stamps the acting identity and talks
// to the repository.
type CarService interface {
	CreateCar(ctx context.Context, actorID int64, data *validation.CarData) (*model.Car, error)
	GetCars(ctx context.Context, includes model.CarIncludes) ([]model.Car, error)
	GetCarByID(ctx context.Context, id int64, includes model.CarIncludes) (*model.Car, error)
	UpdateCar(ctx context.Context, id, actorID int64, data *validation.CarData) error
	DeleteCar(ctx context.Context, id int64) error
}

type carService struct {
	repo repository.CarRepository
}

// NewCarService creates a new CarService
func NewCarService(repo repository.CarRepository) CarService {
	return &carService{repo: repo}
}

func (s *carService) CreateCar(ctx context.Context, actorID int64, data *validation.CarData) (*model.Car, error) {
	now := time.Now()
	car := &model.Car{
		Brand:           *data.Brand,
		Model:           *data.Model,
		Color:           *data.Color,
		YearManufacture: *data.YearManufacture,
		Imported:        *data.Imported,
		Plates:          *data.Plates,
		SellingDate:     data.SellingDate,
		SellingPrice:    data.SellingPrice,
		CustomerID:      data.CustomerID,
		CreatedUserID:   actorID,
		UpdatedUserID:   actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car in repo: %w", err)
	}
	return car, nil
}

func (s *carService) GetCars(ctx context.Context, includes model.CarIncludes) ([]model.Car, error) {
	cars, err := s.repo.FindAll(ctx, includes)
	if err != nil {
		return nil, fmt.Errorf("failed to get cars from repo: %w", err)
	}
	return cars, nil
}

func (s *carService) GetCarByID(ctx context.Context, id int64, includes model.CarIncludes) (*model.Car, error) {
	car, err := s.repo.FindByID(ctx, id, includes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return car, nil
}

// UpdateCar applies a sparse patch over the stored record and refreshes
// the updater identity.
func (s *carService) UpdateCar(ctx context.Context, id, actorID int64, data *validation.CarData) error {
	existing, err := s.repo.FindByID(ctx, id, model.CarIncludes{})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to find car for update: %w", err)
	}

	if data.Brand != nil {
		existing.Brand = *data.Brand
	}
	if data.Model != nil {
		existing.Model = *data.Model
	}
	if data.Color != nil {
		existing.Color = *data.Color
	}
	if data.YearManufacture != nil {
		existing.YearManufacture = *data.YearManufacture
	}
	if data.Imported != nil {
		existing.Imported = *data.Imported
	}
	if data.Plates != nil {
		existing.Plates = *data.Plates
	}
	if data.SellingDateSet {
		existing.SellingDate = data.SellingDate
	}
	if data.SellingPriceSet {
		existing.SellingPrice = data.SellingPrice
	}
	if data.CustomerIDSet {
		existing.CustomerID = data.CustomerID
	}
	existing.UpdatedUserID = actorID

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to update car in repo: %w", err)
	}
	return nil
}

func (s *carService) DeleteCar(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to delete car in repo: %w", err)
	}
	return nil
}
