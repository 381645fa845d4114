package service

import (
	"context"
	"testing"
	"time"

	"dealership/internal/model"
	"dealership/internal/repository"
	"dealership/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarRepo struct {
	cars   map[int64]model.Car
	nextID int64
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[int64]model.Car{}, nextID: 1}
}

func (r *fakeCarRepo) Create(ctx context.Context, car *model.Car) error {
	car.ID = r.nextID
	r.nextID++
	r.cars[car.ID] = *car
	return nil
}

func (r *fakeCarRepo) FindAll(ctx context.Context, includes model.CarIncludes) ([]model.Car, error) {
	out := []model.Car{}
	for _, c := range r.cars {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCarRepo) FindByID(ctx context.Context, id int64, includes model.CarIncludes) (*model.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car *model.Car) error {
	if _, ok := r.cars[car.ID]; !ok {
		return repository.ErrNotFound
	}
	r.cars[car.ID] = *car
	return nil
}

func (r *fakeCarRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.cars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

func strPtr(s string) *string        { return &s }
func intPtr(n int) *int              { return &n }
func boolPtr(b bool) *bool           { return &b }
func floatPtr(f float64) *float64    { return &f }
func int64Ptr(n int64) *int64        { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func seedCar(t *testing.T, svc CarService) *model.Car {
	t.Helper()
	car, err := svc.CreateCar(context.Background(), 1, &validation.CarData{
		Brand:           strPtr("VW"),
		Model:           strPtr("Gol"),
		Color:           strPtr("AZUL"),
		YearManufacture: intPtr(2021),
		Imported:        boolPtr(false),
		Plates:          strPtr("ABC-1234"),
	})
	require.NoError(t, err)
	return car
}

func TestCarService_CreateCar_StampsActor(t *testing.T) {
	svc := NewCarService(newFakeCarRepo())

	car, err := svc.CreateCar(context.Background(), 42, &validation.CarData{
		Brand:           strPtr("VW"),
		Model:           strPtr("Gol"),
		Color:           strPtr("AZUL"),
		YearManufacture: intPtr(2021),
		Imported:        boolPtr(false),
		Plates:          strPtr("ABC-1234"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), car.CreatedUserID)
	assert.Equal(t, int64(42), car.UpdatedUserID)
	assert.NotZero(t, car.ID)
}

func TestCarService_UpdateCar_MergesSuppliedFields(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo)
	car := seedCar(t, svc)

	sellingDate := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	err := svc.UpdateCar(context.Background(), car.ID, 99, &validation.CarData{
		Color:           strPtr("PRETO"),
		SellingDate:     timePtr(sellingDate),
		SellingDateSet:  true,
		SellingPrice:    floatPtr(12000),
		SellingPriceSet: true,
		CustomerID:      int64Ptr(3),
		CustomerIDSet:   true,
	})
	require.NoError(t, err)

	got, err := svc.GetCarByID(context.Background(), car.ID, model.CarIncludes{})
	require.NoError(t, err)
	assert.Equal(t, "PRETO", got.Color)
	assert.Equal(t, "VW", got.Brand)
	assert.Equal(t, 2021, got.YearManufacture)
	require.NotNil(t, got.SellingDate)
	assert.True(t, got.SellingDate.Equal(sellingDate))
	require.NotNil(t, got.SellingPrice)
	assert.Equal(t, 12000.0, *got.SellingPrice)
	assert.Equal(t, int64(99), got.UpdatedUserID)
	assert.Equal(t, int64(1), got.CreatedUserID)
}

func TestCarService_UpdateCar_ExplicitNullClearsOptional(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo)
	car := seedCar(t, svc)

	err := svc.UpdateCar(context.Background(), car.ID, 1, &validation.CarData{
		SellingPrice:    floatPtr(12000),
		SellingPriceSet: true,
	})
	require.NoError(t, err)

	err = svc.UpdateCar(context.Background(), car.ID, 1, &validation.CarData{
		SellingPriceSet: true,
	})
	require.NoError(t, err)

	got, err := svc.GetCarByID(context.Background(), car.ID, model.CarIncludes{})
	require.NoError(t, err)
	assert.Nil(t, got.SellingPrice)
}

func TestCarService_UpdateCar_OmittedOptionalKept(t *testing.T) {
	repo := newFakeCarRepo()
	svc := NewCarService(repo)
	car := seedCar(t, svc)

	err := svc.UpdateCar(context.Background(), car.ID, 1, &validation.CarData{
		SellingPrice:    floatPtr(12000),
		SellingPriceSet: true,
	})
	require.NoError(t, err)

	// patch without selling_price leaves the stored value in place
	err = svc.UpdateCar(context.Background(), car.ID, 1, &validation.CarData{
		Color: strPtr("PRETO"),
	})
	require.NoError(t, err)

	got, err := svc.GetCarByID(context.Background(), car.ID, model.CarIncludes{})
	require.NoError(t, err)
	require.NotNil(t, got.SellingPrice)
	assert.Equal(t, 12000.0, *got.SellingPrice)
}

func TestCarService_UpdateCar_NotFound(t *testing.T) {
	svc := NewCarService(newFakeCarRepo())

	err := svc.UpdateCar(context.Background(), 999999, 1, &validation.CarData{Color: strPtr("PRETO")})
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCarService_DeleteCar_NotFound(t *testing.T) {
	svc := NewCarService(newFakeCarRepo())

	err := svc.DeleteCar(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrCarNotFound)
}
