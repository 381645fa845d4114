package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealership/internal/model"

	"github.com/jackc/pgx/v5"
)

// CarRepository defines operations for car data
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindAll(ctx context.Context, includes model.CarIncludes) ([]model.Car, error)
	FindByID(ctx context.Context, id int64, includes model.CarIncludes) (*model.Car, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id int64) error
}

type carRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) CarRepository {
	return &carRepository{db: db}
}

const carColumns = `cars.id, cars.brand, cars.model, cars.color, cars.year_manufacture, cars.imported,
	cars.plates, cars.selling_date, cars.selling_price, cars.customer_id,
	cars.created_user_id, cars.updated_user_id, cars.created_at, cars.updated_at`

// Create inserts a new car into the database
func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	sql := `INSERT INTO cars (brand, model, color, year_manufacture, imported, plates,
	            selling_date, selling_price, customer_id, created_user_id, updated_user_id, created_at, updated_at)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		car.Brand, car.Model, car.Color, car.YearManufacture, car.Imported, car.Plates,
		car.SellingDate, car.SellingPrice, car.CustomerID,
		car.CreatedUserID, car.UpdatedUserID, car.CreatedAt, car.UpdatedAt,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// buildSelect assembles the car query with the LEFT JOINs the requested
// relation includes need.
func buildSelect(includes model.CarIncludes) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(carColumns)
	if includes.Customer {
		b.WriteString(`, c.id, c.name, c.ident_document, c.birth_date, c.street_name, c.house_number,
			c.complements, c.district, c.municipality, c.state, c.phone, c.email, c.created_at, c.updated_at`)
	}
	if includes.CreatedUser {
		b.WriteString(`, cu.id, cu.fullname, cu.username, cu.email, cu.is_admin, cu.created_at`)
	}
	if includes.UpdatedUser {
		b.WriteString(`, uu.id, uu.fullname, uu.username, uu.email, uu.is_admin, uu.created_at`)
	}
	b.WriteString(" FROM cars")
	if includes.Customer {
		b.WriteString(" LEFT JOIN customers c ON c.id = cars.customer_id")
	}
	if includes.CreatedUser {
		b.WriteString(" LEFT JOIN users cu ON cu.id = cars.created_user_id")
	}
	if includes.UpdatedUser {
		b.WriteString(" LEFT JOIN users uu ON uu.id = cars.updated_user_id")
	}
	return b.String()
}

// scanCar scans one row into a Car, attaching requested relations. The
// customer join can miss (unsold car), so its columns scan into pointers.
func scanCar(rows pgx.Row, includes model.CarIncludes) (*model.Car, error) {
	car := &model.Car{}
	dest := []any{
		&car.ID, &car.Brand, &car.Model, &car.Color, &car.YearManufacture, &car.Imported,
		&car.Plates, &car.SellingDate, &car.SellingPrice, &car.CustomerID,
		&car.CreatedUserID, &car.UpdatedUserID, &car.CreatedAt, &car.UpdatedAt,
	}

	var custID *int64
	var custName, custDoc *string
	var custBirth *time.Time
	var custStreet, custHouse, custCompl *string
	var custDistrict, custMunicipality, custState *string
	var custPhone, custEmail *string
	var custCreatedAt, custUpdatedAt *time.Time
	var createdUser, updatedUser model.User
	if includes.Customer {
		dest = append(dest, &custID, &custName, &custDoc, &custBirth, &custStreet, &custHouse,
			&custCompl, &custDistrict, &custMunicipality, &custState, &custPhone, &custEmail,
			&custCreatedAt, &custUpdatedAt)
	}
	if includes.CreatedUser {
		dest = append(dest, &createdUser.ID, &createdUser.Fullname, &createdUser.Username,
			&createdUser.Email, &createdUser.IsAdmin, &createdUser.CreatedAt)
	}
	if includes.UpdatedUser {
		dest = append(dest, &updatedUser.ID, &updatedUser.Fullname, &updatedUser.Username,
			&updatedUser.Email, &updatedUser.IsAdmin, &updatedUser.CreatedAt)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	if includes.Customer && custID != nil {
		car.Customer = &model.Customer{
			ID:            *custID,
			Name:          deref(custName),
			IdentDocument: deref(custDoc),
			BirthDate:     custBirth,
			StreetName:    deref(custStreet),
			HouseNumber:   deref(custHouse),
			Complements:   custCompl,
			District:      deref(custDistrict),
			Municipality:  deref(custMunicipality),
			State:         deref(custState),
			Phone:         deref(custPhone),
			Email:         deref(custEmail),
		}
		if custCreatedAt != nil {
			car.Customer.CreatedAt = *custCreatedAt
		}
		if custUpdatedAt != nil {
			car.Customer.UpdatedAt = *custUpdatedAt
		}
	}
	if includes.CreatedUser {
		u := createdUser
		car.CreatedUser = &u
	}
	if includes.UpdatedUser {
		u := updatedUser
		car.UpdatedUser = &u
	}
	return car, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FindAll retrieves every car ordered by brand, model and id so listings
// are deterministic.
func (r *carRepository) FindAll(ctx context.Context, includes model.CarIncludes) ([]model.Car, error) {
	sql := buildSelect(includes) + " ORDER BY cars.brand ASC, cars.model ASC, cars.id ASC"

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := []model.Car{}
	for rows.Next() {
		car, err := scanCar(rows, includes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, *car)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating car rows: %w", err)
	}
	return cars, nil
}

// FindByID retrieves a car by its ID
func (r *carRepository) FindByID(ctx context.Context, id int64, includes model.CarIncludes) (*model.Car, error) {
	sql := buildSelect(includes) + " WHERE cars.id = $1"

	car, err := scanCar(r.db.QueryRow(ctx, sql, id), includes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return car, nil
}

// Update rewrites every mutable column of an existing car
func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	sql := `UPDATE cars
	        SET brand = $1, model = $2, color = $3, year_manufacture = $4, imported = $5, plates = $6,
	            selling_date = $7, selling_price = $8, customer_id = $9, updated_user_id = $10, updated_at = NOW()
	        WHERE id = $11 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		car.Brand, car.Model, car.Color, car.YearManufacture, car.Imported, car.Plates,
		car.SellingDate, car.SellingPrice, car.CustomerID, car.UpdatedUserID, car.ID,
	).Scan(&car.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update car: %w", err)
	}
	return nil
}

// Delete removes a car from the database
func (r *carRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
