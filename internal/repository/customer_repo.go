package repository

import (
	"context"
	"errors"
	"fmt"

	"dealership/internal/model"

	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines operations for customer data
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id int64) error
}

type customerRepository struct {
	db DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, ident_document, birth_date, street_name, house_number,
	complements, district, municipality, state, phone, email, created_at, updated_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	c := &model.Customer{}
	err := row.Scan(
		&c.ID, &c.Name, &c.IdentDocument, &c.BirthDate, &c.StreetName, &c.HouseNumber,
		&c.Complements, &c.District, &c.Municipality, &c.State, &c.Phone, &c.Email,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new customer into the database
func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	sql := `INSERT INTO customers (name, ident_document, birth_date, street_name, house_number,
	            complements, district, municipality, state, phone, email, created_at, updated_at)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Name, c.IdentDocument, c.BirthDate, c.StreetName, c.HouseNumber,
		c.Complements, c.District, c.Municipality, c.State, c.Phone, c.Email,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindAll retrieves every customer ordered by name then id
func (r *customerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	sql := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC, id ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

// FindByID retrieves a customer by its ID
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	sql := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return c, nil
}

// Update rewrites every mutable column of an existing customer
func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	sql := `UPDATE customers
	        SET name = $1, ident_document = $2, birth_date = $3, street_name = $4, house_number = $5,
	            complements = $6, district = $7, municipality = $8, state = $9, phone = $10, email = $11,
	            updated_at = NOW()
	        WHERE id = $12 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Name, c.IdentDocument, c.BirthDate, c.StreetName, c.HouseNumber,
		c.Complements, c.District, c.Municipality, c.State, c.Phone, c.Email, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// Delete removes a customer from the database
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
