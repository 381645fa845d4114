package repository

import (
	"context"
	"errors"
	"fmt"

	"dealership/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// FindByLogin matches the given value against username OR email,
	// returning the password hash for verification.
	FindByLogin(ctx context.Context, usernameOrEmail string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (fullname, username, email, password_hash, is_admin, created_at)
	        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, sql,
		user.Fullname, user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindAll retrieves every user. Password hashes are never selected.
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	sql := `SELECT id, fullname, username, email, is_admin, created_at FROM users ORDER BY username ASC, id ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// FindByID retrieves a user by ID, without the password hash
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, fullname, username, email, is_admin, created_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Email, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByLogin retrieves a user by username or email, including the
// password hash for credential verification
func (r *userRepository) FindByLogin(ctx context.Context, usernameOrEmail string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, fullname, username, email, password_hash, is_admin, created_at
	        FROM users WHERE username = $1 OR email = $1`
	err := r.db.QueryRow(ctx, sql, usernameOrEmail).Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by login: %w", err)
	}
	return user, nil
}

// Update rewrites an existing user's mutable fields. An empty PasswordHash
// keeps the stored one.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE users
	        SET fullname = $1, username = $2, email = $3, is_admin = $4,
	            password_hash = COALESCE(NULLIF($5, ''), password_hash)
	        WHERE id = $6 RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, sql,
		user.Fullname, user.Username, user.Email, user.IsAdmin, user.PasswordHash, user.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user from the database
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
