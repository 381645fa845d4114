package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealership/internal/model"
	"dealership/internal/repository"
	"dealership/internal/utils"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown account and wrong password,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username/email or password")
)

// CreateUserInput carries the fields of a new account
type CreateUserInput struct {
	Fullname string
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateUserInput carries a sparse account patch
type UpdateUserInput struct {
	Fullname *string
	Username *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// UserService provides account management and authentication
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) error
	DeleteUser(ctx context.Context, id int64) error
	// Login exchanges username-or-email plus password for the caller's
	// identity and a signed token.
	Login(ctx context.Context, usernameOrEmail, password string) (*model.AuthUser, string, error)
}

type userService struct {
	repo    repository.UserRepository
	jwtUtil *utils.JWTUtil
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, jwtUtil *utils.JWTUtil) UserService {
	return &userService{repo: repo, jwtUtil: jwtUtil}
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Fullname:     in.Fullname,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

func (s *userService) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users from repo: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user for update: %w", err)
	}

	if in.Fullname != nil {
		existing.Fullname = *in.Fullname
	}
	if in.Username != nil {
		existing.Username = *in.Username
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}
	if in.IsAdmin != nil {
		existing.IsAdmin = *in.IsAdmin
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = hash
	} else {
		existing.PasswordHash = "" // keep stored hash
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user in repo: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, usernameOrEmail, password string) (*model.AuthUser, string, error) {
	user, err := s.repo.FindByLogin(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding user by login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	authUser := &model.AuthUser{
		ID:       user.ID,
		Fullname: user.Fullname,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}

	token, err := s.jwtUtil.GenerateToken(*authUser)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return authUser, token, nil
}
