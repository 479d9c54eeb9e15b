// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services enforce the rules
// (required fields, credential checks); repositories talk to the store.
// Services receive repository interfaces, never concrete types, so tests
// can inject in-memory mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/model"
	"github.com/asif/userstore/internal/repository"
)

// UserService handles registration, login, and user CRUD rules.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService. The caller decides which repository
// implementation to inject (sqlite in production, a mock in tests).
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Register validates the three required fields and creates the account.
//
// Every field must be present and non-empty; there is no format or length
// validation beyond that. The duplicate-email rule is enforced inside the
// repository's create transaction, so there is no separate lookup here that
// could race with a concurrent registration.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: password,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login resolves the account by email and compares credentials.
//
// Outcomes, in order: a missing field is a validation failure, an unknown
// email is not-found, a mismatched password is a validation failure. On
// success the full user record is returned.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)

	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	ok, err := s.repo.ComparePassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("comparing password: %w", err)
	}
	if !ok {
		return nil, apperror.ValidationFailed("password", "invalid password")
	}

	s.logger.Info("user logged in", slog.String("id", user.ID))

	return user, nil
}

// List returns every user. An empty store yields an empty slice; the
// handler decides how to report that.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a single user.
// Returns apperror.ErrNotFound if the id doesn't resolve.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces username, email, and password of an existing user.
//
// Partial updates are not supported: all three fields are required again,
// and a missing one is reported as an authorization failure — that is the
// contract of the PUT route, odd as the status code is. The id's existence
// is checked by the store's single-statement update, not by a prior read.
func (s *UserService) Update(ctx context.Context, id, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return nil, apperror.Unauthorized("username, email and password are all required")
	}

	user := &model.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: password,
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.String("id", user.ID))

	return user, nil
}

// Delete removes a user by ID.
// Returns apperror.ErrNotFound if the id doesn't resolve.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return nil
}
