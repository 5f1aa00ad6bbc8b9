package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/abriand/user-registry-server/internal/apierrors"
	"github.com/abriand/user-registry-server/internal/logger"
	"github.com/abriand/user-registry-server/internal/model"
)

// Registry owns validation, uniqueness and authorization logic around
// user records.
type Registry struct {
	userStore      model.UserStore
	serverPassword string
	logger         *logger.Logger
}

// NewRegistry creates a new Registry service. serverPassword is the
// shared secret authorizing deletions.
func NewRegistry(userStore model.UserStore, serverPassword string, logger *logger.Logger) *Registry {
	return &Registry{
		userStore:      userStore,
		serverPassword: serverPassword,
		logger:         logger,
	}
}

// ListUsers returns all persisted users ordered by id.
func (s *Registry) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("Registry service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a new user after checking email uniqueness. The
// pre-check gives a friendly error on the common path; the unique
// constraint on the email column remains the source of truth under
// concurrent requests.
func (s *Registry) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	s.logger.Debug("Registry service: creating user",
		"email", user.Email)

	existing, err := s.userStore.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Registry service: failed to get user by email",
			"email", user.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != 0 {
		s.logger.Info("Registry service: email already registered",
			"email", user.Email)
		return model.User{}, apierrors.NewErrEmailIsTaken(user.Email)
	}

	savedUser, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			// Lost the race against a concurrent create with the
			// same email.
			return model.User{}, apierrors.NewErrEmailIsTaken(user.Email)
		}
		s.logger.Error("Registry service: failed to create user",
			"email", user.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Registry service: user created",
		"user_id", savedUser.ID,
		"email", savedUser.Email)

	return savedUser, nil
}

// DeleteUser removes the user with the given id after the shared-secret
// check passes. Credential checks run before any storage access so an
// unauthorized caller cannot probe which ids exist.
func (s *Registry) DeleteUser(ctx context.Context, id int64, password string) error {
	s.logger.Debug("Registry service: deleting user",
		"user_id", id)

	if password == "" {
		return apierrors.NewErrPasswordRequired()
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.serverPassword)) != 1 {
		s.logger.Info("Registry service: wrong password on delete",
			"user_id", id)
		return apierrors.NewErrWrongPassword()
	}

	err := s.userStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound(id)
	}
	if err != nil {
		s.logger.Error("Registry service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("Registry service: user deleted",
		"user_id", id)

	return nil
}
