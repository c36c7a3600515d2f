package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookstore/apperror"
	"bookstore/database"
	"bookstore/models"
	"bookstore/utils"
)

type UserService struct {
	users  UserStore
	hasher *utils.PasswordHasher
	log    *zap.SugaredLogger
}

func NewUserService(users UserStore, hasher *utils.PasswordHasher, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

// Register creates a user with a freshly hashed password.
func (s *UserService) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidation("username and password are required", nil)
	}
	if !role.Valid() {
		return nil, apperror.NewValidation("role must be user or admin", nil)
	}
	user := &models.User{Username: username, Role: role}
	user.SetPassword(password)
	if err := s.hashPending(user); err != nil {
		return nil, err
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperror.NewConflict("username already exists", err)
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}
	return user, nil
}

// Save persists an existing user. The password is rehashed only when
// SetPassword was called since the last save.
func (s *UserService) Save(ctx context.Context, user *models.User) error {
	if err := s.hashPending(user); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.NewNotFound("user not found")
		}
		return apperror.NewInternal("failed to save user", err)
	}
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperror.NewValidation("password is required", nil)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return apperror.NewUserNotFound("user not found")
	}
	if err != nil {
		return apperror.NewInternal("failed to load user", err)
	}
	user.SetPassword(newPassword)
	return s.Save(ctx, user)
}

// EnsureAdmin seeds an admin account when the username is free. It never
// touches the password of an account that already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return apperror.NewInternal("failed to look up admin", err)
	}
	if _, err := s.Register(ctx, username, password, models.RoleAdmin); err != nil {
		if apperror.Is(err, apperror.ConflictError) {
			return nil
		}
		return err
	}
	s.log.Infow("seeded admin user", "username", username)
	return nil
}

func (s *UserService) hashPending(user *models.User) error {
	plain, changed := user.PendingPassword()
	if !changed {
		return nil
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}
	user.ApplyPasswordHash(hash)
	return nil
}
