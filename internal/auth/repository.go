package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// UserRepository handles credential-store access
type UserRepository interface {
	FindByUsernameAndRole(ctx context.Context, username, role string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// FindByUsernameAndRole looks up a user by the (username, role) pair. The
// role is part of the lookup key, not a post-check: logging in with the
// wrong role for a valid account behaves like an unknown account.
func (r *gormUserRepository) FindByUsernameAndRole(ctx context.Context, username, role string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? AND role = ?", username, role).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
