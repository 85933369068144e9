// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
	"todo_backend/internal/platform/db"
)

// userGorm is a GORM implementation of the UserRepository interface.
// It works with every dialect supported by platform/db.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user and fills in ID and CreatedAt.
// It returns usecase.ErrEmailAlreadyExists when the email is taken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email.
// Returns usecase.ErrUserNotFound if no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByUsername retrieves the earliest-registered user with the username.
// Returns usecase.ErrUserNotFound if none exists.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		Limit(1).
		Find(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return &u, nil
}
