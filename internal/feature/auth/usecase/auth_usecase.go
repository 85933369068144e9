package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"todo_backend/internal/feature/auth/domain/entity"
)

// fallbackDummyHash is used only if the per-cost dummy hash cannot be generated.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername returns the earliest-registered user with the username,
	// or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TokenGenerator issues signed session tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, username, email string) (string, error)
}

// AuthUsecase implements registration and login.
type AuthUsecase struct {
	users      UserRepository
	tokens     TokenGenerator
	bcryptCost int
	// dummyHash is compared against when the username is unknown so both
	// failure paths pay the same bcrypt cost.
	dummyHash []byte
}

// NewAuthUsecase creates an AuthUsecase. A bcryptCost of 0 selects bcrypt.DefaultCost (10).
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, bcryptCost int) *AuthUsecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		dummy = []byte(fallbackDummyHash)
	}
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register creates a user with a hashed password and returns it with a fresh token.
func (u *AuthUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, "", ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, "", ErrPasswordTooLong
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by username and password.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = []byte(user.Password)
	}

	// Always compare so the missing-user path is not measurably faster.
	compareErr := bcrypt.CompareHashAndPassword(passwordHash, []byte(password))
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
