package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/shared/apperr"
)

// mockUserRepository is an in-memory UserRepository.
type mockUserRepository struct {
	users     []*entity.User
	createErr error
	findErr   error
}

func (m *mockUserRepository) Create(_ context.Context, u *entity.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = uint(len(m.users) + 1)
	m.users = append(m.users, u)
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// mockTokenGenerator records the last call.
type mockTokenGenerator struct {
	err      error
	userID   uint
	username string
	email    string
}

func (m *mockTokenGenerator) GenerateToken(userID uint, username, email string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.userID, m.username, m.email = userID, username, email
	return "mock-jwt-token", nil
}

func newTestUsecase(repo *mockUserRepository, tokens *mockTokenGenerator) *AuthUsecase {
	return NewAuthUsecase(repo, tokens, bcrypt.MinCost)
}

func TestNewAuthUsecase_DefaultCost(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{}, 0)
	assert.Equal(t, bcrypt.DefaultCost, uc.bcryptCost)
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("success hashes password and issues token", func(t *testing.T) {
		repo := &mockUserRepository{}
		tokens := &mockTokenGenerator{}
		uc := newTestUsecase(repo, tokens)

		user, token, err := uc.Register(context.Background(), "alice", "a@x.io", "pw1")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEqual(t, "pw1", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1")))
		assert.Equal(t, uint(1), tokens.userID)
		assert.Equal(t, "alice", tokens.username)
		assert.Equal(t, "a@x.io", tokens.email)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockTokenGenerator{})

		cases := [][3]string{
			{"", "a@x.io", "pw"},
			{"alice", "", "pw"},
			{"alice", "a@x.io", ""},
		}
		for _, in := range cases {
			_, _, err := uc.Register(context.Background(), in[0], in[1], in[2])
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		}
	})

	t.Run("duplicate email from pre-check", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := newTestUsecase(repo, &mockTokenGenerator{})
		_, _, err := uc.Register(context.Background(), "alice", "a@x.io", "pw1")
		require.NoError(t, err)

		_, _, err = uc.Register(context.Background(), "bob", "a@x.io", "pw2")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.Len(t, repo.users, 1)
	})

	t.Run("duplicate email from unique constraint", func(t *testing.T) {
		repo := &mockUserRepository{createErr: ErrEmailAlreadyExists}
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		_, _, err := uc.Register(context.Background(), "bob", "a@x.io", "pw2")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("password over 72 bytes is a validation error", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		_, _, err := uc.Register(context.Background(), "alice", "a@x.io", strings.Repeat("p", 80))

		assert.ErrorIs(t, err, ErrPasswordTooLong)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(apperr.KindOf(err)))
		assert.Empty(t, repo.users)
	})

	t.Run("password of exactly 72 bytes is accepted", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockTokenGenerator{})

		_, _, err := uc.Register(context.Background(), "alice", "a@x.io", strings.Repeat("p", 72))

		assert.NoError(t, err)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo := &mockUserRepository{findErr: errors.New("connection refused")}
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		_, _, err := uc.Register(context.Background(), "alice", "a@x.io", "pw1")

		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})

	t.Run("token failure", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockTokenGenerator{err: errors.New("sign failed")})

		_, _, err := uc.Register(context.Background(), "alice", "a@x.io", "pw1")

		assert.ErrorContains(t, err, "failed to generate token")
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthUsecase, *mockUserRepository) {
		t.Helper()
		repo := &mockUserRepository{}
		uc := newTestUsecase(repo, &mockTokenGenerator{})
		_, _, err := uc.Register(ctx, "alice", "a@x.io", "pw1")
		require.NoError(t, err)
		return uc, repo
	}

	t.Run("success", func(t *testing.T) {
		uc, _ := setup(t)

		user, token, err := uc.Login(ctx, "alice", "pw1")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, "a@x.io", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _ := setup(t)

		_, _, err := uc.Login(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user yields the same error", func(t *testing.T) {
		uc, _ := setup(t)

		_, _, errUnknown := uc.Login(ctx, "nobody", "pw1")
		_, _, errWrong := uc.Login(ctx, "alice", "wrong")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("missing credentials", func(t *testing.T) {
		uc, _ := setup(t)

		_, _, err := uc.Login(ctx, "", "pw1")
		assert.ErrorIs(t, err, ErrMissingCredentials)

		_, _, err = uc.Login(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		uc, repo := setup(t)
		repo.findErr = errors.New("timeout")

		_, _, err := uc.Login(ctx, "alice", "pw1")

		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestDummyHashMatchesConfiguredCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, 5, 0} {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{}, cost)

		got, err := bcrypt.Cost(uc.dummyHash)

		require.NoError(t, err)
		assert.Equal(t, uc.bcryptCost, got)
	}
}

func TestFallbackDummyHashIsValidBcrypt(t *testing.T) {
	_, err := bcrypt.Cost([]byte(fallbackDummyHash))
	assert.NoError(t, err)
}
