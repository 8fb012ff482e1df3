package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	userRepo "github.com/parkease/parkease-backend/internal/infra/storage/user"
	"github.com/parkease/parkease-backend/internal/service/auth/models"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, userRepo.ErrEmailTaken
	}
	f.nextID++
	created := *u
	created.ID = f.nextID
	f.byEmail[created.Email] = &created
	return &created, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	return NewService(&fakeUserRepo{byEmail: map[string]*domain.User{}}, "test-secret", time.Hour, nopLogger{})
}

func TestRegisterLoginRoundtrip(t *testing.T) {
	svc := newTestService()

	registered, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "driver", registered.User.Role)

	// Email нормализуется к нижнему регистру
	loggedIn, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	principal, err := svc.ValidateToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, principal.ID)
	assert.Equal(t, domain.RoleDriver, principal.Role)
	assert.Equal(t, "Alice", principal.Name)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService()

	req := &models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "secret1",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	other := NewService(&fakeUserRepo{byEmail: map[string]*domain.User{}}, "other-secret", time.Hour, nopLogger{})
	_, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
