package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsernameAndRole(ctx context.Context, username, role string) (*User, error) {
	args := m.Called(ctx, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func testUser(t *testing.T) *User {
	t.Helper()
	hashed, err := HashPassword("demo123")
	assert.NoError(t, err)
	state := "Maharashtra"
	return &User{
		ID:       "sa001",
		Username: "maharashtra_admin",
		Password: hashed,
		Name:     "Maharashtra State Administrator",
		Role:     RoleStateAdmin,
		State:    &state,
	}
}

func newTestService(repo UserRepository) (*Service, *TokenIssuer) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, issuer, zap.NewNop()), issuer
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	service, issuer := newTestService(repo)
	user := testUser(t)

	repo.On("FindByUsernameAndRole", mock.Anything, "maharashtra_admin", RoleStateAdmin).Return(user, nil)

	token, got, err := service.Login(context.Background(), LoginRequest{
		Username: "maharashtra_admin",
		Password: "demo123",
		Role:     RoleStateAdmin,
	})

	assert.NoError(t, err)
	assert.Equal(t, "sa001", got.ID)

	claims, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "sa001", claims.UserID)
	assert.Equal(t, RoleStateAdmin, claims.Role)
	assert.Equal(t, "Maharashtra", *claims.State)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service, _ := newTestService(repo)

	repo.On("FindByUsernameAndRole", mock.Anything, "maharashtra_admin", RoleStateAdmin).Return(testUser(t), nil)

	_, _, err := service.Login(context.Background(), LoginRequest{
		Username: "maharashtra_admin",
		Password: "wrong",
		Role:     RoleStateAdmin,
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongRoleFailsLikeUnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	service, _ := newTestService(repo)

	// the repository misses for a (username, role) pair that does not match
	repo.On("FindByUsernameAndRole", mock.Anything, "maharashtra_admin", RoleCentralMinistry).Return(nil, nil)

	_, _, err := service.Login(context.Background(), LoginRequest{
		Username: "maharashtra_admin",
		Password: "demo123",
		Role:     RoleCentralMinistry,
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileMiss(t *testing.T) {
	repo := new(MockUserRepository)
	service, _ := newTestService(repo)

	repo.On("FindByID", mock.Anything, "nobody").Return(nil, nil)

	_, err := service.Profile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
