package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers unknown (username, role) pairs and wrong
	// passwords alike so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a profile lookup misses
	ErrUserNotFound = errors.New("user not found")
)

// Service implements login and profile lookup
type Service struct {
	repo   UserRepository
	issuer *TokenIssuer
	logger *zap.Logger
}

// NewService creates the auth service
func NewService(repo UserRepository, issuer *TokenIssuer, logger *zap.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, logger: logger}
}

// LoginRequest is the login payload. Role is required: the same username
// cannot authenticate into a different role's view.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login authenticates the (username, role) pair and issues a token
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *User, error) {
	user, err := s.repo.FindByUsernameAndRole(ctx, req.Username, req.Role)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))

	return token, user, nil
}

// Profile returns the user record for the authenticated identity
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// HashPassword produces a bcrypt hash for seeding and account creation
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
