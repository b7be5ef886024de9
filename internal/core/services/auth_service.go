package services

import (
	"context"
	"errors"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is a signed token plus the public identity it encodes
type LoginResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
	log      logrus.FieldLogger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, tokens TokenIssuer, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue token
	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"userId":   identity.ID,
		"username": identity.Username,
		"role":     identity.Role,
	}).Info("User logged in")

	return &LoginResult{Token: token, User: identity}, nil
}
