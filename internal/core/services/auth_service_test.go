package services

import (
	"context"
	"errors"
	"testing"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/logger"
	"perceive-reports/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(identity domain.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func newAuthService(t *testing.T, tokens TokenIssuer) *AuthService {
	t.Helper()
	users, err := repositories.NewMemoryUserRepository([]seed.User{
		{ID: 1, Username: "admin", Password: "admin123", Role: domain.RoleReviewer},
		{ID: 2, Username: "viewer", Password: "viewer123", Role: domain.RoleViewer},
	}, bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(users, tokens, logger.Discard())
}

func TestAuthServiceLogin(t *testing.T) {
	tokens := new(mockTokenIssuer)
	identity := domain.Identity{ID: 2, Username: "viewer", Role: domain.RoleViewer}
	tokens.On("Issue", identity).Return("signed-token", nil).Once()

	svc := newAuthService(t, tokens)
	result, err := svc.Login(context.Background(), &LoginInput{Username: "viewer", Password: "viewer123"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, identity, result.User)
	tokens.AssertExpectations(t)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	tokens := new(mockTokenIssuer)
	svc := newAuthService(t, tokens)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown user", LoginInput{Username: "ghost", Password: "admin123"}},
		{"wrong password", LoginInput{Username: "admin", Password: "admin124"}},
		{"case-sensitive username", LoginInput{Username: "Admin", Password: "admin123"}},
		{"empty password", LoginInput{Username: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthServiceLoginIssuerFailure(t *testing.T) {
	tokens := new(mockTokenIssuer)
	boom := errors.New("signing failed")
	tokens.On("Issue", mock.Anything).Return("", boom)

	svc := newAuthService(t, tokens)
	_, err := svc.Login(context.Background(), &LoginInput{Username: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, boom)
}
