package middleware

import (
	"strings"

	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/jwt"
	"perceive-reports/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by Authorize
const (
	LocalUser     = "user"
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalRole     = "role"
)

// TokenVerifier decodes a bearer token into claims
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Role policies. Membership only, there is no role hierarchy.
var (
	ViewerOrReviewer = []domain.Role{domain.RoleViewer, domain.RoleReviewer}
	ReviewerOnly     = []domain.Role{domain.RoleReviewer}
)

// Authorize verifies the bearer token and requires the caller's role to be
// one of allowedRoles
func Authorize(verifier TokenVerifier, allowedRoles ...domain.Role) fiber.Handler {
	required := make([]string, len(allowedRoles))
	for i, r := range allowedRoles {
		required[i] = string(r)
	}
	requiredList := strings.Join(required, ", ")

	return func(c *fiber.Ctx) error {
		// 1. Extract token
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return response.Unauthorized(c, "Access denied", "No token provided")
		}

		// 2. Verify token
		claims, err := verifier.Verify(token)
		if err != nil {
			return response.Forbidden(c, "Invalid token", err.Error())
		}

		// 3. Check role
		if !hasRole(claims.Role, allowedRoles) {
			return response.Forbidden(c, "Insufficient permissions", "Access denied. Required roles: "+requiredList)
		}

		// 4. Set user info in context
		identity := claims.Identity()
		c.Locals(LocalUser, identity)
		c.Locals(LocalUserID, identity.ID)
		c.Locals(LocalUsername, identity.Username)
		c.Locals(LocalRole, identity.Role)

		return c.Next()
	}
}

// CurrentUser returns the identity stored by Authorize
func CurrentUser(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(LocalUser).(domain.Identity)
	return identity, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func hasRole(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
