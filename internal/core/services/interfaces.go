package services

import (
	"perceive-reports/internal/core/domain"
)

// TokenIssuer signs identity tokens. Implemented by jwt.Manager.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}
