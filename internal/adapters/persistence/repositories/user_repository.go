package repositories

import (
	"context"
	"errors"

	"perceive-reports/internal/adapters/persistence/models"
	"perceive-reports/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository over gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(exactMatch(r.db, "username"), username).First(&user).Error
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return user.ToDomain(), nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return user.ToDomain(), nil
}

// translate maps gorm's not-found error onto a domain sentinel
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// exactMatch builds a case-sensitive equality clause on column. MySQL's
// default utf8mb4 collations fold case, so the comparison is made binary
// there.
func exactMatch(db *gorm.DB, column string) string {
	return exactMatchFor(db.Dialector.Name(), column)
}

func exactMatchFor(dialect, column string) string {
	if dialect == "mysql" {
		return "BINARY " + column + " = ?"
	}
	return column + " = ?"
}
