package config

import (
	"context"
	"fmt"

	"perceive-reports/internal/adapters/persistence/models"
	"perceive-reports/internal/pkg/password"
	"perceive-reports/internal/seed"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeder loads the seed catalog into an empty database
type Seeder struct {
	db         *gorm.DB
	catalog    *seed.Catalog
	bcryptCost int
	log        logrus.FieldLogger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, catalog *seed.Catalog, bcryptCost int, log logrus.FieldLogger) *Seeder {
	return &Seeder{db: db, catalog: catalog, bcryptCost: bcryptCost, log: log}
}

// Run executes all seeders. Tables that already hold rows are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info("Running database seeders")

	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedReports(ctx); err != nil {
		return fmt.Errorf("seed reports: %w", err)
	}

	s.log.Info("Database seeding completed")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := make([]models.User, 0, len(s.catalog.Users))
	for _, u := range s.catalog.Users {
		hash, err := password.HashWithCost(u.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: hash,
			Role:         string(u.Role),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	s.log.WithField("count", len(users)).Info("Users seeded")
	return nil
}

func (s *Seeder) seedReports(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Report{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	reports := make([]*models.Report, 0, len(s.catalog.Reports))
	for i, r := range s.catalog.Reports {
		reports = append(reports, models.NewReport(r, i))
	}
	if err := db.Create(&reports).Error; err != nil {
		return err
	}

	s.log.WithField("count", len(reports)).Info("Reports seeded")
	return nil
}
