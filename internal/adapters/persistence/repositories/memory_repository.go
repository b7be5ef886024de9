package repositories

import (
	"context"
	"fmt"
	"sync"

	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/password"
	"perceive-reports/internal/seed"
)

// memoryUserRepository holds the fixed user set
type memoryUserRepository struct {
	byName map[string]*domain.User
	byID   map[int]*domain.User
}

// NewMemoryUserRepository hashes the seed users' passwords with bcrypt cost
func NewMemoryUserRepository(users []seed.User, cost int) (UserRepository, error) {
	r := &memoryUserRepository{
		byName: make(map[string]*domain.User, len(users)),
		byID:   make(map[int]*domain.User, len(users)),
	}
	for _, u := range users {
		hash, err := password.HashWithCost(u.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		du := &domain.User{ID: u.ID, Username: u.Username, PasswordHash: hash, Role: u.Role}
		r.byName[du.Username] = du
		r.byID[du.ID] = du
	}
	return r, nil
}

// GetByUsername gets a user by username
func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByID gets a user by ID
func (r *memoryUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// memoryReportRepository serves a fixed report collection
type memoryReportRepository struct {
	reports []domain.Report
	index   map[string]int
}

// NewMemoryReportRepository creates a report source over reports. The slice
// is copied.
func NewMemoryReportRepository(reports []domain.Report) ReportRepository {
	r := &memoryReportRepository{
		reports: make([]domain.Report, len(reports)),
		index:   make(map[string]int, len(reports)),
	}
	copy(r.reports, reports)
	for i, rep := range r.reports {
		r.index[rep.ID] = i
	}
	return r
}

// All returns a copy of the collection
func (r *memoryReportRepository) All(ctx context.Context) ([]domain.Report, error) {
	out := make([]domain.Report, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

// GetByID gets a report by exact id
func (r *memoryReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	rep := r.reports[i]
	return &rep, nil
}

// memoryFeedbackRepository is a mutex-guarded append-only slice
type memoryFeedbackRepository struct {
	mu      sync.RWMutex
	entries []domain.FeedbackEntry
}

// NewMemoryFeedbackRepository creates an empty in-memory feedback log
func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{}
}

// Append stores a copy of entry
func (r *memoryFeedbackRepository) Append(ctx context.Context, entry *domain.FeedbackEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	return nil
}

// ListByReportID returns entries for reportID in insertion order
func (r *memoryFeedbackRepository) ListByReportID(ctx context.Context, reportID string) ([]domain.FeedbackEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.FeedbackEntry{}
	for _, e := range r.entries {
		if e.ReportID == reportID {
			out = append(out, e)
		}
	}
	return out, nil
}

// List returns every entry in insertion order
func (r *memoryFeedbackRepository) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FeedbackEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// NewMemorySet builds the default in-memory repositories from the seed catalog
func NewMemorySet(catalog *seed.Catalog, bcryptCost int) (*Set, error) {
	users, err := NewMemoryUserRepository(catalog.Users, bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Set{
		Users:    users,
		Reports:  NewMemoryReportRepository(catalog.Reports),
		Feedback: NewMemoryFeedbackRepository(),
	}, nil
}
