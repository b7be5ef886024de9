package models

import (
	"time"

	"perceive-reports/internal/core/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID           int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to a domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         domain.Role(u.Role),
	}
}

// Report represents reports table. Details and sources are stored as JSON
// columns; Position keeps the catalog order.
type Report struct {
	ID              string                                   `gorm:"primaryKey;size:64" json:"id"`
	Position        int                                      `gorm:"index;not null" json:"-"`
	Title           string                                   `gorm:"size:255;not null" json:"title"`
	Summary         string                                   `gorm:"type:text" json:"summary"`
	ReportType      string                                   `gorm:"size:100;index" json:"reportType"`
	Industry        string                                   `gorm:"size:100;index" json:"industry"`
	ConfidenceScore int                                      `gorm:"not null" json:"confidenceScore"`
	Date            time.Time                                `json:"date"`
	Author          string                                   `gorm:"size:100" json:"author"`
	Details         datatypes.JSONType[domain.ReportDetails] `json:"details"`
	Sources         datatypes.JSONSlice[domain.Source]       `json:"sources"`
}

func (Report) TableName() string {
	return "reports"
}

// NewReport builds a row from a domain report at catalog position pos
func NewReport(r domain.Report, pos int) *Report {
	return &Report{
		ID:              r.ID,
		Position:        pos,
		Title:           r.Title,
		Summary:         r.Summary,
		ReportType:      r.ReportType,
		Industry:        r.Industry,
		ConfidenceScore: r.ConfidenceScore,
		Date:            r.Date,
		Author:          r.Author,
		Details:         datatypes.NewJSONType(r.Details),
		Sources:         datatypes.NewJSONSlice(r.Sources),
	}
}

// ToDomain converts the row to a domain report
func (r *Report) ToDomain() domain.Report {
	sources := []domain.Source(r.Sources)
	if sources == nil {
		sources = []domain.Source{}
	}
	return domain.Report{
		ID:              r.ID,
		Title:           r.Title,
		Summary:         r.Summary,
		ReportType:      r.ReportType,
		Industry:        r.Industry,
		ConfidenceScore: r.ConfidenceScore,
		Date:            r.Date.UTC(),
		Author:          r.Author,
		Details:         r.Details.Data(),
		Sources:         sources,
	}
}

// Feedback represents feedback table. Seq is the insertion order.
type Feedback struct {
	Seq            uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID             string    `gorm:"uniqueIndex;size:36;not null" json:"id"`
	ReportID       string    `gorm:"index;size:64;not null" json:"reportId"`
	Feedback       string    `gorm:"type:text;not null" json:"feedback"`
	Type           string    `gorm:"size:20;not null" json:"type"`
	Severity       string    `gorm:"size:20" json:"severity"`
	FlaggedSection string    `gorm:"size:255" json:"flaggedSection"`
	TraceID        string    `gorm:"size:64" json:"-"`
	IP             string    `gorm:"size:64" json:"-"`
	UserAgent      string    `gorm:"size:512" json:"-"`
	SubmittedByID  *int      `json:"-"`
	SubmittedBy    string    `gorm:"size:50" json:"-"`
	SubmitterRole  string    `gorm:"size:20" json:"-"`
	SubmittedAt    time.Time `gorm:"not null" json:"submittedAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// NewFeedback builds a row from a domain entry
func NewFeedback(e *domain.FeedbackEntry) *Feedback {
	row := &Feedback{
		ID:             e.ID,
		ReportID:       e.ReportID,
		Feedback:       e.Feedback,
		Type:           string(e.Type),
		Severity:       string(e.Severity),
		FlaggedSection: e.FlaggedSection,
		TraceID:        e.Metadata.TraceID,
		IP:             e.Metadata.IP,
		UserAgent:      e.Metadata.UserAgent,
		SubmittedAt:    e.Metadata.SubmittedAt,
	}
	if by := e.Metadata.SubmittedBy; by != nil {
		id := by.ID
		row.SubmittedByID = &id
		row.SubmittedBy = by.Username
		row.SubmitterRole = string(by.Role)
	}
	return row
}

// ToDomain converts the row to a domain entry
func (f *Feedback) ToDomain() domain.FeedbackEntry {
	e := domain.FeedbackEntry{
		ID:             f.ID,
		ReportID:       f.ReportID,
		Feedback:       f.Feedback,
		Type:           domain.FeedbackType(f.Type),
		Severity:       domain.Severity(f.Severity),
		FlaggedSection: f.FlaggedSection,
		Metadata: domain.FeedbackMetadata{
			TraceID:     f.TraceID,
			IP:          f.IP,
			UserAgent:   f.UserAgent,
			SubmittedAt: f.SubmittedAt.UTC(),
		},
	}
	if f.SubmittedByID != nil {
		e.Metadata.SubmittedBy = &domain.Identity{
			ID:       *f.SubmittedByID,
			Username: f.SubmittedBy,
			Role:     domain.Role(f.SubmitterRole),
		}
	}
	return e
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Report{},
		&Feedback{},
	)
}
