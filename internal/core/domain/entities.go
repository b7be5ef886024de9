package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleReviewer Role = "reviewer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleReviewer
}

// User represents a user in the domain layer
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// Identity is the decoded caller attached to a request after token verification
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Identity returns the public identity of the user
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Report is an analyst report. The collection is read-only reference data.
type Report struct {
	ID              string        `json:"id" yaml:"id"`
	Title           string        `json:"title" yaml:"title"`
	Summary         string        `json:"summary" yaml:"summary"`
	ReportType      string        `json:"reportType" yaml:"reportType"`
	Industry        string        `json:"industry" yaml:"industry"`
	ConfidenceScore int           `json:"confidenceScore" yaml:"confidenceScore"`
	Date            time.Time     `json:"date" yaml:"date"`
	Author          string        `json:"author" yaml:"author"`
	Details         ReportDetails `json:"details" yaml:"details"`
	Sources         []Source      `json:"sources" yaml:"sources"`
}

// ReportDetails holds the deep-dive section of a report
type ReportDetails struct {
	KeyFindings []string `json:"keyFindings" yaml:"keyFindings"`
	Methodology string   `json:"methodology" yaml:"methodology"`
	DataPoints  int      `json:"dataPoints" yaml:"dataPoints"`
}

// Source is a reference embedded in exactly one report
type Source struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Type        string    `json:"type" yaml:"type"`
	Reliability int       `json:"reliability" yaml:"reliability"`
	Description string    `json:"description" yaml:"description"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

// FeedbackType classifies a feedback entry
type FeedbackType string

const (
	FeedbackGeneral     FeedbackType = "general"
	FeedbackImprovement FeedbackType = "improvement"
	FeedbackError       FeedbackType = "error"
	FeedbackData        FeedbackType = "data"
)

// Valid reports whether t is a known feedback type
func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackGeneral, FeedbackImprovement, FeedbackError, FeedbackData:
		return true
	}
	return false
}

// Severity applies to error feedback only
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a known severity
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// FeedbackEntry is an append-only feedback record. Metadata is internal and
// never leaves the service unprojected.
type FeedbackEntry struct {
	ID             string           `json:"id"`
	ReportID       string           `json:"reportId"`
	Feedback       string           `json:"feedback"`
	Type           FeedbackType     `json:"type"`
	Severity       Severity         `json:"severity,omitempty"`
	FlaggedSection string           `json:"flaggedSection,omitempty"`
	Metadata       FeedbackMetadata `json:"metadata"`
}

// FeedbackMetadata is request context captured at submission time
type FeedbackMetadata struct {
	TraceID     string    `json:"traceId"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"userAgent"`
	SubmittedAt time.Time `json:"submittedAt"`
	SubmittedBy *Identity `json:"submittedBy,omitempty"`
}
