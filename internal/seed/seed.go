// Package seed holds the fixed user set and the report catalog loaded at
// process start.
package seed

import (
	_ "embed"
	"fmt"

	"perceive-reports/internal/core/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/users.yaml
var usersYAML []byte

//go:embed data/reports.yaml
var reportsYAML []byte

// User is a seed user with a plaintext password. Passwords are hashed by the
// repository that loads them.
type User struct {
	ID       int         `yaml:"id"`
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	Role     domain.Role `yaml:"role"`
}

// Catalog is the seed data set
type Catalog struct {
	Users   []User
	Reports []domain.Report
}

type usersFile struct {
	Users []User `yaml:"users"`
}

type reportsFile struct {
	Reports []domain.Report `yaml:"reports"`
}

// Load parses the embedded seed data
func Load() (*Catalog, error) {
	return Parse(usersYAML, reportsYAML)
}

// Parse decodes and validates seed documents
func Parse(users, reports []byte) (*Catalog, error) {
	var uf usersFile
	if err := yaml.Unmarshal(users, &uf); err != nil {
		return nil, fmt.Errorf("parse users seed: %w", err)
	}
	var rf reportsFile
	if err := yaml.Unmarshal(reports, &rf); err != nil {
		return nil, fmt.Errorf("parse reports seed: %w", err)
	}

	c := &Catalog{Users: uf.Users, Reports: rf.Reports}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	usernames := make(map[string]struct{}, len(c.Users))
	for _, u := range c.Users {
		if u.Username == "" || u.Password == "" {
			return fmt.Errorf("seed user %d: username and password are required", u.ID)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("seed user %s: unknown role %q", u.Username, u.Role)
		}
		if _, dup := usernames[u.Username]; dup {
			return fmt.Errorf("seed user %s: duplicate username", u.Username)
		}
		usernames[u.Username] = struct{}{}
	}

	ids := make(map[string]struct{}, len(c.Reports))
	for _, r := range c.Reports {
		if r.ID == "" {
			return fmt.Errorf("seed report %q: id is required", r.Title)
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("seed report %s: duplicate id", r.ID)
		}
		ids[r.ID] = struct{}{}
		if !inPercentRange(r.ConfidenceScore) {
			return fmt.Errorf("seed report %s: confidenceScore %d outside [0,100]", r.ID, r.ConfidenceScore)
		}
		for _, s := range r.Sources {
			if !inPercentRange(s.Reliability) {
				return fmt.Errorf("seed report %s source %s: reliability %d outside [0,100]", r.ID, s.ID, s.Reliability)
			}
		}
	}
	return nil
}

func inPercentRange(n int) bool {
	return n >= 0 && n <= 100
}
