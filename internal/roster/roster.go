package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/smartserve-pos/api/internal/enum"
)

// Roster is the configured set of names allowed to log in per role.
// There are no credentials; picking a listed name is the whole login.
type Roster struct {
	Staff    []string `json:"staff"`
	Cooks    []string `json:"cooks"`
	Managers []string `json:"managers"`
}

// LoadFile reads a roster from a JSON file.
func LoadFile(path string) (*Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var r Roster
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return &r, nil
}

// Allowed reports whether name may log in under role. Comparison is
// case-insensitive on the name.
func (r *Roster) Allowed(role, name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range r.names(role) {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func (r *Roster) names(role string) []string {
	switch role {
	case enum.RoleStaff:
		return r.Staff
	case enum.RoleCook:
		return r.Cooks
	case enum.RoleManager:
		return r.Managers
	}
	return nil
}
