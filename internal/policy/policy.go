// Package policy maps each protected action to the roles allowed to run it.
package policy

import (
	"fmt"
	"os"
	"sort"

	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"gopkg.in/yaml.v2"
)

const (
	DashboardView = "dashboard/view"

	TicketView    = "ticket/view"
	TicketCreate  = "ticket/create"
	TicketEdit    = "ticket/edit"
	TicketDelete  = "ticket/delete"
	TicketStatus  = "ticket/status"
	TicketComment = "ticket/comment"

	ProjectView   = "project/view"
	ProjectCreate = "project/create"
	ProjectEdit   = "project/edit"
	ProjectDelete = "project/delete"

	ReportView    = "report/view"
	ReportArchive = "report/archive"

	UserRole   = "user/role"
	UserDelete = "user/delete"

	AuditView = "audit/view"
)

// AnyRole grants an action to every signed-in user, including users whose
// role was removed.
const AnyRole = "*"

type Policy struct {
	rules map[string][]string
}

type file struct {
	Actions map[string][]string `yaml:"actions"`
}

// Default is the built-in policy.
func Default() *Policy {
	admin := []string{user.RoleAdmin}
	managers := []string{user.RoleAdmin, user.RoleProjectManager}
	everyone := []string{AnyRole}

	return New(map[string][]string{
		DashboardView: everyone,
		TicketView:    everyone,
		TicketStatus:  everyone,
		TicketComment: everyone,
		ProjectView:   everyone,

		TicketCreate: managers,
		TicketEdit:   managers,
		TicketDelete: managers,

		ProjectCreate: admin,
		ProjectEdit:   admin,
		ProjectDelete: admin,
		ReportView:    admin,
		ReportArchive: admin,
		UserRole:      admin,
		UserDelete:    admin,
		AuditView:     admin,
	})
}

func New(rules map[string][]string) *Policy {
	copied := make(map[string][]string, len(rules))
	for action, roles := range rules {
		copied[action] = append([]string(nil), roles...)
	}
	return &Policy{rules: copied}
}

// LoadFile reads a YAML policy of the form
//
//	actions:
//	  ticket/create: [Admin, Project Manager]
//
// Actions missing from the file keep their default roles.
func LoadFile(path string) (*Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	p := Default()
	for action, roles := range f.Actions {
		p.rules[action] = roles
	}
	return p, nil
}

// Allows reports whether role may run action. Unknown actions are denied.
func (p *Policy) Allows(action, role string) bool {
	for _, allowed := range p.rules[action] {
		if allowed == AnyRole || allowed == role {
			return true
		}
	}
	return false
}

// Actions lists the actions role may run, sorted.
func (p *Policy) Actions(role string) []string {
	var out []string
	for action := range p.rules {
		if p.Allows(action, role) {
			out = append(out, action)
		}
	}
	sort.Strings(out)
	return out
}
