package services

import "strings"

// AdminPolicy is an allow-list of administrator emails
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds the policy from configured emails. Entries are
// trimmed and lower-cased; empty entries are dropped.
func NewAdminPolicy(emails []string) AdminPolicyInterface {
	policy := &AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized == "" {
			continue
		}
		policy.emails[normalized] = struct{}{}
	}
	return policy
}

// IsAdmin reports whether email is on the allow-list
func (p *AdminPolicy) IsAdmin(email string) bool {
	_, ok := p.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Configured reports whether any administrator is configured
func (p *AdminPolicy) Configured() bool {
	return len(p.emails) > 0
}
