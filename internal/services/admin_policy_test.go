package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminPolicy(t *testing.T) {
	policy := NewAdminPolicy([]string{" Admin@Example.com ", "", "   ", "ops@example.com"})

	assert.True(t, policy.Configured())
	assert.True(t, policy.IsAdmin("admin@example.com"))
	assert.True(t, policy.IsAdmin("ADMIN@example.com"))
	assert.True(t, policy.IsAdmin(" ops@example.com"))
	assert.False(t, policy.IsAdmin("user@example.com"))
	assert.False(t, policy.IsAdmin(""))
}

func TestAdminPolicy_NotConfigured(t *testing.T) {
	for _, emails := range [][]string{nil, {}, {"", "  "}} {
		policy := NewAdminPolicy(emails)
		assert.False(t, policy.Configured())
		assert.False(t, policy.IsAdmin("admin@example.com"))
	}
}
