package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
)

func TestPolicy_Check(t *testing.T) {
	pol, err := NewPolicy()
	require.NoError(t, err)

	anon := domain.Principal{}
	user := domain.Principal{UserID: 2}
	admin := domain.Principal{UserID: 1, Admin: true}

	assert.NoError(t, pol.Check(anon, "catalog", "read"))
	assert.True(t, domain.IsAuthentication(pol.Check(anon, "bookings", "list")))

	assert.NoError(t, pol.Check(user, "bookings", "cancel"))
	assert.NoError(t, pol.Check(user, "catalog", "read"))
	assert.True(t, domain.IsAuthorization(pol.Check(user, "catalog", "write")))
	assert.True(t, domain.IsAuthorization(pol.Check(user, "moderation", "confirm")))

	assert.NoError(t, pol.Check(admin, "moderation", "confirm"))
	assert.NoError(t, pol.Check(admin, "moderation", "list"))
	assert.NoError(t, pol.Check(admin, "bookings", "cancel"))
	assert.NoError(t, pol.Check(admin, "catalog", "write"))
}

func TestNewPolicy_LoadsEveryRule(t *testing.T) {
	pol, err := NewPolicy()
	require.NoError(t, err)

	rules := 0
	for _, line := range strings.Split(embeddedPolicy, "\n") {
		parts := strings.Split(line, ",")
		if strings.TrimSpace(parts[0]) != "p" {
			continue
		}
		rules++
		role, obj, act := strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), strings.TrimSpace(parts[3])
		ok, err := pol.enforcer.Enforce(role, obj, act)
		require.NoError(t, err)
		assert.True(t, ok, "%s %s %s", role, obj, act)
	}
	assert.Equal(t, 7, rules)

	// admin inherits user, which inherits anonymous
	ok, err := pol.enforcer.Enforce(RoleAdmin, "calendar", "read")
	require.NoError(t, err)
	assert.True(t, ok)
}
