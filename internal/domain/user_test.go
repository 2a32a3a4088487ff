package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"SUPERADMIN", "ADMIN", "MANAGER", "EXECUTIVE"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), role)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "admin", "Admin", "ROOT", "SUPER_ADMIN"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
