package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	for _, raw := range []string{"AMC", "NewInstallation", "OnDemandSupport"} {
		st, err := ParseServiceType(raw)
		require.NoError(t, err)
		assert.Equal(t, ServiceType(raw), st)
	}
}

func TestParseServiceTypeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "amc", "Maintenance", "ON_DEMAND"} {
		_, err := ParseServiceType(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
