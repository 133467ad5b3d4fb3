package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("COUPLEDIARIES_SECRET_KEY", "env-secret")
	t.Setenv("COUPLEDIARIES_ACCESS_TOKEN_VALIDITY", "5m")
	t.Setenv("COUPLEDIARIES_SMTP_ADDR", "smtp.local:25")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "smtp.local:25", c.SMTPAddr)
	// untouched
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	t.Setenv("COUPLEDIARIES_REFRESH_TOKEN_VALIDITY", "forever")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}
