package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	Env = map[string]string{"APP_PORT": "4001"}
	t.Cleanup(func() { Env = nil })
	t.Setenv("APP_HOST", "example.org")

	assert.Equal(t, "4001", GetEnv("APP_PORT", "4000"))
	assert.Equal(t, "example.org", GetEnv("APP_HOST", "localhost"))
	assert.Equal(t, "fallback", GetEnv("MISSING_KEY", "fallback"))
}

func TestGetBool(t *testing.T) {
	Env = map[string]string{"BILLING_ENABLED": "true", "DB_AUTOMIGRATE": "nope"}
	t.Cleanup(func() { Env = nil })

	assert.True(t, GetBool("BILLING_ENABLED", false))
	assert.True(t, GetBool("DB_AUTOMIGRATE", true))
	assert.False(t, GetBool("UNSET_FLAG", false))
}

func TestIsDev(t *testing.T) {
	Env = map[string]string{"APP_ENV": "dev"}
	t.Cleanup(func() { Env = nil })
	assert.True(t, IsDev())
}
