package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_PATH", "/tmp/session.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Poll.Interval)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, SessionDriverFile, cfg.Session.Driver)
	assert.Equal(t, "/tmp/session.json", cfg.Session.Path)
	assert.Equal(t, "http://localhost:8080/auth", cfg.AuthURL())
	assert.Equal(t, "http://localhost:8080/users", cfg.UsersURL())
	assert.Equal(t, "http://localhost:8080/contacts", cfg.ContactsURL())
	assert.Equal(t, "http://localhost:8080/messages", cfg.MessagesURL())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoadEndpointOverrides(t *testing.T) {
	t.Setenv("GATEWAY_BASE_URL", "https://gw.example.com/")
	t.Setenv("GATEWAY_MESSAGES_URL", "https://functions.example.com/abc123")
	t.Setenv("POLL_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://gw.example.com/auth", cfg.AuthURL())
	assert.Equal(t, "https://functions.example.com/abc123", cfg.MessagesURL())
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
	assert.NotEmpty(t, cfg.Session.Path)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SESSION_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{}
	cfg.Session.Driver = SessionDriverMemory
	cfg.Gateway.BaseURL = "http://localhost:8080"
	cfg.Poll.Interval = 0
	assert.Error(t, cfg.Validate())

	cfg.Poll.Interval = time.Second
	require.NoError(t, cfg.Validate())

	cfg.Gateway.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())
}
