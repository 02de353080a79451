package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYDESK_API_URL", "")
	t.Setenv("PAYDESK_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAYDESK_API_URL", "http://localhost:8080")
	t.Setenv("PAYDESK_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	t.Setenv("PAYDESK_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestPaths(t *testing.T) {
	cfg := Load()
	assert.Contains(t, cfg.TokenPath(), ".paydesk")
	assert.Contains(t, cfg.LogPath(), "paydesk.log")
}
