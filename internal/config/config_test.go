package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"ADDR", "DATA_ROOT", "DATA_BASE_URL", "WATCH_REPORTS", "POLL_PAGE",
	"POLL_INTERVAL", "BLOG_SLUGS", "SCROLL_THRESHOLD", "SUBMIT_DELAY",
	"RESET_DELAY", "FETCH_TIMEOUT", "LOG_LEVEL", "LOG_DEV",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ".", cfg.Data.Root)
	assert.Empty(t, cfg.Data.BaseURL)
	assert.False(t, cfg.Data.WatchReports)
	assert.Equal(t, "dashboard", cfg.Schedule.PollPage)
	assert.Equal(t, 30*time.Second, cfg.Schedule.PollInterval)
	assert.Equal(t, []string{"solar-roi-for-industrial-clients"}, cfg.Schedule.BlogSlugs)
	assert.Equal(t, 50, cfg.UI.ScrollThreshold)
	assert.Equal(t, 2*time.Second, cfg.UI.SubmitDelay)
	assert.Equal(t, 5*time.Second, cfg.UI.ResetDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BASE_URL", "https://reports.example.com/site/")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("BLOG_SLUGS", " first-post, ,second-post ")
	t.Setenv("SCROLL_THRESHOLD", "120")
	t.Setenv("WATCH_REPORTS", "true")
	t.Setenv("LOG_DEV", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://reports.example.com/site/", cfg.Data.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Schedule.PollInterval)
	assert.Equal(t, []string{"first-post", "second-post"}, cfg.Schedule.BlogSlugs)
	assert.Equal(t, 120, cfg.UI.ScrollThreshold)
	assert.True(t, cfg.Data.WatchReports)
	assert.True(t, cfg.Log.Dev)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_INTERVAL", "soon")
	t.Setenv("SCROLL_THRESHOLD", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Schedule.PollInterval)
	assert.Equal(t, 50, cfg.UI.ScrollThreshold)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown poll page", "POLL_PAGE", "admin"},
		{"non-http base url", "DATA_BASE_URL", "ftp://reports"},
		{"zero interval", "POLL_INTERVAL", "0s"},
		{"negative delay", "SUBMIT_DELAY", "-1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
