package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "finsight-data.json", cfg.Store.Path)
	assert.Equal(t, "0 3 * * *", cfg.Store.SnapshotSchedule)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 50, cfg.Extract.MaxPages)
	assert.Equal(t, 10*time.Second, cfg.Extract.PerPageTimeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_PATH", "/var/lib/finsight/state.json")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("EXTRACT_PAGE_TIMEOUT", "2s")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/finsight/state.json", cfg.Store.Path)
	assert.Equal(t, int64(1<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 2*time.Second, cfg.Extract.PerPageTimeout)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "ten megabytes")
	t.Setenv("EXTRACT_PAGES_PER_SECOND", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.InDelta(t, 5.0, cfg.Extract.PagesPerSecond, 0)
}
