package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Registry.TotalRooms)
	assert.Equal(t, CapacityInformational, cfg.Registry.CapacityPolicy)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 600*time.Second, cfg.Cache.CleanupInterval)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
registry:
  total_rooms: 5
  capacity_policy: enforce
store:
  driver: sqlite
  dsn: "file:hostel?mode=memory&cache=shared"
cache:
  enabled: true
  ttl_seconds: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Registry.TotalRooms)
	assert.Equal(t, CapacityEnforce, cfg.Registry.CapacityPolicy)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:hostel?mode=memory&cache=shared", cfg.Store.DSN)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	// cleanup_seconds keeps its default when the file does not mention it.
	assert.Equal(t, 600*time.Second, cfg.Cache.CleanupInterval)
}

func TestLoad_ZeroCapacityIsKept(t *testing.T) {
	path := writeConfig(t, "registry:\n  total_rooms: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Registry.TotalRooms)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Registry.TotalRooms)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "registry:\n  total_rooms: 5\n")
	t.Setenv("HOSTEL_TOTAL_ROOMS", "42")
	t.Setenv("HOSTEL_CAPACITY_POLICY", "enforce")
	t.Setenv("HOSTEL_CACHE_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Registry.TotalRooms)
	assert.Equal(t, CapacityEnforce, cfg.Registry.CapacityPolicy)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "negative capacity", body: "registry:\n  total_rooms: -1\n"},
		{name: "unknown policy", body: "registry:\n  capacity_policy: strict\n"},
		{name: "unknown driver", body: "store:\n  driver: postgres\n"},
		{name: "malformed yaml", body: "registry: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
