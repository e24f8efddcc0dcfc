package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ShaysReality/fincalc/config"
	"github.com/ShaysReality/fincalc/daycount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fincalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, "basis: 30E/360\nguess: 0.05\nround: 4\nport: 9000\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "30E/360", cfg.Basis)
	assert.Equal(t, 0.05, cfg.Guess)
	assert.Equal(t, 4, cfg.Round)
	assert.Equal(t, 9000, cfg.Port)
	// Unset keys keep their defaults.
	assert.Equal(t, config.Default().Catalog, cfg.Catalog)
}

func TestLoad_RejectsUnknownBasis(t *testing.T) {
	path := writeConfig(t, "basis: ACT/ACT\n")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, daycount.ErrUnsupportedBasis)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "basis: [unclosed\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}
