package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-pricing/core/numeric"
	"plan-pricing/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pricing": {"locale": "de", "precision": 0}, "output": {"default_cycle": "annual"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Pricing.Locale)
	assert.Equal(t, 0, cfg.Pricing.Precision)
	assert.Equal(t, "annual", cfg.Output.DefaultCycle)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat, "unset keys keep their default")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Catalog.Strict = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Catalog.Strict)
}

func TestApplyInstallsFormatter(t *testing.T) {
	prev := numeric.Default()
	t.Cleanup(func() { numeric.SetDefault(prev) })

	cfg := Default()
	cfg.Pricing.Precision = 0
	cfg.Apply()

	assert.Equal(t, "1,235", numeric.FormatNumber(1234.5))
}
