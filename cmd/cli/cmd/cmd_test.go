package cmd

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-pricing/internal/config"
	"plan-pricing/internal/errors"
	"plan-pricing/internal/logging"
)

const testCatalog = `[
  {"plan_id": "starter", "licenses": 1, "monthly_price": 9.99, "annual_price": 99},
  {"plan_id": "agency", "annual_price": 1200, "is_hidden": true}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, filepath.Join(t.TempDir(), "none.json"), args...)
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	showCycle, showFormat, showPlan = "", "", ""
	showStrict, showHidden = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "plan-pricing version "+version+"\n", out)
}

func TestPlansCycle(t *testing.T) {
	for arg, want := range map[string]string{
		"12":      "annual",
		"0":       "lifetime",
		"99":      "monthly",
		"annual":  "annual",
		"monthly": "monthly",
	} {
		out, err := run(t, "plans", "cycle", arg)
		require.NoError(t, err)
		assert.Equal(t, want, strings.TrimSpace(out), arg)
	}
}

func TestPlansShowHidesHiddenPlans(t *testing.T) {
	out, err := run(t, "plans", "show", writeCatalog(t))
	require.NoError(t, err)

	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "$9.99")
	assert.NotContains(t, out, "agency")
}

func TestPlansShowAllAnnualJSON(t *testing.T) {
	out, err := run(t, "plans", "show", "--all", "--cycle", "annual", "--format", "json", writeCatalog(t))
	require.NoError(t, err)

	assert.Contains(t, out, `"plan_id": "agency"`)
	assert.Contains(t, out, `"monthly": "100.00"`)
	assert.Contains(t, out, `"amount": "1,200.00"`)
}

func TestPlansShowSinglePlan(t *testing.T) {
	out, err := run(t, "plans", "show", "--plan", "starter", "--format", "json", writeCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"sites": "Single Site"`)

	catalogPath := writeCatalog(t)
	_, err = run(t, "plans", "show", "--plan", "missing", catalogPath)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))

	var typed *errors.Error
	require.True(t, stderrors.As(err, &typed))
	assert.Equal(t, catalogPath, typed.Context["file"])
	assert.Equal(t, "missing", typed.Context["plan_id"])
}

func TestPlansShowLogsFailures(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "cli.log")
	cfgPath := filepath.Join(dir, "config.json")

	cfg := config.Default()
	cfg.Logging = logging.Config{Level: "error", Format: "json", Output: logPath}
	require.NoError(t, cfg.Save(cfgPath))

	missing := filepath.Join(dir, "absent.json")
	_, err := runWithConfig(t, cfgPath, "plans", "show", missing)
	require.Error(t, err)
	logging.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"plans show failed"`)
	assert.Contains(t, string(data), `"catalog":"`+missing+`"`)
}

func TestPlansShowRejectsUnknownCycleAndFormat(t *testing.T) {
	_, err := run(t, "plans", "show", "--cycle", "weekly", writeCatalog(t))
	assert.Error(t, err)

	_, err = run(t, "plans", "show", "--format", "xml", writeCatalog(t))
	assert.Error(t, err)
}
