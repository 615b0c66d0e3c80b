package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-volley/pkg/config"
	"github.com/opd-ai/go-volley/pkg/health"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "ERROR"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--ticks", "600")
	require.NoError(t, err)

	var report simulateReport
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &report))
	assert.Equal(t, uint64(600), report.Ticks)
	assert.NotEmpty(t, report.MatchID)
	assert.GreaterOrEqual(t, report.Score.P1, 0)
	assert.Equal(t, health.StatusHealthy, report.Health.Checks["match"].Status)
	assert.Equal(t, health.StatusHealthy, report.Health.Checks["ticks"].Status)
}

func TestSimulateCommand_RejectsZeroTicks(t *testing.T) {
	_, err := execute(t, "simulate", "--ticks", "0")
	assert.ErrorContains(t, err, "--ticks must be positive")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volley.json")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigFlagLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volley.yaml")
	require.NoError(t, os.WriteFile(path, []byte("control:\n  chargemax: -1\n"), 0o644))

	_, err := execute(t, "--config", path, "simulate", "--ticks", "1")
	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfigFlagMissingFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.json"), "simulate")
	assert.Error(t, err)
}

func TestPlayCommand_UnknownRenderer(t *testing.T) {
	_, err := execute(t, "play", "--renderer", "vga")
	assert.ErrorContains(t, err, `unknown renderer "vga"`)
}
