package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschoi123/bazi-destiny/config"
	"github.com/charleschoi123/bazi-destiny/models"
)

// execute runs the root command with a config file that does not exist, so
// every setting is a default.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"LLM_PROVIDER", "LOG_LEVEL", "CHART_PRECISION", "CHART_ZI_HOUR", "GEOCODE_ENABLED", "DB_PATH"} {
		t.Setenv(k, "")
	}
	chartOpts.asJSON, chartOpts.geocode = false, false
	chartOpts.precision, chartOpts.ziHour = "", ""
	chartOpts.req = models.ChartRequest{}
	forceInit = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if len(args) == 0 || args[0] != "--config" {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestChartCommandJSON(t *testing.T) {
	out, err := execute(t, "chart", "--json",
		"--date", "1990-05-15", "--time", "07:30",
		"--city", "London", "--country", "UK", "--gender", "male")
	require.NoError(t, err)

	var resp models.ChartResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "1990-05-15T14:30:00+08:00", resp.Input.BeijingISO)
	gz := make([]string, 0, 4)
	for _, p := range resp.Pillars {
		gz = append(gz, p.GZ)
	}
	assert.Equal(t, []string{"庚午", "辛巳", "庚辰", "癸未"}, gz)
	assert.Equal(t, "Metal", resp.MainElement)
	assert.Equal(t, "forward", resp.LuckDirection)
	assert.Len(t, resp.LuckCycles, 6)
}

func TestChartCommandTable(t *testing.T) {
	out, err := execute(t, "chart",
		"--date", "2024-02-03", "--time", "12:00",
		"--city", "Shanghai", "--country", "China", "--name", "Lin")
	require.NoError(t, err)

	assert.Contains(t, out, "Four Pillars for Lin")
	for _, gz := range []string{"癸卯", "乙丑", "丁酉", "丙午"} {
		assert.Contains(t, out, gz)
	}
	assert.Contains(t, out, "Fire 3")
	assert.NotContains(t, out, "Luck cycles")
	assert.NotContains(t, out, "UTC+0.")
}

func TestChartCommandFallbackWarning(t *testing.T) {
	out, err := execute(t, "chart", "--date", "2024-03-01", "--time", "20:00", "--city", "Atlantis", "--country", "Nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "computed at UTC+0")
	assert.Contains(t, out, "2024-03-02T04:00:00+08:00")
}

func TestChartCommandOverrides(t *testing.T) {
	out, err := execute(t, "chart", "--json", "--zi-hour", "next-day",
		"--date", "2023-12-31", "--time", "23:30", "--zone", "Asia/Hong_Kong")
	require.NoError(t, err)

	var resp models.ChartResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "next-day", resp.ZiHour)
	assert.Equal(t, "甲子", resp.Pillars[2].GZ)
	assert.Equal(t, "explicit", resp.Input.TimezoneSource)
}

func TestChartCommandErrors(t *testing.T) {
	_, err := execute(t, "chart", "--date", "2024-02-30", "--time", "10:00", "--city", "Beijing", "--country", "China")
	assert.ErrorContains(t, err, "invalid birth date/time")

	_, err = execute(t, "chart", "--precision", "ephemeris", "--date", "2024-02-10", "--time", "10:00")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "bazi.yaml")
	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	def := config.DefaultConfig()
	assert.Equal(t, def.Server, loaded.Server)
	assert.Equal(t, def.Chart, loaded.Chart)
	assert.Equal(t, def.Geocode, loaded.Geocode)

	_, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}
