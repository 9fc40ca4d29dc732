package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.DatasetURL, "precios-en-surtidor")
	assert.Equal(t, "precios-en-surtidor-resolucin-3142016.csv", cfg.CSVCachePath)
	assert.Equal(t, "precios.txt", cfg.ReportPath)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"CORRIENTES", "PASO DE LOS LIBRES"}, cfg.AllowedLocalities)
	assert.Equal(t, []string{"2", "4", "28"}, cfg.AllowedCompanies)
	assert.Equal(t, 150.0, cfg.MaxDeviation)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_URL", "http://example.com/precios.csv")
	t.Setenv("CSV_CACHE_PATH", "/tmp/cache.csv")
	t.Setenv("REPORT_PATH", "/tmp/report.txt")
	t.Setenv("REFRESH_INTERVAL", "30m")
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("ALLOWED_LOCALITIES", "CORRIENTES, GOYA")
	t.Setenv("ALLOWED_COMPANIES", "2")
	t.Setenv("MAX_DEVIATION", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/precios.csv", cfg.DatasetURL)
	assert.Equal(t, "/tmp/cache.csv", cfg.CSVCachePath)
	assert.Equal(t, "/tmp/report.txt", cfg.ReportPath)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 45*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"CORRIENTES", "GOYA"}, cfg.AllowedLocalities)
	assert.Equal(t, []string{"2"}, cfg.AllowedCompanies)
	assert.Equal(t, 200.0, cfg.MaxDeviation)
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_NegativeRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-1h")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidMaxDeviation(t *testing.T) {
	t.Setenv("MAX_DEVIATION", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_DEVIATION")
}

func TestLoad_NegativeMaxDeviation(t *testing.T) {
	t.Setenv("MAX_DEVIATION", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_DEVIATION")
}

func TestLoad_EmptyLocalities(t *testing.T) {
	t.Setenv("ALLOWED_LOCALITIES", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOWED_LOCALITIES")
}

func TestRules(t *testing.T) {
	cfg := &Config{
		AllowedLocalities: []string{"CORRIENTES"},
		AllowedCompanies:  []string{"2", "4"},
		MaxDeviation:      150,
	}

	rules := cfg.Rules()

	assert.True(t, rules.Localities["CORRIENTES"])
	assert.False(t, rules.Localities["RESISTENCIA"])
	assert.True(t, rules.CompanyIDs["2"])
	assert.True(t, rules.CompanyIDs["4"])
	assert.False(t, rules.CompanyIDs["28"])
	assert.Equal(t, 150.0, rules.MaxDeviation)
}
