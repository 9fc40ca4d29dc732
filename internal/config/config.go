package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lmaidana/surtidor-etl/internal/domain"
)

// defaultDatasetURL is the direct download link of the official
// "Precios en surtidor" dataset.
const defaultDatasetURL = "http://datos.energia.gob.ar/dataset/1c181390-5045-475e-94dc-410429be4b17/resource/80ac25de-a44a-4445-9215-090cf55cfda5/download/precios-en-surtidor-resolucin-3142016.csv"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetURL   string
	CSVCachePath string
	ReportPath   string

	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	AllowedLocalities []string
	AllowedCompanies  []string
	MaxDeviation      float64
}

// Load reads configuration from the environment (and an optional .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	// Absent .env files are fine; system env vars still apply.
	_ = godotenv.Load()

	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "2m")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	maxDeviation, err := parseFloat("MAX_DEVIATION", "150")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetURL:   envOrDefault("DATASET_URL", defaultDatasetURL),
		CSVCachePath: envOrDefault("CSV_CACHE_PATH", "precios-en-surtidor-resolucin-3142016.csv"),
		ReportPath:   envOrDefault("REPORT_PATH", "precios.txt"),

		RefreshInterval: refreshInterval,
		FetchTimeout:    fetchTimeout,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AllowedLocalities: parseList(envOrDefault("ALLOWED_LOCALITIES", "CORRIENTES,PASO DE LOS LIBRES")),
		AllowedCompanies:  parseList(envOrDefault("ALLOWED_COMPANIES", "2,4,28")),
		MaxDeviation:      maxDeviation,
	}

	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if cfg.CSVCachePath == "" {
		return nil, errors.New("CSV_CACHE_PATH is required")
	}
	if cfg.ReportPath == "" {
		return nil, errors.New("REPORT_PATH is required")
	}
	if len(cfg.AllowedLocalities) == 0 {
		return nil, errors.New("ALLOWED_LOCALITIES is required")
	}
	if len(cfg.AllowedCompanies) == 0 {
		return nil, errors.New("ALLOWED_COMPANIES is required")
	}
	if cfg.MaxDeviation < 0 {
		return nil, errors.New("MAX_DEVIATION must not be negative")
	}

	return cfg, nil
}

// Rules converts the configured filter sets into the domain's form.
func (c *Config) Rules() domain.Rules {
	localities := make(map[string]bool, len(c.AllowedLocalities))
	for _, l := range c.AllowedLocalities {
		localities[l] = true
	}
	companies := make(map[string]bool, len(c.AllowedCompanies))
	for _, id := range c.AllowedCompanies {
		companies[id] = true
	}
	return domain.Rules{
		Localities:   localities,
		CompanyIDs:   companies,
		MaxDeviation: c.MaxDeviation,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key, fallback string) (float64, error) {
	v, err := strconv.ParseFloat(envOrDefault(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

// parseList splits a comma-separated value, trimming blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
