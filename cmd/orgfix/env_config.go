package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-orgfix/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // ORGFIX_CONFIG: config file name or path
	SiteRoot   string // ORGFIX_SITE_ROOT: site directory
	OutputDir  string // ORGFIX_OUTPUT_DIR: output directory
	BasePath   string // ORGFIX_BASE_PATH: URL prefix
	Workers    int    // ORGFIX_WORKERS: parallel workers
}

// knownEnvVars lists valid ORGFIX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ORGFIX_CONFIG":     true,
	"ORGFIX_SITE_ROOT":  true,
	"ORGFIX_OUTPUT_DIR": true,
	"ORGFIX_BASE_PATH":  true,
	"ORGFIX_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized ORGFIX_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("ORGFIX_CONFIG"),
		SiteRoot:   getenv("ORGFIX_SITE_ROOT"),
		OutputDir:  getenv("ORGFIX_OUTPUT_DIR"),
		BasePath:   getenv("ORGFIX_BASE_PATH"),
	}

	// Invalid or non-positive counts are ignored
	if workers := getenv("ORGFIX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized ORGFIX_* variables.
// Helps catch typos like ORGFIX_OUTPUTDIR instead of ORGFIX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "ORGFIX_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file and defaults; CLI flags are
// applied afterwards, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SiteRoot != "" {
		cfg.Site.Root = env.SiteRoot
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
