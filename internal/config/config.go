// Package config loads and validates orgfix configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/dateutil"
	"github.com/alnah/go-orgfix/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "orgfix"

// appDir is the directory under the XDG config home holding config files.
const appDir = "orgfix"

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxBasePathLength = 2048 // Browser URL limit
	MaxClassLength    = 100
	MaxDebounceLength = 20 // "1m30s"
)

// Debounce bounds for watch mode.
const (
	DefaultDebounce = 200 * time.Millisecond
	MaxDebounce     = time.Minute
)

// Config holds all configuration for a fix or watch run.
type Config struct {
	Site    SiteConfig   `yaml:"site"`
	Output  OutputConfig `yaml:"output"`
	Tables  TablesConfig `yaml:"tables"`
	Links   LinksConfig  `yaml:"links"`
	Watch   WatchConfig  `yaml:"watch"`
	Workers int          `yaml:"workers"` // 0 = auto
}

// SiteConfig describes the exported site tree.
type SiteConfig struct {
	Root     string `yaml:"root"`     // Site directory (default: "public")
	BasePath string `yaml:"basePath"` // URL prefix the site is served under (e.g. "/blog")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = rewrite pages in place
}

// TablesConfig controls table normalization.
type TablesConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"` // nil = enabled
}

// IsEnabled reports whether table normalization runs.
func (t TablesConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// LinksConfig controls monthly page marking and day links.
type LinksConfig struct {
	Enabled      *bool  `yaml:"enabled,omitempty"` // nil = enabled
	Layout       string `yaml:"layout"`            // Daily entry path layout
	MonthlyClass string `yaml:"monthlyClass"`      // Class added to monthly page bodies
}

// IsEnabled reports whether monthly pages get day links.
func (l LinksConfig) IsEnabled() bool {
	return l.Enabled == nil || *l.Enabled
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "200ms"
}

// DebounceDuration returns the parsed debounce, or DefaultDebounce when unset.
// Call Validate first; an unparsable value also yields DefaultDebounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	if w.Debounce == "" {
		return DefaultDebounce
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site.root", c.Site.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.basePath", c.Site.BasePath, MaxBasePathLength); err != nil {
		return err
	}
	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath must start with \"/\", got %q", ErrInvalidValue, c.Site.BasePath)
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	// Validate links fields
	if err := validateFieldLength("links.layout", c.Links.Layout, dateutil.MaxLayoutLength); err != nil {
		return err
	}
	if c.Links.Layout != "" {
		if _, err := dateutil.CompileLayout(c.Links.Layout); err != nil {
			return fmt.Errorf("%w: links.layout: %v", ErrInvalidValue, err)
		}
	}
	if err := validateFieldLength("links.monthlyClass", c.Links.MonthlyClass, MaxClassLength); err != nil {
		return err
	}
	if strings.ContainsFunc(c.Links.MonthlyClass, isSpace) {
		return fmt.Errorf("%w: links.monthlyClass must be a single class name, got %q", ErrInvalidValue, c.Links.MonthlyClass)
	}

	// Validate watch fields
	if err := validateFieldLength("watch.debounce", c.Watch.Debounce, MaxDebounceLength); err != nil {
		return err
	}
	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("%w: watch.debounce: %v", ErrInvalidValue, err)
		}
		if d < 0 || d > MaxDebounce {
			return fmt.Errorf("%w: watch.debounce must be between 0 and %s, got %s", ErrInvalidValue, MaxDebounce, d)
		}
	}

	if c.Workers < 0 || c.Workers > orgfix.MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, orgfix.MaxWorkers, c.Workers)
	}

	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{Root: "public"},
		Links: LinksConfig{
			Layout:       orgfix.DefaultLinkLayout,
			MonthlyClass: orgfix.DefaultMonthlyClass,
		},
		Watch: WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// fillDefaults sets empty fields to their DefaultConfig values.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Site.Root == "" {
		c.Site.Root = def.Site.Root
	}
	if c.Links.Layout == "" {
		c.Links.Layout = def.Links.Layout
	}
	if c.Links.MonthlyClass == "" {
		c.Links.MonthlyClass = def.Links.MonthlyClass
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = def.Watch.Debounce
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// LoadDefault loads the DefaultName config if one exists in a standard
// location, and returns DefaultConfig otherwise. The returned path is empty
// when no file was found.
func LoadDefault() (*Config, string, error) {
	configPath, err := resolveConfigPath(DefaultName)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadFile(configPath)
	if err != nil {
		return nil, configPath, err
	}
	return cfg, configPath, nil
}

func loadFile(configPath string) (*Config, error) {
	var cfg Config
	if err := yamlutil.ReadFile(configPath, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// searchDirs returns the directories searched for config names, in order:
// current directory, then $XDG_CONFIG_HOME/orgfix.
func searchDirs() []string {
	return []string{".", filepath.Join(xdg.ConfigHome, appDir)}
}

// CandidatePaths returns the files tried for a config name, in lookup order.
// Extensions are tried in order: .yaml, .yml
func CandidatePaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := searchDirs()
	paths := make([]string, 0, len(extensions)*len(dirs))

	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := name + ext
			if dir != "." {
				candidate = filepath.Join(dir, candidate)
			}
			paths = append(paths, candidate)
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	candidates := CandidatePaths(name)
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
