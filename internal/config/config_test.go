package config

// Notes:
// - LoadConfig and LoadDefault tests change the working directory and the
//   XDG config home, so they do not run in parallel.
// - xdg.Reload is called after setting XDG_CONFIG_HOME because adrg/xdg
//   resolves its paths once at init.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/alnah/go-orgfix"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// isolate points the working directory and the XDG config home at fresh
// temporary directories and returns them.
func isolate(t *testing.T) (cwd, configHome string) {
	t.Helper()
	cwd = t.TempDir()
	configHome = t.TempDir()
	t.Chdir(cwd)
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()
	return cwd, configHome
}

func boolPtr(b bool) *bool { return &b }

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Site.Root != "public" {
		t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "public")
	}
	if cfg.Site.BasePath != "" {
		t.Errorf("Site.BasePath = %q, want empty", cfg.Site.BasePath)
	}
	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty", cfg.Output.Dir)
	}
	if !cfg.Tables.IsEnabled() {
		t.Error("Tables.IsEnabled() = false, want true")
	}
	if !cfg.Links.IsEnabled() {
		t.Error("Links.IsEnabled() = false, want true")
	}
	if cfg.Links.Layout != orgfix.DefaultLinkLayout {
		t.Errorf("Links.Layout = %q, want %q", cfg.Links.Layout, orgfix.DefaultLinkLayout)
	}
	if cfg.Links.MonthlyClass != orgfix.DefaultMonthlyClass {
		t.Errorf("Links.MonthlyClass = %q, want %q", cfg.Links.MonthlyClass, orgfix.DefaultMonthlyClass)
	}
	if got := cfg.Watch.DebounceDuration(); got != DefaultDebounce {
		t.Errorf("Watch.DebounceDuration() = %v, want %v", got, DefaultDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrFieldTooLong) {
				t.Fatalf("error = %v, want ErrFieldTooLong", err)
			}
			if !strings.Contains(err.Error(), "test.field") {
				t.Errorf("error %q should contain field name", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"base path", func(c *Config) { c.Site.BasePath = "/blog" }, nil},
		{"relative base path", func(c *Config) { c.Site.BasePath = "blog" }, ErrInvalidValue},
		{"long base path", func(c *Config) { c.Site.BasePath = "/" + strings.Repeat("a", MaxBasePathLength) }, ErrFieldTooLong},
		{"long root", func(c *Config) { c.Site.Root = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"long output dir", func(c *Config) { c.Output.Dir = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"custom layout", func(c *Config) { c.Links.Layout = "/[Journal]/YYYY-MM-DD.html" }, nil},
		{"unclosed layout bracket", func(c *Config) { c.Links.Layout = "/[Journal/YYYY.html" }, ErrInvalidValue},
		{"long layout", func(c *Config) { c.Links.Layout = strings.Repeat("D", 201) }, ErrFieldTooLong},
		{"class with space", func(c *Config) { c.Links.MonthlyClass = "monthly page" }, ErrInvalidValue},
		{"long class", func(c *Config) { c.Links.MonthlyClass = strings.Repeat("m", MaxClassLength+1) }, ErrFieldTooLong},
		{"debounce", func(c *Config) { c.Watch.Debounce = "1s" }, nil},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = "0s" }, nil},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "soon" }, ErrInvalidValue},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = "-1s" }, ErrInvalidValue},
		{"debounce too long", func(c *Config) { c.Watch.Debounce = "2m" }, ErrInvalidValue},
		{"workers max", func(c *Config) { c.Workers = orgfix.MaxWorkers }, nil},
		{"workers too many", func(c *Config) { c.Workers = orgfix.MaxWorkers + 1 }, ErrInvalidValue},
		{"negative workers", func(c *Config) { c.Workers = -1 }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnabledFlags(t *testing.T) {
	t.Parallel()

	if (TablesConfig{Enabled: boolPtr(false)}).IsEnabled() {
		t.Error("TablesConfig{Enabled: false}.IsEnabled() = true")
	}
	if !(TablesConfig{Enabled: boolPtr(true)}).IsEnabled() {
		t.Error("TablesConfig{Enabled: true}.IsEnabled() = false")
	}
	if (LinksConfig{Enabled: boolPtr(false)}).IsEnabled() {
		t.Error("LinksConfig{Enabled: false}.IsEnabled() = true")
	}
	if !(LinksConfig{}).IsEnabled() {
		t.Error("LinksConfig{}.IsEnabled() = false")
	}
}

func TestWatchConfig_DebounceDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", DefaultDebounce},
		{"500ms", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"bogus", DefaultDebounce},
	}

	for _, tt := range tests {
		if got := (WatchConfig{Debounce: tt.value}).DebounceDuration(); got != tt.want {
			t.Errorf("DebounceDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File Loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		content := `site:
  root: "out/site"
  basePath: "/blog"
output:
  dir: "fixed"
tables:
  enabled: false
links:
  monthlyClass: "journal-month"
workers: 2
`
		path := writeConfig(t, t.TempDir(), "site.yaml", content)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "out/site" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "out/site")
		}
		if cfg.Site.BasePath != "/blog" {
			t.Errorf("Site.BasePath = %q, want %q", cfg.Site.BasePath, "/blog")
		}
		if cfg.Output.Dir != "fixed" {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "fixed")
		}
		if cfg.Tables.IsEnabled() {
			t.Error("Tables.IsEnabled() = true, want false")
		}
		if !cfg.Links.IsEnabled() {
			t.Error("Links.IsEnabled() = false, want true (unset)")
		}
		if cfg.Links.MonthlyClass != "journal-month" {
			t.Errorf("Links.MonthlyClass = %q", cfg.Links.MonthlyClass)
		}
		if cfg.Links.Layout != orgfix.DefaultLinkLayout {
			t.Errorf("Links.Layout = %q, want default", cfg.Links.Layout)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
	})

	t.Run("empty root falls back to default", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "min.yaml", "workers: 1\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "public" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "public")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing", "config.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "site: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "site:\n  rot: public\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "workers: 99\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("name resolves in current directory", func(t *testing.T) {
		cwd, _ := isolate(t)
		writeConfig(t, cwd, "journal.yml", "site:\n  root: from-cwd\n")

		cfg, err := LoadConfig("journal")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "from-cwd" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "from-cwd")
		}
	})

	t.Run("name resolves in XDG config home", func(t *testing.T) {
		_, configHome := isolate(t)
		writeConfig(t, configHome, filepath.Join("orgfix", "journal.yaml"), "site:\n  root: from-xdg\n")

		cfg, err := LoadConfig("journal")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "from-xdg" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "from-xdg")
		}
	})

	t.Run("current directory wins over XDG config home", func(t *testing.T) {
		cwd, configHome := isolate(t)
		writeConfig(t, cwd, "journal.yaml", "site:\n  root: from-cwd\n")
		writeConfig(t, configHome, filepath.Join("orgfix", "journal.yaml"), "site:\n  root: from-xdg\n")

		cfg, err := LoadConfig("journal")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "from-cwd" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "from-cwd")
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		isolate(t)

		_, err := LoadConfig("nothing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nothing.yaml") || !strings.Contains(err.Error(), "nothing.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadDefault
// ---------------------------------------------------------------------------

func TestLoadDefault(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		isolate(t)

		cfg, path, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if cfg.Site.Root != "public" {
			t.Errorf("Site.Root = %q, want default", cfg.Site.Root)
		}
	})

	t.Run("orgfix.yaml is picked up", func(t *testing.T) {
		cwd, _ := isolate(t)
		writeConfig(t, cwd, "orgfix.yaml", "site:\n  basePath: /notes\n")

		cfg, path, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if path != "orgfix.yaml" {
			t.Errorf("path = %q, want %q", path, "orgfix.yaml")
		}
		if cfg.Site.BasePath != "/notes" {
			t.Errorf("Site.BasePath = %q, want %q", cfg.Site.BasePath, "/notes")
		}
	})

	t.Run("broken default file is an error", func(t *testing.T) {
		cwd, _ := isolate(t)
		writeConfig(t, cwd, "orgfix.yaml", "bogus: true\n")

		_, path, err := LoadDefault()
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
		if path != "orgfix.yaml" {
			t.Errorf("path = %q, want %q", path, "orgfix.yaml")
		}
	})
}

// ---------------------------------------------------------------------------
// TestCandidatePaths - Lookup order
// ---------------------------------------------------------------------------

func TestCandidatePaths(t *testing.T) {
	_, configHome := isolate(t)

	got := CandidatePaths("site")
	want := []string{
		"site.yaml",
		"site.yml",
		filepath.Join(configHome, "orgfix", "site.yaml"),
		filepath.Join(configHome, "orgfix", "site.yml"),
	}

	if len(got) != len(want) {
		t.Fatalf("CandidatePaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CandidatePaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
