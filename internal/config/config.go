// Package config provides configuration types and defaults for zenedit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/tracing"
)

// Config holds all configuration options for zenedit.
type Config struct {
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Completion CompletionConfig `mapstructure:"completion"`
	Editor     EditorConfig     `mapstructure:"editor"`
	Preview    PreviewConfig    `mapstructure:"preview"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
}

// CatalogConfig locates the completion candidates.
type CatalogConfig struct {
	// Path is a YAML or TOML catalog file. Empty uses the SQLite store, or
	// the built-in keys when that is empty too.
	Path string `mapstructure:"path"`

	// DBPath is the SQLite catalog store used by 'zenedit catalog'.
	DBPath string `mapstructure:"db_path"`

	// Watch reloads the catalog file when it changes on disk.
	Watch bool `mapstructure:"watch"`
}

// CompletionConfig tunes candidate lookup.
type CompletionConfig struct {
	MaxCandidates int           `mapstructure:"max_candidates"` // Cap on popup entries (default 100)
	IconPrefix    string        `mapstructure:"icon_prefix"`    // Key prefix that completes icons (default ":fa-")
	Matcher       string        `mapstructure:"matcher"`        // "fuzzy" (default) or "substring"
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`      // Query cache lifetime, 0 disables
}

// EditorConfig holds editor behavior options.
type EditorConfig struct {
	AutoClose   bool `mapstructure:"auto_close"`   // Insert closing ) ] } " after an opener
	PopupHeight int  `mapstructure:"popup_height"` // Visible popup rows
	ShowPreview bool `mapstructure:"show_preview"` // Show the preview pane
}

// PreviewConfig configures the rendered preview.
type PreviewConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	URL      string        `mapstructure:"url"`      // POST endpoint; empty renders locally
	Debounce time.Duration `mapstructure:"debounce"` // Quiescence window before rendering
	Timeout  time.Duration `mapstructure:"timeout"`  // Per-request timeout for remote rendering
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default" or "light".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens, either nested or in quoted
	// dot notation:
	//   colors:
	//     markup:
	//       key: "#FFD700"
	//     "popup.selected": "#8A2BE2"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultConfigDir returns ~/.config/zenedit, or "" without a home directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "zenedit")
}

// DefaultCatalogDBPath returns the default SQLite catalog store location.
func DefaultCatalogDBPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "catalog.db")
}

// DefaultTracesFilePath returns the default trace file for the file exporter.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()

	return Config{
		Catalog: CatalogConfig{
			DBPath: DefaultCatalogDBPath(),
			Watch:  true,
		},
		Completion: CompletionConfig{
			MaxCandidates: 100,
			IconPrefix:    ":fa-",
			Matcher:       "fuzzy",
			CacheTTL:      2 * time.Minute,
		},
		Editor: EditorConfig{
			AutoClose:   true,
			PopupHeight: 8,
			ShowPreview: true,
		},
		Preview: PreviewConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
			Timeout:  5 * time.Second,
		},
		Tracing: tr,
	}
}

// Validate checks the whole configuration and returns the first error.
func Validate(cfg Config) error {
	if err := ValidateCompletion(cfg.Completion); err != nil {
		return err
	}
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidatePreview(cfg.Preview); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateCompletion checks completion configuration for errors.
func ValidateCompletion(c CompletionConfig) error {
	if c.MaxCandidates < 1 {
		return fmt.Errorf("completion.max_candidates must be at least 1, got %d", c.MaxCandidates)
	}
	if c.IconPrefix == "" || c.IconPrefix[0] != ':' {
		return fmt.Errorf("completion.icon_prefix must start with \":\", got %q", c.IconPrefix)
	}
	switch c.Matcher {
	case "", "fuzzy", "substring":
	default:
		return fmt.Errorf("completion.matcher must be \"fuzzy\" or \"substring\", got %q", c.Matcher)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("completion.cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.PopupHeight < 1 {
		return fmt.Errorf("editor.popup_height must be at least 1, got %d", e.PopupHeight)
	}
	return nil
}

// ValidatePreview checks preview configuration for errors.
func ValidatePreview(p PreviewConfig) error {
	if p.Debounce < 0 {
		return fmt.Errorf("preview.debounce must not be negative, got %s", p.Debounce)
	}
	if p.Timeout < 0 {
		return fmt.Errorf("preview.timeout must not be negative, got %s", p.Timeout)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	// Path requirements only matter when tracing is on
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# zenedit configuration

# Completion candidates
catalog:
  # YAML or TOML file with keys, symbols, icons and annotations
  # path: ~/notes/catalog.yaml
  #
  # SQLite store managed with 'zenedit catalog import'
  # db_path: ~/.config/zenedit/catalog.db
  watch: true             # Reload the catalog file when it changes

completion:
  max_candidates: 100     # Entries shown in the popup
  icon_prefix: ":fa-"     # Typing this key prefix completes icon names
  matcher: fuzzy          # fuzzy or substring
  cache_ttl: 2m           # Query cache lifetime (0 disables)

editor:
  auto_close: true        # Insert the closing ) ] } " after an opener
  popup_height: 8         # Visible popup rows
  show_preview: true      # Show the rendered preview pane

preview:
  enabled: true
  # url: http://localhost:8080/preview   # POST the document here; empty renders locally
  debounce: 300ms         # Wait for typing to pause before rendering
  timeout: 5s

# Theme configuration
theme:
  # preset: light         # default or light
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   markup.key: "#FFD700"
  #   markup.symbol: "#6495ED"
  #   popup.selected: "#8A2BE2"

# Tracing of editor turns
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/zenedit/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
