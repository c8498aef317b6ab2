// Package config loads the rigforge configuration from TOML files and
// environment variables, with file watching for live reload.
package config

// Config represents the core rigforge configuration
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates"`
	Steps     StepsConfig     `mapstructure:"steps"`
	Scene     SceneConfig     `mapstructure:"scene"`
	Variants  VariantsConfig  `mapstructure:"variants"`
}

// TemplatesConfig configures guide template discovery
type TemplatesConfig struct {
	Paths            []string `mapstructure:"paths"`             // Template search paths, first match wins
	DefaultExtension string   `mapstructure:"default_extension"` // Extension used when saving without one (default: .sgt)
}

// StepsConfig configures the custom step runner
type StepsConfig struct {
	Path           string `mapstructure:"path"`            // Root directory for relative step paths
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Per-step execution timeout (default: 120)
	StopOnError    bool   `mapstructure:"stop_on_error"`   // Abort the run on the first failing step
}

// SceneConfig configures headless scene handling
type SceneConfig struct {
	Path string `mapstructure:"path"` // Default scene file for CLI operations
}

// VariantsConfig configures the component variant registry
type VariantsConfig struct {
	Enabled []string `mapstructure:"enabled"` // Whitelist of enabled variants, empty = all registered
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
