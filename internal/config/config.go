// Package config defines the zimage-studio configuration. The config is
// loaded once at startup and passed into constructors explicitly; nothing in
// the rest of the codebase reads files or environment variables for settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all zimage-studio configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Filesystem layout. OutputDir, LorasDir and DatabasePath default to
	// locations under DataDir when left empty.
	DataDir      string `yaml:"data_dir"`
	OutputDir    string `yaml:"output_dir"`
	LorasDir     string `yaml:"loras_dir"`
	DatabasePath string `yaml:"database_path"`

	// HTTP server
	Server ServerConfig `yaml:"server"`

	// External generation tool
	Tool ToolConfig `yaml:"tool"`

	// History search behavior
	Search SearchConfig `yaml:"search"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ToolConfig configures the external image-generation CLI.
type ToolConfig struct {
	Binary        string `yaml:"binary"`
	Timeout       string `yaml:"timeout"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// SearchConfig configures history queries.
type SearchConfig struct {
	// CaseInsensitive switches prompt substring matching to fold case.
	// The default is an exact, case-sensitive match.
	CaseInsensitive bool `yaml:"case_insensitive"`
}

// LoggingConfig configures the categorized debug logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Name:    "zimage-studio",
		Version: "1.0.0",
		DataDir: filepath.Join(home, ".zimage-studio"),
		Server: ServerConfig{
			Addr: "0.0.0.0:8000",
		},
		Tool: ToolConfig{
			Binary:        "ZImageCLI",
			Timeout:       "600s",
			MaxConcurrent: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file from the given path, falling back to defaults for
// anything unset. A missing file is not an error; defaults plus environment
// overrides apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.deriveDirs()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variables on top of file settings.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ZIMAGE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ZIMAGE_TOOL_BIN"); v != "" {
		c.Tool.Binary = v
	}
	if v := os.Getenv("ZIMAGE_LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ZIMAGE_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// deriveDirs fills the dependent paths that were left empty.
func (c *Config) deriveDirs() {
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.DataDir, "outputs")
	}
	if c.LorasDir == "" {
		c.LorasDir = filepath.Join(c.DataDir, "loras")
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "history.db")
	}
}

// EnsureDirs creates the data, output and loras directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.OutputDir, c.LorasDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetToolTimeout returns the invocation timeout, defaulting to 10 minutes.
func (c *Config) GetToolTimeout() time.Duration {
	d, err := time.ParseDuration(c.Tool.Timeout)
	if err != nil || d <= 0 {
		return 600 * time.Second
	}
	return d
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Tool.Binary == "" {
		return fmt.Errorf("tool.binary must not be empty")
	}
	if c.Tool.MaxConcurrent < 1 {
		return fmt.Errorf("tool.max_concurrent must be at least 1, got %d", c.Tool.MaxConcurrent)
	}
	if c.Tool.Timeout != "" {
		if _, err := time.ParseDuration(c.Tool.Timeout); err != nil {
			return fmt.Errorf("tool.timeout is not a duration: %w", err)
		}
	}
	return nil
}

// Save writes the config to the given path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
