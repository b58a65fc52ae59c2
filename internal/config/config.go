package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all legal-form-fill configuration.
type Config struct {
	// HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Target form and browser automation settings
	Form FormConfig `yaml:"form"`

	// Vision LLM extraction settings
	Vision VisionConfig `yaml:"vision"`

	// Uploads, screenshots, and run history
	Storage StorageConfig `yaml:"storage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FormConfig configures the browser-driven form filler.
type FormConfig struct {
	TargetURL           string `yaml:"target_url"`
	Headless            bool   `yaml:"headless"`
	ViewportWidth       int    `yaml:"viewport_width"`
	ViewportHeight      int    `yaml:"viewport_height"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms"`
	ElementTimeoutMs    int    `yaml:"element_timeout_ms"`
	FieldDelayMs        int    `yaml:"field_delay_ms"`
}

// NavigationTimeout returns the page navigation timeout.
func (c FormConfig) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs == 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// ElementTimeout returns the per-element lookup timeout.
func (c FormConfig) ElementTimeout() time.Duration {
	if c.ElementTimeoutMs == 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ElementTimeoutMs) * time.Millisecond
}

// FieldDelay returns the pause inserted between field fills.
func (c FormConfig) FieldDelay() time.Duration {
	return time.Duration(c.FieldDelayMs) * time.Millisecond
}

// GetViewportWidth returns viewport width.
func (c FormConfig) GetViewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1280
	}
	return c.ViewportWidth
}

// GetViewportHeight returns viewport height.
func (c FormConfig) GetViewportHeight() int {
	if c.ViewportHeight == 0 {
		return 900
	}
	return c.ViewportHeight
}

// VisionConfig configures the vision LLM used for document extraction.
type VisionConfig struct {
	Provider  string `yaml:"provider"` // anthropic, gemini
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   string `yaml:"timeout"`
}

// RequestTimeout parses the configured timeout, defaulting to 2 minutes.
func (c VisionConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// StorageConfig configures file and database storage.
type StorageConfig struct {
	UploadDir         string   `yaml:"upload_dir"`
	DatabasePath      string   `yaml:"database_path"`
	MaxFileSizeMB     int      `yaml:"max_file_size_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Form: FormConfig{
			TargetURL:           "https://mendrika-alma.github.io/form-submission/",
			Headless:            true,
			ViewportWidth:       1280,
			ViewportHeight:      900,
			NavigationTimeoutMs: 30000,
			ElementTimeoutMs:    5000,
			FieldDelayMs:        80,
		},
		Vision: VisionConfig{
			Provider:  "anthropic",
			Model:     "claude-opus-4-6",
			BaseURL:   "https://api.anthropic.com/v1",
			MaxTokens: 4096,
			Timeout:   "2m",
		},
		Storage: StorageConfig{
			UploadDir:         "data/uploads",
			DatabasePath:      "data/formfill.db",
			MaxFileSizeMB:     20,
			AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.Vision.APIKey = key
		c.Vision.Provider = "anthropic"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Vision.APIKey = key
		c.Vision.Provider = "gemini"
	}
	if v := os.Getenv("FORMFILL_TARGET_URL"); v != "" {
		c.Form.TargetURL = v
	}
	if v := os.Getenv("FORMFILL_UPLOAD_DIR"); v != "" {
		c.Storage.UploadDir = v
	}
	if v := os.Getenv("FORMFILL_DATABASE_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("FORMFILL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FORMFILL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
