// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete quizcards configuration.
type Config struct {
	// Backend settings
	Backend BackendConfig `toml:"backend"`

	// Question generation settings
	Generation GenerationConfig `toml:"generation"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Local question bank configuration
	Bank BankConfig `toml:"bank"`

	// Debug logging configuration
	Debug DebugConfig `toml:"debug"`
}

// BackendConfig contains the quiz backend connection settings.
type BackendConfig struct {
	// BaseURL is the backend API root, including the /api prefix.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// Email prefills the login form when set.
	Email string `toml:"email"`
}

// GenerationConfig contains question generation defaults.
type GenerationConfig struct {
	// NumQuestions is how many questions to request per prompt.
	NumQuestions int `toml:"num_questions"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light".
	Theme string `toml:"theme"`
	// ShowSidebar controls whether the chat list starts visible.
	ShowSidebar bool `toml:"show_sidebar"`
	// CompactMode uses a more compact transcript layout.
	CompactMode bool `toml:"compact_mode"`
}

// BankConfig contains the local question bank settings.
type BankConfig struct {
	// Enabled controls whether generated questions are mirrored locally.
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database path (empty = default ~/.quizcards/bank.db).
	Path string `toml:"path"`
}

// DebugConfig controls the debug log file. The TUI owns the terminal,
// so log output goes to a file instead of stderr.
type DebugConfig struct {
	// Enabled turns on debug logging.
	Enabled bool `toml:"enabled"`
	// Path is the log file path (empty = default ~/.quizcards/debug.log).
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "https://tfm-backend-topaz.vercel.app/api",
			TimeoutSecs: 30,
		},
		Generation: GenerationConfig{
			NumQuestions: 3,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowSidebar: true,
			CompactMode: false,
		},
		Bank: BankConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the quizcards configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".quizcards"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// BankPath returns the question bank database path, honoring the
// configured override.
func (c *Config) BankPath() (string, error) {
	if c.Bank.Path != "" {
		return c.Bank.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bank.db"), nil
}

// DebugLogPath returns the debug log file path, honoring the configured
// override.
func (c *Config) DebugLogPath() (string, error) {
	if c.Debug.Path != "" {
		return c.Debug.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// The file may hold a cached session token, so anything wider than 0600
// gets tightened.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.quizcards/config.toml, falling back
// to defaults when the file is absent. A .env file in the config
// directory is loaded first, then environment overrides are applied.
// QUIZCARDS_CONFIG points at an alternative config file; unlike the
// default path, that file must exist.
func Load() (*Config, error) {
	if path := os.Getenv("QUIZCARDS_CONFIG"); path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()

	if dir, err := ConfigDir(); err == nil {
		// Missing .env is the normal case, not an error.
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit file path. The file
// must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default config path.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies QUIZCARDS_* environment variables on top of
// whatever was loaded from disk.
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("QUIZCARDS_BASE_URL"); baseURL != "" {
		c.Backend.BaseURL = baseURL
	}
	if timeout := os.Getenv("QUIZCARDS_TIMEOUT_SECS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if email := os.Getenv("QUIZCARDS_EMAIL"); email != "" {
		c.Backend.Email = email
	}
	if count := os.Getenv("QUIZCARDS_NUM_QUESTIONS"); count != "" {
		if n, err := strconv.Atoi(count); err == nil {
			c.Generation.NumQuestions = n
		}
	}
	if theme := os.Getenv("QUIZCARDS_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if bank := os.Getenv("QUIZCARDS_BANK"); bank != "" {
		c.Bank.Enabled = bank == "1" || strings.ToLower(bank) == "true"
	}
	if path := os.Getenv("QUIZCARDS_BANK_PATH"); path != "" {
		c.Bank.Path = path
	}
	if debug := os.Getenv("QUIZCARDS_DEBUG"); debug != "" {
		c.Debug.Enabled = debug == "1" || strings.ToLower(debug) == "true"
	}
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills zero values left by a sparse config file.
func (c *Config) SetDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = Default().Backend.BaseURL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = 30
	}
	if c.Generation.NumQuestions == 0 {
		c.Generation.NumQuestions = 3
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []string

	if parsed, err := url.Parse(c.Backend.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Sprintf("backend.base_url: %q is not an absolute URL", c.Backend.BaseURL))
	}
	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 300 {
		errs = append(errs, fmt.Sprintf("backend.timeout_secs: %d outside range 1-300", c.Backend.TimeoutSecs))
	}
	if c.Generation.NumQuestions < 1 || c.Generation.NumQuestions > 20 {
		errs = append(errs, fmt.Sprintf("generation.num_questions: %d outside range 1-20", c.Generation.NumQuestions))
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, fmt.Sprintf("ui.theme: %q is not \"dark\" or \"light\"", c.UI.Theme))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
