// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.BaseURL == "" {
		t.Error("default base URL is empty")
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("default timeout = %d, want 30", cfg.Backend.TimeoutSecs)
	}
	if cfg.Generation.NumQuestions != 3 {
		t.Errorf("default question count = %d, want 3", cfg.Generation.NumQuestions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "/api" }, true},
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }, true},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, true},
		{"huge timeout", func(c *Config) { c.Backend.TimeoutSecs = 9999 }, true},
		{"zero questions", func(c *Config) { c.Generation.NumQuestions = 0 }, true},
		{"too many questions", func(c *Config) { c.Generation.NumQuestions = 50 }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://localhost:5000/api"
	cfg.Generation.NumQuestions = 5
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Backend.BaseURL != "http://localhost:5000/api" {
		t.Errorf("base URL = %q", loaded.Backend.BaseURL)
	}
	if loaded.Generation.NumQuestions != 5 {
		t.Errorf("question count = %d", loaded.Generation.NumQuestions)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q", loaded.UI.Theme)
	}
}

func TestLoadFromPath_SparseFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[ui]\ntheme = \"light\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("sparse file lost default timeout: %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.Generation.NumQuestions != 3 {
		t.Errorf("sparse file lost default question count: %d", cfg.Generation.NumQuestions)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("QUIZCARDS_BASE_URL", "http://localhost:9000/api")
	t.Setenv("QUIZCARDS_NUM_QUESTIONS", "7")
	t.Setenv("QUIZCARDS_THEME", "LIGHT")
	t.Setenv("QUIZCARDS_BANK", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "http://localhost:9000/api" {
		t.Errorf("base URL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Generation.NumQuestions != 7 {
		t.Errorf("question count = %d", cfg.Generation.NumQuestions)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want lowercased light", cfg.UI.Theme)
	}
	if cfg.Bank.Enabled {
		t.Error("bank still enabled after override")
	}
}

func TestApplyEnvOverrides_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QUIZCARDS_NUM_QUESTIONS", "many")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Generation.NumQuestions != 3 {
		t.Errorf("malformed override changed question count: %d", cfg.Generation.NumQuestions)
	}
}

func TestBankPath(t *testing.T) {
	cfg := Default()
	cfg.Bank.Path = "/tmp/custom-bank.db"
	path, err := cfg.BankPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/custom-bank.db" {
		t.Errorf("bank path = %q", path)
	}

	cfg.Bank.Path = ""
	path, err = cfg.BankPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "bank.db" {
		t.Errorf("default bank path = %q", path)
	}
}

func TestDebugLogPath(t *testing.T) {
	cfg := Default()
	if cfg.Debug.Enabled {
		t.Error("debug logging enabled by default")
	}

	cfg.Debug.Path = "/tmp/quizcards-debug.log"
	path, err := cfg.DebugLogPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/quizcards-debug.log" {
		t.Errorf("debug path = %q", path)
	}

	cfg.Debug.Path = ""
	path, err = cfg.DebugLogPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "debug.log" {
		t.Errorf("default debug path = %q", path)
	}

	t.Setenv("QUIZCARDS_DEBUG", "1")
	cfg.ApplyEnvOverrides()
	if !cfg.Debug.Enabled {
		t.Error("QUIZCARDS_DEBUG=1 did not enable debug logging")
	}
}

func TestLoadHonorsConfigEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.toml")
	content := "[generation]\nnum_questions = 9\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUIZCARDS_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generation.NumQuestions != 9 {
		t.Errorf("question count = %d, want 9 from QUIZCARDS_CONFIG file", cfg.Generation.NumQuestions)
	}
}

func TestLoadConfigEnvVarMissingFileFails(t *testing.T) {
	t.Setenv("QUIZCARDS_CONFIG", filepath.Join(t.TempDir(), "no-existe.toml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing QUIZCARDS_CONFIG file")
	}
}
