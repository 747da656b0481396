// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "XCODE_SUMMARY_"
)

// ProjectConfigFiles are the project-level config file names, in lookup order.
var ProjectConfigFiles = []string{
	".xcode-summary.yaml",
	".xcode-summary.yml",
	".xcode-summary.toml",
}

// Loader loads configuration from files and environment.
type Loader struct {
	dir  string
	path string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithDir sets the directory the project config search starts from.
func (l *Loader) WithDir(dir string) *Loader {
	l.dir = dir
	return l
}

// WithPath loads this file instead of searching for a project config.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Explicit file (WithPath) or the nearest project config
// 3. Environment Variables (XCODE_SUMMARY_*)
func (l *Loader) Load() (*Config, error) {
	path := l.path
	if path == "" {
		dir := l.dir
		if dir == "" {
			dir = "."
		}
		path = FindConfigFile(dir)
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := l.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "PROJECT_ROOT"); v != "" {
		cfg.ProjectRoot = v
	}
	if v := os.Getenv(EnvPrefix + "IGNORED_FILES"); v != "" {
		cfg.IgnoredFiles = SplitList(v)
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvPrefix + "FAIL_ON_ERRORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "fail_on_errors", Err: err}
		}
		cfg.FailOnErrors = b
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	return nil
}

// applyDefaults fills optional fields a config file may have cleared.
func applyDefaults(cfg *Config) {
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.Global.LogLevel = strings.ToLower(cfg.Global.LogLevel)
	cfg.Global.Color = strings.ToLower(cfg.Global.Color)
	if cfg.Output == "" {
		cfg.Output = OutputConsole
	}
	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = "info"
	}
	if cfg.Global.Color == "" {
		cfg.Global.Color = "auto"
	}
	if cfg.Platform.GitHub == nil {
		cfg.Platform.GitHub = DefaultGitHubPlatform()
	}
	if cfg.Platform.GitLab == nil {
		cfg.Platform.GitLab = DefaultGitLabPlatform()
	}
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return "config error in " + e.Path + ": " + e.Err.Error()
	}
	if e.Field != "" {
		return "config error for " + e.Field + ": " + e.Err.Error()
	}
	return "config error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FindConfigFile walks up from startDir and returns the first project config
// file found, or "" when there is none.
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range ProjectConfigFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return ""
		}
		dir = parent
	}
}
