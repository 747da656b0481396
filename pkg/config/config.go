// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for xcode-summary.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded, project root = working directory)
// 2. Project Config: ./.xcode-summary.yaml, ./.xcode-summary.yml or ./.xcode-summary.toml
// 3. Environment Variables: XCODE_SUMMARY_*
// 4. Command line flags (applied by the CLI)
package config

// Config represents the complete application configuration.
type Config struct {
	ProjectRoot  string         `yaml:"project_root" toml:"project_root"`
	IgnoredFiles []string       `yaml:"ignored_files" toml:"ignored_files"`
	Output       string         `yaml:"output" toml:"output"` // console, markdown, comment
	FailOnErrors bool           `yaml:"fail_on_errors" toml:"fail_on_errors"`
	Platform     PlatformConfig `yaml:"platform" toml:"platform"`
	Global       GlobalConfig   `yaml:"global" toml:"global"`
}

// PlatformConfig contains settings for the review platforms comments are posted to.
type PlatformConfig struct {
	GitHub *GitHubPlatformConfig `yaml:"github,omitempty" toml:"github,omitempty"`
	GitLab *GitLabPlatformConfig `yaml:"gitlab,omitempty" toml:"gitlab,omitempty"`
}

// GitHubPlatformConfig contains GitHub-specific settings.
type GitHubPlatformConfig struct {
	TokenEnv string `yaml:"token_env" toml:"token_env"` // e.g., "GITHUB_TOKEN"
	APIURL   string `yaml:"api_url" toml:"api_url"`     // GitHub Enterprise API URL
	// token field is NOT allowed - must use token_env
}

// GitLabPlatformConfig contains GitLab-specific settings.
type GitLabPlatformConfig struct {
	TokenEnv string `yaml:"token_env" toml:"token_env"` // e.g., "GITLAB_TOKEN"
	APIURL   string `yaml:"api_url" toml:"api_url"`     // self-hosted API URL
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level" toml:"log_level"` // debug, info, warn, error
	Color    string `yaml:"color" toml:"color"`         // auto, always, never
}
