// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
)

const (
	OutputConsole  = "console"
	OutputMarkdown = "markdown"
	OutputComment  = "comment"
)

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	root, _ := os.Getwd()

	return &Config{
		ProjectRoot:  root,
		IgnoredFiles: []string{},
		Output:       OutputConsole,
		Platform: PlatformConfig{
			GitHub: DefaultGitHubPlatform(),
			GitLab: DefaultGitLabPlatform(),
		},
		Global: DefaultGlobalConfig(),
	}
}

// DefaultGitHubPlatform returns default GitHub platform config.
func DefaultGitHubPlatform() *GitHubPlatformConfig {
	return &GitHubPlatformConfig{
		TokenEnv: "GITHUB_TOKEN",
	}
}

// DefaultGitLabPlatform returns default GitLab platform config.
func DefaultGitLabPlatform() *GitLabPlatformConfig {
	return &GitLabPlatformConfig{
		TokenEnv: "GITLAB_TOKEN",
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel: "info",
		Color:    "auto",
	}
}
