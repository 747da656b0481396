// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"
)

// Validator validates configuration.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a configuration.
func (v *Validator) Validate(cfg *Config) error {
	if err := oneOf("output", cfg.Output, OutputConsole, OutputMarkdown, OutputComment); err != nil {
		return err
	}
	if err := v.ValidatePlatform(&cfg.Platform); err != nil {
		return err
	}
	return v.ValidateGlobal(&cfg.Global)
}

// ValidatePlatform checks that tokens are referenced through env variables.
func (v *Validator) ValidatePlatform(cfg *PlatformConfig) error {
	if cfg.GitHub != nil && cfg.GitHub.TokenEnv == "" {
		return &ValidationError{
			Field:   "platform.github.token_env",
			Message: "must be set (token field is not allowed)",
		}
	}
	if cfg.GitLab != nil && cfg.GitLab.TokenEnv == "" {
		return &ValidationError{
			Field:   "platform.gitlab.token_env",
			Message: "must be set (token field is not allowed)",
		}
	}
	return nil
}

// ValidateGlobal validates global configuration.
func (v *Validator) ValidateGlobal(cfg *GlobalConfig) error {
	if err := oneOf("global.log_level", cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	return oneOf("global.color", cfg.Color, "auto", "always", "never")
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
