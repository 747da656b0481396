// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
)

const (
	NameGitHub = "github"
	NameGitLab = "gitlab"
	NameLocal  = "local"
)

// Environment describes the CI run the summary belongs to.
type Environment struct {
	Platform  string // github, gitlab or local
	Repo      string
	ServerURL string
	APIURL    string
	SHA       string
	PRNumber  int
}

var pullRefPattern = regexp.MustCompile(`^refs/pull/(\d+)/`)

// DetectEnvironment reads the CI environment through getenv (usually os.Getenv).
func DetectEnvironment(getenv func(string) string) Environment {
	switch {
	case getenv("GITHUB_ACTIONS") == "true":
		env := Environment{
			Platform:  NameGitHub,
			Repo:      getenv("GITHUB_REPOSITORY"),
			ServerURL: valueOr(getenv("GITHUB_SERVER_URL"), "https://github.com"),
			APIURL:    valueOr(getenv("GITHUB_API_URL"), defaultGitHubAPIURL),
			SHA:       getenv("GITHUB_SHA"),
		}
		if m := pullRefPattern.FindStringSubmatch(getenv("GITHUB_REF")); m != nil {
			env.PRNumber, _ = strconv.Atoi(m[1])
		} else if n, err := strconv.Atoi(getenv("PR_NUMBER")); err == nil {
			env.PRNumber = n
		}
		return env

	case getenv("GITLAB_CI") == "true":
		env := Environment{
			Platform:  NameGitLab,
			Repo:      getenv("CI_PROJECT_PATH"),
			ServerURL: valueOr(getenv("CI_SERVER_URL"), "https://gitlab.com"),
			APIURL:    valueOr(getenv("CI_API_V4_URL"), defaultGitLabAPIURL),
			SHA:       getenv("CI_COMMIT_SHA"),
		}
		env.PRNumber, _ = strconv.Atoi(getenv("CI_MERGE_REQUEST_IID"))
		return env
	}

	return Environment{Platform: NameLocal}
}

// Linker returns the link renderer for the environment's hosting service.
func (e Environment) Linker() Linker {
	if e.Repo == "" || e.SHA == "" {
		return PlainLinks{}
	}
	switch e.Platform {
	case NameGitHub:
		return GitHubLinks{ServerURL: e.ServerURL, Repo: e.Repo, Ref: e.SHA}
	case NameGitLab:
		return GitLabLinks{ServerURL: e.ServerURL, Repo: e.Repo, Ref: e.SHA}
	default:
		return PlainLinks{}
	}
}

// NewPlatform creates the comment client for the environment. apiURL, when
// set, comes from user configuration: it replaces the detected API URL and
// must pass validateBaseURL. The detected URL is supplied by the CI runner
// itself, so self-hosted instances on private addresses keep working.
func NewPlatform(env Environment, token, apiURL string) (Platform, error) {
	if token == "" {
		return nil, errors.ConfigError("no API token available for "+env.Platform, nil)
	}

	switch env.Platform {
	case NameGitHub:
		c := NewGitHubClient(token, env.Repo)
		if err := applyBaseURL(&c.baseURL, c.SetBaseURL, env.APIURL, apiURL); err != nil {
			return nil, err
		}
		return c, nil
	case NameGitLab:
		c := NewGitLabClient(token, env.Repo)
		if err := applyBaseURL(&c.baseURL, c.SetBaseURL, env.APIURL, apiURL); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.ConfigError("comments need a GitHub Actions or GitLab CI environment", nil).
			WithContext("platform", env.Platform)
	}
}

// applyBaseURL sets a configured URL through the validating setter and a
// detected one as is.
func applyBaseURL(base *string, set func(string) error, detected, configured string) error {
	if configured != "" {
		return set(configured)
	}
	if detected != "" {
		*base = strings.TrimSuffix(detected, "/")
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
