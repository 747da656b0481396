// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
)

const defaultGitHubAPIURL = "https://api.github.com"

// GitHubClient implements Platform for GitHub pull requests.
type GitHubClient struct {
	token   string
	baseURL string
	repo    string // owner/name
	client  *http.Client
}

// NewGitHubClient creates a new GitHub platform client
func NewGitHubClient(token, repo string) *GitHubClient {
	baseURL := os.Getenv("GITHUB_API_URL")
	if baseURL == "" {
		baseURL = defaultGitHubAPIURL
	}

	return &GitHubClient{
		token:   token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		repo:    repo,
		client:  newHTTPClient(),
	}
}

// SetBaseURL sets a custom API URL for GitHub Enterprise
func (g *GitHubClient) SetBaseURL(url string) error {
	if err := validateBaseURL(url); err != nil {
		return errors.ConfigError("invalid GitHub API URL", err)
	}
	g.baseURL = strings.TrimSuffix(url, "/")
	return nil
}

// Name returns the platform name.
func (g *GitHubClient) Name() string {
	return "github"
}

func (g *GitHubClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + g.token,
		"Accept":        "application/vnd.github+json",
	}
}

// PostComment posts a comment on a GitHub pull request, or updates the
// previous one carrying opts.Marker.
func (g *GitHubClient) PostComment(ctx context.Context, opts CommentOptions) error {
	if opts.PRID == 0 {
		return errors.PlatformError("PR number is required", nil)
	}
	payload := map[string]string{"body": opts.Body}

	if opts.Marker != "" {
		id, err := findComment(ctx, g.client, g.headers(), func(page int) string {
			return fmt.Sprintf("%s/repos/%s/issues/%d/comments?per_page=%d&page=%d", g.baseURL, g.repo, opts.PRID, commentsPerPage, page)
		}, opts.Marker)
		if err != nil {
			return errors.PlatformError("failed to list comments", err)
		}
		if id != 0 {
			url := fmt.Sprintf("%s/repos/%s/issues/comments/%d", g.baseURL, g.repo, id)
			if err := doJSON(ctx, g.client, http.MethodPatch, url, g.headers(), payload, http.StatusOK, nil); err != nil {
				return errors.PlatformError("failed to update comment", err)
			}
			return nil
		}
	}

	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", g.baseURL, g.repo, opts.PRID)
	if err := doJSON(ctx, g.client, http.MethodPost, url, g.headers(), payload, http.StatusCreated, nil); err != nil {
		return errors.PlatformError("failed to post comment", err)
	}
	return nil
}
