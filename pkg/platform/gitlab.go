// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
)

const defaultGitLabAPIURL = "https://gitlab.com/api/v4"

// GitLabClient implements Platform for GitLab merge requests
type GitLabClient struct {
	token   string
	baseURL string // For GitLab self-hosted
	repo    string // project ID or path
	client  *http.Client
}

// NewGitLabClient creates a new GitLab platform client
func NewGitLabClient(token, repo string) *GitLabClient {
	baseURL := os.Getenv("CI_API_V4_URL")
	if baseURL == "" {
		baseURL = defaultGitLabAPIURL
	}

	return &GitLabClient{
		token:   token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		repo:    repo,
		client:  newHTTPClient(),
	}
}

// SetBaseURL sets a custom base URL for GitLab self-hosted
func (g *GitLabClient) SetBaseURL(url string) error {
	if err := validateBaseURL(url); err != nil {
		return errors.ConfigError("invalid GitLab API URL", err)
	}
	g.baseURL = strings.TrimSuffix(url, "/")
	return nil
}

// Name returns the platform name.
func (g *GitLabClient) Name() string {
	return "gitlab"
}

func (g *GitLabClient) headers() map[string]string {
	return map[string]string{"PRIVATE-TOKEN": g.token}
}

// notesURL is the notes endpoint of a merge request; GitLab uses the IID
// (user-facing MR number) and a URL-encoded project path.
func (g *GitLabClient) notesURL(mrIID int) string {
	return fmt.Sprintf("%s/projects/%s/merge_requests/%d/notes", g.baseURL, url.PathEscape(g.repo), mrIID)
}

// PostComment posts a note on a GitLab merge request, or updates the
// previous one carrying opts.Marker.
func (g *GitLabClient) PostComment(ctx context.Context, opts CommentOptions) error {
	if opts.PRID == 0 {
		return errors.PlatformError("MR IID is required", nil)
	}
	payload := map[string]string{"body": opts.Body}
	notes := g.notesURL(opts.PRID)

	if opts.Marker != "" {
		id, err := findComment(ctx, g.client, g.headers(), func(page int) string {
			return fmt.Sprintf("%s?per_page=%d&page=%d", notes, commentsPerPage, page)
		}, opts.Marker)
		if err != nil {
			return errors.PlatformError("failed to list notes", err)
		}
		if id != 0 {
			if err := doJSON(ctx, g.client, http.MethodPut, fmt.Sprintf("%s/%d", notes, id), g.headers(), payload, http.StatusOK, nil); err != nil {
				return errors.PlatformError("failed to update note", err)
			}
			return nil
		}
	}

	if err := doJSON(ctx, g.client, http.MethodPost, notes, g.headers(), payload, http.StatusCreated, nil); err != nil {
		return errors.PlatformError("failed to post note", err)
	}
	return nil
}
