// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform posts summary comments to code review platforms and
// renders file links into their repositories.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Platform is a code review platform that accepts pull/merge request comments.
type Platform interface {
	// Name returns the platform name (github, gitlab)
	Name() string

	// PostComment posts a comment to a pull/merge request
	PostComment(ctx context.Context, opts CommentOptions) error
}

// CommentOptions contains options for posting a comment
type CommentOptions struct {
	PRID int
	Body string
	// Marker, when set, makes PostComment update the first existing comment
	// whose body contains it instead of adding a new one.
	Marker string
}

// existingComment is the subset of a comment/note both APIs return.
type existingComment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

const commentsPerPage = 100

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// doJSON sends body (if any) as JSON, checks the status and decodes the
// response into out (if any).
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s (status %d): %s", method, url, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// findComment pages through comments until one contains marker. pageURL
// builds the URL of a 1-based page. Returns 0 when none matches.
func findComment(ctx context.Context, client *http.Client, headers map[string]string, pageURL func(page int) string, marker string) (int64, error) {
	for page := 1; ; page++ {
		var comments []existingComment
		if err := doJSON(ctx, client, http.MethodGet, pageURL(page), headers, nil, http.StatusOK, &comments); err != nil {
			return 0, err
		}
		for _, c := range comments {
			if strings.Contains(c.Body, marker) {
				return c.ID, nil
			}
		}
		if len(comments) < commentsPerPage {
			return 0, nil
		}
	}
}
