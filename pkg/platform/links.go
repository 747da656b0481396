// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// Linker renders a repo-relative path, optionally ending in "#L<line>", as
// the label used in a comment.
type Linker interface {
	RenderLink(path string) string
}

// PlainLinks renders paths verbatim, for local runs without a hosting service.
type PlainLinks struct{}

// RenderLink returns path unchanged.
func (PlainLinks) RenderLink(path string) string {
	return path
}

// GitHubLinks renders HTML links to files at a commit on GitHub.
type GitHubLinks struct {
	ServerURL string // https://github.com
	Repo      string // owner/name
	Ref       string // commit SHA or branch
}

// RenderLink renders <a href='server/repo/blob/ref/path'>path</a>.
func (l GitHubLinks) RenderLink(path string) string {
	return htmlLink(l.ServerURL, l.Repo, "blob", l.Ref, path)
}

// GitLabLinks renders HTML links to files at a commit on GitLab.
type GitLabLinks struct {
	ServerURL string // https://gitlab.com
	Repo      string // group/project
	Ref       string
}

// RenderLink renders <a href='server/repo/-/blob/ref/path'>path</a>.
func (l GitLabLinks) RenderLink(path string) string {
	return htmlLink(l.ServerURL, l.Repo, "-/blob", l.Ref, path)
}

func htmlLink(server, repo, blob, ref, path string) string {
	label := strings.TrimPrefix(path, "/")
	file, fragment, _ := strings.Cut(label, "#")

	segments := strings.Split(file, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	href := fmt.Sprintf("%s/%s/%s/%s/%s", strings.TrimSuffix(server, "/"), repo, blob, ref, strings.Join(segments, "/"))
	if fragment != "" {
		href += "#" + fragment
	}
	return fmt.Sprintf("<a href='%s'>%s</a>", href, label)
}
