// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package summary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// locationPattern matches "path:line" with an optional ":column" suffix.
var locationPattern = regexp.MustCompile(`^(.+?):(\d+)(?::\d+)?$`)

// ParseLocation splits "path:line[:column]" into the clean path and the line.
// ok is false when raw carries no numeric line.
func ParseLocation(raw string) (path, line string, ok bool) {
	m := locationPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// PathResolver makes build paths repo-relative and applies ignore patterns.
// It is immutable once built.
type PathResolver struct {
	root    string
	ignored []ignorePattern
}

// ignorePattern matches like File.fnmatch without flags. Braces are literal
// and a wildcard never matches a leading '.'.
type ignorePattern struct {
	glob glob.Glob
	dot  bool // pattern starts with a literal '.'
}

func (p ignorePattern) match(path string) bool {
	if strings.HasPrefix(path, ".") && !p.dot {
		return false
	}
	return p.glob.Match(path)
}

// NewPathResolver builds a resolver for the given project root and ignore
// globs. An empty root disables relativizing.
func NewPathResolver(root string, ignoredFiles []string) (*PathResolver, error) {
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}

	r := &PathResolver{root: root}
	for _, pattern := range ignoredFiles {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		// No separators, so '*' also matches '/'.
		g, err := glob.Compile(literalBraces(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		r.ignored = append(r.ignored, ignorePattern{glob: g, dot: strings.HasPrefix(pattern, ".")})
	}
	return r, nil
}

// Root returns the normalized project root.
func (r *PathResolver) Root() string {
	return r.root
}

// Relativize removes the first occurrence of the project root from path.
// ok is false when no root is configured.
func (r *PathResolver) Relativize(path string) (string, bool) {
	if r.root == "" {
		return "", false
	}
	return strings.Replace(path, r.root, "", 1), true
}

// ShouldIgnore reports whether the file behind path matches any ignore pattern.
func (r *PathResolver) ShouldIgnore(path string) bool {
	if clean, _, ok := ParseLocation(path); ok {
		path = clean
	}
	for _, p := range r.ignored {
		if p.match(path) {
			return true
		}
	}
	return false
}

// literalBraces escapes unescaped '{' and '}' so they match themselves.
func literalBraces(pattern string) string {
	var b strings.Builder
	escaped := false
	for _, r := range pattern {
		if !escaped && (r == '{' || r == '}') {
			b.WriteByte('\\')
		}
		escaped = !escaped && r == '\\'
		b.WriteRune(r)
	}
	return b.String()
}

// resolve relativizes path, keeping it as is when no root is configured.
func (r *PathResolver) resolve(path string) string {
	if rel, ok := r.Relativize(path); ok {
		return rel
	}
	return path
}
