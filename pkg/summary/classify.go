// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package summary

import "strings"

// Options configures a Classifier.
type Options struct {
	// ProjectRoot is stripped from build paths. Empty disables relativizing.
	ProjectRoot string
	// IgnoredFiles are shell globs matched against relativized paths.
	IgnoredFiles []string
	// Links renders file locations. Nil renders paths verbatim.
	Links LinkRenderer
}

// Summary is the classified content of a Report.
type Summary struct {
	Messages []string
	Warnings []string
	Errors   []string
}

// Classifier extracts and renders the issue categories of a Report. It holds
// no mutable state and may be shared.
type Classifier struct {
	formatter *Formatter
}

// NewClassifier builds a classifier; it fails only on an invalid ignore pattern.
func NewClassifier(opts Options) (*Classifier, error) {
	paths, err := NewPathResolver(opts.ProjectRoot, opts.IgnoredFiles)
	if err != nil {
		return nil, err
	}
	return &Classifier{formatter: NewFormatter(paths, NewLinkFormatter(opts.Links))}, nil
}

// Classify returns all three categories of r.
func (c *Classifier) Classify(r *Report) Summary {
	return Summary{
		Messages: c.Messages(r),
		Warnings: c.Warnings(r),
		Errors:   c.Errors(r),
	}
}

// Messages returns the trimmed test summary messages.
func (c *Classifier) Messages(r *Report) []string {
	if r == nil {
		r = &Report{}
	}
	trimmed := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		trimmed = append(trimmed, strings.TrimSpace(m))
	}
	return uniq(trimmed)
}

// Warnings returns plain warnings, then linker warnings, then compile
// warnings whose file is not ignored.
func (c *Classifier) Warnings(r *Report) []string {
	if r == nil {
		r = &Report{}
	}
	return uniq(
		r.Warnings,
		r.LinkerWarnings,
		c.formatAll(compileIssues(r.CompileWarnings)),
	)
}

// Errors returns plain errors followed by compile, missing file, undefined
// symbol and duplicate symbol errors, then every test failure.
func (c *Classifier) Errors(r *Report) []string {
	if r == nil {
		r = &Report{}
	}

	issues := compileIssues(r.CompileErrors)
	for _, i := range r.MissingFileErrors {
		issues = append(issues, i)
	}
	for _, i := range r.UndefinedSymbolErrors {
		issues = append(issues, i)
	}
	for _, i := range r.DuplicateSymbolErrors {
		issues = append(issues, i)
	}
	for _, s := range r.TestFailures {
		issues = append(issues, s)
	}

	return uniq(r.Errors, c.formatAll(issues))
}

func (c *Classifier) formatAll(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, c.formatter.Format(i)...)
	}
	return out
}

func compileIssues(in []CompileIssue) []Issue {
	out := make([]Issue, 0, len(in))
	for _, i := range in {
		out = append(out, i)
	}
	return out
}

// uniq concatenates lists, dropping blanks and later duplicates.
func uniq(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if strings.TrimSpace(s) == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
