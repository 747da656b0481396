// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package summary

import (
	"fmt"
	"strings"
)

var reasonEscaper = strings.NewReplacer("<", `\<`, ">", `\>`)

// EscapeReason escapes angle brackets so free-form compiler text is not read as markup.
func EscapeReason(reason string) string {
	return reasonEscaper.Replace(reason)
}

// Formatter renders issues into annotation text.
type Formatter struct {
	paths *PathResolver
	links *LinkFormatter
}

// NewFormatter creates a formatter over the given resolver and link formatter.
func NewFormatter(paths *PathResolver, links *LinkFormatter) *Formatter {
	return &Formatter{paths: paths, links: links}
}

// Format dispatches issue to its formatter. A nil result means the issue
// was dropped (its file is ignored).
func (f *Formatter) Format(issue Issue) []string {
	switch i := issue.(type) {
	case CompileIssue:
		if s, ok := f.FormatCompileIssue(i); ok {
			return []string{s}
		}
		return nil
	case MissingFileIssue:
		return []string{f.FormatMissingFileIssue(i)}
	case UndefinedSymbolIssue:
		return []string{FormatUndefinedSymbolIssue(i)}
	case DuplicateSymbolIssue:
		return []string{FormatDuplicateSymbolIssue(i)}
	case TestSuite:
		return f.FormatTestFailures(i.Name, i.Failures)
	default:
		return nil
	}
}

// FormatCompileIssue renders a compiler warning or error. ok is false when the
// file matches an ignore pattern; errors are dropped the same way as warnings.
func (f *Formatter) FormatCompileIssue(i CompileIssue) (string, bool) {
	path := f.paths.resolve(i.FilePath)
	if f.paths.ShouldIgnore(path) {
		return "", false
	}

	return fmt.Sprintf("**%s**: %s  <br />```\n%s\n```",
		f.links.FormatPath(path), EscapeReason(i.Reason), i.Line), true
}

// FormatMissingFileIssue renders a missing file error. Ignore patterns do not apply.
func (f *Formatter) FormatMissingFileIssue(i MissingFileIssue) string {
	path := f.paths.resolve(i.FilePath)
	return fmt.Sprintf("**%s**: %s", EscapeReason(i.Reason), f.links.FormatPath(path))
}

// FormatUndefinedSymbolIssue renders an undefined symbol linker error.
func FormatUndefinedSymbolIssue(i UndefinedSymbolIssue) string {
	return fmt.Sprintf("%s  <br />> Symbol: %s  <br />> Referenced from: %s",
		i.Message, i.Symbol, i.Reference)
}

// FormatDuplicateSymbolIssue renders a duplicate symbol linker error listing
// the file name of every definition.
func FormatDuplicateSymbolIssue(i DuplicateSymbolIssue) string {
	names := make([]string, 0, len(i.FilePaths))
	for _, p := range i.FilePaths {
		names = append(names, baseName(p))
	}
	return fmt.Sprintf("%s  <br />> %s", i.Message, strings.Join(names, "<br /> "))
}

// FormatTestFailures renders one string per failure of the suite.
func (f *Formatter) FormatTestFailures(suite string, failures []TestFailure) []string {
	out := make([]string, 0, len(failures))
	for _, tf := range failures {
		path := f.paths.resolve(tf.FilePath)
		out = append(out, fmt.Sprintf("**%s**: %s, %s  <br />  %s",
			suite, tf.TestCase, EscapeReason(tf.Reason), f.links.FormatPath(path)))
	}
	return out
}

// baseName returns the last non-empty '/'-separated segment.
func baseName(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
