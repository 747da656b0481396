// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package summary

// LinkRenderer turns a repo-relative path, optionally carrying a "#L<line>"
// anchor, into the label shown in an annotation. It must not fail.
type LinkRenderer interface {
	RenderLink(path string) string
}

// LinkRendererFunc adapts a function to LinkRenderer.
type LinkRendererFunc func(path string) string

// RenderLink calls f(path).
func (f LinkRendererFunc) RenderLink(path string) string {
	return f(path)
}

// LinkFormatter anchors "path:line" locations and delegates to a LinkRenderer.
type LinkFormatter struct {
	renderer LinkRenderer
}

// NewLinkFormatter wraps renderer. A nil renderer renders paths verbatim.
func NewLinkFormatter(renderer LinkRenderer) *LinkFormatter {
	return &LinkFormatter{renderer: renderer}
}

// FormatPath renders "file:42" as a link to "file#L42". Anything that does
// not parse as a location goes to the renderer unchanged.
func (f *LinkFormatter) FormatPath(path string) string {
	if clean, line, ok := ParseLocation(path); ok {
		path = clean + "#L" + line
	}
	if f.renderer == nil {
		return path
	}
	return f.renderer.RenderLink(path)
}
