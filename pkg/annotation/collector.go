// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package annotation

import (
	"fmt"
	"strings"
)

// CommentMarker identifies comments written by xcode-summary so a poster can
// update its previous comment instead of adding a new one.
const CommentMarker = "<!-- xcode-summary -->"

// Collector records annotations in order and renders them as one review
// comment. Not safe for concurrent use.
type Collector struct {
	annotations []Annotation
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) PostInfo(text string, persistent bool) {
	c.add(LevelInfo, text, persistent)
}

func (c *Collector) PostWarning(text string, persistent bool) {
	c.add(LevelWarning, text, persistent)
}

func (c *Collector) PostFailure(text string, persistent bool) {
	c.add(LevelFailure, text, persistent)
}

func (c *Collector) add(level Level, text string, persistent bool) {
	c.annotations = append(c.annotations, Annotation{Level: level, Text: text, Persistent: persistent})
}

// Annotations returns a copy of everything posted so far.
func (c *Collector) Annotations() []Annotation {
	out := make([]Annotation, len(c.annotations))
	copy(out, c.annotations)
	return out
}

// Counts returns how many annotations were posted at each level.
func (c *Collector) Counts() map[Level]int {
	counts := map[Level]int{}
	for _, a := range c.annotations {
		counts[a.Level]++
	}
	return counts
}

// Len returns the number of annotations.
func (c *Collector) Len() int {
	return len(c.annotations)
}

var sections = []struct {
	level Level
	noun  string
	emoji string
}{
	{LevelFailure, "Error", ":no_entry_sign:"},
	{LevelWarning, "Warning", ":warning:"},
	{LevelInfo, "Message", ":book:"},
}

// Render returns the Markdown comment body, or "" when nothing was posted.
// footer, when set, is appended below the tables.
//
// Persistent does not change the output. The comment is replaced as a whole
// on every run, so no entry outlives the run that posted it.
func (c *Collector) Render(footer string) string {
	if len(c.annotations) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(CommentMarker)
	b.WriteString("\n")

	for _, sec := range sections {
		var texts []string
		for _, a := range c.annotations {
			if a.Level == sec.level {
				texts = append(texts, a.Text)
			}
		}
		if len(texts) == 0 {
			continue
		}
		writeTable(&b, plural(len(texts), sec.noun), sec.emoji, texts)
	}

	if footer != "" {
		fmt.Fprintf(&b, "\n<p align=\"right\"><sub>%s</sub></p>\n", footer)
	}
	return b.String()
}

// writeTable uses an HTML table because entries carry code fences and line breaks.
func writeTable(b *strings.Builder, title, emoji string, texts []string) {
	b.WriteString("\n<table>\n  <thead>\n    <tr>\n")
	b.WriteString("      <th width=\"50\"></th>\n")
	fmt.Fprintf(b, "      <th width=\"100%%\">%s</th>\n", title)
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")
	for _, t := range texts {
		fmt.Fprintf(b, "    <tr>\n      <td>%s</td>\n      <td>\n\n%s\n\n</td>\n    </tr>\n", emoji, t)
	}
	b.WriteString("  </tbody>\n</table>\n")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
