// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package annotation

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console writes annotations as labelled lines. Not safe for concurrent use.
type Console struct {
	w    io.Writer
	info *color.Color
	warn *color.Color
	fail *color.Color
}

// NewConsole creates a console sink. colored turns ANSI colors on or off
// regardless of what fatih/color detects for the process.
func NewConsole(w io.Writer, colored bool) *Console {
	c := &Console{
		w:    w,
		info: color.New(color.FgCyan),
		warn: color.New(color.FgYellow, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}
	for _, col := range []*color.Color{c.info, c.warn, c.fail} {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) PostInfo(text string, persistent bool) {
	c.write(c.info, "[info]", text, persistent)
}

func (c *Console) PostWarning(text string, persistent bool) {
	c.write(c.warn, "[warn]", text, persistent)
}

func (c *Console) PostFailure(text string, persistent bool) {
	c.write(c.fail, "[fail]", text, persistent)
}

func (c *Console) write(col *color.Color, label, text string, persistent bool) {
	suffix := ""
	if persistent {
		suffix = " (sticky)"
	}
	fmt.Fprintf(c.w, "%s %s%s\n", col.Sprint(label), text, suffix)
}
