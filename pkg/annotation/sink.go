// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package annotation provides the sinks that receive rendered summary entries.
package annotation

// Level is the severity of an annotation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelFailure Level = "failure"
)

// Annotation is one posted entry. Persistent entries are meant to stay
// visible across reruns against the same review.
type Annotation struct {
	Level      Level
	Text       string
	Persistent bool
}

// Sink receives annotations. Implementations own their delivery failures.
type Sink interface {
	PostInfo(text string, persistent bool)
	PostWarning(text string, persistent bool)
	PostFailure(text string, persistent bool)
}

// Multi fans every annotation out to each sink in order.
type Multi []Sink

func (m Multi) PostInfo(text string, persistent bool) {
	for _, s := range m {
		s.PostInfo(text, persistent)
	}
}

func (m Multi) PostWarning(text string, persistent bool) {
	for _, s := range m {
		s.PostWarning(text, persistent)
	}
}

func (m Multi) PostFailure(text string, persistent bool) {
	for _, s := range m {
		s.PostFailure(text, persistent)
	}
}
