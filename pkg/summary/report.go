// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package summary turns an xcpretty JSON build summary into review annotations.
//
// The pipeline is read, parse, classify, emit. Parsing produces an immutable
// Report; the Classifier renders it into three deduplicated lists (messages,
// warnings, errors); the Reporter hands those lists to an annotation sink.
package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Report is the parsed build summary. Every collection is optional and a
// missing or null key reads as empty.
type Report struct {
	Messages              []string
	Warnings              []string
	LinkerWarnings        []string
	CompileWarnings       []CompileIssue
	Errors                []string
	CompileErrors         []CompileIssue
	MissingFileErrors     []MissingFileIssue
	UndefinedSymbolErrors []UndefinedSymbolIssue
	DuplicateSymbolErrors []DuplicateSymbolIssue
	TestFailures          TestSuites
}

// UnmarshalJSON accepts the camelCase member names as well as the snake_case
// names xcpretty-json-formatter writes.
func (r *Report) UnmarshalJSON(data []byte) error {
	var out Report
	err := decodeObject(data,
		bind(&out.Messages, "messages", "tests_summary_messages"),
		bind(&out.Warnings, "warnings"),
		bind(&out.LinkerWarnings, "linkerWarnings", "ld_warnings"),
		bind(&out.CompileWarnings, "compileWarnings", "compile_warnings"),
		bind(&out.Errors, "errors"),
		bind(&out.CompileErrors, "compileErrors", "compile_errors"),
		bind(&out.MissingFileErrors, "missingFileErrors", "file_missing_errors"),
		bind(&out.UndefinedSymbolErrors, "undefinedSymbolErrors", "undefined_symbols_errors"),
		bind(&out.DuplicateSymbolErrors, "duplicateSymbolErrors", "duplicate_symbols_errors"),
		bind(&out.TestFailures, "testFailures", "tests_failures"),
	)
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// Issue is one of the structured issue kinds found in a Report.
type Issue interface {
	issue()
}

// CompileIssue is a compiler warning or error. Line is the offending source
// text, not a line number.
type CompileIssue struct {
	FilePath string
	Reason   string
	Line     string
}

func (i *CompileIssue) UnmarshalJSON(data []byte) error {
	var out CompileIssue
	err := decodeObject(data,
		bind(&out.FilePath, "filePath", "file_path"),
		bind(&out.Reason, "reason"),
		bind(&out.Line, "line"),
	)
	if err != nil {
		return err
	}
	*i = out
	return nil
}

// MissingFileIssue is reported when the build references a file that does not exist.
type MissingFileIssue struct {
	FilePath string
	Reason   string
}

func (i *MissingFileIssue) UnmarshalJSON(data []byte) error {
	var out MissingFileIssue
	err := decodeObject(data,
		bind(&out.FilePath, "filePath", "file_path"),
		bind(&out.Reason, "reason"),
	)
	if err != nil {
		return err
	}
	*i = out
	return nil
}

// UndefinedSymbolIssue is a linker error for an unresolved symbol.
type UndefinedSymbolIssue struct {
	Message   string
	Symbol    string
	Reference string
}

func (i *UndefinedSymbolIssue) UnmarshalJSON(data []byte) error {
	var out UndefinedSymbolIssue
	err := decodeObject(data,
		bind(&out.Message, "message"),
		bind(&out.Symbol, "symbol"),
		bind(&out.Reference, "reference"),
	)
	if err != nil {
		return err
	}
	*i = out
	return nil
}

// DuplicateSymbolIssue is a linker error for a symbol defined in several files.
type DuplicateSymbolIssue struct {
	Message   string
	FilePaths []string
}

func (i *DuplicateSymbolIssue) UnmarshalJSON(data []byte) error {
	var out DuplicateSymbolIssue
	err := decodeObject(data,
		bind(&out.Message, "message"),
		bind(&out.FilePaths, "filePaths", "file_paths"),
	)
	if err != nil {
		return err
	}
	*i = out
	return nil
}

// TestFailure is a single failed test case.
type TestFailure struct {
	FilePath string
	TestCase string
	Reason   string
}

func (f *TestFailure) UnmarshalJSON(data []byte) error {
	var out TestFailure
	err := decodeObject(data,
		bind(&out.FilePath, "filePath", "file_path"),
		bind(&out.TestCase, "testCase", "test_case"),
		bind(&out.Reason, "reason"),
	)
	if err != nil {
		return err
	}
	*f = out
	return nil
}

// TestSuite groups the failures reported under one suite name.
type TestSuite struct {
	Name     string
	Failures []TestFailure
}

// member binds the accepted spellings of an object key to its destination.
type member struct {
	dst  any
	keys []string
}

func bind(dst any, keys ...string) member {
	return member{dst: dst, keys: keys}
}

func (CompileIssue) issue()         {}
func (MissingFileIssue) issue()     {}
func (UndefinedSymbolIssue) issue() {}
func (DuplicateSymbolIssue) issue() {}
func (TestSuite) issue()            {}

// TestSuites keeps the suites of "tests_failures" in document order.
type TestSuites []TestSuite

// UnmarshalJSON decodes the suite object token by token so suite order
// survives decoding. A repeated suite name replaces the earlier failures in place.
func (s *TestSuites) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tests_failures: expected object, got %v", tok)
	}

	var suites TestSuites
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tests_failures: expected suite name, got %v", tok)
		}

		var failures []TestFailure
		if err := dec.Decode(&failures); err != nil {
			return fmt.Errorf("tests_failures[%s]: %w", name, err)
		}

		if i, seen := index[name]; seen {
			suites[i].Failures = failures
			continue
		}
		index[name] = len(suites)
		suites = append(suites, TestSuite{Name: name, Failures: failures})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = suites
	return nil
}

// decodeObject decodes a JSON object key by key. Keys match exactly, unlike
// encoding/json struct tags. When several spellings of one member are
// present the first listed wins. null decodes to the zero value.
func decodeObject(data []byte, members ...member) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, m := range members {
		for _, key := range m.keys {
			value, ok := raw[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(value, m.dst); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			break
		}
	}
	return nil
}

// Parse decodes a Report from r. Unknown and differently cased keys are ignored.
func Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
