package summary

import (
	"reflect"
	"strings"
	"testing"
)

func newTestClassifier(t *testing.T, root string, ignored ...string) *Classifier {
	t.Helper()
	c, err := NewClassifier(Options{
		ProjectRoot:  root,
		IgnoredFiles: ignored,
		Links:        LinkRendererFunc(bracketLinks),
	})
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func TestClassifier_EmptyReport(t *testing.T) {
	c := newTestClassifier(t, "/repo")

	for name, r := range map[string]*Report{"empty": {}, "nil": nil} {
		t.Run(name, func(t *testing.T) {
			s := c.Classify(r)
			if len(s.Messages) != 0 || len(s.Warnings) != 0 || len(s.Errors) != 0 {
				t.Errorf("Classify() = %+v, want all empty", s)
			}
		})
	}
}

func TestClassifier_Messages(t *testing.T) {
	c := newTestClassifier(t, "")
	r := &Report{Messages: []string{"  Executed 12 tests, with 0 failures  ", "Executed 12 tests, with 0 failures", "", "   ", "Done"}}

	want := []string{"Executed 12 tests, with 0 failures", "Done"}
	if got := c.Messages(r); !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %q, want %q", got, want)
	}
}

func TestClassifier_WarningsDedup(t *testing.T) {
	c := newTestClassifier(t, "")
	r := &Report{Warnings: []string{"a", "a", "b"}}

	want := []string{"a", "b"}
	if got := c.Warnings(r); !reflect.DeepEqual(got, want) {
		t.Errorf("Warnings() = %q, want %q", got, want)
	}
}

func TestClassifier_WarningsOrder(t *testing.T) {
	c := newTestClassifier(t, "/repo")
	r := &Report{
		Warnings:       []string{"w1", ""},
		LinkerWarnings: []string{"ld: directory not found", "w1"},
		CompileWarnings: []CompileIssue{
			{FilePath: "/repo/A.swift:3:1", Reason: "deprecated", Line: "foo()"},
		},
	}

	got := c.Warnings(r)
	if len(got) != 3 {
		t.Fatalf("Warnings() = %q, want 3 entries", got)
	}
	if got[0] != "w1" || got[1] != "ld: directory not found" {
		t.Errorf("Warnings() order = %q", got)
	}
	if !strings.HasPrefix(got[2], "**[A.swift#L3]**: deprecated") {
		t.Errorf("compile warning = %q", got[2])
	}
}

func TestClassifier_IgnoredCompileWarnings(t *testing.T) {
	c := newTestClassifier(t, "/repo", "Pods/*")
	ignored := CompileIssue{FilePath: "/repo/Pods/Lib/L.m:1:1", Reason: "implicit conversion", Line: "int x = y;"}
	kept := CompileIssue{FilePath: "/repo/App/A.m:9:2", Reason: "implicit conversion", Line: "int x = y;"}

	r := &Report{CompileWarnings: []CompileIssue{ignored, kept, ignored}}
	got := c.Warnings(r)
	if len(got) != 1 {
		t.Fatalf("Warnings() = %q, want only the non-ignored entry", got)
	}
	if strings.Contains(got[0], "Pods") {
		t.Errorf("ignored path leaked into output: %q", got[0])
	}

	// The identical plain warning is not an ignored compile issue and stays.
	rendered := "**[Pods/Lib/L.m#L1]**: implicit conversion  <br />```\nint x = y;\n```"
	r = &Report{Warnings: []string{rendered}, CompileWarnings: []CompileIssue{ignored}}
	if got := c.Warnings(r); !reflect.DeepEqual(got, []string{rendered}) {
		t.Errorf("Warnings() = %q, want only the plain warning", got)
	}
}

func TestClassifier_IgnoredCompileErrors(t *testing.T) {
	c := newTestClassifier(t, "/repo", "Vendor/*")
	r := &Report{CompileErrors: []CompileIssue{
		{FilePath: "/repo/Vendor/X.swift:4:2", Reason: "cannot find type"},
	}}

	if got := c.Errors(r); len(got) != 0 {
		t.Errorf("Errors() = %q, want ignored compile errors dropped", got)
	}
}

func TestClassifier_ErrorsOrder(t *testing.T) {
	c := newTestClassifier(t, "/repo")
	r := &Report{
		Errors:                []string{"plain"},
		CompileErrors:         []CompileIssue{{FilePath: "/repo/A.swift:1", Reason: "compile"}},
		MissingFileErrors:     []MissingFileIssue{{FilePath: "/repo/B.png", Reason: "missing"}},
		UndefinedSymbolErrors: []UndefinedSymbolIssue{{Message: "undefined", Symbol: "_s", Reference: "r.o"}},
		DuplicateSymbolErrors: []DuplicateSymbolIssue{{Message: "duplicate", FilePaths: []string{"/x/a.o"}}},
		TestFailures: TestSuites{
			{Name: "SuiteB", Failures: []TestFailure{{FilePath: "/repo/T.swift:2", TestCase: "testB", Reason: "b"}}},
			{Name: "SuiteA", Failures: []TestFailure{{FilePath: "/repo/T.swift:1", TestCase: "testA", Reason: "a"}}},
		},
	}

	got := c.Errors(r)
	prefixes := []string{"plain", "**[A.swift#L1]**", "**missing**", "undefined", "duplicate", "**SuiteB**", "**SuiteA**"}
	if len(got) != len(prefixes) {
		t.Fatalf("Errors() = %q, want %d entries", got, len(prefixes))
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(got[i], p) {
			t.Errorf("entry %d = %q, want prefix %q", i, got[i], p)
		}
	}
}

func TestClassifier_TestFailureEndToEnd(t *testing.T) {
	c := newTestClassifier(t, "")
	r := &Report{TestFailures: TestSuites{{
		Name:     "LoginTests",
		Failures: []TestFailure{{FilePath: "T.swift:10", TestCase: "testLogin", Reason: "expected true"}},
	}}}

	got := c.Errors(r)
	if len(got) != 1 {
		t.Fatalf("Errors() = %q, want exactly one entry", got)
	}
	for _, want := range []string{"LoginTests", "testLogin", "expected true", "[T.swift#L10]"} {
		if !strings.Contains(got[0], want) {
			t.Errorf("Errors()[0] = %q, missing %q", got[0], want)
		}
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	c := newTestClassifier(t, "/repo", "Pods/*")
	r := &Report{
		Messages:        []string{"m"},
		Warnings:        []string{"w", "w"},
		CompileWarnings: []CompileIssue{{FilePath: "/repo/A.swift:1", Reason: "r"}},
		Errors:          []string{"e"},
		TestFailures:    TestSuites{{Name: "S", Failures: []TestFailure{{FilePath: "/repo/T.swift:1", TestCase: "t", Reason: "r"}}}},
	}

	first := c.Classify(r)
	second := c.Classify(r)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestUniq(t *testing.T) {
	got := uniq([]string{"a", " ", "b"}, nil, []string{"a", "c", ""})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniq() = %q, want %q", got, want)
	}
}
