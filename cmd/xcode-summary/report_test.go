package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/annotation"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
)

const testSummary = `{
  "tests_summary_messages": ["Executed 2 tests, with 1 failure"],
  "warnings": ["Multiple build commands"],
  "compile_warnings": [
    {"file_path": "/repo/App/View.swift:21:9", "reason": "unused <value>", "line": "let x = 1"},
    {"file_path": "/repo/Pods/Lib/L.m:3:1", "reason": "implicit conversion", "line": "int y;"}
  ],
  "tests_failures": {
    "LoginTests": [{"file_path": "/repo/Tests/LoginTests.swift:10", "test_case": "testLogin", "reason": "expected true"}]
  }
}`

// clearCIEnv keeps the host CI environment out of the command under test.
func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GITHUB_ACTIONS", "GITHUB_REPOSITORY", "GITHUB_SHA", "GITHUB_REF", "GITHUB_API_URL", "GITHUB_SERVER_URL", "PR_NUMBER",
		"GITLAB_CI", "CI_PROJECT_PATH", "CI_COMMIT_SHA", "CI_MERGE_REQUEST_IID",
		"XCODE_SUMMARY_PROJECT_ROOT", "XCODE_SUMMARY_IGNORED_FILES", "XCODE_SUMMARY_OUTPUT",
		"XCODE_SUMMARY_FAIL_ON_ERRORS", "XCODE_SUMMARY_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// executeReport runs the report command with an empty config file.
func executeReport(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	reportOpts = reportFlags{}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))

	cfg := writeFile(t, ".xcode-summary.yaml", "ignored_files: []\n")
	rootCmd.SetArgs(append([]string{"report", "--config", cfg, "--color", "never"}, args...))

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestReport_Console(t *testing.T) {
	clearCIEnv(t)
	path := writeFile(t, "summary.json", testSummary)

	out, _, err := executeReport(t, "", path, "--project-root", "/repo", "--ignore", "Pods/*")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}

	for _, want := range []string{
		"[info] Executed 2 tests, with 1 failure (sticky)",
		"[warn] Multiple build commands",
		"[warn] **App/View.swift#L21**: unused \\<value\\>",
		"[fail] **LoginTests**: testLogin, expected true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Pods") {
		t.Errorf("ignored compile warning reported:\n%s", out)
	}
}

func TestReport_RelativeProjectRoot(t *testing.T) {
	clearCIEnv(t)
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	path := writeFile(t, "summary.json", `{"compile_warnings": [{"file_path": "`+wd+`/App/View.swift:21:9", "reason": "unused", "line": "x"}]}`)

	for name, args := range map[string][]string{
		"flag": {path, "--project-root", "."},
		"env":  {path},
	} {
		t.Run(name, func(t *testing.T) {
			if name == "env" {
				t.Setenv("XCODE_SUMMARY_PROJECT_ROOT", ".")
			}
			out, _, err := executeReport(t, "", args...)
			if err != nil {
				t.Fatalf("report error = %v", err)
			}
			if !strings.Contains(out, "[warn] **App/View.swift#L21**: unused") {
				t.Errorf("path not relativized against the working directory:\n%s", out)
			}
		})
	}
}

func TestReport_MarkdownFromStdin(t *testing.T) {
	clearCIEnv(t)

	out, _, err := executeReport(t, testSummary, "-", "--output", "Markdown", "--project-root", "/repo")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}

	if !strings.HasPrefix(out, annotation.CommentMarker) {
		t.Errorf("markdown output should start with the comment marker:\n%s", out)
	}
	for _, want := range []string{"1 Error", "3 Warnings", "1 Message", "LoginTests.swift#L10"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestReport_DebugLog(t *testing.T) {
	clearCIEnv(t)
	path := writeFile(t, "summary.json", `{"warnings": ["w"]}`)

	_, stderr, err := executeReport(t, "", path, "--log-level", "debug", "--fail-on-errors")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	for _, want := range []string{"configuration loaded", `"fail_on_errors": true`, "run_id"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("debug log missing %q:\n%s", want, stderr)
		}
	}
}

func TestReport_NotFound(t *testing.T) {
	clearCIEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, _, err := executeReport(t, "", missing)
	if !errors.IsKind(err, errors.KindReportNotFound) {
		t.Fatalf("report error = %v, want KindReportNotFound", err)
	}
	if !strings.Contains(out, "[fail] summary file not found: "+missing) {
		t.Errorf("output = %q, want a failure annotation", out)
	}
}

func TestReport_Malformed(t *testing.T) {
	clearCIEnv(t)

	_, _, err := executeReport(t, `{"warnings": [`, "-")
	if !errors.IsKind(err, errors.KindReportMalformed) {
		t.Errorf("report error = %v, want KindReportMalformed", err)
	}
}

func TestReport_FailOnErrors(t *testing.T) {
	clearCIEnv(t)
	path := writeFile(t, "summary.json", testSummary)

	if _, _, err := executeReport(t, "", path); err != nil {
		t.Errorf("report without --fail-on-errors error = %v", err)
	}
	if _, _, err := executeReport(t, "", path, "--fail-on-errors"); !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("report with --fail-on-errors error = %v, want validation error", err)
	}

	clean := writeFile(t, "clean.json", `{"warnings": ["w"]}`)
	if _, _, err := executeReport(t, "", clean, "--fail-on-errors"); err != nil {
		t.Errorf("report of clean summary error = %v", err)
	}
}

func TestReport_InvalidOutput(t *testing.T) {
	clearCIEnv(t)
	path := writeFile(t, "summary.json", testSummary)

	if _, _, err := executeReport(t, "", path, "--output", "pdf"); err == nil {
		t.Error("report with --output pdf should fail")
	}
}

func TestReport_GitHubComment(t *testing.T) {
	clearCIEnv(t)

	var posted string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer gh-token" {
			t.Errorf("Authorization = %s", auth)
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/owner/app/issues/3/comments":
			w.Write([]byte(`[]`))
		case r.Method == http.MethodPost && r.URL.Path == "/repos/owner/app/issues/3/comments":
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			posted = payload["body"]
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_REPOSITORY", "owner/app")
	t.Setenv("GITHUB_SHA", "abc123")
	t.Setenv("GITHUB_REF", "refs/pull/3/merge")
	t.Setenv("GITHUB_API_URL", server.URL)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	path := writeFile(t, "summary.json", testSummary)
	out, _, err := executeReport(t, "", path, "--output", "comment", "--project-root", "/repo")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	if out != "" {
		t.Errorf("comment output should not write to stdout, got %q", out)
	}

	if !strings.HasPrefix(posted, annotation.CommentMarker) {
		t.Errorf("posted comment should carry the marker:\n%s", posted)
	}
	link := "<a href='https://github.com/owner/app/blob/abc123/App/View.swift#L21'>App/View.swift#L21</a>"
	if !strings.Contains(posted, link) {
		t.Errorf("posted comment missing link %q:\n%s", link, posted)
	}
}

func TestReport_CommentPostFailure(t *testing.T) {
	clearCIEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	t.Setenv("GITLAB_CI", "true")
	t.Setenv("CI_PROJECT_PATH", "group/app")
	t.Setenv("CI_MERGE_REQUEST_IID", "4")
	t.Setenv("CI_API_V4_URL", server.URL)
	t.Setenv("GITLAB_TOKEN", "gl-token")

	path := writeFile(t, "summary.json", `{"warnings": ["w"]}`)
	_, stderr, err := executeReport(t, "", path, "--output", "comment")
	if err != nil {
		t.Errorf("a rejected comment should not fail the build, got %v", err)
	}
	if !strings.Contains(stderr, "[warn] w") {
		t.Errorf("stderr = %q, want the annotations echoed to the job log", stderr)
	}
	if !strings.Contains(stderr, "comment not posted") {
		t.Errorf("stderr = %q, want a warning about the comment", stderr)
	}
}

func TestReport_CommentWithoutCI(t *testing.T) {
	clearCIEnv(t)
	path := writeFile(t, "summary.json", testSummary)

	if _, _, err := executeReport(t, "", path, "--output", "comment"); !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("comment outside CI error = %v, want config error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out.String(), "xcode-summary version:") {
		t.Errorf("version output = %q", out.String())
	}
}
