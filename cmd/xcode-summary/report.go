// Package main provides the xcode-summary CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/annotation"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/config"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/observability"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/platform"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/summary"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/version"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <file|->",
	Short: "Report the contents of an Xcode JSON summary",
	Long: `Report reads the JSON summary produced by xcpretty-json-formatter and
posts test summary messages, warnings and errors.

Pass "-" to read the summary from stdin. Paths under the project root are
shown relative to it, and compile warnings or errors in files matching
an --ignore pattern are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

// reportFlags holds the flags for the report command
type reportFlags struct {
	config       string
	projectRoot  string
	ignore       []string
	output       string
	failOnErrors bool
	logLevel     string
	color        string
}

var reportOpts reportFlags

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOpts.config, "config", "c", "", "Path to configuration file")
	reportCmd.Flags().StringVar(&reportOpts.projectRoot, "project-root", "", "Project root stripped from reported paths (default: working directory)")
	reportCmd.Flags().StringArrayVar(&reportOpts.ignore, "ignore", nil, "Glob of files whose compile warnings and errors are dropped (repeatable)")
	reportCmd.Flags().StringVarP(&reportOpts.output, "output", "o", "", "Output: console, markdown or comment")
	reportCmd.Flags().BoolVar(&reportOpts.failOnErrors, "fail-on-errors", false, "Exit non-zero when the summary contains errors")
	reportCmd.Flags().StringVar(&reportOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	reportCmd.Flags().StringVar(&reportOpts.color, "color", "", "Color console output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := observability.NewLoggerTo(cmd.ErrOrStderr(), cfg.Global.LogLevel)
	if err != nil {
		return errors.ConfigError("invalid log level", err)
	}
	runID := uuid.NewString()
	log = log.With(observability.String("run_id", runID))
	defer log.Sync()

	log.Debug("configuration loaded",
		observability.String("project_root", cfg.ProjectRoot),
		observability.Int("ignored_files", len(cfg.IgnoredFiles)),
		observability.String("output", cfg.Output),
		observability.Bool("fail_on_errors", cfg.FailOnErrors),
	)

	env := platform.DetectEnvironment(os.Getenv)
	log.Debug("environment detected",
		observability.String("platform", env.Platform),
		observability.String("repo", env.Repo),
		observability.Int("pr", env.PRNumber),
	)

	classifier, err := summary.NewClassifier(summary.Options{
		ProjectRoot:  cfg.ProjectRoot,
		IgnoredFiles: cfg.IgnoredFiles,
		Links:        env.Linker(),
	})
	if err != nil {
		return errors.ConfigError("invalid ignored_files pattern", err)
	}

	var (
		sink      annotation.Sink
		collector *annotation.Collector
	)
	switch cfg.Output {
	case config.OutputConsole:
		sink = annotation.NewConsole(cmd.OutOrStdout(), useColor(cfg.Global.Color, cmd.OutOrStdout()))
	case config.OutputComment:
		// Echo to the job log as well; the comment may not be postable.
		collector = annotation.NewCollector()
		sink = annotation.Multi{collector, annotation.NewConsole(cmd.ErrOrStderr(), useColor(cfg.Global.Color, cmd.ErrOrStderr()))}
	default:
		collector = annotation.NewCollector()
		sink = collector
	}

	reporter := summary.NewReporter(classifier, sink, log)
	path := args[0]

	var s summary.Summary
	if path == "-" {
		s, err = reporter.ReportReader("stdin", cmd.InOrStdin())
	} else {
		s, err = reporter.Report(path)
	}
	if errors.IsKind(err, errors.KindReportNotFound) {
		sink.PostFailure("summary file not found: "+path, false)
	}

	if collector != nil {
		footer := fmt.Sprintf("xcode-summary %s, run %s", version.String(), runID)
		pubErr := publish(commandContext(cmd), cmd.OutOrStdout(), cfg, env, collector.Render(footer), log)
		switch {
		case pubErr == nil:
		case !errors.ShouldFailBuild(pubErr):
			log.Warn("comment not posted", observability.Err(pubErr))
		default:
			log.Error("failed to publish report", observability.Err(pubErr))
			if err == nil {
				err = pubErr
			}
		}
	}
	if err != nil {
		return err
	}

	log.Info("summary reported",
		observability.Int("messages", len(s.Messages)),
		observability.Int("warnings", len(s.Warnings)),
		observability.Int("errors", len(s.Errors)),
	)
	if cfg.FailOnErrors && len(s.Errors) > 0 {
		return errors.ValidationError(fmt.Sprintf("summary contains %d errors", len(s.Errors)), nil)
	}
	return nil
}

// loadConfig applies the report flags on top of file and environment config.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	if reportOpts.config != "" {
		loader = loader.WithPath(reportOpts.config)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if reportOpts.projectRoot != "" {
		cfg.ProjectRoot = reportOpts.projectRoot
	}
	if len(reportOpts.ignore) > 0 {
		cfg.IgnoredFiles = reportOpts.ignore
	}
	if reportOpts.output != "" {
		cfg.Output = strings.ToLower(reportOpts.output)
	}
	if reportOpts.failOnErrors {
		cfg.FailOnErrors = true
	}
	if reportOpts.logLevel != "" {
		cfg.Global.LogLevel = strings.ToLower(reportOpts.logLevel)
	}
	if reportOpts.color != "" {
		cfg.Global.Color = strings.ToLower(reportOpts.color)
	}

	// xcpretty writes absolute paths; "." must become the working directory.
	if cfg.ProjectRoot != "" {
		root, err := filepath.Abs(cfg.ProjectRoot)
		if err != nil {
			return nil, errors.ConfigError("invalid project root", err).WithContext("project_root", cfg.ProjectRoot)
		}
		cfg.ProjectRoot = root
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// publish writes or posts the rendered collector output. An empty body means
// there is nothing to report.
func publish(ctx context.Context, out io.Writer, cfg *config.Config, env platform.Environment, body string, log observability.Logger) error {
	if body == "" {
		log.Info("nothing to report")
		return nil
	}

	if cfg.Output == config.OutputMarkdown {
		_, err := fmt.Fprintln(out, body)
		return err
	}

	token, apiURL := credentials(cfg, env.Platform)
	p, err := platform.NewPlatform(env, token, apiURL)
	if err != nil {
		return err
	}
	if err := p.PostComment(ctx, platform.CommentOptions{
		PRID:   env.PRNumber,
		Body:   body,
		Marker: annotation.CommentMarker,
	}); err != nil {
		return err
	}

	log.Info("comment posted",
		observability.String("platform", p.Name()),
		observability.String("repo", env.Repo),
		observability.Int("pr", env.PRNumber),
	)
	return nil
}

// credentials returns the API token and URL configured for a platform. The
// token itself always comes from the environment.
func credentials(cfg *config.Config, name string) (token, apiURL string) {
	switch name {
	case platform.NameGitHub:
		if gh := cfg.Platform.GitHub; gh != nil {
			return os.Getenv(gh.TokenEnv), gh.APIURL
		}
	case platform.NameGitLab:
		if gl := cfg.Platform.GitLab; gl != nil {
			return os.Getenv(gl.TokenEnv), gl.APIURL
		}
	}
	return "", ""
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
