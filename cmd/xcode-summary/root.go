// Package main provides the xcode-summary CLI application.
package main

import (
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xcode-summary",
	Short: "Report Xcode build and test results",
	Long: `xcode-summary turns the JSON summary written by xcpretty-json-formatter
into review annotations: messages, warnings and errors.

Results can be printed to the console, rendered as Markdown, or posted as
a single comment on the GitHub pull request or GitLab merge request that
triggered the CI run.`,
	Version:      version.FullString(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
