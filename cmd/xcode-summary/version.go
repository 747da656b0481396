// Package main provides the xcode-summary CLI application.
package main

import (
	"fmt"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display detailed version information including build date, git commit, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Info()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "xcode-summary version: %s\n", info["version"])
		fmt.Fprintf(out, "  build date: %s\n", info["buildDate"])
		fmt.Fprintf(out, "  git commit: %s\n", info["gitCommit"])
		fmt.Fprintf(out, "  go version: %s\n", info["goVersion"])
		fmt.Fprintf(out, "  platform:   %s\n", info["platform"])
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
