package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qoder",
	Short: "AMZ Qoder - print-on-demand content pipeline",
	Long: `AMZ Qoder Unified CLI

Multi-agent pipeline for print-on-demand listing generation.
Trend discovery, niche scoring, listing generation, and compliance
review, end-to-end.

Usage:
  go run ./cmd/qoder [command]

Examples:
  go run ./cmd/qoder serve
  go run ./cmd/qoder daily
  go run ./cmd/qoder weekly
  go run ./cmd/qoder create --keyword "retro gaming shirt"
  go run ./cmd/qoder scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
