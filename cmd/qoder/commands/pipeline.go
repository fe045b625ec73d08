package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// dailyCmd runs trend discovery and niche scoring once
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run the daily trend discovery pipeline",
	Long: `Discovers trending keywords, scores them into niches, writes the
daily report, and records passing niches for weekly tracking.

Example:
  go run ./cmd/qoder daily`,
	RunE: runDaily,
}

// weeklyCmd runs the full generation pipeline once
var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Run the full weekly generation pipeline",
	Long: `Runs the end-to-end pipeline: trend discovery, niche scoring,
listing generation, design prompts, and compliance review. Local
artifact packages are written for every concept; approved concepts
are persisted to the database.

Example:
  go run ./cmd/qoder weekly`,
	RunE: runWeekly,
}

var createKeyword string

// createCmd runs the generation pipeline for one keyword
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a design package for a specific keyword",
	Long: `Runs the generation pipeline for a single keyword, skipping trend
discovery.

Example:
  go run ./cmd/qoder create --keyword "retro gaming shirt"`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createKeyword, "keyword", "", "keyword to build a package for (required)")
	createCmd.MarkFlagRequired("keyword")
}

func runDaily(cmd *cobra.Command, args []string) error {
	a, err := newApp(nil, false)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.orch.RunDaily(context.Background())
	if err != nil {
		return fmt.Errorf("daily pipeline: %w", err)
	}

	fmt.Printf("Daily pipeline complete.\n")
	fmt.Printf("  Trends found:  %d\n", result.TrendsFound)
	fmt.Printf("  Niches passed: %d\n", result.NichesPassed)
	fmt.Printf("  Niches saved:  %d\n", result.NichesSaved)
	fmt.Printf("  Report:        %s\n", result.ReportPath)
	return nil
}

func runWeekly(cmd *cobra.Command, args []string) error {
	a, err := newApp(nil, false)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.orch.RunWeekly(context.Background())
	if err != nil {
		return fmt.Errorf("weekly pipeline: %w", err)
	}

	fmt.Printf("Weekly pipeline complete.\n")
	fmt.Printf("  Concepts: %d\n", len(result.Concepts))
	fmt.Printf("  Saved:    %d\n", result.Saved)
	for _, concept := range result.Concepts {
		status := string(concept.Status)
		if concept.FailReason != "" {
			status = "failed: " + concept.FailReason
		}
		fmt.Printf("  - %s [%s]\n", concept.NicheName, status)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(nil, false)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.orch.RunCreate(context.Background(), createKeyword)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	fmt.Printf("Create pipeline complete.\n")
	fmt.Printf("  Niche:  %s\n", result.NicheName)
	fmt.Printf("  Status: %s\n", result.Status)
	fmt.Printf("  Output: %s\n", result.OutputDir)
	if result.IdeaID > 0 {
		fmt.Printf("  Record: %d\n", result.IdeaID)
	}
	return nil
}
