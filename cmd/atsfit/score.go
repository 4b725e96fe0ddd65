package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/atsfit/internal/ingestion"
	"github.com/jonathan/atsfit/internal/observability"
	"github.com/jonathan/atsfit/internal/scoring"
)

var (
	scoreResumePath string
	scoreKeywords   string
	scorePretty     bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a keyword list",
	Long:  `Score a resume file (pdf, docx, txt, or md) against a comma-separated keyword list and print the result as JSON. Runs fully offline.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreResumePath, "resume", "", "Path to the resume file (required)")
	scoreCmd.Flags().StringVar(&scoreKeywords, "keywords", "", "Comma-separated keywords (required)")
	scoreCmd.Flags().BoolVar(&scorePretty, "pretty", false, "Print a human-readable summary instead of JSON")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scoreResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	extraction, err := ingestion.ExtractText(scoreResumePath, data)
	if err != nil {
		return err
	}

	var keywords []string
	for _, kw := range strings.Split(scoreKeywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords provided")
	}

	result := scoring.Score(extraction.Text, keywords)

	if scorePretty {
		observability.NewPrinter(cmd.OutOrStdout()).PrintScoreResult(result)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
