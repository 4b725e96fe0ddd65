package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/atsfit/internal/llm"
	"github.com/jonathan/atsfit/internal/observability"
)

var (
	keywordsJobPath string
	keywordsPretty  bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract ATS keywords from a job description file",
	Long:  `Extract the 15-20 most ATS-relevant technical keywords from a job description text file. Requires GEMINI_API_KEY.`,
	RunE:  runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsJobPath, "job", "", "Path to the job description text file (required)")
	keywordsCmd.Flags().BoolVar(&keywordsPretty, "pretty", false, "Print a human-readable list instead of JSON")
	_ = keywordsCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	data, err := os.ReadFile(keywordsJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	keywords, err := llm.NewExtractor(client).ExtractKeywords(ctx, string(data))
	if err != nil {
		return err
	}

	if keywordsPretty {
		observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(keywords)
		return nil
	}

	out, err := json.MarshalIndent(keywords, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
