// Package main provides the entry point for the ATS resume optimizer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atsfit",
	Short: "ATS resume optimizer",
	Long:  "ATSFit scores resumes against job descriptions, extracts ATS keywords, and rewrites resumes to raise their match while keeping every claim truthful.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
