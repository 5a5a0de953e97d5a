// Package main provides the entry point for the recruiter scan service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joe123-crypto/recruiter/internal/logger"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "recruiter",
	Short: "Recruitment mailbox scanner",
	Long:  "Recruiter scans an IMAP mailbox for job applications, scores each candidate against job criteria with an LLM, and streams the results.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Init(logger.Config{Level: logLevel, Format: logFormat})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format (json or pretty)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
