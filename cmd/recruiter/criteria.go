package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joe123-crypto/recruiter/internal/extract"
	"github.com/joe123-crypto/recruiter/internal/llm"
	"github.com/joe123-crypto/recruiter/internal/scorer"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria <job-description-file>",
	Short: "Extract job criteria from a job description document",
	Long: `Read a job description (PDF or plain text) and extract the job title,
experience level, key skills, and application deadline as JSON, ready to use
as the jobCriteria of a scan.`,
	Args: cobra.ExactArgs(1),
	RunE: runCriteria,
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
}

func runCriteria(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	document := string(data)
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		document, err = extract.ExtractText(data)
		if err != nil {
			return fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
	}

	client, err := llm.NewGeminiClient(cmd.Context(), nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	criteria, err := scorer.New(client).ExtractJobCriteria(cmd.Context(), document)
	if err != nil {
		return fmt.Errorf("failed to extract job criteria: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(criteria)
}
