package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joe123-crypto/recruiter/internal/llm"
	"github.com/joe123-crypto/recruiter/internal/mailer"
	"github.com/joe123-crypto/recruiter/internal/scan"
	"github.com/joe123-crypto/recruiter/internal/scorer"
	"github.com/joe123-crypto/recruiter/internal/store"
	"github.com/joe123-crypto/recruiter/internal/types"
)

var (
	scanUser       string
	scanHost       string
	scanPort       int
	scanInsecure   bool
	scanJobTitle   string
	scanExperience string
	scanSkills     string
	scanSubject    string
	scanSender     string
	scanCheckpoint uint32
	scanResume     bool
	scanSummary    bool
	scanManager    string
	scanHistoryDB  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one mailbox scan and print events as NDJSON",
	Long: `Scan the INBOX of an IMAP mailbox for job applications and score each one
against the given job criteria. Events are printed to stdout as they happen,
one JSON object per line.

The mailbox password is read from the IMAP_PASSWORD environment variable.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanUser, "user", "", "Mailbox login / email address (required)")
	scanCmd.Flags().StringVar(&scanHost, "host", "", "IMAP host, e.g. imap.gmail.com (required)")
	scanCmd.Flags().IntVar(&scanPort, "imap-port", 993, "IMAP port")
	scanCmd.Flags().BoolVar(&scanInsecure, "insecure-tls", false, "Skip TLS certificate verification")
	scanCmd.Flags().StringVar(&scanJobTitle, "job-title", "", "Job title to evaluate against (required)")
	scanCmd.Flags().StringVar(&scanExperience, "experience", "", "Target experience level")
	scanCmd.Flags().StringVar(&scanSkills, "skills", "", "Comma-separated key skills")
	scanCmd.Flags().StringVar(&scanSubject, "subject", "", "Only scan messages whose subject contains this text")
	scanCmd.Flags().StringVar(&scanSender, "sender", "", "Only scan messages whose sender matches this text")
	scanCmd.Flags().Uint32Var(&scanCheckpoint, "checkpoint", 0, "Resume after this UID")
	scanCmd.Flags().BoolVar(&scanResume, "resume", false, "Resume from the latest stored checkpoint for this user")
	scanCmd.Flags().BoolVar(&scanSummary, "summary", false, "Send a summary report email when the scan completes")
	scanCmd.Flags().StringVar(&scanManager, "manager", "", "Summary report recipient (defaults to the mailbox user)")
	scanCmd.Flags().StringVar(&scanHistoryDB, "history-db", "recruiter.db", "Path of the scan history database")

	_ = scanCmd.MarkFlagRequired("user")
	_ = scanCmd.MarkFlagRequired("host")
	_ = scanCmd.MarkFlagRequired("job-title")

	rootCmd.AddCommand(scanCmd)
}

// stdoutSink prints each event as one JSON line.
type stdoutSink struct {
	encoder *json.Encoder
}

func (s stdoutSink) Emit(event types.ScanEvent) {
	_ = s.encoder.Encode(event)
}

func runScan(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	password := os.Getenv("IMAP_PASSWORD")
	if password == "" {
		return fmt.Errorf("IMAP_PASSWORD environment variable is required")
	}

	ctx := cmd.Context()

	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	history, err := store.Open(scanHistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer history.Close()

	req := types.ScanRequest{
		Criteria: types.JobCriteria{
			JobTitle:        scanJobTitle,
			ExperienceLevel: scanExperience,
			KeySkills:       scanSkills,
		},
		Credentials: types.MailboxCredentials{
			User:             scanUser,
			Secret:           password,
			Host:             scanHost,
			Port:             scanPort,
			AllowInsecureTLS: scanInsecure,
		},
		Filter: &types.SearchFilter{
			SubjectContains: scanSubject,
			SenderContains:  scanSender,
		},
		ResumeCheckpoint: scanCheckpoint,
		SendSummary:      scanSummary,
		SummaryRecipient: scanManager,
	}

	if scanResume && req.ResumeCheckpoint == 0 {
		checkpoint, err := history.LatestCheckpoint(ctx, scanUser)
		if err != nil {
			return fmt.Errorf("failed to read checkpoint: %w", err)
		}
		req.ResumeCheckpoint = checkpoint
	}

	pipeline := scan.New(scan.IMAPDialer{}, scorer.New(client), mailer.New())
	sink := stdoutSink{encoder: json.NewEncoder(os.Stdout)}

	session, runErr := pipeline.Run(ctx, req, sink)

	if session.ScannedCount > 0 {
		if _, err := history.SaveScan(context.Background(), scanUser, req.Criteria, session); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saving scan history failed: %v\n", err)
		}
	}

	return runErr
}
