package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joe123-crypto/recruiter/internal/config"
	"github.com/joe123-crypto/recruiter/internal/llm"
	"github.com/joe123-crypto/recruiter/internal/logger"
	"github.com/joe123-crypto/recruiter/internal/mailer"
	"github.com/joe123-crypto/recruiter/internal/scan"
	"github.com/joe123-crypto/recruiter/internal/scorer"
	"github.com/joe123-crypto/recruiter/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveHistoryDB  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes scan streaming, interview invitations, and scan history endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path of a JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveHistoryDB, "history-db", "", "Path of the scan history database (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the config file; the environment fills what is left.
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveHistoryDB != "" {
		cfg.HistoryDB = serveHistoryDB
	}
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogLevel != "" || cfg.LogFormat != "" {
		logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}

	client, err := llm.NewGeminiClient(context.Background(), nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	m := mailer.New()
	sc := scorer.New(client)
	pipeline := scan.New(scan.IMAPDialer{}, sc, m)

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		HistoryDB: cfg.HistoryDB,
	}, pipeline, m, sc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
