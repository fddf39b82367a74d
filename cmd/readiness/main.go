// Package main provides the readiness binary entry point.
// Readiness is a technology readiness assessment toolkit: a TRL
// reference rubric, an evidence-backed assessment gate, and a
// dependency-aware proposal draft workspace.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	// Register vocabularies via init()
	_ "github.com/c360studio/readiness/vocabulary/assessment"
	_ "github.com/c360studio/readiness/vocabulary/proposal"

	"github.com/spf13/cobra"

	"github.com/c360studio/readiness/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "readiness"
)

var (
	appConfig *config.Config
	logger    *slog.Logger
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Technology readiness assessment toolkit",
		Long: `Readiness assesses how mature a technology is and manages the
proposal drafts built on that assessment.

It provides:
- The NASA Technology Readiness Level (TRL) reference rubric
- Evidence-backed TRL assessments with a minimum-level gate
- Proposal drafts with dependency-aware section cascades

Assessments and drafts can optionally be persisted to NATS JetStream
and published to the knowledge graph.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)

			cfg, err := config.NewLoader(logger).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			appConfig = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(newTRLCmd())
	cmd.AddCommand(newAssessCmd())
	cmd.AddCommand(newDraftCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
