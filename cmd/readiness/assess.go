package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/readiness/assessment"
	"github.com/c360studio/readiness/graph"
	"github.com/c360studio/readiness/proposal"
	"github.com/c360studio/readiness/storage"
)

func newAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Validate and gate TRL assessments",
	}

	cmd.AddCommand(newAssessValidateCmd())
	cmd.AddCommand(newAssessGateCmd())

	return cmd
}

func newAssessValidateCmd() *cobra.Command {
	var (
		assessmentPath string
		evidencePath   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an assessment against its evidence",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadAssessmentFile(assessmentPath)
			if err != nil {
				return err
			}

			evidence, err := loadEvidenceFile(evidencePath)
			if err != nil {
				return err
			}

			if err := assessment.Validate(a, evidence); err != nil {
				return fmt.Errorf("assessment invalid: %w", err)
			}

			level, _ := a.Level()
			fmt.Printf("✓ Assessment valid\n")
			fmt.Printf("  Topic: %s\n", a.Topic)
			fmt.Printf("  TRL: %d\n", level)
			fmt.Printf("  Citations: %d of %d evidence items\n", len(a.Citations), len(evidence))
			return nil
		},
	}

	cmd.Flags().StringVarP(&assessmentPath, "assessment", "a", "", "Path to assessment JSON file")
	cmd.Flags().StringVarP(&evidencePath, "evidence", "e", "", "Path to evidence JSON file")
	_ = cmd.MarkFlagRequired("assessment")
	_ = cmd.MarkFlagRequired("evidence")

	return cmd
}

func newAssessGateCmd() *cobra.Command {
	var (
		assessmentPath string
		evidencePath   string
		minLevel       int
		store          bool
		draftSlug      string
	)

	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Gate an assessment against the minimum acceptable TRL",
		Long: `Gate checks whether an assessment meets the minimum acceptable TRL.
Rejected topics should not proceed to proposal drafting.

With --store, the assessment and its gate result are persisted to
NATS JetStream and published to the knowledge graph. With --draft,
the assessment is also linked to the named proposal draft.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadAssessmentFile(assessmentPath)
			if err != nil {
				return err
			}

			var evidence []assessment.Evidence
			if evidencePath != "" {
				evidence, err = loadEvidenceFile(evidencePath)
				if err != nil {
					return err
				}
				if err := assessment.Validate(a, evidence); err != nil {
					return fmt.Errorf("assessment invalid: %w", err)
				}
			}

			if !cmd.Flags().Changed("min") {
				minLevel = appConfig.Assessment.MinAcceptableTRL
			}

			result, err := assessment.Gate(a, minLevel)
			if err != nil {
				return err
			}

			switch result.Decision {
			case assessment.DecisionAccepted:
				fmt.Printf("✓ Accepted: %s is at TRL %d (minimum %d)\n", a.Topic, result.Level, result.MinLevel)
			case assessment.DecisionRejected:
				fmt.Printf("✗ Rejected: %s is at TRL %d, below minimum %d\n", a.Topic, result.Level, result.MinLevel)
			}

			if store {
				if err := storeAssessment(cmd.Context(), a, evidence, &result, draftSlug); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&assessmentPath, "assessment", "a", "", "Path to assessment JSON file")
	cmd.Flags().StringVarP(&evidencePath, "evidence", "e", "", "Path to evidence JSON file")
	cmd.Flags().IntVar(&minLevel, "min", 0, "Minimum acceptable TRL (default from config)")
	cmd.Flags().BoolVar(&store, "store", false, "Persist the assessment and publish it to the knowledge graph")
	cmd.Flags().StringVar(&draftSlug, "draft", "", "Link the stored assessment to this proposal draft (requires --store)")
	_ = cmd.MarkFlagRequired("assessment")

	return cmd
}

func storeAssessment(ctx context.Context, a *assessment.Assessment, evidence []assessment.Evidence, result *assessment.GateResult, draftSlug string) error {
	app := newApp(appConfig, logger)
	if err := app.ConnectNATS(ctx); err != nil {
		return err
	}
	defer app.Close(ctx)

	record := &storage.AssessmentRecord{
		Assessment: a,
		Evidence:   evidence,
		Gate:       result,
	}

	id, err := app.store.CreateAssessment(ctx, record)
	if err != nil {
		return fmt.Errorf("store assessment: %w", err)
	}

	if err := graph.PublishAssessment(ctx, app.natsClient, a, evidence, result); err != nil {
		logger.Warn("Failed to publish assessment to graph", "error", err)
	}

	fmt.Printf("Stored assessment %s\n", id)

	if draftSlug != "" {
		if err := linkAssessmentToDraft(ctx, app, a, draftSlug); err != nil {
			return err
		}
	}

	return nil
}

// linkAssessmentToDraft records the assessment on the draft's metadata
// and republishes the draft entity.
func linkAssessmentToDraft(ctx context.Context, app *App, a *assessment.Assessment, slug string) error {
	draft, err := app.drafts.LoadDraft(slug)
	if err != nil {
		return err
	}

	draft.AssessmentID = a.ID
	if draft.Status.CanTransitionTo(proposal.StatusAssessed) {
		draft.Status = proposal.StatusAssessed
	}
	draft.UpdatedAt = time.Now()

	if err := app.drafts.SaveDraftMetadata(draft); err != nil {
		return err
	}

	if err := graph.PublishDraft(ctx, app.natsClient, draft, nil); err != nil {
		logger.Warn("Failed to publish draft to graph", "slug", slug, "error", err)
	}

	fmt.Printf("Linked assessment to draft %s\n", slug)
	return nil
}

// loadAssessmentFile reads an assessment from a JSON file, filling in
// an ID and timestamp when the file carries none.
func loadAssessmentFile(path string) (*assessment.Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assessment file: %w", err)
	}

	var a assessment.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse assessment file: %w", err)
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return &a, nil
}

// loadEvidenceFile reads evidence items from a JSON file, truncating
// and escaping snippets and capping the result count.
func loadEvidenceFile(path string) ([]assessment.Evidence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evidence file: %w", err)
	}

	var evidence []assessment.Evidence
	if err := json.Unmarshal(data, &evidence); err != nil {
		return nil, fmt.Errorf("parse evidence file: %w", err)
	}

	for i := range evidence {
		evidence[i].Snippet = assessment.SanitizeSnippet(assessment.TruncateSnippet(evidence[i].Snippet))
	}

	return assessment.CapEvidence(evidence), nil
}
