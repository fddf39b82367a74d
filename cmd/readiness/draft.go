package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/readiness/graph"
	"github.com/c360studio/readiness/proposal"
	"github.com/c360studio/readiness/storage"
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage proposal drafts",
	}

	cmd.AddCommand(newDraftNewCmd())
	cmd.AddCommand(newDraftListCmd())
	cmd.AddCommand(newDraftStatusCmd())
	cmd.AddCommand(newDraftCascadeCmd())
	cmd.AddCommand(newDraftArchiveCmd())

	return cmd
}

func newDraftNewCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new proposal draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")

			app := newApp(appConfig, logger)
			draft, err := app.drafts.CreateDraft(title, author)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created draft: %s\n", draft.Title)
			fmt.Printf("  Slug: %s\n", draft.Slug)
			fmt.Printf("  Path: %s\n", app.drafts.DraftPath(draft.Slug))
			fmt.Printf("\nSection files go in the draft directory, one per section:\n")
			for _, section := range proposal.AllSections() {
				fmt.Printf("  %s%s\n", section, proposal.SectionExt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Draft author")

	return cmd
}

func newDraftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(appConfig, logger)
			drafts, err := app.drafts.ListDrafts()
			if err != nil {
				return err
			}

			if len(drafts) == 0 {
				fmt.Println("No drafts found.")
				return nil
			}

			for _, draft := range drafts {
				written := 0
				for _, present := range draft.Sections {
					if present {
						written++
					}
				}
				fmt.Printf("%-40s %-10s %d/%d sections\n",
					draft.Slug, draft.Status, written, len(proposal.AllSections()))
			}
			return nil
		},
	}
}

func newDraftStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <slug>",
		Short: "Show draft metadata and section completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(appConfig, logger)
			draft, err := app.drafts.LoadDraft(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Title:   %s\n", draft.Title)
			fmt.Printf("Slug:    %s\n", draft.Slug)
			if draft.Author != "" {
				fmt.Printf("Author:  %s\n", draft.Author)
			}
			fmt.Printf("Status:  %s\n", draft.Status)
			fmt.Printf("Created: %s\n", draft.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("Updated: %s\n", draft.UpdatedAt.Format("2006-01-02 15:04"))
			fmt.Println("\nSections:")
			for _, section := range proposal.AllSections() {
				mark := " "
				if draft.Sections[section] {
					mark = "✓"
				}
				fmt.Printf("  [%s] %s\n", mark, section)
			}
			return nil
		},
	}
}

func newDraftCascadeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cascade <section>",
		Short: "Show which sections an edit ripples to",
		Long: `Cascade lists the sections that need regeneration after the given
section is edited: the edited section's dependents, plus their direct
dependents one hop further.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			affected, err := proposal.Cascade(proposal.Section(args[0]))
			if err != nil {
				return err
			}

			fmt.Printf("Editing %s affects %d section(s):\n", args[0], len(affected))
			for _, section := range affected {
				fmt.Printf("  %s\n", section)
			}
			return nil
		},
	}
}

func newDraftArchiveCmd() *cobra.Command {
	var store bool

	cmd := &cobra.Command{
		Use:   "archive <slug>",
		Short: "Archive a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			ctx := cmd.Context()

			app := newApp(appConfig, logger)
			if err := app.drafts.ArchiveDraft(slug); err != nil {
				return err
			}

			fmt.Printf("✓ Archived draft %s to %s\n", slug, app.drafts.ArchivePath())

			if store {
				if err := app.ConnectNATS(ctx); err != nil {
					return err
				}
				defer app.Close(ctx)

				record, err := app.store.GetDraft(ctx, slug)
				if err != nil {
					if errors.Is(err, storage.ErrNotFound) {
						return nil
					}
					return err
				}
				record.Draft.Status = proposal.StatusArchived
				if err := app.store.PutDraft(ctx, record); err != nil {
					return err
				}
				if err := graph.PublishDraft(ctx, app.natsClient, record.Draft, record.StaleSections); err != nil {
					logger.Warn("Failed to publish draft to graph", "error", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "Update the stored draft record and knowledge graph")

	return cmd
}
