package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/readiness/graph"
	"github.com/c360studio/readiness/proposal"
	"github.com/c360studio/readiness/storage"
)

func newWatchCmd() *cobra.Command {
	var (
		publish bool
		paths   []string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch drafts for section changes and report cascades",
		Long: `Watch monitors the drafts directory for section file changes.
Each change is debounced, checked against the previous content hash,
and expanded through the section dependency graph to report which
sections now need regeneration.

With --publish, draft records are also persisted to NATS JetStream
and published to the knowledge graph on every change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app := newApp(appConfig, logger)
			if publish {
				if err := app.ConnectNATS(ctx); err != nil {
					return err
				}
				defer app.Close(ctx)
			}

			watchCfg := appConfig.Proposal.Watch
			watchCfg.Enabled = true

			patterns := watchCfg.Patterns
			if len(paths) > 0 {
				patterns = paths
			}

			dirs := []string{app.drafts.DraftsPath()}
			if len(patterns) > 0 {
				resolved, err := proposal.ResolvePaths(patterns)
				if err != nil {
					return err
				}
				dirs = resolved
				if len(dirs) == 0 {
					return fmt.Errorf("no directories match the given patterns")
				}
			}

			for _, dir := range dirs {
				watcher, err := proposal.NewDraftWatcher(watchCfg, dir, logger)
				if err != nil {
					return fmt.Errorf("create watcher for %s: %w", dir, err)
				}

				if err := watcher.Start(ctx); err != nil {
					return fmt.Errorf("start watcher for %s: %w", dir, err)
				}
				defer watcher.Stop()

				go func(w *proposal.DraftWatcher) {
					for event := range w.Events() {
						handleSectionEvent(cmd, app, event, publish)
					}
				}(watcher)

				fmt.Printf("Watching %s\n", dir)
			}

			fmt.Println("Ctrl+C to stop")
			<-ctx.Done()
			logger.Info("Watch stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "Persist draft records and publish graph updates on change")
	cmd.Flags().StringSliceVar(&paths, "drafts", nil, "Drafts directories to watch (glob patterns supported; default: the workspace drafts directory)")

	return cmd
}

func handleSectionEvent(cmd *cobra.Command, app *App, event proposal.SectionEvent, publish bool) {
	affected, err := proposal.Cascade(event.Section)
	if err != nil {
		logger.Warn("Unknown section in event", "section", event.Section, "error", err)
		return
	}

	fmt.Printf("[%s] %s/%s → %d section(s) stale:\n",
		event.Operation, event.Slug, event.Section, len(affected))
	for _, section := range affected {
		fmt.Printf("  %s\n", section)
	}

	if !publish {
		return
	}

	ctx := cmd.Context()
	draft, err := app.drafts.LoadDraft(event.Slug)
	if err != nil {
		logger.Warn("Failed to load draft for event", "slug", event.Slug, "error", err)
		return
	}

	record := &storage.DraftRecord{
		Draft:         draft,
		StaleSections: affected,
	}
	if existing, err := app.store.GetDraft(ctx, event.Slug); err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}

	if err := app.store.PutDraft(ctx, record); err != nil {
		logger.Warn("Failed to store draft record", "slug", event.Slug, "error", err)
	}

	if err := graph.PublishDraft(ctx, app.natsClient, draft, affected); err != nil {
		logger.Warn("Failed to publish draft to graph", "slug", event.Slug, "error", err)
	}
}
