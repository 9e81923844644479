package main

import (
	"errors"
	"fmt"

	"github.com/rajlabs/route-sitemap/internal/storage"
	"github.com/spf13/cobra"
)

func (c *cli) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sitemap generation runs",
		Args:  cobra.NoArgs,
		RunE:  c.runHistory,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}

func (c *cli) runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("no run history database configured (use --database)")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit, 0)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %s  %d urls  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.ID, run.Hostname, run.URLCount, run.OutputPath)
	}
	return nil
}
