package main

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rajlabs/route-sitemap/internal/sitemap"
	"github.com/spf13/cobra"
)

func (c *cli) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <sitemap.xml>",
		Short: "Print statistics and duplicate URLs of a sitemap file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	path, err := homedir.Expand(args[0])
	if err != nil {
		return err
	}

	sm, err := sitemap.ParseFile(path)
	if err != nil {
		return fmt.Errorf("error reading sitemap: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total URLs found: %d\n", len(sm.URLs))

	dups := sitemap.Duplicates(sm)
	if len(dups) == 0 {
		fmt.Fprintln(out, "No duplicate URLs")
		return nil
	}

	fmt.Fprintf(out, "Duplicate URLs: %d\n", len(dups))
	for _, d := range dups {
		fmt.Fprintf(out, "  - %s (x%d)\n", d.Loc, d.Count)
	}
	return nil
}
