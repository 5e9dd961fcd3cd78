package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/history"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analyses",
		Long: `List recorded analyses, newest first.

Analyses are recorded in the backend configured under [history] in the
config file (none, file, mongo or redis).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), limit, format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "number of analyses to list")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")

	return cmd
}

func (c *CLI) runHistory(ctx context.Context, limit int, format string, w io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(ctx, cfg.History)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	results, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if format == formatText {
		writeHistory(w, results)
		return nil
	}
	return writeData(w, results, format)
}
