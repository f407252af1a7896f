package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgbudget/pkg/store"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		q       store.Query
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List recorded optimization and generation runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.runHistoryGet(cmd.Context(), args[0], jsonOut)
			}
			return c.runHistory(cmd.Context(), q, jsonOut)
		},
	}

	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 20, "maximum number of runs")
	cmd.Flags().StringVar(&q.Kind, "kind", "", "only runs of this kind: optimize, generate")
	cmd.Flags().StringVar(&q.Status, "status", "", "only runs with this status: compliant, exhausted, rendered")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print reports as JSON")

	return cmd
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc, err := c.settings().StoreConfig()
	if err != nil {
		return nil, fmt.Errorf("history location: %w", err)
	}
	st, err := store.Open(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return st, nil
}

func (c *CLI) runHistory(ctx context.Context, q store.Query, jsonOut bool) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	reports, err := st.List(ctx, q)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if jsonOut {
		return printJSON(reports)
	}
	if len(reports) == 0 {
		printInfo("No runs recorded")
		return nil
	}
	printHistoryTable(reports)
	return nil
}

func (c *CLI) runHistoryGet(ctx context.Context, id string, jsonOut bool) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(r)
	}

	printKeyValue("ID", r.ID)
	printKeyValue("When", r.CreatedAt.Local().Format("Jan 2, 2006 15:04:05"))
	printKeyValue("Kind", r.Kind)
	if r.Source != "" {
		printKeyValue("Source", r.Source)
	}
	printKeyValue("Profile", r.Profile)
	printKeyValue("Status", r.Status)
	printKeyValue("Size", fmt.Sprintf("%s → %s", formatBytes(r.RawBytes), formatBytes(r.Bytes)))
	printKeyValue("Budget", formatBytes(r.Budget))
	if len(r.Levels) > 0 {
		printKeyValue("Levels", fmt.Sprint(r.Levels))
	}
	if r.Elements > 0 {
		printKeyValue("Elements", StyleNumber.Render(fmt.Sprint(r.Elements)))
	}
	printKeyValue("Duration", r.Duration.String())
	printKeyValue("Cache", cachedLabel(r.CacheHit))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
