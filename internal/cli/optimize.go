package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/pipeline"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	output      string // output file, "-" for stdout
	diff        bool   // print per-stage diffs
	interactive bool   // browse stages in a TUI
	jsonOut     bool   // print the result as JSON
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		opts     optimizeOpts
		flags    optimizeFlags
		backends backendFlags
	)

	cmd := &cobra.Command{
		Use:   "optimize [file.svg|-]",
		Short: "Bring an SVG document under a size budget",
		Long: `Bring an SVG document under a size budget.

The document is sanitized first. If it is still over budget, the optimizer
escalates through the levels of the selected profile (pruning unused
definitions, reducing path precision, minifying, grouping by style and
finally dropping nonessential content) until it fits. When every level
has run and the document is still too large the best effort result is
written and the run is reported as exhausted.

Results are cached locally and every run is recorded in the history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], c.options(cmd, flags), opts, backends)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.min.svg, stdout for stdin)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print what every stage changed")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the stages interactively")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	flags.register(cmd.Flags())
	backends.register(cmd.Flags())
	completeInputs(cmd, "svg")

	return cmd
}

// runOptimize reads the input, runs the pipeline and writes the output.
func (c *CLI) runOptimize(ctx context.Context, input string, popts pipeline.Options, opts optimizeOpts, backends backendFlags) error {
	text, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, backends)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts.Source = input
	popts.Snapshots = opts.diff || opts.interactive

	output := opts.output
	if output == "" {
		output = deriveOutput(input, ".min.svg")
	}
	quiet := output == "-" && !opts.jsonOut

	rlog := newRunLog(loggerFromContext(ctx), input)
	spin := runSpinner(ctx, "Optimizing", input, len(text), popts.BudgetKB, quiet || opts.interactive)

	res, err := runner.Optimize(ctx, text, popts)
	if err != nil {
		spin.Fail("Optimization failed")
		return fmt.Errorf("optimize %s: %w", input, err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeOutput(output, res.Text); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	rlog.optimized(res.Optimization, res.CacheInfo.OptimizeHit)

	switch {
	case opts.jsonOut:
		return printJSON(res)
	case quiet:
		return nil
	case opts.interactive:
		_, err := tea.NewProgram(NewStageBrowserModel(text, res.Optimization), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("stage browser: %w", err)
		}
		return nil
	}

	printOptimizeResult(res.Optimization, output, res.CacheInfo.OptimizeHit)
	if opts.diff {
		printNewline()
		printStageDiffs(text, res.Optimization.Trace)
	}
	return nil
}

// printOptimizeResult prints the status line, the output path and the
// stage table.
func printOptimizeResult(opt *compliance.Result, output string, cached bool) {
	if opt.Compliant() {
		printSuccess("Compliant at %s (%s)", formatBytes(opt.Bytes), opt.Profile)
	} else {
		printWarning("Budget exhausted: %s after every level (%s)", formatBytes(opt.Bytes), opt.Profile)
	}
	printFile(output)
	printStats(opt.RawBytes, opt.Bytes, opt.Budget.MaxBytes, cached)
	printNewline()
	printStageTable(opt.Trace)
}
