package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgbudget/pkg/pipeline"
	"github.com/matzehuels/svgbudget/pkg/scene"
)

const demoOutput = "demo.svg"

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output       string // output file, "-" for stdout
	skipOptimize bool   // write the raw composition
	jsonOut      bool   // print the result as JSON
	budgetSet    bool   // --budget given; otherwise the scene's budget wins over the config
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts     generateOpts
		flags    optimizeFlags
		backends backendFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [scene.toml|scene.yaml]",
		Short: "Compose a scene file into an SVG document",
		Long: `Compose a scene file into an SVG document.

A scene file declares a canvas, gradients and z-ordered layers of items:
primitives, string-art patterns, projected 3D grids, chord diagrams and
Graphviz graphs. Without a file the built-in demo scene is rendered.

The composition is optimized against the scene's budget unless --budget
is given or --skip-optimize is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			opts.budgetSet = cmd.Flags().Changed("budget")
			popts := c.options(cmd, flags)
			popts.SkipOptimize = opts.skipOptimize
			return c.runGenerate(cmd.Context(), input, popts, opts, backends)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <scene>.svg)")
	cmd.Flags().BoolVar(&opts.skipOptimize, "skip-optimize", false, "write the raw composition")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	flags.register(cmd.Flags())
	backends.register(cmd.Flags())
	completeInputs(cmd, "toml", "yaml", "yml")

	return cmd
}

// runGenerate loads the scene, runs the pipeline and writes the output.
func (c *CLI) runGenerate(ctx context.Context, input string, popts pipeline.Options, opts generateOpts, backends backendFlags) error {
	spec := scene.Demo()
	output := demoOutput
	popts.Source = "demo"
	if input != "" {
		var err error
		if spec, err = scene.LoadSpec(input); err != nil {
			return fmt.Errorf("load scene %s: %w", input, err)
		}
		output = deriveOutput(input, ".svg")
		popts.Source = input
	}
	if opts.output != "" {
		output = opts.output
	}
	if !opts.budgetSet && spec.BudgetKB > 0 {
		popts.BudgetKB = 0
	}

	runner, err := c.newRunner(ctx, backends)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	quiet := output == "-" && !opts.jsonOut
	rlog := newRunLog(loggerFromContext(ctx), popts.Source)
	budgetKB := popts.BudgetKB
	if budgetKB == 0 {
		budgetKB = spec.BudgetKB
	}
	spin := runSpinner(ctx, "Composing", popts.Source, 0, budgetKB, quiet)

	res, err := runner.Generate(ctx, spec, popts)
	if err != nil {
		spin.Fail("Generation failed")
		return fmt.Errorf("generate %s: %w", popts.Source, err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeOutput(output, res.Text); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	rlog.rendered(res.Scene, res.CacheInfo.SceneHit)
	if res.Optimization != nil {
		rlog.optimized(res.Optimization, res.CacheInfo.OptimizeHit)
	}

	switch {
	case opts.jsonOut:
		return printJSON(res)
	case quiet:
		return nil
	}

	rep := res.Scene
	if res.Optimization == nil {
		printSuccess("Rendered %d elements", rep.Elements)
		printFile(output)
		printStats(0, rep.Bytes, 0, res.CacheInfo.SceneHit)
		if !rep.SizeOK {
			printWarning("Scene exceeds its size budget at %.2f KB", rep.SizeKB)
		}
		printNewline()
		printNextStep("Optimize", appName+" optimize "+output)
		return nil
	}

	printOptimizeResult(res.Optimization, output, res.CacheInfo.OptimizeHit)
	printDetail("%d elements, scene %s", rep.Elements, cachedLabel(res.CacheInfo.SceneHit))
	return nil
}

func cachedLabel(hit bool) string {
	if hit {
		return iconCached
	}
	return iconFresh
}
