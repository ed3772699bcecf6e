package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clustergraph/pkg/config"
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
)

// layoutFlags are the layout command's settings. Engine, workers and
// padding override the config file only when given.
type layoutFlags struct {
	output  string
	formats string
	noCache bool
	engine  string
	workers int
	padding float64
	opts    pipeline.Options
}

// layoutCommand creates the layout command for positioning a topology.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [topology.json]",
		Short: "Compute a clustered layout from a topology",
		Long: `Compute a clustered layout from a topology.

The topology lists nodes, edges, subcategories with their members,
categories and cross-subcategory relationships. Each subcategory is laid out
on its own, the resulting boxes are arranged inside their categories, and
the leaf positions are composed into one diagram.

Formats (-f, comma separated):
  diagram   positioned diagram JSON (<input>.diagram.json)
  flow      canvas flow JSON (<input>.flow.json)
  svg       static SVG preview (<input>.svg)

Pass "-" as the topology to read stdin and -o - to write a single format to
stdout. Results are cached according to the [cache] config section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := applyLayoutFlags(cmd, &cfg, f); err != nil {
				return err
			}
			f.opts.Formats = parseFormats(f.formats)
			return c.runLayout(cmd.Context(), args[0], cfg, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, or base name when several formats are requested")
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.FormatFlow, "formats: diagram, flow, svg")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "layout engine (see 'serve' GET /v1/engines)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent subcategory layouts (0: GOMAXPROCS)")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "padding around every cluster")
	cmd.Flags().BoolVar(&f.opts.Lenient, "lenient", false, "skip topology validation")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&f.opts.Absolute, "absolute", false, "emit absolute positions in flow output")
	cmd.Flags().BoolVar(&f.opts.NoPairs, "no-pairs", false, "leave reciprocal edges unpaired in flow output")

	return cmd
}

func applyLayoutFlags(cmd *cobra.Command, cfg *config.Config, f layoutFlags) error {
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine.Name = f.engine
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = f.workers
	}
	if flags.Changed("padding") {
		cfg.Cluster.Padding = f.padding
	}
	return cfg.Validate()
}

// runLayout loads the topology, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, cfg config.Config, f layoutFlags) error {
	toStdout := f.output == pipeline.Stdout
	if toStdout && len(f.opts.Formats) != 1 {
		return cgerrors.New(cgerrors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(f.opts.Formats))
	}
	status := c.Out
	if toStdout {
		status = c.Err
	}

	t, err := pipeline.Load(input, c.Stdin)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	stop := spin(ctx, c.Err, "Computing layout...")
	result, err := runner.Execute(ctx, t, f.opts)
	stop()
	if err != nil {
		printError(status, "Layout failed")
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		_, err := c.Out.Write(result.Artifacts[f.opts.Formats[0]])
		return err
	}

	paths := outputPaths(input, f.output, f.opts.Formats)
	for _, format := range f.opts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	d := result.Diagram
	printSuccess(status, "Layout complete (%.0fx%.0f)", d.Width, d.Height)
	for _, format := range f.opts.Formats {
		printFile(status, paths[format])
	}
	printStats(status, len(d.Nodes), len(d.Subcategories), len(d.Categories), result.CacheInfo.LayoutHit)
	if d.Stats.DroppedRelationships > 0 {
		printWarning(status, "%d relationships dropped (unknown subcategory)", d.Stats.DroppedRelationships)
	}
	if d.Stats.SkippedMembers > 0 {
		printWarning(status, "%d subcategory members skipped", d.Stats.SkippedMembers)
	}
	if !slices.Contains(f.opts.Formats, pipeline.FormatSVG) && input != pipeline.Stdin {
		printNextStep(status, "Preview", appName+" layout "+input+" -f svg")
	}
	c.Logger.Debug("layout timings", "stats", result.Stats.String())
	return nil
}

// extensions maps each format to its output file suffix.
var extensions = map[string]string{
	pipeline.FormatDiagram: ".diagram.json",
	pipeline.FormatFlow:    ".flow.json",
	pipeline.FormatSVG:     ".svg",
}

// outputPaths names one file per format. A single format with an explicit
// output writes exactly there; otherwise output (or the input without its
// extension) is the base name.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = "topology"
		if input != pipeline.Stdin {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + extensions[f]
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// validateCommand checks a topology without laying it out.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [topology.json]",
		Short: "Check a topology for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], c.Out)
		},
	}
}

func (c *CLI) runValidate(input string, w io.Writer) error {
	start := time.Now()
	t, err := pipeline.Load(input, c.Stdin)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	if err := t.Validate(); err != nil {
		printError(w, "%s", cgerrors.UserMessage(err))
		return err
	}
	logElapsed(c.Logger, start, "validated topology", "nodes", len(t.Nodes))
	printSuccess(w, "Topology is valid")
	printDetail(w, "%d nodes, %d edges, %d subcategories, %d categories, %d relationships",
		len(t.Nodes), len(t.Edges), len(t.Subcategories), len(t.Categories),
		len(t.SubcategoryRelationships)+len(t.CrossCategoryRelationships))
	return nil
}
