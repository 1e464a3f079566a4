package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/causalbench/adjid/pkg/fixtures"
	"github.com/causalbench/adjid/pkg/pipeline"
	"github.com/causalbench/adjid/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path (or base path for multiple formats)
	formats   string // comma-separated output formats: dot, svg, png
	direction string // adjacency convention for matrix inputs
	names     string // comma-separated node names
	rankDir   string // graphviz rank direction: TB or LR
}

// renderCommand creates the render command for drawing graphs.
//
// With one argument the graph itself is drawn. With two arguments a
// comparison is drawn: shared edges plain, reversed edges purple,
// edges missing from the guess red, extra guess edges orange.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [graph] | render [truth-graph] [guess-graph]",
		Short: "Draw a graph or a truth/guess comparison",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): dot, svg (default), png (comma-separated)")
	cmd.Flags().StringVar(&opts.direction, "edge-direction", "", "adjacency convention: row-to-column (default) or column-to-row")
	cmd.Flags().StringVar(&opts.names, "names", "", "comma-separated node names used as labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "layout direction: TB (default) or LR")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts *renderOpts) error {
	direction, err := c.edgeDirection(opts.direction)
	if err != nil {
		return err
	}
	formats := parseFormats(opts.formats)
	for _, f := range formats {
		if !pipeline.ValidFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg' or 'png')", f)
		}
	}

	renderOptions := render.Options{RankDir: opts.rankDir}
	if opts.names != "" {
		renderOptions.Names = strings.Split(opts.names, ",")
	}

	p := newProgress(loggerFromContext(ctx))
	var dot string
	switch len(args) {
	case 1:
		g, err := fixtures.LoadGraph(args[0], direction)
		if err != nil {
			return err
		}
		dot = render.GraphDOT(g, renderOptions)
	case 2:
		truth, err := fixtures.LoadGraph(args[0], direction)
		if err != nil {
			return err
		}
		guess, err := fixtures.LoadGraph(args[1], direction)
		if err != nil {
			return err
		}
		dot = render.ComparisonDOT(truth, guess, renderOptions)
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(args[0], ".mtx")
	}
	single := len(formats) == 1 && opts.output != ""

	for _, format := range formats {
		var data []byte
		switch format {
		case pipeline.FormatDOT:
			data = []byte(dot)
		case pipeline.FormatSVG:
			data, err = render.SVG(dot)
		case pipeline.FormatPNG:
			data, err = render.PNG(dot)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := base + "." + format
		if single {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	p.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))
	return nil
}
