package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/causalbench/adjid/pkg/matrix"
	"github.com/causalbench/adjid/pkg/pipeline"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	metric     string // distance metric name
	direction  string // adjacency convention for matrix inputs
	treatments string // comma-separated treatment node indices
	effects    string // comma-separated effect node indices
	formats    string // comma-separated render formats
	output     string // output base path for render artifacts
	jsonOut    bool   // machine-readable output
	noCache    bool   // bypass the result cache
	save       bool   // persist a run record
}

// computeCommand creates the compute command.
func (c *CLI) computeCommand() *cobra.Command {
	opts := computeOpts{}

	cmd := &cobra.Command{
		Use:   "compute [truth-graph] [guess-graph]",
		Short: "Compute a distance between a truth and a guess graph",
		Long: `Compute a distance between a truth and a guess graph.

Both graphs are read from MatrixMarket-style edge list files and must share
the same node set. Supported metrics: parent-aid (default), ancestor-aid,
oset-aid, sid, shd.

The AID metrics count ordered treatment/effect pairs on which the guess
graph's implied adjustment set is not valid in the truth graph. Use
--treatments and --effects to restrict the compared pairs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompute(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.metric, "metric", "m", pipeline.MetricParentAID, "distance metric: parent-aid, ancestor-aid, oset-aid, sid, shd")
	cmd.Flags().StringVar(&opts.direction, "edge-direction", "", "adjacency convention: row-to-column (default) or column-to-row")
	cmd.Flags().StringVar(&opts.treatments, "treatments", "", "comma-separated treatment node indices (default: all nodes)")
	cmd.Flags().StringVar(&opts.effects, "effects", "", "comma-separated effect node indices (default: all nodes)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "render comparison artifact(s): dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path for render artifacts")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist a run record")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, truthPath, guessPath string, opts *computeOpts) error {
	direction, err := c.edgeDirection(opts.direction)
	if err != nil {
		return err
	}
	treatments, err := parseNodeList(opts.treatments)
	if err != nil {
		return fmt.Errorf("parse --treatments: %w", err)
	}
	effects, err := parseNodeList(opts.effects)
	if err != nil {
		return fmt.Errorf("parse --effects: %w", err)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	if opts.save {
		store, err := c.newStore(ctx)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		if store != nil {
			defer store.Close(ctx)
			runner.Store = store
		} else {
			printWarning("Run persistence is disabled in config; ignoring --save")
		}
	}

	pipelineOpts := pipeline.Options{
		TruthPath:     truthPath,
		GuessPath:     guessPath,
		EdgeDirection: direction,
		Metric:        opts.metric,
		Treatments:    treatments,
		Effects:       effects,
		Formats:       parseFormats(opts.formats),
		CacheTTL:      c.Config.CacheTTL(),
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Computing %s", opts.metric))
	if !opts.jsonOut {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, pipelineOpts)
	if !opts.jsonOut {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return printComputeJSON(result)
	}

	printDistance(result.Metric, result.Distance.Distance, result.Distance.Mistakes, result.Distance.Pairs, result.Cached)
	printStats(result.Truth.NodeCount(), result.Truth.EdgeCount(), result.Guess.EdgeCount())
	if result.Run != nil {
		printDetail("Run saved: %s", result.Run.ID)
	}

	if len(result.Artifacts) > 0 {
		if err := writeArtifacts(opts.output, truthPath, result.Artifacts); err != nil {
			return err
		}
	} else {
		printNextStep("Draw the comparison", fmt.Sprintf("%s render %s %s", appName, truthPath, guessPath))
	}
	return nil
}

// edgeDirection resolves the adjacency convention from the flag, falling
// back to the configured default.
func (c *CLI) edgeDirection(flag string) (matrix.EdgeDirection, error) {
	s := flag
	if s == "" {
		s = c.Config.EdgeDirection
	}
	if s == "" {
		return matrix.RowToColumn, nil
	}
	return matrix.ParseEdgeDirection(s)
}

// parseNodeList parses a comma-separated list of node indices.
func parseNodeList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	nodes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid node index %q", p)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// computeOutput is the JSON shape printed by compute --json.
type computeOutput struct {
	Metric   string  `json:"metric"`
	Distance float64 `json:"distance"`
	Mistakes int     `json:"mistakes"`
	Pairs    int     `json:"pairs"`
	Cached   bool    `json:"cached"`
	RunID    string  `json:"run_id,omitempty"`
}

func printComputeJSON(result *pipeline.Result) error {
	out := computeOutput{
		Metric:   result.Metric,
		Distance: result.Distance.Distance,
		Mistakes: result.Distance.Mistakes,
		Pairs:    result.Distance.Pairs,
		Cached:   result.Cached,
	}
	if result.Run != nil {
		out.RunID = result.Run.ID
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeArtifacts writes rendered outputs next to the truth graph (or at
// the explicit output base path) with one file per format.
func writeArtifacts(output, truthPath string, artifacts map[string][]byte) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(truthPath, ".mtx") + "_comparison"
	}
	for format, data := range artifacts {
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
