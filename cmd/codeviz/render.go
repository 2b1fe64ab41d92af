package main

import (
	"fmt"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/codeviz/internal/state"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
	"github.com/rohankatakam/codeviz/internal/viz"
)

const dateLayout = "2006-01-02"

var (
	renderTree      string
	renderTimescale string
	renderOut       string
	renderOpen      bool
	renderSession   string
	renderDepth     int
	renderMode      string
	renderTheme     string
	renderMinRatio  float64
	renderCoupling  bool
	renderSelect    string
	renderFrom      string
	renderTo        string
	renderMetrics   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the codebase map to SVG",
	Long: `Render the codebase map to an SVG file.

Without --session a new session starts with a full render from the
configured defaults. With --session the saved scene is restored and each
changed flag is applied as one state transition, redrawing only what it
requires.

Examples:
  codeviz render --tree data/tree.json --timescale data/timescale.json
  codeviz render --session <id> --tree data/tree.json --min-ratio 0.9
  codeviz render --session <id> --tree data/tree.json --select src/main.go --open`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderTree, "tree", "", "layout tree JSON file")
	renderCmd.Flags().StringVar(&renderTimescale, "timescale", "", "commit timescale JSON file")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "codeviz.svg", "SVG output path")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "open the SVG in the browser")
	renderCmd.Flags().StringVar(&renderSession, "session", "", "session id to continue")
	renderCmd.Flags().IntVar(&renderDepth, "depth", 0, "clip depth")
	renderCmd.Flags().StringVar(&renderMode, "mode", "", "visualization: none, lines, depth or indentation")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "theme name")
	renderCmd.Flags().Float64Var(&renderMinRatio, "min-ratio", 0, "minimum coupling ratio (0.25-1.0)")
	renderCmd.Flags().BoolVar(&renderCoupling, "show-coupling", true, "show coupling edges")
	renderCmd.Flags().StringVar(&renderSelect, "select", "", "path of the node to select (\"-\" clears)")
	renderCmd.Flags().StringVar(&renderFrom, "from", "", "start of the date range (YYYY-MM-DD)")
	renderCmd.Flags().StringVar(&renderTo, "to", "", "end of the date range (YYYY-MM-DD)")
	renderCmd.Flags().StringVar(&renderMetrics, "metrics", "", "write render metrics to this file")
	renderCmd.MarkFlagRequired("tree")
}

func runRender(cmd *cobra.Command, args []string) error {
	r, err := openSession(cmd.Context(), renderTree, renderTimescale, renderSession)
	if err != nil {
		return err
	}

	actions, err := renderActions(cmd, r)
	if err != nil {
		r.close()
		return err
	}
	for _, a := range actions {
		if err := r.do(a); err != nil {
			r.close()
			return err
		}
	}

	if err := r.writeSVG(renderOut); err != nil {
		r.close()
		return err
	}
	if renderMetrics != "" {
		if err := r.writeMetrics(renderMetrics); err != nil {
			r.close()
			return err
		}
	}
	if err := r.close(); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "session %s, wrote %s\n", r.sess.ID, renderOut)
	if renderOpen {
		if err := browser.OpenFile(renderOut); err != nil {
			logger.WithError(err).Warn("failed to open browser")
		}
	}
	return nil
}

// renderActions turns the changed flags into actions, in the order a user
// would apply them: structure first, then style, then coupling.
func renderActions(cmd *cobra.Command, r *sessionRun) ([]state.Action, error) {
	flags := cmd.Flags()
	current := r.store.State()
	var actions []state.Action

	if flags.Changed("depth") {
		if renderDepth < 1 {
			return nil, fmt.Errorf("--depth must be at least 1, got %d", renderDepth)
		}
		actions = append(actions, state.SetClipDepth{Depth: renderDepth})
	}
	if flags.Changed("mode") {
		mode, err := style.ParseMode(renderMode)
		if err != nil {
			return nil, err
		}
		actions = append(actions, state.SetVisualization{Mode: mode})
	}
	if flags.Changed("theme") {
		if _, err := cfg.Themes.Get(renderTheme); err != nil {
			return nil, err
		}
		actions = append(actions, state.SetTheme{Name: renderTheme})
	}
	if flags.Changed("from") || flags.Changed("to") {
		rng, err := parseDateRange(renderFrom, renderTo, current.DateRange)
		if err != nil {
			return nil, err
		}
		actions = append(actions, state.SetDateRange{Range: rng})
	}
	if flags.Changed("show-coupling") || flags.Changed("min-ratio") {
		if !r.engine.CouplingAvailable() {
			return nil, fmt.Errorf("coupling flags given but %s has no coupling data", renderTree)
		}
	}
	if flags.Changed("show-coupling") {
		actions = append(actions, state.SetShowCoupling{Shown: renderCoupling})
	}
	if flags.Changed("min-ratio") {
		actions = append(actions, state.SetMinCouplingRatio{Ratio: viz.SnapRatio(renderMinRatio)})
	}
	if flags.Changed("select") {
		a, err := selectAction(r, renderSelect)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// selectAction resolves path against the hierarchy drawn so far. If an
// earlier action rebuilds the hierarchy the engine rebinds the stale ref.
func selectAction(r *sessionRun, path string) (state.Action, error) {
	if path == "-" || path == "" {
		return state.SelectNode{}, nil
	}
	h := r.engine.Hierarchy()
	n, ok := h.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("no node at path %q", path)
	}
	return state.SelectNode{Node: h.Ref(n)}, nil
}

// parseDateRange reads an inclusive day range; a missing bound keeps the
// current one. The end day runs to its last second.
func parseDateRange(from, to string, current tree.DateRange) (tree.DateRange, error) {
	rng := current
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return rng, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		rng.Earliest = t.Unix()
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return rng, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		rng.Latest = t.Add(24*time.Hour - time.Second).Unix()
	}
	if rng.Latest < rng.Earliest {
		return rng, fmt.Errorf("date range ends before it starts")
	}
	return rng, nil
}
