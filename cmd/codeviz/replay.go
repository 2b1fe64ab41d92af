package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/codeviz/internal/geometry"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/state"
	"github.com/rohankatakam/codeviz/internal/style"
)

var (
	replayTree      string
	replayTimescale string
	replaySession   string
	replayOut       string
	replayMetrics   string
)

// Script is a sequence of user gestures replayed against one session.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one gesture. Exactly one field is set.
type Step struct {
	Select    *string    `yaml:"select,omitempty"`
	Coupling  *bool      `yaml:"coupling,omitempty"`
	MinRatio  *float64   `yaml:"min_ratio,omitempty"`
	DateRange *DateSpan  `yaml:"date_range,omitempty"`
	Mode      *string    `yaml:"mode,omitempty"`
	Theme     *string    `yaml:"theme,omitempty"`
	Depth     *int       `yaml:"depth,omitempty"`
	Brush     *[]float64 `yaml:"brush,omitempty"`
	ClickCell *string    `yaml:"click_cell,omitempty"`
	ClickEdge *string    `yaml:"click_edge,omitempty"`
	Pan       *[]float64 `yaml:"pan,omitempty"`
	Zoom      *ZoomStep  `yaml:"zoom,omitempty"`
	ResetZoom bool       `yaml:"reset_zoom,omitempty"`
}

// DateSpan is an inclusive day range; an empty bound keeps the current one.
type DateSpan struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ZoomStep scales the map by Factor about (X, Y).
type ZoomStep struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Factor float64 `yaml:"factor"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a script of gestures against a session",
	Long: `Replay a YAML script of gestures, one render pass per resulting state
transition.

Example script:
  steps:
    - click_cell: root/src/main.go
    - min_ratio: 0.9
    - brush: [40, 120]
    - theme: dark
    - zoom: {x: 0, y: 0, factor: 2}
    - select: ""`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayTree, "tree", "", "layout tree JSON file")
	replayCmd.Flags().StringVar(&replayTimescale, "timescale", "", "commit timescale JSON file")
	replayCmd.Flags().StringVar(&replaySession, "session", "", "session id to continue")
	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "write the final SVG to this path")
	replayCmd.Flags().StringVar(&replayMetrics, "metrics", "", "write render metrics to this file")
	replayCmd.MarkFlagRequired("tree")
}

// LoadScript reads a replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	for i, step := range s.Steps {
		if n := step.fields(); n != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one gesture, got %d", i+1, n)
		}
	}
	return &s, nil
}

func (s Step) fields() int {
	n := 0
	for _, set := range []bool{
		s.Select != nil, s.Coupling != nil, s.MinRatio != nil, s.DateRange != nil,
		s.Mode != nil, s.Theme != nil, s.Depth != nil, s.Brush != nil,
		s.ClickCell != nil, s.ClickEdge != nil, s.Pan != nil, s.Zoom != nil,
		s.ResetZoom,
	} {
		if set {
			n++
		}
	}
	return n
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := LoadScript(args[0])
	if err != nil {
		return err
	}

	r, err := openSession(cmd.Context(), replayTree, replayTimescale, replaySession)
	if err != nil {
		return err
	}

	for i, step := range script.Steps {
		if err := r.apply(step); err != nil {
			r.close()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if replayOut != "" {
		if err := r.writeSVG(replayOut); err != nil {
			r.close()
			return err
		}
	}
	if replayMetrics != "" {
		if err := r.writeMetrics(replayMetrics); err != nil {
			r.close()
			return err
		}
	}
	if err := r.close(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "session %s, %d passes\n", r.sess.ID, r.passes)
	return nil
}

// apply performs one gesture through the same entry points the interactive
// surface uses.
func (r *sessionRun) apply(step Step) error {
	switch {
	case step.Select != nil:
		if *step.Select == "" {
			r.engine.ClearSelection()
		} else {
			r.engine.Select(*step.Select)
		}
	case step.Coupling != nil:
		if !r.engine.CouplingAvailable() {
			return fmt.Errorf("dataset has no coupling data")
		}
		r.dispatch(state.SetShowCoupling{Shown: *step.Coupling})
	case step.MinRatio != nil:
		if _, err := r.engine.SetMinRatio(*step.MinRatio); err != nil {
			return err
		}
	case step.DateRange != nil:
		rng, err := parseDateRange(step.DateRange.From, step.DateRange.To, r.store.State().DateRange)
		if err != nil {
			return err
		}
		r.dispatch(state.SetDateRange{Range: rng})
	case step.Mode != nil:
		mode, err := style.ParseMode(*step.Mode)
		if err != nil {
			return err
		}
		r.dispatch(state.SetVisualization{Mode: mode})
	case step.Theme != nil:
		if _, err := cfg.Themes.Get(*step.Theme); err != nil {
			return err
		}
		r.dispatch(state.SetTheme{Name: *step.Theme})
	case step.Depth != nil:
		if *step.Depth < 1 {
			return fmt.Errorf("depth must be at least 1, got %d", *step.Depth)
		}
		r.dispatch(state.SetClipDepth{Depth: *step.Depth})
	case step.Brush != nil:
		return r.brush(*step.Brush)
	case step.ClickCell != nil:
		if err := r.scene.Click(scene.FamilyCells, *step.ClickCell); err != nil {
			return err
		}
	case step.ClickEdge != nil:
		if err := r.scene.Click(scene.FamilyCoupling, *step.ClickEdge); err != nil {
			return err
		}
	case step.Pan != nil:
		if len(*step.Pan) != 2 {
			return fmt.Errorf("pan needs [dx, dy]")
		}
		t := r.engine.Pan((*step.Pan)[0], (*step.Pan)[1])
		r.log.WithField("transform", t.String()).Info("pan")
	case step.Zoom != nil:
		t := r.engine.Zoom(geometry.Point{step.Zoom.X, step.Zoom.Y}, step.Zoom.Factor)
		r.log.WithField("transform", t.String()).Info("zoom")
	case step.ResetZoom:
		r.engine.ResetZoom()
	}
	return r.err
}

// brush ends a drag over [x0, x1] in timescale pixels; an empty list clears
// the brush.
func (r *sessionRun) brush(sel []float64) error {
	switch len(sel) {
	case 0:
		r.engine.BrushEnd(nil)
	case 2:
		if !r.engine.BrushEnd(&[2]float64{sel[0], sel[1]}) {
			r.log.Info("brush unchanged, no pass")
		}
	default:
		return fmt.Errorf("brush needs [x0, x1] or []")
	}
	return r.err
}
