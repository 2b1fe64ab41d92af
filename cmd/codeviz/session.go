package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/codeviz/internal/metrics"
	"github.com/rohankatakam/codeviz/internal/output"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/state"
	"github.com/rohankatakam/codeviz/internal/store"
	"github.com/rohankatakam/codeviz/internal/tree"
	"github.com/rohankatakam/codeviz/internal/viz"
)

// sessionRun wires one CLI invocation: the dataset, the saved session, the
// state store and the engine redrawing the scene on every new snapshot.
type sessionRun struct {
	treePath string
	dataset  *tree.Dataset
	db       *store.Store
	sess     *store.Session
	scene    *scene.Scene
	engine   *viz.Engine
	store    *state.Store
	metrics  *metrics.Collector

	out    io.Writer
	format output.Formatter
	log    logrus.FieldLogger

	// labels names each queued action; the store notifies in dispatch order.
	labels []string
	passes int
	err    error
}

// openSession loads the dataset and either resumes session id or starts a
// new one with an initial full pass.
func openSession(ctx context.Context, treePath, timescalePath, id string) (*sessionRun, error) {
	log := logger.WithField("tree", treePath)

	abs, err := filepath.Abs(treePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", treePath, err)
	}

	dataset, err := tree.LoadDataset(ctx, treePath, timescalePath)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	r := &sessionRun{
		treePath: abs,
		dataset:  dataset,
		db:       db,
		metrics:  metrics.NewCollector("codeviz"),
		out:      stdout,
		format:   formatter(),
		log:      log,
	}
	r.engine = viz.New(dataset, state.DispatchFunc(r.dispatch), viz.Options{
		Themes:   cfg.Themes,
		MinScale: cfg.Zoom.MinScale,
		MaxScale: cfg.Zoom.MaxScale,
		Logger:   logger,
		Metrics:  r.metrics,
	})

	if id != "" {
		r.sess, err = db.Get(id)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	if r.sess != nil && r.sess.Dataset == abs && r.sess.Passes > 0 {
		if err := r.resume(); err != nil {
			db.Close()
			return nil, err
		}
		return r, nil
	}

	if r.sess == nil {
		r.sess = store.NewSession(abs)
	} else {
		log.WithField("session", r.sess.ID).Warn("session was saved for another dataset, starting over")
		r.sess.Dataset = abs
		r.sess.Passes = 0
	}
	if err := r.start(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *sessionRun) resume() error {
	r.scene = scene.Restore(r.sess.Scene)
	r.engine.Attach(r.scene)
	current, err := r.engine.Resume(r.sess.State, r.sess.Scene.Transform)
	if err != nil {
		return err
	}
	r.store = state.NewStore(current)
	r.store.Subscribe(r.pass)
	r.log.WithFields(logrus.Fields{
		"session": r.sess.ID,
		"passes":  r.sess.Passes,
	}).Debug("resumed session")
	return nil
}

func (r *sessionRun) start() error {
	dates, ok := r.dataset.DateExtent()
	if !ok {
		r.log.Debug("no timescale or coupling buckets, date range left open")
	}
	initial, err := cfg.InitialState(r.treePath, dates)
	if err != nil {
		return err
	}

	r.scene = scene.New()
	r.engine.Attach(r.scene)
	r.store = state.NewStore(initial)
	r.store.Subscribe(r.pass)

	r.labels = append(r.labels, "initial")
	r.pass(initial)
	return r.err
}

// dispatch labels a and hands it to the store.
func (r *sessionRun) dispatch(a state.Action) {
	r.labels = append(r.labels, a.String())
	r.store.Dispatch(a)
}

// pass renders one snapshot and reports it. The first error stops
// reporting; later snapshots are ignored.
func (r *sessionRun) pass(s state.ViewState) {
	label := "?"
	if len(r.labels) > 0 {
		label, r.labels = r.labels[0], r.labels[1:]
	}
	if r.err != nil {
		return
	}

	res, err := r.engine.Render(s)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", label, err)
		return
	}
	if !res.Skipped {
		r.passes++
	}
	if err := r.format.Format(&output.Report{Session: r.sess.ID, Step: label, Result: res}, r.out); err != nil {
		r.err = err
	}
}

// do dispatches a and returns the first error raised by the passes it
// triggered.
func (r *sessionRun) do(a state.Action) error {
	r.dispatch(a)
	return r.err
}

// writeSVG draws the scene with the palette of the current state.
func (r *sessionRun) writeSVG(path string) error {
	s := r.store.State()
	palette, err := cfg.Themes.Get(s.Style.Theme)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return scene.WriteSVG(f, r.scene, scene.SVGOptions{
		Width:      s.Layout.Width,
		Height:     s.Layout.Height,
		Background: palette.Background,
		ArrowFill:  palette.CouplingStroke,
		Timescale:  r.engine.TimescaleView(),
	})
}

// writeMetrics dumps the pass metrics in Prometheus text format.
func (r *sessionRun) writeMetrics(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return r.metrics.WriteText(f)
}

// close saves the session and closes the store.
func (r *sessionRun) close() error {
	defer r.db.Close()
	r.sess.State = r.store.State()
	r.sess.Scene = r.scene.Snapshot()
	r.sess.Passes += r.passes
	if err := r.db.Put(r.sess); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"session": r.sess.ID,
		"passes":  r.passes,
	}).Debug("session saved")
	return nil
}
