package tree

import (
	"context"
	"encoding/json"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/codeviz/internal/errors"
	"github.com/rohankatakam/codeviz/internal/geometry"
)

// Dataset is everything a render pass reads besides the view state.
type Dataset struct {
	Root      *Node
	Stats     Stats
	Coupling  *CouplingStats
	Timescale []Day
}

// treeFile is the on-disk shape written by the layout step.
type treeFile struct {
	Files    *Node          `json:"files"`
	Stats    *Stats         `json:"stats,omitempty"`
	Coupling *CouplingStats `json:"coupling,omitempty"`
}

// CouplingAvailable reports whether the source data carried coupling at all.
func (d *Dataset) CouplingAvailable() bool {
	return d.Coupling != nil
}

// Bounds is the layout box centred on the origin.
func (d *Dataset) Bounds() geometry.Box {
	w, h := d.Root.Layout.Width, d.Root.Layout.Height
	return geometry.Box{X: -w / 2, Y: -h / 2, Width: w, Height: h}
}

// DateExtent is the first and last day of the timescale. Without a
// timescale it is the span covered by the coupling buckets. With neither it
// reports false and an open range that every bucket overlaps.
func (d *Dataset) DateExtent() (DateRange, bool) {
	if len(d.Timescale) == 0 {
		if c := d.Coupling; c != nil && c.BucketCount > 0 && c.BucketSize > 0 {
			return DateRange{
				Earliest: c.FirstBucketStart,
				Latest:   c.FirstBucketStart + int64(c.BucketCount)*c.BucketSize - 1,
			}, true
		}
		return DateRange{Earliest: math.MinInt64, Latest: math.MaxInt64}, false
	}
	r := DateRange{Earliest: d.Timescale[0].Day, Latest: d.Timescale[0].Day}
	for _, day := range d.Timescale[1:] {
		if day.Day < r.Earliest {
			r.Earliest = day.Day
		}
		if day.Day > r.Latest {
			r.Latest = day.Day
		}
	}
	return r, true
}

// LoadDataset reads the tree file and the optional timescale file in
// parallel. Stats missing from the tree file are computed from the tree.
func LoadDataset(ctx context.Context, treePath, timescalePath string) (*Dataset, error) {
	var tf treeFile
	var days []Day

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(treePath, &tf)
	})
	if timescalePath != "" {
		g.Go(func() error {
			return readJSON(timescalePath, &days)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tf.Files == nil {
		return nil, errors.ValidationErrorf("tree file %s has no files root", treePath)
	}

	ds := &Dataset{
		Root:      tf.Files,
		Coupling:  tf.Coupling,
		Timescale: days,
	}
	if tf.Stats != nil {
		ds.Stats = *tf.Stats
	} else {
		ds.Stats = ComputeStats(tf.Files)
	}
	return ds, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.FileSystemErrorf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.ValidationError(err, "decode "+path)
	}
	return nil
}

// ComputeStats walks the tree and collects colour scale maxima.
func ComputeStats(root *Node) Stats {
	var s Stats
	if root == nil {
		return s
	}

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if float64(depth) > s.MaxDepth {
			s.MaxDepth = float64(depth)
		}
		if !n.IsParent() {
			if n.Value > s.MaxValue {
				s.MaxValue = n.Value
			}
			if n.Indentation > s.MaxIndentation {
				s.MaxIndentation = n.Indentation
			}
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return s
}
