// Package timescale draws the commit timeline under the map and turns brush
// gestures on it into date ranges.
package timescale

import (
	"strconv"
	"strings"

	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Margin is the space kept around the plot.
type Margin struct {
	Left, Right, Top, Bottom float64
}

// DefaultMargin leaves room for the axis below the plot.
var DefaultMargin = Margin{Left: 5, Right: 5, Top: 10, Bottom: 20}

// Timescale is the laid out commit timeline.
type Timescale struct {
	Width  float64
	Height float64
	Margin Margin
	X      Scale

	days []tree.Day
	yMax int
}

// New lays out the timeline for a strip of the given width and total
// height; the plot height excludes the top and bottom margins.
func New(days []tree.Day, width, stripHeight float64) *Timescale {
	m := DefaultMargin
	ts := &Timescale{
		Width:  width,
		Height: stripHeight - (m.Bottom + m.Top),
		Margin: m,
		days:   days,
	}

	var domain tree.DateRange
	for i, d := range days {
		if i == 0 || d.Day < domain.Earliest {
			domain.Earliest = d.Day
		}
		if i == 0 || d.Day > domain.Latest {
			domain.Latest = d.Day
		}
		if d.Commits > ts.yMax {
			ts.yMax = d.Commits
		}
	}
	ts.X = NewScale(domain, m.Left, width-m.Right)
	return ts
}

func (t *Timescale) y(commits int) float64 {
	top, bottom := t.Margin.Top, t.Height-t.Margin.Bottom
	if t.yMax == 0 {
		return bottom
	}
	return bottom + float64(commits)/float64(t.yMax)*(top-bottom)
}

// Area is the filled commits-per-day path, or "" with no data.
func (t *Timescale) Area() string {
	if len(t.days) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, d := range t.days {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		writePoint(&sb, t.X.Map(d.Day), t.y(d.Commits))
	}
	base := t.y(0)
	for i := len(t.days) - 1; i >= 0; i-- {
		sb.WriteByte('L')
		writePoint(&sb, t.X.Map(t.days[i].Day), base)
	}
	sb.WriteByte('Z')
	return sb.String()
}

// BrushExtent is the draggable region: x from the left to the right margin,
// y over the plot.
func (t *Timescale) BrushExtent() (x0, y0, x1, y1 float64) {
	return t.Margin.Left, 0.5, t.Width - t.Margin.Right, t.Height - t.Margin.Bottom + 0.5
}

// View renders the strip with the brush over the given selection.
func (t *Timescale) View(selection [2]float64, stripHeight float64) *scene.TimescaleView {
	_, y0, _, y1 := t.BrushExtent()
	sel := selection
	return &scene.TimescaleView{
		Width:     t.Width,
		Height:    stripHeight,
		Area:      t.Area(),
		Selection: &sel,
		BrushTop:  y0,
		BrushBot:  y1,
	}
}

func writePoint(sb *strings.Builder, x, y float64) {
	sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
}
