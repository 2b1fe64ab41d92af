package scene

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/rohankatakam/codeviz/internal/geometry"
)

// TimescaleView is the timescale strip drawn under the map.
type TimescaleView struct {
	Width, Height float64
	Area          string
	AreaFill      string
	// Selection is the brush interval in pixels; nil when nothing is brushed.
	Selection *[2]float64
	BrushTop  float64
	BrushBot  float64
}

// SVGOptions control document-level output.
type SVGOptions struct {
	Width, Height float64
	Background    string
	ArrowFill     string
	Timescale     *TimescaleView
}

// WriteSVG writes the scene as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene, opts SVGOptions) error {
	var sb strings.Builder

	mapHeight := opts.Height
	if opts.Timescale != nil {
		mapHeight -= opts.Timescale.Height
	}
	arrow := opts.ArrowFill
	if arrow == "" {
		arrow = "#ff6300"
	}

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n", num(opts.Width), num(opts.Height))
	if opts.Background != "" {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", attr(opts.Background))
	}
	fmt.Fprintf(&sb, `<svg class="chart" width="%s" height="%s" viewBox="%s">`+"\n", num(opts.Width), num(mapHeight), s.ViewBox().ViewBox())
	sb.WriteString(`<defs><marker id="arrow" viewBox="0 0 4 4" refX="2" refY="2" markerWidth="5" markerHeight="5" markerUnits="strokeWidth" orient="auto-start-reverse">`)
	fmt.Fprintf(&sb, `<path d="M0,0L4,2L0,4z" fill="%s"/></marker></defs>`+"\n", attr(arrow))
	fmt.Fprintf(&sb, `<g class="topGroup" transform="%s">`+"\n", s.Transform().String())

	for _, f := range s.Order() {
		for _, e := range s.Elements(f) {
			writeElement(&sb, f, e)
		}
	}

	sb.WriteString("</g>\n</svg>\n")

	if ts := opts.Timescale; ts != nil {
		writeTimescale(&sb, ts, mapHeight)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeElement(sb *strings.Builder, f Family, e *Element) {
	a := e.Attrs
	fill := a.Fill
	if fill == "" {
		fill = "none"
	}

	var style []string
	style = append(style, "fill:"+fill)
	if a.Stroke != "" {
		style = append(style, "stroke:"+a.Stroke)
	}
	if a.StrokeOpacity < 1 {
		style = append(style, "stroke-opacity:"+num(a.StrokeOpacity))
	}
	style = append(style, "stroke-width:"+num(a.StrokeWidth))
	if a.NonScalingStroke {
		style = append(style, "vector-effect:non-scaling-stroke")
	}

	fmt.Fprintf(sb, `<path class="%s" data-key="%s" d="%s" style="%s"`,
		attr(string(f)), attr(e.Key), attr(a.D), attr(strings.Join(style, ";")))
	if a.MarkerEnd != "" {
		fmt.Fprintf(sb, ` marker-end="url(#%s)"`, attr(a.MarkerEnd))
	}
	if a.Title == "" {
		sb.WriteString("/>\n")
		return
	}
	fmt.Fprintf(sb, "><title>%s</title></path>\n", html.EscapeString(a.Title))
}

func writeTimescale(sb *strings.Builder, ts *TimescaleView, top float64) {
	box := geometry.Box{Width: ts.Width, Height: ts.Height}
	fmt.Fprintf(sb, `<svg class="timescale" y="%s" width="%s" height="%s" viewBox="%s">`+"\n",
		num(top), num(ts.Width), num(ts.Height), box.ViewBox())
	fill := ts.AreaFill
	if fill == "" {
		fill = "steelblue"
	}
	if ts.Area != "" {
		fmt.Fprintf(sb, `<path class="graph" d="%s" fill="%s"/>`+"\n", attr(ts.Area), attr(fill))
	}
	if sel := ts.Selection; sel != nil {
		fmt.Fprintf(sb, `<g class="brush"><rect class="selection" x="%s" y="%s" width="%s" height="%s" fill="#777" fill-opacity="0.3" stroke="#fff"/></g>`+"\n",
			num(sel[0]), num(ts.BrushTop), num(sel[1]-sel[0]), num(ts.BrushBot-ts.BrushTop))
	}
	sb.WriteString("</svg>\n")
}

func attr(s string) string {
	return html.EscapeString(s)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
