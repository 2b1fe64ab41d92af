package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rohankatakam/codeviz/internal/reconcile"
)

var (
	heading = color.New(color.FgHiGreen, color.Bold)
	subtle  = color.New(color.FgHiBlack)
	warn    = color.New(color.FgYellow)
	enter   = color.New(color.FgGreen)
	exit    = color.New(color.FgRed)
)

// StandardFormatter outputs the plan and a per-family table (default)
type StandardFormatter struct{}

func (f *StandardFormatter) Format(r *Report, w io.Writer) error {
	res := r.Result
	if res.Skipped {
		warn.Fprintf(w, "%s: render target not ready, pass skipped\n", r.Step)
		return nil
	}

	heading.Fprintf(w, "%s", r.Step)
	fmt.Fprintf(w, " %s %s\n", subtle.Sprint("plan"), res.Plan.Kind())

	rows := []struct {
		family string
		counts reconcile.Counts
	}{
		{"cells", res.Cells},
		{"selection", res.Selection},
		{"coupling", res.Coupling},
	}
	subtle.Fprintf(w, "  %-10s %6s %6s %6s\n", "family", "enter", "update", "exit")
	subtle.Fprintf(w, "  %s\n", strings.Repeat("─", 31))
	for _, row := range rows {
		fmt.Fprintf(w, "  %-10s %s %6d %s\n",
			row.family,
			enter.Sprintf("%6d", row.counts.Enter),
			row.counts.Update,
			exit.Sprintf("%6d", row.counts.Exit),
		)
	}

	fmt.Fprintf(w, "  edges drawn: %d  duration: %s\n", res.Edges, res.Duration)
	if res.ThemeChanged {
		fmt.Fprintf(w, "  theme: %s (background %s)\n", res.Theme, res.Background)
	}
	if res.Rebound {
		warn.Fprintf(w, "  selection rebound after rebuild\n")
	}
	if r.Output != "" {
		fmt.Fprintf(w, "  wrote %s\n", r.Output)
	}
	return nil
}
