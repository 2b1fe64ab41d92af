package output

import (
	"fmt"
	"io"
)

// QuietFormatter outputs one line per pass
type QuietFormatter struct{}

func (f *QuietFormatter) Format(r *Report, w io.Writer) error {
	res := r.Result
	if res.Skipped {
		_, err := fmt.Fprintf(w, "%s: skipped\n", r.Step)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s, %d edges\n", r.Step, res.Plan.Kind(), res.Edges)
	return err
}
