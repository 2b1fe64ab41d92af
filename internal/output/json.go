package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes one JSON object per pass
type JSONFormatter struct{}

func (f *JSONFormatter) Format(r *Report, w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}
