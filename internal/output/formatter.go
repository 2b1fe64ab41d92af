package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/rohankatakam/codeviz/internal/viz"
)

// Report is one render pass as shown to the user.
type Report struct {
	Session string          `json:"session,omitempty"`
	Step    string          `json:"step"`
	Result  *viz.PassResult `json:"result"`
	Output  string          `json:"output,omitempty"`
}

// Formatter defines output formatting interface
type Formatter interface {
	Format(r *Report, w io.Writer) error
}

// VerbosityLevel determines output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // One line per pass
	VerbosityStandard                       // Per-family enter/update/exit table
	VerbosityJSON                           // Machine-readable JSON lines
)

// NewFormatter creates appropriate formatter based on level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// GetDefaultVerbosity returns appropriate default based on environment
func GetDefaultVerbosity() VerbosityLevel {
	if os.Getenv("CODEVIZ_JSON") == "1" {
		return VerbosityJSON
	}
	return VerbosityStandard
}

// ConfigureColor turns colour off unless f is a terminal.
func ConfigureColor(f *os.File) {
	color.NoColor = color.NoColor || !term.IsTerminal(int(f.Fd()))
}
