package style

import (
	"fmt"
	"sort"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Mode is the active visualization. The set is closed; every mode has one
// leaf derivation, one parent derivation and one scale domain.
type Mode int

const (
	ModeNone Mode = iota
	ModeLines
	ModeDepth
	ModeIndentation
)

var modeNames = map[Mode]string{
	ModeNone:        "none",
	ModeLines:       "lines",
	ModeDepth:       "depth",
	ModeIndentation: "indentation",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown visualization %q", s)
}

// ModeNames lists every valid visualization name, sorted.
func ModeNames() []string {
	out := make([]string, 0, len(modeNames))
	for _, name := range modeNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("unknown visualization %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// derivation extracts the value coloured for a node; false means no data.
type derivation func(n *hierarchy.Node) (float64, bool)

type visualization struct {
	leaf   derivation
	parent derivation
	domain func(s tree.Stats) float64
}

func noData(*hierarchy.Node) (float64, bool) { return 0, false }

func (m Mode) visualization() visualization {
	switch m {
	case ModeLines:
		return visualization{
			leaf:   func(n *hierarchy.Node) (float64, bool) { return n.Data.Value, true },
			parent: noData,
			domain: func(s tree.Stats) float64 { return s.MaxValue },
		}
	case ModeDepth:
		depth := func(n *hierarchy.Node) (float64, bool) { return float64(n.Depth), true }
		return visualization{
			leaf:   depth,
			parent: depth,
			domain: func(s tree.Stats) float64 { return s.MaxDepth },
		}
	case ModeIndentation:
		return visualization{
			leaf: func(n *hierarchy.Node) (float64, bool) {
				return n.Data.Indentation, n.Data.Indentation > 0
			},
			parent: noData,
			domain: func(s tree.Stats) float64 { return s.MaxIndentation },
		}
	default:
		return visualization{
			leaf:   noData,
			parent: noData,
			domain: func(tree.Stats) float64 { return 0 },
		}
	}
}
