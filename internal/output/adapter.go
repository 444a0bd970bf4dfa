package output

import (
	"fmt"
	"io"

	"github.com/dhabedank/retailer-check/internal/core"
)

// Adapter is the interface all output adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Write renders a search result to w.
	Write(w io.Writer, result *core.SearchResult) error
}

// Config configures output adapter behavior.
type Config struct {
	// Width is the terminal width for the terminal adapter.
	Width int

	// IncludeRaw adds the unparsed model answer (json adapter).
	IncludeRaw bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Width:      80,
		IncludeRaw: true,
	}
}

// NewAdapter creates the named output adapter.
func NewAdapter(name string, config Config) (Adapter, error) {
	switch name {
	case "terminal", "":
		return NewTerminalAdapter(config), nil
	case "json":
		return NewJSONAdapter(config), nil
	case "raw":
		return RawAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown output adapter: %s", name)
	}
}
