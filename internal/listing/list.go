package listing

import (
	"fmt"
	"io"

	"github.com/dyluth/fathom/pkg/catalog"
)

// OutputFormat specifies how to format the piece list output.
type OutputFormat string

const (
	// OutputFormatTable uses a table format with truncated tags
	OutputFormatTable OutputFormat = "table"

	// OutputFormatJSONL outputs complete pieces as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatTable, OutputFormatJSONL:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// ListPieces runs a query against the registry and writes the results.
// Results keep the query engine's ordering.
func ListPieces(reg *catalog.Registry, q catalog.Query, format OutputFormat, w io.Writer) error {
	pieces := reg.Query(q)

	switch format {
	case OutputFormatTable:
		scope := ""
		if q.Theme != "" {
			scope = fmt.Sprintf("theme '%s'", q.Theme)
		}
		FormatTable(w, pieces, scope)
	case OutputFormatJSONL:
		if err := FormatJSONL(w, pieces); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}
