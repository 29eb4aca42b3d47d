package output

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for output formatters.
//
// WriteHeader is called at most once, before the first WriteRow. Close
// finishes the output (flushes buffers, writes footers, commits) but does not
// close the underlying writer.
type Formatter interface {
	// WriteHeader writes the visible column names
	WriteHeader(columns []string) error

	// WriteRow writes the visible fields of one record
	WriteRow(fields []string) error

	// Close finishes the output
	Close() error
}

// Format names an output layout.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatTable, FormatJSON, FormatParquet, FormatSQLite}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (supported: csv, table, json, parquet, sqlite)", name)
}

// UnmarshalText parses a format name, so a Format can be loaded from text.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Streamed reports whether the format writes to an io.Writer. SQLite writes
// to a database file instead.
func (f Format) Streamed() bool {
	return f != FormatSQLite
}
