package query

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vegasq/csvmanip/output"
	"github.com/vegasq/csvmanip/reader"
)

var quietLogger = slog.New(slog.DiscardHandler)

// csvSource writes content to a temporary file and returns it as a Source.
func csvSource(t *testing.T, name, content string, hasHeader bool) reader.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return reader.NewFileSource(path, hasHeader)
}

// countingSource counts how many times the wrapped Source is opened.
type countingSource struct {
	reader.Source
	opens int
}

func (c *countingSource) Open() (reader.Lines, error) {
	c.opens++
	return c.Source.Open()
}

// collect runs fn against a CSV formatter and returns what was written after
// closing the formatter.
func collect(t *testing.T, fn func(out output.Formatter) (Stats, error)) (string, Stats, error) {
	t.Helper()
	var buf bytes.Buffer
	formatter := output.NewCSVFormatter(&buf)
	stats, err := fn(formatter)
	if cerr := formatter.Close(); cerr != nil {
		t.Fatalf("Close() error = %v", cerr)
	}
	return buf.String(), stats, err
}
