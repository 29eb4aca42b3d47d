package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CSVFormatter writes comma-joined lines without quoting, one per record.
type CSVFormatter struct {
	writer *bufio.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: bufio.NewWriter(w)}
}

// WriteHeader writes the header line
func (c *CSVFormatter) WriteHeader(columns []string) error {
	return c.writeLine(columns)
}

// WriteRow writes one record line
func (c *CSVFormatter) WriteRow(fields []string) error {
	return c.writeLine(fields)
}

func (c *CSVFormatter) writeLine(fields []string) error {
	if _, err := c.writer.WriteString(strings.Join(fields, ",")); err != nil {
		return err
	}
	return c.writer.WriteByte('\n')
}

// Close flushes buffered lines
func (c *CSVFormatter) Close() error {
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
