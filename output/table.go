package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders rows as an aligned text table. Rows are buffered
// until Close because column widths depend on every row.
type TableFormatter struct {
	table  *tablewriter.Table
	header bool
	rows   int
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return &TableFormatter{table: table}
}

// WriteHeader sets the table header
func (t *TableFormatter) WriteHeader(columns []string) error {
	t.table.SetHeader(columns)
	t.header = true
	return nil
}

// WriteRow adds a row to the table
func (t *TableFormatter) WriteRow(fields []string) error {
	t.table.Append(fields)
	t.rows++
	return nil
}

// Close renders the table. Nothing is written when no header and no row
// were received.
func (t *TableFormatter) Close() error {
	if !t.header && t.rows == 0 {
		return nil
	}
	t.table.Render()
	return nil
}
