package record

import (
	"strconv"
	"strings"
)

// Column is a single named entry of a Header.
type Column struct {
	Name    string
	Visible bool
}

// Header is the ordered list of column names of a CSV source.
//
// Names are not required to be unique; lookups return the first match.
// A Header only grows: columns are appended by AddColumn and hidden by
// ApplyFilter, never removed.
type Header struct {
	columns []Column
}

// NewHeader creates a Header with the given visible column names.
func NewHeader(names ...string) *Header {
	h := &Header{columns: make([]Column, 0, len(names))}
	for _, name := range names {
		h.AddColumn(name)
	}
	return h
}

// Set replaces the Header with the column names found in line.
func (h *Header) Set(line string) {
	fields := SplitFields(line)
	h.columns = make([]Column, 0, len(fields))
	for _, name := range fields {
		h.AddColumn(stripNonPrintable(name))
	}
}

// MakeDefault replaces the Header with col_0..col_{n-1}, where n is the number
// of fields in firstLine. Field contents are ignored.
func (h *Header) MakeDefault(firstLine string) {
	n := len(SplitFields(firstLine))
	h.columns = make([]Column, 0, n)
	for i := 0; i < n; i++ {
		h.AddColumn("col_" + strconv.Itoa(i))
	}
}

// ColumnIndex returns the position of the first column called name.
func (h *Header) ColumnIndex(name string) (int, bool) {
	for i, col := range h.columns {
		if col.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnName returns the name at index, or "" when index is out of range.
func (h *Header) ColumnName(index int) string {
	if index < 0 || index >= len(h.columns) {
		return ""
	}
	return h.columns[index].Name
}

// ApplyFilter hides every column the filter does not allow.
func (h *Header) ApplyFilter(filter *ColumnFilter) {
	for i := range h.columns {
		if !filter.Allow(h.columns[i].Name) {
			h.columns[i].Visible = false
		}
	}
}

// AddColumn appends a visible column.
func (h *Header) AddColumn(name string) {
	h.columns = append(h.columns, Column{Name: name, Visible: true})
}

// HeaderLine joins the visible column names with commas.
func (h *Header) HeaderLine() string {
	return strings.Join(h.VisibleNames(), ",")
}

// VisibleNames returns the names of the visible columns in order.
func (h *Header) VisibleNames() []string {
	names := make([]string, 0, len(h.columns))
	for _, col := range h.columns {
		if col.Visible {
			names = append(names, col.Name)
		}
	}
	return names
}

// Names returns every column name, hidden ones included.
func (h *Header) Names() []string {
	names := make([]string, len(h.columns))
	for i, col := range h.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns a copy of the column list.
func (h *Header) Columns() []Column {
	return append([]Column(nil), h.columns...)
}

// Len returns the number of columns, hidden ones included.
func (h *Header) Len() int {
	return len(h.columns)
}

// Visible reports whether the column at index is visible.
func (h *Header) Visible(index int) bool {
	return index >= 0 && index < len(h.columns) && h.columns[index].Visible
}

// Clone returns an independent copy of h.
func (h *Header) Clone() *Header {
	return &Header{columns: append([]Column(nil), h.columns...)}
}
