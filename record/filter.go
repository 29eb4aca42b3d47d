package record

import "strings"

// ColumnFilter is the set of column names allowed through to the output.
// An empty filter, or a nil *ColumnFilter, allows every column.
type ColumnFilter struct {
	columns []string
	allowed map[string]bool
}

// NewColumnFilter parses a comma-separated list of column names.
func NewColumnFilter(expr string) *ColumnFilter {
	f := &ColumnFilter{allowed: make(map[string]bool)}
	for _, name := range SplitFields(expr) {
		name = stripNonPrintable(name)
		if f.allowed[name] {
			continue
		}
		f.allowed[name] = true
		f.columns = append(f.columns, name)
	}
	return f
}

// Allow reports whether name passes the filter.
func (f *ColumnFilter) Allow(name string) bool {
	if f == nil || len(f.allowed) == 0 {
		return true
	}
	return f.allowed[name]
}

// Columns returns the allowed names in the order they were given.
func (f *ColumnFilter) Columns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.columns...)
}

// IsEmpty reports whether the filter lets every column through.
func (f *ColumnFilter) IsEmpty() bool {
	return f == nil || len(f.allowed) == 0
}

func (f *ColumnFilter) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.columns, ",")
}
