// Package record implements the in-memory model of a CSV row: a Header of
// column names, a ColumnFilter deciding which columns are emitted, and a
// Record holding one row of numeric values bound to a Header.
//
// A Record is refilled line by line from a LineReader and written out through
// RecordLine or VisibleFields. The length of a Record always equals the length
// of its Header.
//
// Example:
//
//	header := record.NewHeader("a", "b")
//	rec := record.NewRecord[int64](header, nil)
//	if err := rec.SetLine("4,5"); err != nil {
//	    log.Fatal(err)
//	}
//	rec.AddColumn("result", rec.Get(0)*rec.Get(1))
//	fmt.Println(rec.Header().HeaderLine()) // a,b,result
//	fmt.Println(rec.RecordLine())          // 4,5,20
package record

import (
	"strings"
)

// LineReader yields one line at a time and returns io.EOF when exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// ParsePolicy decides what happens to fields that do not parse.
type ParsePolicy int

const (
	// PolicyCoerce turns unparseable fields into the zero value and pads or
	// truncates lines to the Header length.
	PolicyCoerce ParsePolicy = iota
	// PolicyStrict reports unparseable fields and field count mismatches.
	PolicyStrict
)

func (p ParsePolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "coerce"
}

// Cell is a single value of a Record with its visibility.
type Cell[T Number] struct {
	Value   T
	Visible bool
}

// Record is one row of values of type T bound to a Header.
//
// Records read from the same source share the source Header. Records built by
// Join or Clone own a fresh Header.
type Record[T Number] struct {
	header *Header
	filter *ColumnFilter
	cells  []Cell[T]
	parse  Parser[T]
	policy ParsePolicy
}

// NewRecord creates an empty Record bound to header. A nil filter allows
// every column.
func NewRecord[T Number](header *Header, filter *ColumnFilter) *Record[T] {
	if header == nil {
		header = NewHeader()
	}
	return &Record[T]{
		header: header,
		filter: filter,
		parse:  ParseNumber[T],
	}
}

// NewFilledRecord creates a Record with one filler value per column of header.
func NewFilledRecord[T Number](header *Header, filler T) *Record[T] {
	r := NewRecord[T](header, nil)
	r.cells = make([]Cell[T], header.Len())
	for i := range r.cells {
		r.cells[i] = Cell[T]{Value: filler, Visible: true}
	}
	return r
}

// SetParser replaces the field conversion and the policy applied to
// conversion failures. A nil parser keeps the current one.
func (r *Record[T]) SetParser(parse Parser[T], policy ParsePolicy) {
	if parse != nil {
		r.parse = parse
	}
	r.policy = policy
}

// SetFilter replaces the filter used by ApplyFilter.
func (r *Record[T]) SetFilter(filter *ColumnFilter) {
	r.filter = filter
}

// Filter returns the filter bound to the record.
func (r *Record[T]) Filter() *ColumnFilter {
	return r.filter
}

// Header returns the Header the record is bound to.
func (r *Record[T]) Header() *Header {
	return r.header
}

// Len returns the number of values, hidden ones included.
func (r *Record[T]) Len() int {
	return len(r.cells)
}

// IsEmpty reports whether the record has no columns at all. Join returns an
// empty record when the rows do not match.
func (r *Record[T]) IsEmpty() bool {
	return len(r.cells) == 0
}

// Get returns the value at index. index must be in range.
func (r *Record[T]) Get(index int) T {
	return r.cells[index].Value
}

// Value returns the value of the first column called name.
func (r *Record[T]) Value(name string) (T, error) {
	i, ok := r.header.ColumnIndex(name)
	if !ok || i >= len(r.cells) {
		var zero T
		return zero, &ColumnNotFoundError{Name: name}
	}
	return r.cells[i].Value, nil
}

// NextRecord reads the next line from lines and replaces the values of the
// record with it. It returns io.EOF, unwrapped, at the end of input.
func (r *Record[T]) NextRecord(lines LineReader) error {
	line, err := lines.ReadLine()
	if err != nil {
		return err
	}
	return r.SetLine(line)
}

// SetLine replaces the values of the record with the fields of line.
//
// Under PolicyCoerce the record is padded with zero values or truncated to the
// Header length. Under PolicyStrict a length mismatch is a *FieldCountError and
// an unparseable field a *ParseError; the record is left empty on error.
func (r *Record[T]) SetLine(line string) error {
	fields := SplitFields(line)
	width := r.header.Len()

	if r.policy == PolicyStrict && len(fields) != width {
		r.cells = r.cells[:0]
		return &FieldCountError{Got: len(fields), Want: width}
	}

	if cap(r.cells) < width {
		r.cells = make([]Cell[T], width)
	}
	r.cells = r.cells[:width]

	for i := range r.cells {
		var v T
		if i < len(fields) {
			parsed, err := r.parse(fields[i])
			if err != nil && r.policy == PolicyStrict {
				r.cells = r.cells[:0]
				return &ParseError{Column: r.header.ColumnName(i), Field: fields[i], Err: err}
			}
			if err == nil {
				v = parsed
			}
		}
		r.cells[i] = Cell[T]{Value: v, Visible: true}
	}
	return nil
}

// AddColumn appends value to the record and name to its Header.
func (r *Record[T]) AddColumn(name string, value T) {
	r.cells = append(r.cells, Cell[T]{Value: value, Visible: true})
	r.header.AddColumn(name)
}

// Append adds every column of other, names included, to the end of r.
func (r *Record[T]) Append(other *Record[T]) *Record[T] {
	for i, cell := range other.cells {
		r.AddColumn(other.header.ColumnName(i), cell.Value)
	}
	return r
}

// Clone returns a deep copy of r bound to a copy of its Header, so columns
// added to the clone do not leak into the source Header.
func (r *Record[T]) Clone() *Record[T] {
	return &Record[T]{
		header: r.header.Clone(),
		filter: r.filter,
		cells:  append([]Cell[T](nil), r.cells...),
		parse:  r.parse,
		policy: r.policy,
	}
}

// Join matches r against other on r[leftColumn] == other[rightColumn].
//
// On a match it returns a new record holding every column of r followed by
// every column of other, hidden ones included, bound to a new Header and to
// the filter of r. Otherwise it returns an empty record. A column name missing
// from either Header is a *ColumnNotFoundError.
func (r *Record[T]) Join(other *Record[T], leftColumn, rightColumn string) (*Record[T], error) {
	left, err := r.Value(leftColumn)
	if err != nil {
		return nil, err
	}
	right, err := other.Value(rightColumn)
	if err != nil {
		return nil, err
	}

	result := NewRecord[T](NewHeader(), r.filter)
	if left != right {
		return result, nil
	}

	result.cells = make([]Cell[T], 0, len(r.cells)+len(other.cells))
	result.header.columns = make([]Column, 0, len(r.cells)+len(other.cells))
	result.Append(r)
	result.Append(other)
	return result, nil
}

// ApplyFilter hides every column whose name the filter does not allow, in both
// the record and its Header.
func (r *Record[T]) ApplyFilter() {
	for i := range r.cells {
		if !r.filter.Allow(r.header.ColumnName(i)) {
			r.cells[i].Visible = false
		}
	}
	r.header.ApplyFilter(r.filter)
}

// VisibleFields applies the filter and returns the visible values formatted
// for output.
func (r *Record[T]) VisibleFields() []string {
	r.ApplyFilter()
	fields := make([]string, 0, len(r.cells))
	for _, cell := range r.cells {
		if cell.Visible {
			fields = append(fields, FormatNumber(cell.Value))
		}
	}
	return fields
}

// RecordLine applies the filter and joins the visible values with commas. It
// returns "" for a record without columns.
func (r *Record[T]) RecordLine() string {
	if len(r.cells) == 0 {
		return ""
	}
	return strings.Join(r.VisibleFields(), ",")
}

// Cells returns a copy of the values with their visibility.
func (r *Record[T]) Cells() []Cell[T] {
	return append([]Cell[T](nil), r.cells...)
}
