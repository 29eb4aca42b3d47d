package record

import "fmt"

// ColumnNotFoundError reports a column name that is absent from a Header.
type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// ParseError reports a field that could not be converted under PolicyStrict.
type ParseError struct {
	Column string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %q: cannot parse %q: %v", e.Column, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldCountError reports a line whose field count differs from the Header
// under PolicyStrict.
type FieldCountError struct {
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("line has %d fields, header has %d", e.Got, e.Want)
}
