package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter outputs rows as JSON Lines format: one object per row, keyed
// by the column names in column order. Numeric fields are written as JSON
// numbers, anything else as strings. Repeated names are renamed name_2,
// name_3, ...
type JSONFormatter struct {
	encoder *json.Encoder
	names   []string
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{encoder: json.NewEncoder(w)}
}

// WriteHeader records the keys of the following objects.
func (j *JSONFormatter) WriteHeader(columns []string) error {
	j.names = uniqueNames(columns)
	return nil
}

// WriteRow writes one object
func (j *JSONFormatter) WriteRow(fields []string) error {
	if j.names == nil {
		j.names = uniqueNames(make([]string, len(fields)))
	}
	if len(fields) != len(j.names) {
		return fmt.Errorf("row has %d fields, header has %d", len(fields), len(j.names))
	}
	if err := j.encoder.Encode(jsonRow{names: j.names, fields: fields}); err != nil {
		return fmt.Errorf("failed to encode JSON row: %w", err)
	}
	return nil
}

// Close is a no-op: every row is written by WriteRow.
func (j *JSONFormatter) Close() error {
	return nil
}

// jsonRow marshals as an object whose keys keep column order, which a map
// would not.
type jsonRow struct {
	names  []string
	fields []string
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := jsonValue(r.fields[i])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(field string) ([]byte, error) {
	if inferKind(field) != kindText && json.Valid([]byte(field)) {
		return []byte(field), nil
	}
	return json.Marshal(field)
}
