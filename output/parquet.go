package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// ParquetFormatter writes rows to a parquet file.
//
// The schema is inferred from the first row: INT64 for integer fields,
// DOUBLE for float fields and STRING otherwise. Parquet groups order their
// fields by name, so the file lists columns alphabetically; repeated names
// are renamed name_2, name_3, ... With floats set, numeric columns are always
// DOUBLE.
type ParquetFormatter struct {
	output  io.Writer
	floats  bool
	names   []string
	writer  *parquet.Writer
	kinds   []columnKind
	indexes []int
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer, floats bool) *ParquetFormatter {
	return &ParquetFormatter{output: w, floats: floats}
}

// WriteHeader records the column names. The schema is built on the first row.
func (p *ParquetFormatter) WriteHeader(columns []string) error {
	p.names = uniqueNames(columns)
	return nil
}

// WriteRow appends one row
func (p *ParquetFormatter) WriteRow(fields []string) error {
	if p.writer == nil {
		if p.names == nil {
			p.names = uniqueNames(make([]string, len(fields)))
		}
		if err := p.open(inferKinds(fields, p.floats)); err != nil {
			return err
		}
	}

	row := make(parquet.Row, len(p.names))
	for i := range p.names {
		field := ""
		if i < len(fields) {
			field = fields[i]
		}
		col := p.indexes[i]
		row[col] = parquetValue(p.kinds[i], field).Level(0, 0, col)
	}

	if _, err := p.writer.WriteRows([]parquet.Row{row}); err != nil {
		return fmt.Errorf("failed to write parquet row: %w", err)
	}
	return nil
}

// Close writes the parquet footer. A header without rows produces a file
// with numeric columns and no rows.
func (p *ParquetFormatter) Close() error {
	if p.writer == nil {
		if p.names == nil {
			return nil
		}
		if err := p.open(emptyKinds(len(p.names), p.floats)); err != nil {
			return err
		}
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func (p *ParquetFormatter) open(kinds []columnKind) error {
	if len(kinds) != len(p.names) {
		return fmt.Errorf("row has %d fields, header has %d", len(kinds), len(p.names))
	}

	group := make(parquet.Group, len(p.names))
	for i, name := range p.names {
		group[name] = parquetNode(kinds[i])
	}
	schema := parquet.NewSchema("record", group)

	p.indexes = make([]int, len(p.names))
	for i, name := range p.names {
		leaf, ok := schema.Lookup(name)
		if !ok {
			return fmt.Errorf("parquet schema is missing column %q", name)
		}
		p.indexes[i] = leaf.ColumnIndex
	}

	p.kinds = kinds
	p.writer = parquet.NewWriter(p.output, schema)
	return nil
}

func parquetNode(kind columnKind) parquet.Node {
	switch kind {
	case kindFloat:
		return parquet.Leaf(parquet.DoubleType)
	case kindText:
		return parquet.String()
	default:
		return parquet.Leaf(parquet.Int64Type)
	}
}

func parquetValue(kind columnKind, field string) parquet.Value {
	switch kind {
	case kindFloat:
		f, _ := strconv.ParseFloat(field, 64)
		return parquet.DoubleValue(f)
	case kindText:
		return parquet.ByteArrayValue([]byte(field))
	default:
		i, _ := strconv.ParseInt(field, 10, 64)
		return parquet.Int64Value(i)
	}
}
