package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// ColumnInfo describes one column of a Source.
type ColumnInfo struct {
	Index int
	Name  string
	// Type is the parquet type of the column; CSV columns have type "CSV"
	Type string
	// Numeric reports whether values read as numbers. Other columns are read
	// as zero unless parsing is strict.
	Numeric  bool
	Optional bool
	Repeated bool
}

// Describe lists the columns of src in header order.
func Describe(src Source) ([]ColumnInfo, error) {
	if pq, ok := src.(*ParquetSource); ok {
		return pq.describe()
	}

	header, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	infos := make([]ColumnInfo, header.Len())
	for i, name := range header.Names() {
		infos[i] = ColumnInfo{Index: i, Name: name, Type: "CSV", Numeric: true}
	}
	return infos, nil
}

func (s *ParquetSource) describe() ([]ColumnInfo, error) {
	file, pqFile, err := s.openFile()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var infos []ColumnInfo
	for _, field := range pqFile.Schema().Fields() {
		infos = append(infos, leafInfo(field, "", false)...)
	}
	for i := range infos {
		infos[i].Index = i
	}
	return infos, nil
}

// leafInfo walks field down to its leaf columns. Nested names use dot
// notation, the same as the header line of a ParquetSource.
func leafInfo(field parquet.Field, prefix string, parentRepeated bool) []ColumnInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var infos []ColumnInfo
		for _, child := range children {
			infos = append(infos, leafInfo(child, name, repeated)...)
		}
		return infos
	}

	kind := field.Type().Kind()
	return []ColumnInfo{{
		Name:     name,
		Type:     typeName(field.Type()),
		Numeric:  kind != parquet.ByteArray && kind != parquet.FixedLenByteArray && kind != parquet.Int96,
		Optional: field.Optional(),
		Repeated: repeated,
	}}
}

// typeName prefers the logical type of t and falls back to its physical type.
func typeName(t parquet.Type) string {
	if lt := t.LogicalType(); lt != nil {
		switch s := lt.String(); s {
		case "STRING", "UTF8", "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
			return s
		}
	}

	switch t.Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprint(t.Kind())
	}
}
