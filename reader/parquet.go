package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ParquetExtension marks inputs stored as parquet files.
const ParquetExtension = ".parquet"

// rowBatch is the number of rows fetched from parquet-go per call.
const rowBatch = 128

// ParquetSource reads a parquet file as CSV lines.
//
// The first line is the header, built from the leaf column paths of the file
// schema with dot notation for nested fields (e.g. "address.zip"). Every
// following line holds one row. Booleans are rendered as 1 and 0, nulls as
// empty fields, and repeated columns keep their first value.
type ParquetSource struct {
	path string
}

// NewParquetSource creates a Source for the parquet file at path.
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

// Name returns the file path.
func (s *ParquetSource) Name() string {
	return s.path
}

// HasHeader always returns true: the header comes from the file schema.
func (s *ParquetSource) HasHeader() bool {
	return true
}

// Open opens the parquet file and validates it.
func (s *ParquetSource) Open() (Lines, error) {
	file, pqFile, err := s.openFile()
	if err != nil {
		return nil, err
	}

	paths := pqFile.Schema().Columns()
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = strings.Join(path, ".")
	}

	return &parquetLines{
		file:    file,
		rows:    parquet.NewReader(pqFile),
		header:  strings.Join(names, ","),
		columns: len(names),
		buf:     make([]parquet.Row, rowBatch),
	}, nil
}

func (s *ParquetSource) openFile() (*os.File, *parquet.File, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("failed to open parquet file %s: %w", s.path, err)
	}
	return file, pqFile, nil
}

// parquetLines keeps both the OS file handle and the parquet reader so that
// Close releases everything.
type parquetLines struct {
	file    *os.File
	rows    *parquet.Reader
	header  string
	columns int

	headerDone bool
	buf        []parquet.Row
	pos, n     int
	readErr    error
}

func (p *parquetLines) ReadLine() (string, error) {
	if !p.headerDone {
		p.headerDone = true
		return p.header, nil
	}

	for p.pos >= p.n {
		if p.readErr != nil {
			return "", p.readErr
		}
		n, err := p.rows.ReadRows(p.buf)
		p.pos, p.n = 0, n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				err = fmt.Errorf("failed to read row: %w", err)
			}
			p.readErr = err
		}
	}

	row := p.buf[p.pos]
	p.pos++
	return formatRow(row, p.columns), nil
}

func (p *parquetLines) Close() error {
	_ = p.rows.Close()
	return p.file.Close()
}

// formatRow renders the first value of every leaf column as a CSV line. A
// null in the last column gets a closing comma, so the empty field survives
// record.SplitFields.
func formatRow(row parquet.Row, columns int) string {
	fields := make([]string, columns)
	seen := make([]bool, columns)
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= columns || seen[col] {
			continue
		}
		seen[col] = true
		fields[col] = formatValue(v)
	}
	line := strings.Join(fields, ",")
	if columns > 0 && fields[columns-1] == "" {
		line += ","
	}
	return line
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}

	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return "1"
		}
		return "0"
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		// Commas would shift the following fields
		return strings.ReplaceAll(string(v.ByteArray()), ",", " ")
	default:
		return fmt.Sprint(v)
	}
}
