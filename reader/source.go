// Package reader provides line-oriented access to the inputs of csvmanip.
//
// A Source can be opened any number of times; every Open starts again from
// the first line. This lets the join engine rescan its right input once per
// left row.
//
// Plain CSV files are read as they are, files ending in ".sz" are decoded
// with the snappy framing format, and files ending in ".parquet" are read
// with parquet-go and rendered as CSV lines.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/vegasq/csvmanip/record"
)

// SnappyExtension marks inputs stored in the snappy framing format.
const SnappyExtension = ".sz"

// Lines is an open Source. ReadLine returns io.EOF at the end of input.
type Lines interface {
	record.LineReader
	io.Closer
}

// Source is a restartable line input.
type Source interface {
	// Name identifies the source in logs and errors
	Name() string
	// HasHeader reports whether the first line holds column names
	HasHeader() bool
	// Open starts reading from the first line
	Open() (Lines, error)
}

// Open returns the Source for path, picking the parquet reader for files
// ending in ".parquet". Parquet sources always have a header.
func Open(path string, hasHeader bool) Source {
	if strings.HasSuffix(strings.ToLower(path), ParquetExtension) {
		return NewParquetSource(path)
	}
	return NewFileSource(path, hasHeader)
}

// FileSource reads a CSV file, optionally snappy compressed.
type FileSource struct {
	path   string
	header bool
}

// NewFileSource creates a Source for the CSV file at path.
func NewFileSource(path string, hasHeader bool) *FileSource {
	return &FileSource{path: path, header: hasHeader}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// HasHeader reports whether the first line holds column names.
func (s *FileSource) HasHeader() bool {
	return s.header
}

// Open opens the file and positions it on the first line.
func (s *FileSource) Open() (Lines, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}

	var r io.Reader = file
	if strings.HasSuffix(strings.ToLower(s.path), SnappyExtension) {
		r = snappy.NewReader(file)
	}

	return &lineReader{
		reader: bufio.NewReaderSize(r, 64*1024),
		closer: file,
	}, nil
}

// lineReader splits a byte stream on '\n' and drops the line terminator,
// including the '\r' of CRLF files.
type lineReader struct {
	reader *bufio.Reader
	closer io.Closer
}

func (l *lineReader) ReadLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func (l *lineReader) Close() error {
	return l.closer.Close()
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ReadHeader reads the Header of src: the literal first non-blank line when
// the source has a header, otherwise col_0..col_{n-1} from the field count of
// the first non-blank line. An empty source yields an empty Header.
func ReadHeader(src Source) (*record.Header, error) {
	lines, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lines.Close() }()

	header := record.NewHeader()
	first, _, err := firstLine(lines)
	if errors.Is(err, io.EOF) {
		return header, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read first line of %s: %w", src.Name(), err)
	}

	if src.HasHeader() {
		header.Set(first)
	} else {
		header.MakeDefault(first)
	}
	return header, nil
}

// IsBlank reports whether line holds nothing but whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// firstLine returns the first non-blank line and the number of lines read.
func firstLine(lines Lines) (string, int, error) {
	n := 0
	for {
		line, err := lines.ReadLine()
		if err != nil {
			return "", n, err
		}
		n++
		if !IsBlank(line) {
			return line, n, nil
		}
	}
}

// SkipHeader advances lines past the header of src, including the blank
// lines before it, and returns the number of lines consumed. Sources without
// a header are left untouched.
func SkipHeader(src Source, lines Lines) (int, error) {
	if !src.HasHeader() {
		return 0, nil
	}
	_, n, err := firstLine(lines)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("failed to skip header of %s: %w", src.Name(), err)
	}
	return n, nil
}

// OpenRows opens src and skips the header line when there is one, leaving
// the returned Lines on the first data row.
func OpenRows(src Source) (Lines, error) {
	lines, err := src.Open()
	if err != nil {
		return nil, err
	}
	if _, err := SkipHeader(src, lines); err != nil {
		_ = lines.Close()
		return nil, err
	}
	return lines, nil
}
