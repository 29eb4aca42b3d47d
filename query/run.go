package query

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vegasq/csvmanip/output"
	"github.com/vegasq/csvmanip/reader"
	"github.com/vegasq/csvmanip/record"
)

// rowWriter writes the header of the first row it receives, then rows.
type rowWriter[T record.Number] struct {
	out        output.Formatter
	headerDone bool
	stats      *Stats
}

// write applies the row filter and sends the visible fields to the formatter.
func (w *rowWriter[T]) write(rec *record.Record[T]) error {
	fields := rec.VisibleFields()
	if !w.headerDone {
		if err := w.out.WriteHeader(rec.Header().VisibleNames()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		w.headerDone = true
	}
	if err := w.out.WriteRow(fields); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.stats.Written++
	return nil
}

// rowScanner reads the data rows of a Source and tracks line numbers for
// error messages. Blank lines are skipped.
type rowScanner struct {
	src   reader.Source
	lines reader.Lines
	line  int
}

func openRows(src reader.Source) (*rowScanner, error) {
	lines, err := src.Open()
	if err != nil {
		return nil, err
	}
	skipped, err := reader.SkipHeader(src, lines)
	if err != nil {
		_ = lines.Close()
		return nil, err
	}
	return &rowScanner{src: src, lines: lines, line: skipped}, nil
}

// next returns the next non-blank line, or io.EOF.
func (s *rowScanner) next() (string, error) {
	for {
		line, err := s.lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", s.src.Name(), err)
		}
		s.line++
		if !reader.IsBlank(line) {
			return line, nil
		}
	}
}

// wrap adds the position of the current line to err.
func (s *rowScanner) wrap(err error) error {
	return fmt.Errorf("%s:%d: %w", s.src.Name(), s.line, err)
}

func (s *rowScanner) Close() error {
	return s.lines.Close()
}

// rowError applies policy to a failed row. It returns nil when the row is
// skipped.
func rowError(policy ErrorPolicy, logger *slog.Logger, stats *Stats, err error) error {
	if policy != PolicySkipRow {
		return err
	}
	stats.Skipped++
	logger.Warn("skipping row", "error", err)
	return nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
