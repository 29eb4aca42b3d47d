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

// Joiner joins two inputs on LeftColumn == RightColumn.
type Joiner[T record.Number] struct {
	LeftColumn  string
	RightColumn string
	Type        JoinType
	Strategy    JoinStrategy
	// Filler fills the right columns of unmatched rows in outer joins
	Filler T
	// Filter restricts the written columns; nil writes every column
	Filter *record.ColumnFilter
	// Parser converts fields of both inputs; nil uses record.ParseNumber
	Parser      record.Parser[T]
	ParsePolicy record.ParsePolicy
	ErrorPolicy ErrorPolicy
	Logger      *slog.Logger
}

// rightSide yields the right rows that may match a left row, in right file
// order.
type rightSide[T record.Number] interface {
	scan(left *record.Record[T], emit func(right *record.Record[T]) error) error
}

// Run writes the join of left and right to out.
//
// For every left row, in file order, each matching right row produces one
// output row holding the left columns followed by the right columns. The
// header is written with the first output row. Run does not close out.
func (j *Joiner[T]) Run(left, right reader.Source, out output.Formatter) (Stats, error) {
	var stats Stats
	logger := loggerOrDefault(j.Logger).With(
		"left", left.Name(),
		"right", right.Name(),
		"type", j.Type.String(),
		"strategy", j.Strategy.String(),
	)

	leftHeader, err := reader.ReadHeader(left)
	if err != nil {
		return stats, err
	}
	rightHeader, err := reader.ReadHeader(right)
	if err != nil {
		return stats, err
	}
	if err := validateColumn(left, leftHeader, j.LeftColumn); err != nil {
		return stats, err
	}
	if err := validateColumn(right, rightHeader, j.RightColumn); err != nil {
		return stats, err
	}
	if leftHeader.Len() == 0 {
		logger.Info("left input is empty")
		return stats, nil
	}

	side, err := j.openRightSide(right, rightHeader, logger, &stats)
	if err != nil {
		return stats, err
	}

	rows, err := openRows(left)
	if err != nil {
		return stats, err
	}
	defer func() { _ = rows.Close() }()

	rec := j.newRecord(leftHeader, j.Filter)
	w := &rowWriter[T]{out: out, stats: &stats}

	for {
		line, err := rows.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Read++

		if err := rec.SetLine(line); err != nil {
			if err := rowError(j.ErrorPolicy, logger, &stats, rows.wrap(err)); err != nil {
				return stats, err
			}
			continue
		}

		matched := false
		err = side.scan(rec, func(r *record.Record[T]) error {
			joined, err := rec.Join(r, j.LeftColumn, j.RightColumn)
			if err != nil {
				return err
			}
			if joined.IsEmpty() {
				return nil
			}
			matched = true
			stats.Matched++
			return w.write(joined)
		})
		if err != nil {
			return stats, err
		}

		if !matched && j.Type == JoinOuter {
			padded := rec.Clone().Append(record.NewFilledRecord(rightHeader, j.Filler))
			if err := w.write(padded); err != nil {
				return stats, err
			}
			stats.Padded++
		}
	}

	logger.Info("join finished", "stats", stats)
	return stats, nil
}

// validateColumn checks that name is a column of header. An empty input has no
// rows to join, so its header is not checked.
func validateColumn(src reader.Source, header *record.Header, name string) error {
	if header.Len() == 0 {
		return nil
	}
	if _, ok := header.ColumnIndex(name); !ok {
		return fmt.Errorf("%s: %w", src.Name(), &record.ColumnNotFoundError{Name: name})
	}
	return nil
}

func (j *Joiner[T]) newRecord(header *record.Header, filter *record.ColumnFilter) *record.Record[T] {
	rec := record.NewRecord[T](header, filter)
	rec.SetParser(j.Parser, j.ParsePolicy)
	return rec
}

func (j *Joiner[T]) openRightSide(src reader.Source, header *record.Header, logger *slog.Logger, stats *Stats) (rightSide[T], error) {
	switch j.Strategy {
	case StrategyRescan:
		return &rescanSide[T]{joiner: j, src: src, header: header, logger: logger, stats: stats}, nil
	case StrategyMaterialized, StrategyIndexed:
		rows := &rightRows[T]{load: func() ([]*record.Record[T], error) {
			return j.materialize(src, header, logger, stats)
		}}
		if j.Strategy == StrategyMaterialized {
			return &memorySide[T]{rows: rows}, nil
		}
		return newIndexedSide(rows, header, j.LeftColumn, j.RightColumn), nil
	default:
		return nil, fmt.Errorf("unsupported join strategy %s", j.Strategy)
	}
}

// materialize parses every data row of src. On a failing row it returns the
// rows parsed before it together with the error.
func (j *Joiner[T]) materialize(src reader.Source, header *record.Header, logger *slog.Logger, stats *Stats) ([]*record.Record[T], error) {
	if header.Len() == 0 {
		return nil, nil
	}

	rows, err := openRows(src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*record.Record[T]
	for {
		line, err := rows.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		rec := j.newRecord(header, nil)
		if err := rec.SetLine(line); err != nil {
			if err := rowError(j.ErrorPolicy, logger, stats, rows.wrap(err)); err != nil {
				return out, err
			}
			continue
		}
		out = append(out, rec)
	}
}

// rightRows loads the right input on the first scan, so an empty left input
// never reads it. A load error is returned by every scan after the rows
// parsed before the failure, the point where a rescan would stop.
type rightRows[T record.Number] struct {
	load   func() ([]*record.Record[T], error)
	loaded bool
	rows   []*record.Record[T]
	err    error
}

func (r *rightRows[T]) get() ([]*record.Record[T], error) {
	if !r.loaded {
		r.rows, r.err = r.load()
		r.loaded = true
	}
	return r.rows, r.err
}

// rescanSide reopens the right input on every scan.
type rescanSide[T record.Number] struct {
	joiner *Joiner[T]
	src    reader.Source
	header *record.Header
	logger *slog.Logger
	stats  *Stats
}

func (s *rescanSide[T]) scan(_ *record.Record[T], emit func(*record.Record[T]) error) error {
	if s.header.Len() == 0 {
		return nil
	}

	rows, err := openRows(s.src)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	rec := s.joiner.newRecord(s.header, nil)
	for {
		line, err := rows.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := rec.SetLine(line); err != nil {
			if err := rowError(s.joiner.ErrorPolicy, s.logger, s.stats, rows.wrap(err)); err != nil {
				return err
			}
			continue
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
}

// memorySide scans parsed right rows.
type memorySide[T record.Number] struct {
	rows *rightRows[T]
}

func (s *memorySide[T]) scan(_ *record.Record[T], emit func(*record.Record[T]) error) error {
	rows, loadErr := s.rows.get()
	for _, r := range rows {
		if err := emit(r); err != nil {
			return err
		}
	}
	return loadErr
}

// indexedSide looks right rows up by join key. Each key keeps its rows in
// file order. The index is built on the first scan.
type indexedSide[T record.Number] struct {
	rows     *rightRows[T]
	index    map[T][]int
	column   int
	leftName string
}

func newIndexedSide[T record.Number](rows *rightRows[T], header *record.Header, leftColumn, rightColumn string) *indexedSide[T] {
	col, ok := header.ColumnIndex(rightColumn)
	if !ok {
		col = -1
	}
	return &indexedSide[T]{rows: rows, column: col, leftName: leftColumn}
}

func (s *indexedSide[T]) scan(left *record.Record[T], emit func(*record.Record[T]) error) error {
	rows, loadErr := s.rows.get()
	if s.index == nil {
		s.index = make(map[T][]int)
		if s.column >= 0 {
			for i, r := range rows {
				key := r.Get(s.column)
				s.index[key] = append(s.index[key], i)
			}
		}
	}

	key, err := left.Value(s.leftName)
	if err != nil {
		return err
	}
	for _, i := range s.index[key] {
		if err := emit(rows[i]); err != nil {
			return err
		}
	}
	return loadErr
}
