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

// Computer appends the value of Expression to every row of its input.
type Computer[T record.Number] struct {
	Expression Expression
	// Filter restricts the written columns; nil writes every column
	Filter *record.ColumnFilter
	// Parser converts fields; nil uses record.ParseNumber
	Parser      record.Parser[T]
	ParsePolicy record.ParsePolicy
	ErrorPolicy ErrorPolicy
	Logger      *slog.Logger
}

// Run streams src into out, one row resident at a time.
//
// The header, with the result column, is written together with the first
// row. An empty input writes nothing. Run does not close out.
func (c *Computer[T]) Run(src reader.Source, out output.Formatter) (Stats, error) {
	var stats Stats
	logger := loggerOrDefault(c.Logger).With("input", src.Name(), "expression", c.Expression.String())

	header, err := reader.ReadHeader(src)
	if err != nil {
		return stats, err
	}
	if header.Len() == 0 {
		logger.Info("input is empty")
		return stats, nil
	}

	eval, err := NewEvaluator[T](c.Expression, header)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", src.Name(), err)
	}

	rows, err := openRows(src)
	if err != nil {
		return stats, err
	}
	defer func() { _ = rows.Close() }()

	rec := record.NewRecord[T](header, c.Filter)
	rec.SetParser(c.Parser, c.ParsePolicy)
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
			if err := rowError(c.ErrorPolicy, logger, &stats, rows.wrap(err)); err != nil {
				return stats, err
			}
			continue
		}

		value, err := eval.Eval(rec)
		if err != nil {
			if err := rowError(c.ErrorPolicy, logger, &stats, rows.wrap(err)); err != nil {
				return stats, err
			}
			continue
		}

		row := rec.Clone()
		row.AddColumn(ResultColumn, value)
		if err := w.write(row); err != nil {
			return stats, err
		}
	}

	logger.Info("compute finished", "stats", stats)
	return stats, nil
}
