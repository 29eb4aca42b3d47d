// Package query implements the row transforms of csvmanip: a two-operand
// arithmetic expression, the compute pass that appends its result to every
// row, and the equality join of two inputs.
//
// # Expressions
//
// An expression names two columns and one operator out of + - * /:
//
//	expr, err := query.Parse("price*quantity")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The operator is found by scanning for '+', then '-', then '*', then '/'.
// The first operator present wins, wherever it appears in the string, so
// "a-b+c" adds column "a-b" to column "c". Division by zero is reported as
// ErrDivisionByZero for integer and float rows alike.
//
// # Compute
//
// Computer streams a Source, evaluates the expression on every row and writes
// the row with an extra "result" column:
//
//	c := &query.Computer[int64]{Expression: expr}
//	stats, err := c.Run(reader.Open("in.csv", true), output.NewCSVFormatter(w))
//
// # Join
//
// Joiner emits, for every left row in file order, each right row whose join
// column holds the same value, in right file order. Outer joins pad left rows
// without a match with a filler value in every right column:
//
//	j := &query.Joiner[int64]{
//	    LeftColumn:  "id",
//	    RightColumn: "id",
//	    Type:        query.JoinOuter,
//	}
//	stats, err := j.Run(left, right, formatter)
//
// StrategyRescan reopens the right input for every left row. StrategyMaterialized
// and StrategyIndexed parse the right input once and keep it in memory; they
// produce the same rows in the same order.
//
// # Errors
//
// Missing columns are reported as *record.ColumnNotFoundError before any row
// is written. Row errors (parse errors under record.PolicyStrict, division by
// zero) stop the run under PolicyAbort and are logged and skipped under
// PolicySkipRow. Run never closes the formatter, so the caller can flush what
// was written even when Run fails.
package query
