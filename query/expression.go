package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vegasq/csvmanip/record"
)

var (
	// ErrInvalidExpression is returned for expressions that are not exactly
	// two column names around one operator.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrDivisionByZero is returned when the right operand of '/' is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Operator is one of the four arithmetic operators.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// operators lists the operators in the order Parse looks for them.
var operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

func (o Operator) String() string {
	return string(rune(o))
}

// Operand is a column name.
type Operand string

// Expression is "<Left><Op><Right>".
type Expression struct {
	Left  Operand
	Op    Operator
	Right Operand
}

// Parse parses a two-operand expression such as "a*b".
//
// The first operator found in the order + - * / splits the expression. The
// split must give exactly two non-empty operands; surrounding spaces are
// trimmed from each.
func Parse(expr string) (Expression, error) {
	for _, op := range operators {
		if !strings.ContainsRune(expr, rune(op)) {
			continue
		}

		parts := strings.Split(expr, op.String())
		if len(parts) != 2 {
			return Expression{}, fmt.Errorf("%w %q: more than one %q", ErrInvalidExpression, expr, op.String())
		}
		left := strings.TrimSpace(parts[0])
		right := strings.TrimSpace(parts[1])
		if left == "" || right == "" {
			return Expression{}, fmt.Errorf("%w %q: missing operand", ErrInvalidExpression, expr)
		}
		return Expression{Left: Operand(left), Op: op, Right: Operand(right)}, nil
	}
	return Expression{}, fmt.Errorf("%w %q: no operator, expected one of + - * /", ErrInvalidExpression, expr)
}

func (e Expression) String() string {
	return string(e.Left) + e.Op.String() + string(e.Right)
}

// Apply computes a op b.
func Apply[T record.Number](op Operator, a, b T) (T, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			var zero T
			return zero, ErrDivisionByZero
		}
		return a / b, nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: unknown operator %q", ErrInvalidExpression, op.String())
	}
}

// Evaluator is an Expression with its operands resolved against a Header.
type Evaluator[T record.Number] struct {
	expr        Expression
	left, right int
}

// NewEvaluator resolves the operands of e in header. An operand that names no
// column is a *record.ColumnNotFoundError.
func NewEvaluator[T record.Number](e Expression, header *record.Header) (*Evaluator[T], error) {
	left, ok := header.ColumnIndex(string(e.Left))
	if !ok {
		return nil, &record.ColumnNotFoundError{Name: string(e.Left)}
	}
	right, ok := header.ColumnIndex(string(e.Right))
	if !ok {
		return nil, &record.ColumnNotFoundError{Name: string(e.Right)}
	}
	return &Evaluator[T]{expr: e, left: left, right: right}, nil
}

// Expression returns the evaluated expression.
func (ev *Evaluator[T]) Expression() Expression {
	return ev.expr
}

// Eval computes the expression on rec, which must be bound to the Header the
// evaluator was built with.
func (ev *Evaluator[T]) Eval(rec *record.Record[T]) (T, error) {
	return Apply(ev.expr.Op, rec.Get(ev.left), rec.Get(ev.right))
}
