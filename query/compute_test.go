package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/vegasq/csvmanip/output"
	"github.com/vegasq/csvmanip/record"
)

func mustParse(t *testing.T, expr string) Expression {
	t.Helper()
	e, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", expr, err)
	}
	return e
}

func TestComputer_Run(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		hasHeader bool
		expr      string
		filter    string
		want      string
	}{
		{
			name:    "default header",
			content: "1,2\n",
			expr:    "col_0+col_1",
			want:    "col_0,col_1,result\n1,2,3\n",
		},
		{
			name:      "literal header",
			content:   "a,b\n4,5\n",
			hasHeader: true,
			expr:      "a*b",
			want:      "a,b,result\n4,5,20\n",
		},
		{
			name:      "filter",
			content:   "a,b\n4,5\n",
			hasHeader: true,
			expr:      "a*b",
			filter:    "a,result",
			want:      "a,result\n4,20\n",
		},
		{
			name:      "several rows in input order",
			content:   "a,b\n4,5\n10,3\n-1,1\n",
			hasHeader: true,
			expr:      "a-b",
			want:      "a,b,result\n4,5,-1\n10,3,7\n-1,1,-2\n",
		},
		{
			name:      "unparseable field coerced to zero",
			content:   "a,b\n4,x\n",
			hasHeader: true,
			expr:      "a+b",
			want:      "a,b,result\n4,0,4\n",
		},
		{
			name:      "blank lines skipped",
			content:   "a,b\n\n4,5\n\n",
			hasHeader: true,
			expr:      "a+b",
			want:      "a,b,result\n4,5,9\n",
		},
		{
			name:    "leading blank line without header",
			content: "\n1,2\n3,4\n",
			expr:    "col_0+col_1",
			want:    "col_0,col_1,result\n1,2,3\n3,4,7\n",
		},
		{
			name:      "leading blank lines before header",
			content:   "\n \na,b\n4,5\n",
			hasHeader: true,
			expr:      "a*b",
			want:      "a,b,result\n4,5,20\n",
		},
		{
			name:      "header only",
			content:   "a,b\n",
			hasHeader: true,
			expr:      "a+b",
			want:      "",
		},
		{
			name:    "empty input",
			content: "",
			expr:    "a+b",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := csvSource(t, "in.csv", tt.content, tt.hasHeader)
			c := &Computer[int64]{
				Expression: mustParse(t, tt.expr),
				Logger:     quietLogger,
			}
			if tt.filter != "" {
				c.Filter = record.NewColumnFilter(tt.filter)
			}

			got, _, err := collect(t, func(out output.Formatter) (Stats, error) {
				return c.Run(src, out)
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputer_Float(t *testing.T) {
	src := csvSource(t, "in.csv", "a,b\n1.5,2\n3,0.5\n", true)
	c := &Computer[float64]{Expression: mustParse(t, "a/b"), Logger: quietLogger}

	got, stats, err := collect(t, func(out output.Formatter) (Stats, error) {
		return c.Run(src, out)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "a,b,result\n1.5,2,0.75\n3,0.5,6\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if stats.Read != 2 || stats.Written != 2 {
		t.Errorf("stats = %+v, want 2 read and 2 written", stats)
	}
}

func TestComputer_MissingColumn(t *testing.T) {
	src := csvSource(t, "in.csv", "a,b\n4,5\n", true)
	c := &Computer[int64]{Expression: mustParse(t, "a*z"), Logger: quietLogger}

	got, _, err := collect(t, func(out output.Formatter) (Stats, error) {
		return c.Run(src, out)
	})

	var notFound *record.ColumnNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Run() error = %v, want *ColumnNotFoundError", err)
	}
	if notFound.Name != "z" {
		t.Errorf("Name = %q, want %q", notFound.Name, "z")
	}
	if got != "" {
		t.Errorf("output = %q, want nothing written", got)
	}
}

func TestComputer_DivisionByZero(t *testing.T) {
	content := "a,b\n4,2\n1,0\n9,3\n"

	t.Run("abort", func(t *testing.T) {
		c := &Computer[int64]{Expression: mustParse(t, "a/b"), Logger: quietLogger}
		got, stats, err := collect(t, func(out output.Formatter) (Stats, error) {
			return c.Run(csvSource(t, "in.csv", content, true), out)
		})

		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("Run() error = %v, want ErrDivisionByZero", err)
		}
		if !strings.Contains(err.Error(), "in.csv:3:") {
			t.Errorf("error %q does not name the failing line", err)
		}
		if want := "a,b,result\n4,2,2\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if stats.Written != 1 {
			t.Errorf("Written = %d, want 1", stats.Written)
		}
	})

	t.Run("line counts leading blanks", func(t *testing.T) {
		c := &Computer[int64]{Expression: mustParse(t, "a/b"), Logger: quietLogger}
		_, _, err := collect(t, func(out output.Formatter) (Stats, error) {
			return c.Run(csvSource(t, "in.csv", "\n\na,b\n1,0\n", true), out)
		})
		if err == nil || !strings.Contains(err.Error(), "in.csv:4:") {
			t.Errorf("Run() error = %v, want it to name in.csv:4", err)
		}
	})

	t.Run("skip row", func(t *testing.T) {
		c := &Computer[int64]{
			Expression:  mustParse(t, "a/b"),
			ErrorPolicy: PolicySkipRow,
			Logger:      quietLogger,
		}
		got, stats, err := collect(t, func(out output.Formatter) (Stats, error) {
			return c.Run(csvSource(t, "in.csv", content, true), out)
		})

		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if want := "a,b,result\n4,2,2\n9,3,3\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if stats.Read != 3 || stats.Written != 2 || stats.Skipped != 1 {
			t.Errorf("stats = %+v, want 3 read, 2 written, 1 skipped", stats)
		}
	})
}

func TestComputer_Strict(t *testing.T) {
	content := "a,b\n4,5\n4,x\n1,2,3\n"

	t.Run("abort", func(t *testing.T) {
		c := &Computer[int64]{
			Expression:  mustParse(t, "a+b"),
			ParsePolicy: record.PolicyStrict,
			Logger:      quietLogger,
		}
		got, _, err := collect(t, func(out output.Formatter) (Stats, error) {
			return c.Run(csvSource(t, "in.csv", content, true), out)
		})

		var parseErr *record.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Run() error = %v, want *ParseError", err)
		}
		if parseErr.Column != "b" || parseErr.Field != "x" {
			t.Errorf("ParseError = %+v", parseErr)
		}
		if want := "a,b,result\n4,5,9\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("skip row", func(t *testing.T) {
		c := &Computer[int64]{
			Expression:  mustParse(t, "a+b"),
			ParsePolicy: record.PolicyStrict,
			ErrorPolicy: PolicySkipRow,
			Logger:      quietLogger,
		}
		got, stats, err := collect(t, func(out output.Formatter) (Stats, error) {
			return c.Run(csvSource(t, "in.csv", content, true), out)
		})

		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if want := "a,b,result\n4,5,9\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if stats.Skipped != 2 {
			t.Errorf("Skipped = %d, want 2", stats.Skipped)
		}
	})
}

func TestComputer_CustomParser(t *testing.T) {
	src := csvSource(t, "in.csv", "a,b\n1k,2\n", true)
	c := &Computer[int64]{
		Expression: mustParse(t, "a+b"),
		Parser: func(field string) (int64, error) {
			if strings.HasSuffix(field, "k") {
				v, err := record.ParseNumber[int64](strings.TrimSuffix(field, "k"))
				return v * 1000, err
			}
			return record.ParseNumber[int64](field)
		},
		Logger: quietLogger,
	}

	got, _, err := collect(t, func(out output.Formatter) (Stats, error) {
		return c.Run(src, out)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "a,b,result\n1000,2,1002\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
