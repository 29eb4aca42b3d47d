package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)

	if err := formatter.WriteHeader([]string{"id", "value"}); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if err := formatter.WriteRow([]string{"1", "10"}); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := formatter.WriteRow([]string{"2", "200"}); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("table rendered before Close")
	}
	if err := formatter.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"id", "value", "200"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "VALUE") {
		t.Errorf("header names should not be reformatted:\n%s", out)
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	if err := formatter.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
