package output

import (
	"bytes"
	"testing"
)

func TestCSVFormatter(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name: "nothing written",
			want: "",
		},
		{
			name:   "header and rows",
			header: []string{"a", "b", "result"},
			rows:   [][]string{{"4", "5", "20"}, {"1", "2", "2"}},
			want:   "a,b,result\n4,5,20\n1,2,2\n",
		},
		{
			name:   "row with every column hidden",
			header: []string{},
			rows:   [][]string{{}},
			want:   "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := NewCSVFormatter(&buf)

			if tt.header != nil {
				if err := formatter.WriteHeader(tt.header); err != nil {
					t.Fatalf("WriteHeader() error = %v", err)
				}
			}
			for _, row := range tt.rows {
				if err := formatter.WriteRow(row); err != nil {
					t.Fatalf("WriteRow() error = %v", err)
				}
			}
			if err := formatter.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSVFormatter_BufferedUntilClose(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)
	_ = formatter.WriteHeader([]string{"a"})

	if buf.Len() != 0 {
		t.Errorf("output written before Close: %q", buf.String())
	}
	if err := formatter.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.String() != "a\n" {
		t.Errorf("output = %q, want %q", buf.String(), "a\n")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"TABLE", FormatTable, false},
		{"parquet", FormatParquet, false},
		{"sqlite", FormatSQLite, false},
		{"JSON", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if FormatSQLite.Streamed() {
		t.Error("sqlite should not be a streamed format")
	}
}
