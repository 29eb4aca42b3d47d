package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestDescribe_Parquet(t *testing.T) {
	path := createParquetFile(t, []measurementRow{{ID: 1}})

	got, err := Describe(Open(path, false))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	want := []ColumnInfo{
		{Index: 0, Name: "id", Type: "INT64", Numeric: true},
		{Index: 1, Name: "count", Type: "INT32", Numeric: true},
		{Index: 2, Name: "ratio", Type: "DOUBLE", Numeric: true},
		{Index: 3, Name: "active", Type: "BOOLEAN", Numeric: true},
		{Index: 4, Name: "label", Type: "STRING"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %+v, want %+v", got, want)
	}
}

func TestDescribe_NestedParquet(t *testing.T) {
	type address struct {
		City string `parquet:"city"`
		Zip  int32  `parquet:"zip"`
	}
	type person struct {
		ID      int64   `parquet:"id"`
		Address address `parquet:"address"`
		Tags    []int64 `parquet:"tags,list"`
		Note    *string `parquet:"note,optional"`
	}

	path := filepath.Join(t.TempDir(), "nested.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	writer := parquet.NewGenericWriter[person](f)
	if _, err := writer.Write([]person{{ID: 1, Address: address{City: "x", Zip: 7}, Tags: []int64{1, 2}}}); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	infos, err := Describe(NewParquetSource(path))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	byName := make(map[string]ColumnInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}
	if _, ok := byName["address.city"]; !ok {
		t.Errorf("nested column address.city missing from %+v", infos)
	}
	if zip := byName["address.zip"]; zip.Type != "INT32" {
		t.Errorf("address.zip type = %q, want INT32", zip.Type)
	}
	if note := byName["note"]; !note.Optional {
		t.Error("note should be optional")
	}

	var repeated bool
	for _, info := range infos {
		if info.Repeated {
			repeated = true
		}
	}
	if !repeated {
		t.Errorf("list column should be repeated: %+v", infos)
	}

	h, err := ReadHeader(NewParquetSource(path))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if len(h.Names()) != len(infos) {
		t.Errorf("header has %d columns, Describe %d", len(h.Names()), len(infos))
	}
}

func TestDescribe_CSV(t *testing.T) {
	src := NewFileSource(writeFile(t, "in.csv", "a,b\n1,2\n"), true)

	got, err := Describe(src)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	want := []ColumnInfo{
		{Index: 0, Name: "a", Type: "CSV", Numeric: true},
		{Index: 1, Name: "b", Type: "CSV", Numeric: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %+v, want %+v", got, want)
	}
}
