// Package output provides formatters that write the rows produced by the
// compute and join engines.
//
// This package defines the Formatter interface and provides implementations
// for plain CSV lines, aligned text tables, JSON Lines, parquet files and SQLite
// tables.
// Formatters receive rows that are already filtered and formatted: a header
// with the visible column names, then the visible fields of every record.
//
// # Supported Formats
//
//   - CSV: comma-joined lines without quoting, identical to the engines'
//     header and record lines
//   - Table: an aligned text table rendered with tablewriter
//   - JSON: JSON Lines, one object per row keyed by column name
//   - Parquet: a parquet file with a schema inferred from the first row
//   - SQLite: a table in a SQLite database file
//
// # Basic Usage
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.WriteHeader([]string{"a", "b", "result"}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.WriteRow([]string{"4", "5", "20"}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Compression
//
// Streamed formats can be compressed with the snappy framing format:
//
//	file, err := os.Create("result.csv.sz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	w := output.Compress(file, output.CompressionSnappy)
//	formatter := output.NewCSVFormatter(w)
//	// ... write rows ...
//	formatter.Close()
//	w.Close()
//
// # Type Handling
//
// Parquet and SQLite outputs store integer fields as INT64/INTEGER, float
// fields as DOUBLE/REAL and anything else as text. Repeated column names,
// which CSV tolerates, are renamed name_2, name_3, ... for these formats.
package output
