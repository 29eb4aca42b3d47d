package output

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table written by SQLiteFormatter when none is given.
const DefaultTable = "result"

// SQLiteFormatter writes rows into a table of a SQLite database file.
//
// The table is dropped and recreated, mirroring an output file being
// truncated. Column types are inferred from the first row (INTEGER, REAL or
// TEXT) and every row is inserted in a single transaction committed by Close.
// With floats set, numeric columns are always REAL.
type SQLiteFormatter struct {
	db     *sql.DB
	floats bool
	table  string
	names  []string
	kinds  []columnKind
	tx     *sql.Tx
	stmt   *sql.Stmt
}

// NewSQLiteFormatter opens (or creates) the database at path.
func NewSQLiteFormatter(path, table string, floats bool) (*SQLiteFormatter, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return &SQLiteFormatter{db: db, table: table, floats: floats}, nil
}

// WriteHeader records the column names. The table is created on the first row.
func (s *SQLiteFormatter) WriteHeader(columns []string) error {
	s.names = uniqueNames(columns)
	return nil
}

// WriteRow inserts one row
func (s *SQLiteFormatter) WriteRow(fields []string) error {
	if s.tx == nil {
		if s.names == nil {
			s.names = uniqueNames(make([]string, len(fields)))
		}
		if err := s.create(inferKinds(fields, s.floats)); err != nil {
			return err
		}
	}

	args := make([]any, len(s.names))
	for i := range s.names {
		field := ""
		if i < len(fields) {
			field = fields[i]
		}
		args[i] = sqliteValue(s.kinds[i], field)
	}

	if _, err := s.stmt.Exec(args...); err != nil {
		return fmt.Errorf("failed to insert row into %s: %w", s.table, err)
	}
	return nil
}

// Close commits the inserted rows and closes the database.
func (s *SQLiteFormatter) Close() error {
	defer func() { _ = s.db.Close() }()

	if s.tx == nil {
		if s.names == nil {
			return nil
		}
		if err := s.create(emptyKinds(len(s.names), s.floats)); err != nil {
			return err
		}
	}

	_ = s.stmt.Close()
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", s.table, err)
	}
	return nil
}

func (s *SQLiteFormatter) create(kinds []columnKind) error {
	if len(kinds) != len(s.names) {
		return fmt.Errorf("row has %d fields, header has %d", len(kinds), len(s.names))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defs := make([]string, len(s.names))
	marks := make([]string, len(s.names))
	for i, name := range s.names {
		defs[i] = quoteIdent(name) + " " + sqliteType(kinds[i])
		marks[i] = "?"
	}

	table := quoteIdent(s.table)
	stmts := []string{
		"DROP TABLE IF EXISTS " + table,
		"CREATE TABLE " + table + " (" + strings.Join(defs, ", ") + ")",
	}
	for _, q := range stmts {
		if _, err := tx.Exec(q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to create table %s: %w", s.table, err)
		}
	}

	stmt, err := tx.Prepare("INSERT INTO " + table + " VALUES (" + strings.Join(marks, ", ") + ")")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	s.tx, s.stmt, s.kinds = tx, stmt, kinds
	return nil
}

func sqliteType(kind columnKind) string {
	switch kind {
	case kindFloat:
		return "REAL"
	case kindText:
		return "TEXT"
	default:
		return "INTEGER"
	}
}

func sqliteValue(kind columnKind, field string) any {
	switch kind {
	case kindFloat:
		f, _ := strconv.ParseFloat(field, 64)
		return f
	case kindText:
		return field
	default:
		i, _ := strconv.ParseInt(field, 10, 64)
		return i
	}
}
