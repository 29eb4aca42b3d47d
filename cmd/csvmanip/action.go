package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vegasq/csvmanip/internal/config"
	"github.com/vegasq/csvmanip/internal/logging"
	"github.com/vegasq/csvmanip/output"
	"github.com/vegasq/csvmanip/query"
	"github.com/vegasq/csvmanip/reader"
	"github.com/vegasq/csvmanip/record"
)

// Action is the state of one command invocation: the parsed flags merged
// over the environment configuration, and the run logger.
type Action struct {
	cmd    *cobra.Command
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

func newAction(cmd *cobra.Command, stdout, stderr io.Writer) (*Action, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &Action{cmd: cmd, cfg: cfg, stdout: stdout}
	if err := a.applyFlags(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if format := cfg.Output.Format; !format.Streamed() && a.getString("output") == "-" {
		return nil, fmt.Errorf("the %s format needs an output file", format)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr)
	a.logger, _ = logging.NewRun(cmd.Name())
	return a, nil
}

// flagVars maps command line flags to the configuration variables they
// override.
var flagVars = map[string]string{
	"numeric":      "CSVMANIP_NUMERIC",
	"format":       "CSVMANIP_OUTPUT_FORMAT",
	"compress":     "CSVMANIP_OUTPUT_COMPRESSION",
	"sqlite-table": "CSVMANIP_SQLITE_TABLE",
	"log-level":    "CSVMANIP_LOG_LEVEL",
	"log-format":   "CSVMANIP_LOG_FORMAT",
	"strategy":     "CSVMANIP_JOIN_STRATEGY",
	"filler":       "CSVMANIP_JOIN_FILLER",
	"strict":       "CSVMANIP_STRICT",
	"skip-errors":  "CSVMANIP_SKIP_ERRORS",
}

// applyFlags copies every flag set on the command line over the loaded
// configuration.
func (a *Action) applyFlags() error {
	for name, env := range flagVars {
		f := a.cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := a.cfg.Set(env, f.Value.String()); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}
	return nil
}

func (a *Action) getBool(name string) bool {
	result, _ := a.cmd.Flags().GetBool(name)
	return result
}

func (a *Action) getString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

func (a *Action) floats() bool {
	return strings.EqualFold(a.cfg.Parse.Numeric, "float")
}

func (a *Action) filter() *record.ColumnFilter {
	if expr := a.getString("filter"); expr != "" {
		return record.NewColumnFilter(expr)
	}
	return nil
}

func (a *Action) parsePolicy() record.ParsePolicy {
	if a.cfg.Parse.Strict {
		return record.PolicyStrict
	}
	return record.PolicyCoerce
}

func (a *Action) source(flag string) reader.Source {
	return reader.Open(a.getString(flag), a.getBool("header"))
}

func (a *Action) compute() error {
	expr, err := query.Parse(a.getString("expression"))
	if err != nil {
		return err
	}

	if a.floats() {
		return runCompute[float64](a, expr)
	}
	return runCompute[int64](a, expr)
}

func runCompute[T record.Number](a *Action, expr query.Expression) error {
	c := &query.Computer[T]{
		Expression:  expr,
		Filter:      a.filter(),
		ParsePolicy: a.parsePolicy(),
		ErrorPolicy: a.cfg.ErrorPolicy(),
		Logger:      a.logger,
	}

	out, err := a.openOutput()
	if err != nil {
		return runtimeFailure(err)
	}
	_, err = c.Run(a.source("input"), out)
	return runtimeFailure(errors.Join(err, out.Close()))
}

func (a *Action) join() error {
	typ, err := query.ParseJoinType(a.getString("type"))
	if err != nil {
		return err
	}
	if a.floats() {
		return runJoin[float64](a, typ, a.cfg.Join.Strategy)
	}
	return runJoin[int64](a, typ, a.cfg.Join.Strategy)
}

func runJoin[T record.Number](a *Action, typ query.JoinType, strategy query.JoinStrategy) error {
	filler, err := record.ParseNumber[T](a.cfg.Join.Filler)
	if err != nil {
		return fmt.Errorf("invalid filler %q for %s values: %w", a.cfg.Join.Filler, a.cfg.Parse.Numeric, err)
	}

	j := &query.Joiner[T]{
		LeftColumn:  a.getString("left-column"),
		RightColumn: a.getString("right-column"),
		Type:        typ,
		Strategy:    strategy,
		Filler:      filler,
		Filter:      a.filter(),
		ParsePolicy: a.parsePolicy(),
		ErrorPolicy: a.cfg.ErrorPolicy(),
		Logger:      a.logger,
	}

	out, err := a.openOutput()
	if err != nil {
		return runtimeFailure(err)
	}
	_, err = j.Run(a.source("left"), a.source("right"), out)
	return runtimeFailure(errors.Join(err, out.Close()))
}

func (a *Action) describe() error {
	infos, err := reader.Describe(a.source("input"))
	if err != nil {
		return runtimeFailure(err)
	}

	out, err := a.openOutput()
	if err != nil {
		return runtimeFailure(err)
	}
	err = out.WriteHeader([]string{"index", "name", "type", "numeric"})
	for _, info := range infos {
		if err != nil {
			break
		}
		err = out.WriteRow([]string{
			strconv.Itoa(info.Index),
			info.Name,
			info.Type,
			strconv.FormatBool(info.Numeric),
		})
	}
	return runtimeFailure(errors.Join(err, out.Close()))
}

// openOutput creates the formatter for the output flag. Closing it flushes
// the formatter, the compressor and the file, in that order.
func (a *Action) openOutput() (output.Formatter, error) {
	format, codec := a.cfg.Output.Format, a.cfg.Output.Compression
	path := a.getString("output")

	if !format.Streamed() {
		return output.NewSQLiteFormatter(path, a.cfg.Output.SQLiteTable, a.floats())
	}

	var (
		w       io.Writer = a.stdout
		closers []io.Closer
	)
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		w = file
		closers = append(closers, file)
	}

	compressed := output.Compress(w, codec)
	closers = append([]io.Closer{compressed}, closers...)

	var formatter output.Formatter
	switch format {
	case output.FormatTable:
		formatter = output.NewTableFormatter(compressed)
	case output.FormatJSON:
		formatter = output.NewJSONFormatter(compressed)
	case output.FormatParquet:
		formatter = output.NewParquetFormatter(compressed, a.floats())
	default:
		formatter = output.NewCSVFormatter(compressed)
	}
	return &closingFormatter{Formatter: formatter, closers: closers}, nil
}

// closingFormatter closes the writers under a Formatter after it.
type closingFormatter struct {
	output.Formatter
	closers []io.Closer
}

func (c *closingFormatter) Close() error {
	errs := []error{c.Formatter.Close()}
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
