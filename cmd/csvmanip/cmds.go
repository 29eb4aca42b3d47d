package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/csvmanip/internal/config"
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "csvmanip",
		Short: "Compute columns and join CSV files",
		Long: "Compute columns and join CSV files.\n\n" +
			"Defaults are read from the environment and from a .env file; flags override them:\n  " +
			strings.Join(config.Vars(), "\n  "),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("numeric", "", "cell type: int or float (env CSVMANIP_NUMERIC)")
	flags.String("format", "", "output format: csv, table, json, parquet or sqlite (env CSVMANIP_OUTPUT_FORMAT)")
	flags.String("compress", "", "output compression: none or snappy (env CSVMANIP_OUTPUT_COMPRESSION)")
	flags.String("sqlite-table", "", "table written by the sqlite format (env CSVMANIP_SQLITE_TABLE)")
	flags.Bool("strict", false, "report unparseable fields instead of reading them as 0 (env CSVMANIP_STRICT)")
	flags.Bool("skip-errors", false, "skip failing rows instead of stopping (env CSVMANIP_SKIP_ERRORS)")
	flags.String("log-level", "", "log level: debug, info, warn or error (env CSVMANIP_LOG_LEVEL)")
	flags.String("log-format", "", "log format: text or json (env CSVMANIP_LOG_FORMAT)")

	addCommands(root, stdout, stderr)
	return root
}

func addCommands(root *cobra.Command, stdout, stderr io.Writer) {
	cmd := &cobra.Command{
		Use:     "COMPUTE",
		Aliases: []string{"compute"},
		Short:   "Append the result of a two-column expression to every row",
		Example: "  csvmanip COMPUTE -i in.csv -o out.csv -e 'a*b' -f a,result -h",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newAction(cmd, stdout, stderr)
			if err != nil {
				return err
			}
			return a.compute()
		}}
	cmd.Flags().StringP("input", "i", "", "input file")
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	cmd.Flags().StringP("expression", "e", "", "expression <colA><op><colB>, op one of + - * /")
	cmd.Flags().StringP("filter", "f", "", "comma-separated columns to write (default: all)")
	addHeaderFlags(cmd)
	markRequired(cmd, "input", "output", "expression")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:     "JOIN",
		Aliases: []string{"join"},
		Short:   "Join two files on equal column values",
		Example: "  csvmanip JOIN -l left.csv -r right.csv -o out.csv -u id -v id -t outer -h",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newAction(cmd, stdout, stderr)
			if err != nil {
				return err
			}
			return a.join()
		}}
	cmd.Flags().StringP("left", "l", "", "left input file")
	cmd.Flags().StringP("right", "r", "", "right input file")
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	cmd.Flags().StringP("left-column", "u", "", "join column of the left file")
	cmd.Flags().StringP("right-column", "v", "", "join column of the right file")
	cmd.Flags().StringP("type", "t", "inner", "join type: inner or outer")
	cmd.Flags().StringP("filter", "f", "", "comma-separated columns to write (default: all)")
	cmd.Flags().String("strategy", "", "right side scan: rescan, materialized or indexed (env CSVMANIP_JOIN_STRATEGY)")
	cmd.Flags().String("filler", "", "value of right columns in unmatched outer rows (env CSVMANIP_JOIN_FILLER)")
	addHeaderFlags(cmd)
	markRequired(cmd, "left", "right", "output", "left-column", "right-column")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:     "DESCRIBE",
		Aliases: []string{"describe"},
		Short:   "List the columns of an input with their types",
		Example: "  csvmanip DESCRIBE -i data.parquet --format table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newAction(cmd, stdout, stderr)
			if err != nil {
				return err
			}
			return a.describe()
		}}
	cmd.Flags().StringP("input", "i", "", "input file")
	cmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	addHeaderFlags(cmd)
	markRequired(cmd, "input")
	root.AddCommand(cmd)
}

// addHeaderFlags binds -h to the header switch. The help flag is declared
// first so that cobra does not claim -h for it.
func addHeaderFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("help", false, "help for "+cmd.Name())
	cmd.Flags().BoolP("header", "h", false, "the first line of every input holds column names")
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.MarkFlagRequired(name)
	}
}
