package cli

import (
	"github.com/spf13/cobra"

	"github.com/UniExeterRSE/csv-db/internal/filter"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query [field=value...]",
		Short: "List records, optionally filtered by field values",
		Long: `List every record, in file order, matching all given field=value terms.
With no terms, every record is listed. Every call reads the whole file.

Example:
  csvdb --db users.csv --schema schema.yaml query
  csvdb --db users.csv --schema schema.yaml query role=admin active=true`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args, cmd)
		},
	}

	return cmd
}

func runQuery(opts *QueryOptions, args []string, cmd *cobra.Command) error {
	expr, err := filter.Parse(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse filter", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	pred, err := filter.Compile(expr, st.Schema())
	if err != nil {
		return failStore(f, "compile filter", err)
	}

	recs, err := st.Query(pred)
	if err != nil {
		return failStore(f, "query records", err)
	}
	f.VerboseLog("matched %d record(s) in %s", len(recs), st.Path())

	return f.Success(recordListView{order: st.Schema().Fields(), recs: recs})
}
