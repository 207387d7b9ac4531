package cli

import (
	"github.com/spf13/cobra"

	"github.com/UniExeterRSE/csv-db/internal/schema"
	"github.com/UniExeterRSE/csv-db/internal/store"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Field string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <value> field=value...",
		Short: "Replace the first record matching a field value",
		Long: `Replace the first record whose --field entry equals <value> with the
record built from the field=value arguments. Every schema field must be
assigned. All other records keep their position and content.

Example:
  csvdb --db users.csv --schema schema.yaml update 1 --field id id=1 name=Ada role=ops`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "", "field to match against (required)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runUpdate(opts *UpdateOptions, value string, args []string, cmd *cobra.Command) error {
	rec, err := parseAssignments(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse record", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f.VerboseLog("updating record with %s = %s in %s", opts.Field, value, st.Path())

	if err := st.Update(value, opts.Field, store.Values(rec)); err != nil {
		return failStore(f, "update record", err)
	}

	stored := make(store.Record, len(rec))
	for k, v := range rec {
		name := schema.Normalize(k)
		if st.Schema().Contains(name) {
			stored[name], _ = v.(string)
		}
	}
	return f.Success(recordView{order: st.Schema().Fields(), rec: stored})
}
