package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/UniExeterRSE/csv-db/internal/schema"
	"github.com/UniExeterRSE/csv-db/internal/store"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	AutoID string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create field=value...",
		Short: "Add a new record to the store",
		Long: `Add a new record to the store.

Every schema field must be assigned a value, except a field named by
--auto-id, which is filled with a generated UUID when not supplied.

Example:
  csvdb --db users.csv --schema schema.yaml create id=1 name=Ada role=admin
  csvdb --db users.csv --schema schema.yaml create --auto-id id name=Grace role=user`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AutoID, "auto-id", "", "field to fill with a generated UUID when not supplied")

	return cmd
}

func runCreate(opts *CreateOptions, args []string, cmd *cobra.Command) error {
	rec, err := parseAssignments(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse record", err)
	}

	if opts.AutoID != "" {
		if _, ok := rec[opts.AutoID]; !ok {
			rec[opts.AutoID] = uuid.Must(uuid.NewV7()).String()
		}
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f.VerboseLog("creating record in %s", st.Path())

	if err := st.Create(store.Values(rec)); err != nil {
		return failStore(f, "create record", err)
	}

	// Echo the stored record so generated values are visible to the caller.
	// Keys are normalized the way the store normalizes them, so the echo
	// lines up with the schema-order field list.
	stored := make(store.Record, len(rec))
	for k, v := range rec {
		name := schema.Normalize(k)
		if st.Schema().Contains(name) {
			stored[name], _ = v.(string)
		}
	}
	return f.Success(recordView{order: st.Schema().Fields(), rec: stored})
}
