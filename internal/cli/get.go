package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Field string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <value>",
		Short: "Retrieve the first record matching a field value",
		Long: `Retrieve the first record whose --field entry equals <value>.

Records match in insertion order, so a non-unique field returns the
earliest-inserted match.

Example:
  csvdb --db users.csv --schema schema.yaml get 1 --field id`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "", "field to match against (required)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runGet(opts *GetOptions, value string, cmd *cobra.Command) error {
	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f.VerboseLog("looking up %s = %s in %s", opts.Field, value, st.Path())

	rec, err := st.Retrieve(value, opts.Field)
	if err != nil {
		return failStore(f, "retrieve record", err)
	}
	if rec == nil {
		msg := fmt.Sprintf("no record with %s = %s", opts.Field, value)
		return failOperation(f, "NOT_FOUND", msg, NewExitError(ExitFailure, msg))
	}

	return f.Success(recordView{order: st.Schema().Fields(), rec: rec})
}
