// Package cli implements the csvdb command line tool, a thin caller that
// constructs a store and invokes its four operations.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UniExeterRSE/csv-db/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DB         string // store file path
	SchemaFile string // YAML schema definition path
	Format     string // "json" | "text"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the csvdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "csvdb",
		Short: "csvdb - flat-file record store",
		Long:  "A minimal record store over one CSV file: create, get, query and update string-keyed records.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to the store's CSV file")
	cmd.PersistentFlags().StringVar(&opts.SchemaFile, "schema", "", "path to the YAML schema definition")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore loads the schema definition and constructs the store for the
// configured file path.
func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.DB == "" {
		return nil, NewExitError(ExitCommandError, "missing required flag --db")
	}
	if opts.SchemaFile == "" {
		return nil, NewExitError(ExitCommandError, "missing required flag --schema")
	}

	fields, err := LoadSchema(opts.SchemaFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load schema definition", err)
	}

	st, err := store.Open(opts.DB, fields...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}
	return st, nil
}
