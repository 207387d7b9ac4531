package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/UniExeterRSE/csv-db/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (record not found, bad predicate)
	ExitCommandError = 2 // Command error (invalid flags, schema problems, I/O)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// storeExitCode maps a store error to an exit code: lookup and predicate
// failures are operation failures, everything else is a command error.
func storeExitCode(err error) int {
	switch store.CodeOf(err) {
	case store.CodeLookup, store.CodeBadPredicate:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // store error code or "NOT_FOUND"
	Message string `json:"message"` // human-readable message
}

// Success outputs a result in the configured format. Text mode prints the
// value's string form; JSON mode wraps it in a CLIResponse envelope.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an operation failure in the configured format. JSON mode
// writes the status:"error" envelope to the primary writer; text mode
// writes nothing, leaving the message to the returned command error.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}
	return nil
}

// failOperation emits the error envelope for an operation failure and
// returns the exit error for exit-code mapping.
func failOperation(f *OutputFormatter, code, message string, exitErr *ExitError) error {
	_ = f.Error(code, message)
	return exitErr
}

// failStore reports a failed store operation under its store error code.
func failStore(f *OutputFormatter, context string, err error) error {
	return failOperation(f, string(store.CodeOf(err)), err.Error(),
		WrapExitError(storeExitCode(err), context, err))
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// newFormatter builds the formatter for a command invocation, writing to
// the command's configured output streams.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}

// recordView renders one record: "field=value" pairs in schema order for
// text, a flat object for JSON.
type recordView struct {
	order []string
	rec   store.Record
}

func (v recordView) String() string {
	parts := make([]string, 0, len(v.order))
	for _, f := range v.order {
		parts = append(parts, fmt.Sprintf("%s=%s", f, v.rec[f]))
	}
	return strings.Join(parts, " ")
}

func (v recordView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.rec)
}

// recordListView renders a record list, one record per line for text.
type recordListView struct {
	order []string
	recs  []store.Record
}

func (v recordListView) String() string {
	if len(v.recs) == 0 {
		return "no records"
	}
	lines := make([]string, len(v.recs))
	for i, rec := range v.recs {
		lines[i] = recordView{order: v.order, rec: rec}.String()
	}
	return strings.Join(lines, "\n")
}

func (v recordListView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.recs)
}

// fieldListView renders the schema's field names.
type fieldListView struct {
	fields []string
}

func (v fieldListView) String() string {
	return strings.Join(v.fields, ", ")
}

func (v fieldListView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.fields)
}
