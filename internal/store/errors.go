package store

import (
	"errors"
	"fmt"
)

// Code categorizes store errors.
type Code string

const (
	// CodeInvalidSchema indicates a malformed schema argument at construction.
	CodeInvalidSchema Code = "INVALID_SCHEMA"

	// CodeMalformedHeader indicates the on-disk header line is itself invalid.
	CodeMalformedHeader Code = "MALFORMED_HEADER"

	// CodeSchemaMismatch indicates the on-disk header's field set disagrees
	// with the declared schema's field set.
	CodeSchemaMismatch Code = "SCHEMA_MISMATCH"

	// CodeMissingFields indicates a record lacks one or more schema fields.
	CodeMissingFields Code = "MISSING_FIELDS"

	// CodeLookup indicates an unknown field name was referenced, or Update
	// found no matching record.
	CodeLookup Code = "LOOKUP_ERROR"

	// CodeBadPredicate indicates a query predicate failed for a reason other
	// than referencing an unknown field.
	CodeBadPredicate Code = "BAD_PREDICATE"
)

// Error is a store failure with a category code and context.
//
// All store failures surface as *Error; lower-level I/O and codec failures
// are wrapped with %w and carry no code.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is the human-readable description.
	Message string

	// Path is the store file path, when relevant.
	Path string

	// Field is the offending field name, when relevant.
	Field string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the category code from an error, or "" if the error is
// not a store error.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// UnknownFieldError builds the unknown-field lookup error shared by
// Retrieve, Update and predicate compilation.
func UnknownFieldError(field string) *Error {
	return &Error{
		Code:    CodeLookup,
		Message: fmt.Sprintf("'%s' does not define a field in the database", field),
		Field:   field,
	}
}
