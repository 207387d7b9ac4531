package store

import (
	"errors"

	"github.com/UniExeterRSE/csv-db/internal/schema"
)

// Field returns the record's value for a field, or an unknown-field lookup
// error if the record has no such field. Predicates should read fields
// through this method so that referencing an undeclared field surfaces as
// a lookup error rather than an empty string.
func (r Record) Field(name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", UnknownFieldError(name)
	}
	return v, nil
}

// Retrieve returns the first record, in file order, whose field entry
// equals the stringified value.
//
// field must be a declared schema field (CodeLookup otherwise). A missing
// file or an absent match returns (nil, nil): "not found" is not an
// error. Records are matched in insertion order, so a non-unique field
// yields the earliest-inserted match, not any particular "current" one.
func (st *Store) Retrieve(value any, field string) (Record, error) {
	if !st.schema.Contains(field) {
		return nil, UnknownFieldError(field)
	}

	_, rows, err := st.readTable()
	if err != nil {
		return nil, err
	}

	want := stringify(value)
	for _, rec := range rows {
		if rec[schema.Normalize(field)] == want {
			return rec, nil
		}
	}
	return nil, nil
}

// Query returns every record, in file order, for which pred returns true.
// A nil pred matches everything. A missing file yields an empty result.
//
// A predicate error that is an unknown-field lookup error propagates as-is
// (CodeLookup); any other predicate error aborts the query as
// CodeBadPredicate, preserving the original message. Every call reads the
// whole file; there is no paging.
func (st *Store) Query(pred Predicate) ([]Record, error) {
	_, rows, err := st.readTable()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, rec := range rows {
		if pred != nil {
			ok, err := pred(rec)
			if err != nil {
				return nil, predicateError(err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// predicateError maps a predicate failure per the query contract: lookup
// errors pass through, everything else is tagged as a bad predicate.
func predicateError(err error) error {
	var se *Error
	if errors.As(err, &se) && se.Code == CodeLookup {
		return err
	}
	return &Error{
		Code:    CodeBadPredicate,
		Message: "bad predicate: " + err.Error(),
		Err:     err,
	}
}
