package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/UniExeterRSE/csv-db/internal/schema"
)

// Create appends a new record to the store.
//
// rec must hold a value for every schema field; otherwise Create fails with
// CodeMissingFields, naming every absent field in schema order, and writes
// nothing. Keys outside the schema are silently dropped. Values are
// stringified; nil becomes the empty string.
//
// If the file does not exist it is created, header line first. Otherwise
// the row is appended with values positioned by the file's own header
// order, re-read on this call. No field is unique: duplicate records are
// permitted and simply appended.
func (st *Store) Create(rec Values) error {
	row, err := st.toRow(rec)
	if err != nil {
		return err
	}

	exists, err := st.fileExists()
	if err != nil {
		return err
	}
	if !exists {
		return st.createFile(row)
	}

	order, err := st.readHeader()
	if err != nil {
		return err
	}
	return st.appendRow(order, row)
}

// Update replaces the first record, in file order, whose field entry equals
// the stringified value.
//
// field must be a declared schema field and rec must hold a value for every
// schema field, as with Create. If no record matches, including the case
// of a missing or empty table, Update fails with CodeLookup and leaves the
// file untouched.
//
// Exactly one record is replaced, by position; every other record keeps its
// place and content. The whole file is then rewritten, header first, in
// the original on-disk field order. The rewrite is not atomic across a
// crash.
func (st *Store) Update(value any, field string, rec Values) error {
	if !st.schema.Contains(field) {
		return UnknownFieldError(field)
	}

	row, err := st.toRow(rec)
	if err != nil {
		return err
	}

	order, rows, err := st.readTable()
	if err != nil {
		return err
	}

	want := stringify(value)
	idx := -1
	for i, r := range rows {
		if r[schema.Normalize(field)] == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &Error{
			Code:    CodeLookup,
			Message: fmt.Sprintf("could not find record with %s = %s", field, want),
			Path:    st.path,
			Field:   field,
		}
	}
	rows[idx] = row

	return st.rewrite(order, rows)
}

// toRow validates rec against the schema and returns the stringified
// record, keyed by normalized field name and restricted to schema fields.
func (st *Store) toRow(rec Values) (Record, error) {
	row := make(Record, st.schema.Len())
	for k, v := range rec {
		name := schema.Normalize(k)
		if st.schema.Contains(name) {
			row[name] = stringify(v)
		}
	}

	missing := st.schema.Missing(func(f string) bool {
		_, ok := row[f]
		return ok
	})
	if len(missing) > 0 {
		quoted := make([]string, len(missing))
		for i, f := range missing {
			quoted[i] = fmt.Sprintf("'%s'", f)
		}
		return nil, &Error{
			Code:    CodeMissingFields,
			Message: fmt.Sprintf("record is missing the following fields: %s", strings.Join(quoted, ", ")),
			Path:    st.path,
		}
	}
	return row, nil
}

// createFile writes a brand new store file: header in declared schema
// order, then the first row. O_EXCL keeps the create-and-write-header step
// from clobbering a file that appeared since the existence check.
func (st *Store) createFile(row Record) error {
	f, err := os.OpenFile(st.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", st.path, err)
	}

	order := st.schema.Fields()
	w := csv.NewWriter(f)
	werr := w.Write(order)
	if werr == nil {
		werr = w.Write(rowValues(order, row))
	}
	if werr == nil {
		w.Flush()
		werr = w.Error()
	}

	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", st.path, werr)
	}
	return nil
}

// appendRow appends one row positioned by the file's header order.
func (st *Store) appendRow(order []string, row Record) error {
	f, err := os.OpenFile(st.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", st.path, err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(rowValues(order, row))
	if werr == nil {
		w.Flush()
		werr = w.Error()
	}

	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", st.path, werr)
	}
	return nil
}

// rewrite truncates the file and writes the header plus every row, in the
// given on-disk field order.
func (st *Store) rewrite(order []string, rows []Record) error {
	f, err := os.OpenFile(st.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", st.path, err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(order)
	for _, rec := range rows {
		if werr != nil {
			break
		}
		werr = w.Write(rowValues(order, rec))
	}
	if werr == nil {
		w.Flush()
		werr = w.Error()
	}

	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", st.path, werr)
	}
	return nil
}

// rowValues projects a record onto the given field order. Fields absent
// from the record come out as the empty string.
func rowValues(order []string, rec Record) []string {
	out := make([]string, len(order))
	for i, name := range order {
		out[i] = rec[name]
	}
	return out
}
