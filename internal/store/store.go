package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/UniExeterRSE/csv-db/internal/schema"
)

// Record is one row of the store, as read back: field name → string value.
type Record map[string]string

// Values is the write-side input to Create and Update: field name → value.
// Values are stringified before storage; nil becomes the empty string.
// Keys outside the schema are tolerated and dropped on write.
type Values map[string]any

// Predicate filters records during Query. Returning an unknown-field error
// (see Record.Field) aborts the query with that error; any other returned
// error aborts it as a bad predicate.
type Predicate func(Record) (bool, error)

// Store binds a schema to a CSV file path.
//
// The zero value is not usable; construct with Open. A Store holds no open
// file handle: every operation opens the file, works, and closes it.
type Store struct {
	path   string
	schema *schema.Schema
}

// Open constructs a store for the CSV file at path with the given field
// names.
//
// The fields are validated first (CodeInvalidSchema on an empty collection,
// empty names, or repeated names). If the file already exists its header is
// vetted (CodeMalformedHeader for blank or repeated header names) and its
// field set must equal the declared set, in any order (CodeSchemaMismatch
// otherwise). If the file does not exist, Open succeeds without creating
// it; the file appears on the first successful Create.
func Open(path string, fields ...string) (*Store, error) {
	s, err := schema.New(fields...)
	if err != nil {
		return nil, &Error{
			Code:    CodeInvalidSchema,
			Message: fmt.Sprintf("invalid schema: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	st := &Store{path: path, schema: s}

	exists, err := st.fileExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return st, nil
	}

	header, err := st.readHeader()
	if err != nil {
		return nil, err
	}
	if !s.SetEqual(header) {
		return nil, &Error{
			Code:    CodeSchemaMismatch,
			Message: fmt.Sprintf("fields do not agree with the header of database file %s", path),
			Path:    path,
		}
	}
	return st, nil
}

// Path returns the store's file path.
func (st *Store) Path() string {
	return st.path
}

// Schema returns the declared schema.
func (st *Store) Schema() *schema.Schema {
	return st.schema
}

func (st *Store) fileExists() (bool, error) {
	_, err := os.Stat(st.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", st.path, err)
}

// readHeader opens the file, parses and vets its header line, and returns
// the field names in on-disk order, normalized.
func (st *Store) readHeader() ([]string, error) {
	f, err := os.Open(st.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", st.path, err)
	}
	defer f.Close()

	return readHeaderFrom(csv.NewReader(f), st.path)
}

func readHeaderFrom(r *csv.Reader, path string) ([]string, error) {
	raw, err := r.Read()
	if err == io.EOF {
		return nil, &Error{
			Code:    CodeMalformedHeader,
			Message: fmt.Sprintf("database file %s is missing a header line", path),
			Path:    path,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	header := make([]string, len(raw))
	for i, name := range raw {
		header[i] = schema.Normalize(name)
	}
	if err := schema.CheckHeader(header); err != nil {
		return nil, &Error{
			Code:    CodeMalformedHeader,
			Message: fmt.Sprintf("database file %s %v", path, err),
			Path:    path,
			Err:     err,
		}
	}
	return header, nil
}

// readTable opens the file and reads the whole of it: the vetted header in
// on-disk order, then every data row keyed by header field. A missing file
// yields a nil header and no rows.
func (st *Store) readTable() (header []string, rows []Record, err error) {
	exists, err := st.fileExists()
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, nil
	}

	f, err := os.Open(st.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", st.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err = readHeaderFrom(r, st.path)
	if err != nil {
		return nil, nil, err
	}

	for {
		raw, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", st.path, err)
		}
		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = raw[i]
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

// stringify coerces a value to its stored textual form. nil coerces to the
// empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
