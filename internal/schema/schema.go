// Package schema defines the validated field list that shapes a store.
//
// A Schema is an ordered, duplicate-free, non-empty list of field names.
// It is immutable once constructed: New either returns a valid Schema or
// an error, and no partially-validated instance is ever observable.
//
// Field names are normalized to Unicode NFC before storage and comparison,
// so two spellings of the same canonical name cannot alias distinct columns.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Schema is an immutable, ordered collection of distinct field names.
//
// The declared order is retained for error reporting and for writing the
// header of a newly created store file. Membership checks are
// order-independent.
type Schema struct {
	fields []string
	index  map[string]int
}

// New validates the supplied field names and returns a Schema.
//
// It fails if fields is empty, contains the empty string, or contains a
// repeated name. The repeated-name error enumerates every repeated name,
// sorted and deduplicated.
func New(fields ...string) (*Schema, error) {
	if len(fields) == 0 {
		return nil, errors.New("field collection is empty")
	}

	normalized := make([]string, len(fields))
	for i, f := range fields {
		normalized[i] = Normalize(f)
	}

	if hasEmptyName(normalized) {
		return nil, errors.New("field collection contains empty field names")
	}

	if repeated := RepeatedNames(normalized); repeated != "" {
		return nil, fmt.Errorf("field collection contains repeated fields: %s", repeated)
	}

	index := make(map[string]int, len(normalized))
	for i, f := range normalized {
		index[f] = i
	}

	return &Schema{fields: normalized, index: index}, nil
}

// Normalize returns the canonical (NFC) form of a field name.
func Normalize(name string) string {
	return norm.NFC.String(name)
}

// Fields returns a copy of the field names in declared order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Contains reports whether name is a declared field.
func (s *Schema) Contains(name string) bool {
	_, ok := s.index[Normalize(name)]
	return ok
}

// Missing returns the declared fields, in declared order, for which present
// returns false. The callback receives normalized field names.
func (s *Schema) Missing(present func(name string) bool) []string {
	var missing []string
	for _, f := range s.fields {
		if !present(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// SetEqual reports whether other contains exactly the same set of field
// names as the schema, ignoring order. Names in other are normalized before
// comparison.
func (s *Schema) SetEqual(other []string) bool {
	if len(other) != len(s.fields) {
		return false
	}
	seen := make(map[string]bool, len(other))
	for _, f := range other {
		n := Normalize(f)
		if _, ok := s.index[n]; !ok {
			return false
		}
		seen[n] = true
	}
	return len(seen) == len(s.fields)
}

// CheckHeader vets a parsed on-disk header line: every name must be
// non-empty and no name may repeat. Intended for validating a file's own
// header, where the error wording differs from schema-argument validation.
func CheckHeader(fields []string) error {
	normalized := make([]string, len(fields))
	for i, f := range fields {
		normalized[i] = Normalize(f)
	}
	if len(normalized) == 0 || hasEmptyName(normalized) {
		return errors.New("contains empty field names")
	}
	if repeated := RepeatedNames(normalized); repeated != "" {
		return fmt.Errorf("contains repeated fields: %s", repeated)
	}
	return nil
}

// RepeatedNames returns a sorted, deduplicated, quoted, comma-separated
// rendering of every name that occurs more than once, or "" if all names
// are distinct. The rendering is used verbatim in error messages.
func RepeatedNames(fields []string) string {
	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f]++
	}

	var repeated []string
	for f, n := range counts {
		if n > 1 {
			repeated = append(repeated, fmt.Sprintf("'%s'", f))
		}
	}
	sort.Strings(repeated)
	return strings.Join(repeated, ", ")
}

func hasEmptyName(fields []string) bool {
	for _, f := range fields {
		if f == "" {
			return true
		}
	}
	return false
}
