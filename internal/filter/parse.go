package filter

import (
	"fmt"
	"strings"
)

// Parse builds an expression from CLI match terms of the form "field=value".
//
// Multiple terms are a conjunction. No terms parse to nil, meaning
// match-all. The first "=" splits the term; later "=" characters belong to
// the value.
func Parse(terms []string) (Expr, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	exprs := make([]Expr, 0, len(terms))
	for _, term := range terms {
		field, value, ok := strings.Cut(term, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid match term %q: want field=value", term)
		}
		exprs = append(exprs, Equals{Field: field, Value: value})
	}

	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return And{Exprs: exprs}, nil
}
