// Package filter provides a small match-expression tree that compiles to a
// store predicate.
//
// Expr is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in Compile.
//
// Field references are checked against the schema at compile time, so an
// expression naming an undeclared field fails before any record is read,
// with the same lookup error the store itself raises.
package filter

// Expr represents a filter condition over one record.
//
// Expr types:
//   - Equals: field = value (values compared as stored strings)
//   - And: every sub-expression must match
//   - Or: at least one sub-expression must match
//   - Not: the sub-expression must not match
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Equals matches records whose field entry equals Value.
type Equals struct {
	Field string
	Value string
}

func (Equals) exprNode() {}

// And matches records satisfying every sub-expression.
// An empty And matches everything.
type And struct {
	Exprs []Expr
}

func (And) exprNode() {}

// Or matches records satisfying at least one sub-expression.
// An empty Or matches nothing.
type Or struct {
	Exprs []Expr
}

func (Or) exprNode() {}

// Not matches records the sub-expression rejects.
type Not struct {
	Expr Expr
}

func (Not) exprNode() {}
