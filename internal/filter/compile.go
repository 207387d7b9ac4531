package filter

import (
	"fmt"

	"github.com/UniExeterRSE/csv-db/internal/schema"
	"github.com/UniExeterRSE/csv-db/internal/store"
)

// Compile turns an expression into a store predicate bound to a schema.
//
// Every field referenced anywhere in the expression must be declared in the
// schema; an undeclared reference fails compilation with the store's
// unknown-field lookup error. A nil expression compiles to a match-all
// predicate.
func Compile(e Expr, s *schema.Schema) (store.Predicate, error) {
	if e == nil {
		return func(store.Record) (bool, error) { return true, nil }, nil
	}
	if err := checkFields(e, s); err != nil {
		return nil, err
	}
	return func(rec store.Record) (bool, error) {
		return eval(e, rec)
	}, nil
}

// checkFields walks the expression and validates every field reference.
func checkFields(e Expr, s *schema.Schema) error {
	switch node := e.(type) {
	case Equals:
		if !s.Contains(node.Field) {
			return store.UnknownFieldError(node.Field)
		}
		return nil
	case And:
		for _, sub := range node.Exprs {
			if err := checkFields(sub, s); err != nil {
				return err
			}
		}
		return nil
	case Or:
		for _, sub := range node.Exprs {
			if err := checkFields(sub, s); err != nil {
				return err
			}
		}
		return nil
	case Not:
		return checkFields(node.Expr, s)
	default:
		return fmt.Errorf("unsupported expression type %T", e)
	}
}

// eval evaluates an already-validated expression against one record.
func eval(e Expr, rec store.Record) (bool, error) {
	switch node := e.(type) {
	case Equals:
		v, err := rec.Field(schema.Normalize(node.Field))
		if err != nil {
			return false, err
		}
		return v == node.Value, nil
	case And:
		for _, sub := range node.Exprs {
			ok, err := eval(sub, rec)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case Or:
		for _, sub := range node.Exprs {
			ok, err := eval(sub, rec)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case Not:
		ok, err := eval(node.Expr, rec)
		return !ok, err
	default:
		return false, fmt.Errorf("unsupported expression type %T", e)
	}
}
