package lang

import (
	"iter"
	"log/slog"
)

// Value is one substitution option for a variable: an ordered token
// sequence. An empty Value (declared with the NONE marker) substitutes to
// nothing.
type Value []Token

// IsEmpty reports whether substituting the value produces no tokens.
func (v Value) IsEmpty() bool { return len(v) == 0 }

// Text returns the value rendered as text, using the same separator rules
// as the serializer.
func (v Value) Text() string { return renderTokens(v) }

// Variable is a named, ordered, non-empty list of Values.
type Variable struct {
	Name   string
	Values []Value
	Pos    Position // position of the name in its declaration
}

// Len returns the number of values the variable declares.
func (v *Variable) Len() int { return len(v.Values) }

// Value returns the value for expansion iteration i under the clamp-last
// policy: indexes past the final value reuse it.
func (v *Variable) Value(i int) Value {
	if i >= len(v.Values) {
		i = len(v.Values) - 1
	}

	return v.Values[i]
}

// Table maps variable names to their declarations. It is built once by the
// declaration parser and is read-only afterwards; declaration order is
// preserved for iteration and marshaling.
type Table struct {
	vars  map[string]*Variable
	order []string
}

// NewTable creates an empty variable table.
func NewTable() *Table {
	return &Table{vars: make(map[string]*Variable)}
}

// declare inserts a variable, failing when the name already exists.
func (t *Table) declare(v *Variable) error {
	if prev, ok := t.vars[v.Name]; ok {
		return ErrDuplicateDecl.
			WithPosition(v.Pos).
			With(
				slog.String("name", v.Name),
				slog.String("previous", prev.Pos.String()),
			).
			Wrapf("%q first declared at %s", v.Name, prev.Pos)
	}

	t.vars[v.Name] = v
	t.order = append(t.order, v.Name)

	return nil
}

// Lookup retrieves a variable by name.
// Returns (nil, false) if the name is not declared.
func (t *Table) Lookup(name string) (*Variable, bool) {
	v, ok := t.vars[name]

	return v, ok
}

// Len returns the number of declared variables.
func (t *Table) Len() int { return len(t.order) }

// Names returns the declared variable names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)

	return names
}

// All returns an iterator over all variables in declaration order.
func (t *Table) All() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for _, name := range t.order {
			if !yield(t.vars[name]) {
				return
			}
		}
	}
}
