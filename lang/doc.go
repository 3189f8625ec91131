// Package lang implements the akin template-expansion engine: a
// source-to-source transformation that duplicates annotated code over the
// values of declared variables.
//
// A template begins with a declaration region of `let` statements binding
// names to ordered value lists, followed by a body of arbitrary
// host-language-shaped tokens referencing those names with `*`:
//
//	let &var = [1, 2, 3];
//	res += *var;
//
// expands to three copies of the statement, one per value of var.
//
// Value sources are bracketed lists (multi-token values wrapped in {...}),
// integer ranges (`0..5`, `0..=5`), single brace-wrapped bodies that are
// themselves expanded eagerly against earlier declarations, and the NONE
// marker for a value that substitutes to nothing.
//
// Expansion is scoped: each delimiter group forms its own block whose
// duplication factor is the largest value-count among the variables the
// block references directly. Nested blocks expand independently and their
// copies are spliced into every copy of the parent. When a block references
// variables of different lengths, shorter ones reuse their final value for
// the remaining iterations (the clamp-last policy).
//
// The serializer emits one space between adjacent tokens. The joint
// modifier `~` suppresses that separator, so `_~*var` renders as `_1`
// rather than `_ 1`.
//
// The engine performs no I/O and keeps no state across invocations:
// [Render] is a pure function from template text to output text or a
// single structured error ([Error]) carrying a source position.
package lang
