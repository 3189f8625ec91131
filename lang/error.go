package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Predefined errors (sentinel values). Every error returned by this package
// derives from one of these and can be matched with errors.Is.
var (
	// ErrSyntax reports a malformed declaration, an unterminated string,
	// char, or group, or mismatched bracket kinds.
	ErrSyntax = NewError("syntax error")

	// ErrDuplicateDecl reports a second declaration of an existing name.
	ErrDuplicateDecl = NewError("duplicate declaration")

	// ErrUndeclaredVar reports a reference to a name absent from the
	// variable table.
	ErrUndeclaredVar = NewError("undeclared variable")

	// ErrTypeMismatch reports a range bound that is not an unsigned 64-bit
	// integer, or a descending or empty range.
	ErrTypeMismatch = NewError("type mismatch")

	// ErrMaxDepth reports group nesting beyond the configured limit.
	ErrMaxDepth = NewError("maximum nesting depth exceeded")
)

// Error represents an expansion error with an optional source position and
// structured logging attributes. It implements both error and
// slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	pos   *Position   // source span, if known
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		if e.pos != nil {
			part = append(part, e.msg+" at "+e.pos.String())
		} else {
			part = append(part, e.msg)
		}
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target shares the receiver's base message, so that
// errors.Is matches derived copies against their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		pos:   e.pos,
		attrs: e.attrs, // share attrs
	}
}

// Wrapf creates a new Error wrapping a formatted error message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   &pos,
		attrs: e.attrs,
	}
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Snippet formats the offending source line with a caret marker pointing at
// the error column. It returns an empty string when the error carries no
// position or the position lies outside the source.
func (e *Error) Snippet(source string) string {
	if e.pos == nil {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.pos.Line < 1 || e.pos.Line > len(lines) {
		return ""
	}

	line := lines[e.pos.Line-1]

	var buf strings.Builder

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.pos.Line))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// Print marker pointing to the column.
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	buf.WriteString(strings.Repeat(" ", len(strconv.Itoa(e.pos.Line))+5))

	// Columns count runes, so the marker padding mirrors the line prefix
	// rune by rune: tabs stay tabs to keep the caret aligned however the
	// terminal renders them, everything else becomes one space.
	col := 1

	for _, r := range line {
		if col >= e.pos.Column {
			break
		}

		if r == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}

		col++
	}

	buf.WriteString("^\n")

	return buf.String()
}

// suggest returns the declared name closest to the unresolved name, or an
// empty string if nothing matches.
func suggest(name string, declared []string) string {
	matches := fuzzy.Find(name, declared)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// undeclared builds the error for a reference to an unknown variable,
// including a did-you-mean hint when a declared name is similar.
func undeclared(name string, pos Position, declared []string) *Error {
	err := ErrUndeclaredVar.
		WithPosition(pos).
		With(slog.String("name", name))

	if hint := suggest(name, declared); hint != "" {
		return err.Wrapf("%q (did you mean %q?)", name, hint)
	}

	return err.Wrapf("%q", name)
}
