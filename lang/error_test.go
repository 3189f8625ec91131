package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_SentinelMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "derived with position",
			err:      ErrSyntax.WithPosition(Position{Line: 3, Column: 7}),
			sentinel: ErrSyntax,
		},
		{
			name:     "derived with wrapped cause",
			err:      ErrTypeMismatch.Wrapf("bound %q", "abc"),
			sentinel: ErrTypeMismatch,
		},
		{
			name:     "derived with attributes",
			err:      ErrDuplicateDecl.With(slog.String("name", "x")),
			sentinel: ErrDuplicateDecl,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("outer: %w", ErrUndeclaredVar.Wrapf("%q", "y")),
			sentinel: ErrUndeclaredVar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
		})
	}
}

func TestError_SentinelsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []*Error{
		ErrSyntax,
		ErrDuplicateDecl,
		ErrUndeclaredVar,
		ErrTypeMismatch,
		ErrMaxDepth,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches unrelated sentinel %v", a, b)
			}
		}
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := ErrSyntax.
		WithPosition(Position{Offset: 10, Line: 2, Column: 5}).
		Wrapf("expected ';', found %q", "}")

	msg := err.Error()
	for _, want := range []string{"syntax error", "2:5", "expected ';'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message, got %q", want, msg)
		}
	}
}

func TestError_Position(t *testing.T) {
	t.Parallel()

	if _, ok := ErrSyntax.Position(); ok {
		t.Error("bare sentinel must not carry a position")
	}

	pos := Position{Offset: 4, Line: 1, Column: 5}

	got, ok := ErrSyntax.WithPosition(pos).Position()
	if !ok || got != pos {
		t.Errorf("Position() = %+v, %v; expected %+v, true", got, ok, pos)
	}
}

func TestError_Snippet(t *testing.T) {
	t.Parallel()

	source := "let &x = [1];\nlet &x = [2];"

	err := ErrDuplicateDecl.WithPosition(Position{Offset: 19, Line: 2, Column: 6})

	snippet := err.Snippet(source)
	if !strings.Contains(snippet, "let &x = [2];") {
		t.Errorf("expected offending line in snippet, got %q", snippet)
	}

	lines := strings.Split(strings.TrimRight(snippet, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected line and marker, got %q", snippet)
	}

	caret := strings.IndexByte(lines[1], '^')
	source2 := strings.IndexByte(lines[0], 'l') // start of "let" after the gutter

	if caret < 0 {
		t.Fatalf("no caret in marker line %q", lines[1])
	}

	// Column 6 points at the second "x"; the caret must sit 5 columns past
	// the start of the source text in the gutter-prefixed line.
	if caret != source2+5 {
		t.Errorf("caret at column %d of marker line, expected %d", caret, source2+5)
	}
}

func TestError_SnippetTabAlignment(t *testing.T) {
	t.Parallel()

	// A tab before the error column must survive into the marker line so
	// the caret lands under the right rune at any tab width.
	source := "\tlet &x = [1];"

	err := ErrSyntax.WithPosition(Position{Offset: 1, Line: 1, Column: 2})

	snippet := err.Snippet(source)

	lines := strings.Split(strings.TrimRight(snippet, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected line and marker, got %q", snippet)
	}

	want := strings.Repeat(" ", len("1")+5) + "\t^"
	if lines[1] != want {
		t.Errorf("marker line = %q, expected %q", lines[1], want)
	}
}

func TestError_SnippetMultibyteAlignment(t *testing.T) {
	t.Parallel()

	// Columns count runes, not bytes, so multi-byte characters before the
	// error column pad one cell each.
	source := "größe = *x ;"

	err := ErrUndeclaredVar.WithPosition(Position{Offset: 10, Line: 1, Column: 9})

	snippet := err.Snippet(source)

	lines := strings.Split(strings.TrimRight(snippet, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected line and marker, got %q", snippet)
	}

	want := strings.Repeat(" ", len("1")+5) + strings.Repeat(" ", 8) + "^"
	if lines[1] != want {
		t.Errorf("marker line = %q, expected %q", lines[1], want)
	}
}

func TestError_SnippetWithoutPosition(t *testing.T) {
	t.Parallel()

	if got := ErrSyntax.Snippet("anything"); got != "" {
		t.Errorf("expected empty snippet, got %q", got)
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	err := ErrUndeclaredVar.
		WithPosition(Position{Line: 1, Column: 3}).
		With(slog.String("name", "missing"))

	val := err.LogValue()
	if val.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, expected group", val.Kind())
	}

	found := map[string]bool{}
	for _, attr := range val.Group() {
		found[attr.Key] = true
	}

	for _, key := range []string{"error", "position", "name"} {
		if !found[key] {
			t.Errorf("expected attribute %q in log value, got %v", key, found)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	declared := []string{"value", "name", "count"}

	tests := []struct {
		input    string
		expected string
	}{
		{"valu", "value"},
		{"nam", "name"},
		{"zzz", ""},
	}

	for _, tt := range tests {
		if got := suggest(tt.input, declared); got != tt.expected {
			t.Errorf("suggest(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
