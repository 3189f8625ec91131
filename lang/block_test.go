package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse_BodyStructure(t *testing.T) {
	t.Parallel()

	_, body, err := Parse(context.Background(),
		"let &i = [1]; a *i ( b { c } )")
	if err != nil {
		t.Fatal(err)
	}

	if body.Delimited() {
		t.Error("top-level body must not report delimiters")
	}

	types := make([]NodeType, 0, len(body.Nodes))
	for _, n := range body.Nodes {
		types = append(types, n.Type)
	}

	expected := []NodeType{NodeToken, NodeRef, NodeBlock}
	if len(types) != len(expected) {
		t.Fatalf("got %d nodes (%v), expected %d", len(types), types, len(expected))
	}

	for i, nt := range expected {
		if types[i] != nt {
			t.Errorf("node %d type = %v, expected %v", i, types[i], nt)
		}
	}

	paren := body.Nodes[2].Block
	if !paren.Delimited() || paren.Open.Text != "(" || paren.Close.Text != ")" {
		t.Errorf("child block delimiters = %q %q, expected parentheses",
			paren.Open.Text, paren.Close.Text)
	}

	if got := len(paren.Nodes); got != 2 {
		t.Fatalf("paren block has %d nodes, expected 2", got)
	}

	brace := paren.Nodes[1].Block
	if brace == nil || brace.Open.Bracket != BracketBrace {
		t.Error("expected nested brace block inside parentheses")
	}
}

func TestParse_BodyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "undeclared reference",
			input:    "use *nothing ;",
			expected: ErrUndeclaredVar,
		},
		{
			name:     "mismatched delimiters",
			input:    "( a ]",
			expected: ErrSyntax,
		},
		{
			name:     "unterminated group",
			input:    "{ a b",
			expected: ErrSyntax,
		},
		{
			name:     "stray closing delimiter",
			input:    "a b )",
			expected: ErrSyntax,
		},
		{
			name:     "undeclared reference inside group",
			input:    "let &i = [1]; ( *j )",
			expected: ErrUndeclaredVar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(context.Background(), tt.input)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Parse(%q) error = %v, expected %v",
					tt.input, err, tt.expected)
			}
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	t.Parallel()

	nested := strings.Repeat("( ", 5) + "x" + strings.Repeat(" )", 5)

	_, _, err := Parse(context.Background(), nested, WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}

	_, _, err = Parse(context.Background(), nested, WithMaxDepth(10))
	if err != nil {
		t.Fatalf("expected nesting within limit to parse, got %v", err)
	}
}

func TestParse_MismatchedDelimiterMessage(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(context.Background(), "[ a )")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, `"["`) || !strings.Contains(msg, `")"`) {
		t.Errorf("expected both delimiters in message, got %q", msg)
	}
}
