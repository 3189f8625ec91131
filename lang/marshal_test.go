package lang

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"kr.dev/diff"
)

func TestTable_Dump(t *testing.T) {
	t.Parallel()

	table := parseTable(t, `
		let &name = [alpha, beta];
		let &vis = [pub, NONE];
		let &pair = [{a b}];
	`)

	expected := []VariableDump{
		{Name: "name", Values: []string{"alpha", "beta"}},
		{Name: "vis", Values: []string{"pub", ""}},
		{Name: "pair", Values: []string{"a b"}},
	}

	diff.Test(t, t.Errorf, table.Dump(), expected)
}

func TestTable_Format(t *testing.T) {
	t.Parallel()

	table := parseTable(t, `
		let &x = [1, 2];
		let &opt = [pub, NONE];
		let &multi = [{a b c}];
	`)

	var sb strings.Builder
	if err := table.Format(context.Background(), &sb); err != nil {
		t.Fatal(err)
	}

	expected := "let &x = [1, 2];\n" +
		"let &opt = [pub, NONE];\n" +
		"let &multi = [{ a b c }];\n"

	if got := sb.String(); got != expected {
		t.Errorf("Format output:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestTable_FormatRoundTrip(t *testing.T) {
	t.Parallel()

	// Declaration-syntax output must parse back to an equivalent table.
	table := parseTable(t, "let &a = [x, NONE, {y z}]; let &b = 0..3;")

	var sb strings.Builder
	if err := table.Format(context.Background(), &sb); err != nil {
		t.Fatal(err)
	}

	reparsed := parseTable(t, sb.String())

	diff.Test(t, t.Errorf, reparsed.Dump(), table.Dump())
}

func TestTable_FormatJSON(t *testing.T) {
	t.Parallel()

	table := parseTable(t, "let &i = [1, 2];")

	var sb strings.Builder
	if err := table.FormatJSON(context.Background(), &sb, 2); err != nil {
		t.Fatal(err)
	}

	var decoded []VariableDump
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, sb.String())
	}

	expected := []VariableDump{{Name: "i", Values: []string{"1", "2"}}}

	diff.Test(t, t.Errorf, decoded, expected)

	if !strings.Contains(sb.String(), "\n") {
		t.Error("expected indented output to span multiple lines")
	}
}

func TestTable_FormatJSONCompact(t *testing.T) {
	t.Parallel()

	table := parseTable(t, "let &i = [1];")

	var sb strings.Builder
	if err := table.FormatJSON(context.Background(), &sb, 0); err != nil {
		t.Fatal(err)
	}

	if got := strings.TrimSpace(sb.String()); strings.ContainsAny(got, "\n") {
		t.Errorf("expected single-line output, got %q", got)
	}
}

func TestTable_FormatYAML(t *testing.T) {
	t.Parallel()

	table := parseTable(t, "let &name = [alpha, beta];")

	var sb strings.Builder
	if err := table.FormatYAML(context.Background(), &sb, 2); err != nil {
		t.Fatal(err)
	}

	var decoded []VariableDump
	if err := yaml.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, sb.String())
	}

	expected := []VariableDump{{Name: "name", Values: []string{"alpha", "beta"}}}

	diff.Test(t, t.Errorf, decoded, expected)
}

func TestTable_EmptyDump(t *testing.T) {
	t.Parallel()

	table := parseTable(t, "just a body")

	if got := table.Dump(); len(got) != 0 {
		t.Errorf("expected empty dump, got %v", got)
	}
}
