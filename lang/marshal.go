package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// VariableDump is a marshal-friendly snapshot of one variable: its name and
// the rendered text of each value, in declaration order.
type VariableDump struct {
	Name   string   `json:"name"   yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Dump returns marshal-friendly snapshots of all variables in declaration
// order.
func (t *Table) Dump() []VariableDump {
	dump := make([]VariableDump, 0, t.Len())

	for v := range t.All() {
		values := make([]string, 0, len(v.Values))
		for _, val := range v.Values {
			values = append(values, val.Text())
		}

		dump = append(dump, VariableDump{Name: v.Name, Values: values})
	}

	return dump
}

// Format writes the table in declaration syntax to the writer.
func (t *Table) Format(_ context.Context, w io.Writer) error {
	for v := range t.All() {
		if _, err := fmt.Fprintf(w, "let &%s = [", v.Name); err != nil {
			return err
		}

		for i, val := range v.Values {
			if i > 0 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprint(w, formatValue(val)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, "];"); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the table as JSON to the writer.
func (t *Table) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(t.Dump(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(t.Dump())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the table as YAML to the writer.
func (t *Table) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, t.Dump(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// formatValue renders one value as a declaration list element: NONE when
// empty, the bare token when single, and a brace-wrapped run otherwise.
func formatValue(val Value) string {
	switch {
	case val.IsEmpty():
		return noneMarker

	case len(val) == 1:
		return val[0].Text

	default:
		return "{ " + val.Text() + " }"
	}
}
