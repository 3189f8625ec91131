package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    Level
		log      func(Logger)
		expected bool
	}{
		{
			name:     "info passes at info",
			level:    LevelInfo,
			log:      func(l Logger) { l.Info("msg") },
			expected: true,
		},
		{
			name:     "debug blocked at info",
			level:    LevelInfo,
			log:      func(l Logger) { l.Debug("msg") },
			expected: false,
		},
		{
			name:     "trace blocked at debug",
			level:    LevelDebug,
			log:      func(l Logger) { l.Trace("msg") },
			expected: false,
		},
		{
			name:     "trace passes at trace",
			level:    LevelTrace,
			log:      func(l Logger) { l.Trace("msg") },
			expected: true,
		},
		{
			name:     "error passes at error",
			level:    LevelError,
			log:      func(l Logger) { l.Error("msg") },
			expected: true,
		},
		{
			name:     "warn blocked at error",
			level:    LevelError,
			log:      func(l Logger) { l.Warn("msg") },
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false))
			tt.log(logger)

			if got := buf.Len() > 0; got != tt.expected {
				t.Errorf("output written = %v, expected %v (got: %q)",
					got, tt.expected, buf.String())
			}
		})
	}
}

func TestMake_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"))

	logger.Info("hello", slog.String("key", "value"))

	out := buf.String()
	for _, want := range []string{`"msg":"hello"`, `"key":"value"`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}

	if strings.Contains(out, `"time"`) {
		t.Errorf("expected no time attribute, got: %s", out)
	}
}

func TestMake_TraceLevelName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithPretty(false))

	logger.Trace("tracing")

	if out := buf.String(); !strings.Contains(out, `"level":"TRACE"`) {
		t.Errorf("expected TRACE level name, got: %s", out)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	t.Parallel()

	var logger Logger

	// Must not panic, and must report defaults.
	logger.Info("discarded")
	logger.Error("discarded")

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, expected %v", got, DefaultLevel)
	}

	if got := logger.Format(); got != DefaultFormat {
		t.Errorf("Format() = %v, expected %v", got, DefaultFormat)
	}
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false)).
		With(slog.String("component", "expander"))

	logger.Info("working")

	if out := buf.String(); !strings.Contains(out, `"component":"expander"`) {
		t.Errorf("expected attached attribute, got: %s", out)
	}
}

func TestLogger_Wrap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	derived := base.Wrap(WithLevel(LevelDebug))

	derived.Debug("visible")

	if buf.Len() == 0 {
		t.Error("expected wrapped logger to emit debug message")
	}

	buf.Reset()
	base.Debug("invisible")

	if buf.Len() != 0 {
		t.Errorf("expected base logger unchanged, got: %q", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	logger.Info("ready", slog.Int("vars", 3))

	out := buf.String()
	if !strings.Contains(out, "ready") || !strings.Contains(out, "vars") {
		t.Errorf("expected message and attribute in output, got: %q", out)
	}

	if !strings.Contains(out, "\033[") {
		t.Errorf("expected ANSI color codes, got: %q", out)
	}
}

func TestLogger_CallerAttribution(t *testing.T) {
	t.Parallel()

	// Both the context-aware and context-unaware methods must attribute
	// the message to their call site, not to a wrapper inside this package.
	tests := []struct {
		name string
		log  func(Logger)
	}{
		{"Trace", func(l Logger) { l.Trace("msg") }},
		{"Info", func(l Logger) { l.Info("msg") }},
		{"InfoContext", func(l Logger) { l.InfoContext(context.Background(), "msg") }},
		{"ErrorContext", func(l Logger) { l.ErrorContext(context.Background(), "msg") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.log(Make(&buf,
				WithLevel(LevelTrace),
				WithCaller(true),
				WithPretty(false)))

			if out := buf.String(); !strings.Contains(out, "log_test.go") {
				t.Errorf("expected caller in this file, got: %q", out)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v",
					tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"bogus", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := ParseFormat(tt.input); got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, expected %v",
					tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    Level
		expected string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q",
				tt.level, got, tt.expected)
		}
	}
}

func TestLevels_Order(t *testing.T) {
	t.Parallel()

	var names []string
	for name := range Levels() {
		names = append(names, name)
	}

	expected := []string{"trace", "debug", "info", "warn", "error"}
	if len(names) != len(expected) {
		t.Fatalf("Levels() yielded %d names, expected %d", len(names), len(expected))
	}

	for i, name := range names {
		if name != expected[i] {
			t.Errorf("Levels()[%d] = %q, expected %q", i, name, expected[i])
		}
	}
}

func TestWithTimeLayout_Named(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("Kitchen"))

	logger.Info("timed")

	out := buf.String()
	if !strings.Contains(out, `"time"`) {
		t.Fatalf("expected time attribute, got: %s", out)
	}

	// Kitchen layout renders like "3:04PM" with no date component.
	if strings.Contains(out, "T") && strings.Contains(out, "Z") {
		t.Errorf("expected Kitchen layout, got RFC3339-like time: %s", out)
	}
}
