package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackageFunctions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message under test", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, "message under test") {
				t.Errorf("expected message in output, got: %s", out)
			}

			if !strings.Contains(out, tt.level) {
				t.Errorf("expected level %q in output, got: %s", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("expected attribute in output, got: %s", out)
			}
		})
	}
}

func TestPackageFunctions_CallerAttribution(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf,
		WithLevel(LevelTrace),
		WithCaller(true),
		WithPretty(false))

	tests := []struct {
		name string
		log  func()
	}{
		{"Trace", func() { Trace("msg") }},
		{"Info", func() { Info("msg") }},
		{"InfoContext", func() { InfoContext(context.Background(), "msg") }},
		{"ErrorContext", func() { ErrorContext(context.Background(), "msg") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			if out := buf.String(); !strings.Contains(out, "pkg_test.go") {
				t.Errorf("expected caller in this file, got: %q", out)
			}
		})
	}
}

func TestConfig_UpdatesDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithPretty(false))
	Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected reconfigured logger to emit debug, got: %q", buf.String())
	}
}
