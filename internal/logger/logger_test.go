package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	log := Default()
	if log == nil {
		t.Fatal("Default() returned nil")
	}
	log.Info("test message")
	log.Debug("debug message")
	log.Warn("warn message")
	log.Error("error message")
}

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected 'hello' in output, got: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("expected key=value in JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"level":"INFO"`) {
		t.Fatalf("expected level INFO in output, got: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")
	log.Debug("also should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info/debug at warn level, got: %s", buf.String())
	}

	log.Error("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected error output, got: %s", buf.String())
	}
}

func TestPrettyAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelDebug)
	log.Info("converted", "path", "a.mlg", "blocks", 3)

	out := buf.String()
	if !strings.Contains(out, "converted") {
		t.Fatalf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "path=a.mlg") {
		t.Fatalf("expected path attr in output, got: %s", out)
	}
	if !strings.Contains(out, "blocks=3") {
		t.Fatalf("expected blocks attr in output, got: %s", out)
	}
}

func TestWithCarriesAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("component", "decoder")
	log.Info("done")

	if !strings.Contains(buf.String(), `"component":"decoder"`) {
		t.Fatalf("expected component attr, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
