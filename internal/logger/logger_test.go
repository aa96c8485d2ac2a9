package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultAndDiscard(t *testing.T) {
	t.Parallel()
	for _, log := range []Logger{Default(), Discard()} {
		if log == nil {
			t.Fatal("constructor returned nil")
		}
		log.Debug("debug")
		log.Info("info")
		log.With("k", "v").WithGroup("g").Warn("warn")
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("stream opened", "stream", 3)

	out := buf.String()
	for _, want := range []string{`"msg":"stream opened"`, `"stream":3`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("hidden too")
	if buf.Len() > 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn record, got: %s", buf.String())
	}
}

func TestWithAndGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("component", "ive").WithGroup("read")
	log.Info("section", "z", 2)

	out := buf.String()
	if !strings.Contains(out, `"component":"ive"`) {
		t.Fatalf("expected component attr, got: %s", out)
	}
	if !strings.Contains(out, `"read":{"z":2}`) {
		t.Fatalf("expected grouped attr, got: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}

	var buf bytes.Buffer
	ctx := WithContext(context.Background(), JSON(&buf, slog.LevelInfo))
	FromContext(ctx).Info("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Fatalf("expected record from context logger, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"json":   FormatJSON,
		" JSON ": FormatJSON,
		"pretty": FormatPretty,
		"text":   FormatText,
		"logfmt": FormatText,
		"":       FormatText,
	}
	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewFor(t *testing.T) {
	t.Parallel()

	var jsonBuf, textBuf bytes.Buffer
	NewFor(&jsonBuf, FormatJSON, slog.LevelInfo).Info("hello", "k", "v")
	NewFor(&textBuf, FormatText, slog.LevelInfo).Info("hello", "k", "v")

	if !strings.HasPrefix(jsonBuf.String(), "{") {
		t.Fatalf("expected JSON record, got: %s", jsonBuf.String())
	}
	if !strings.Contains(textBuf.String(), "msg=hello k=v") {
		t.Fatalf("expected text record, got: %s", textBuf.String())
	}
}
