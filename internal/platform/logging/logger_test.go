package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "", want: LevelInfo},
		{in: " WARNING ", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_WithPrefixAndErrorFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Named("save").WithPrefix("[reprocess]")

	logger.Warn("post step failed", "step", "stats", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "save" {
		t.Fatalf("unexpected logger name %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["log_prefix"] != "[reprocess]" {
		t.Fatalf("expected log_prefix field, got %v", fields["log_prefix"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field boom, got %v", fields["error"])
	}
}

func TestLogger_NilReceiverUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.WithPrefix("") == nil {
		t.Fatalf("expected default logger")
	}
}

func TestLogger_MirrorReceivesEnabledLines(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("filtered")
	logger.InfoContext(context.Background(), "kept", "match_id", "m1")

	if len(got) != 1 || got[0] != "info:kept" {
		t.Fatalf("unexpected mirrored lines %v", got)
	}
}
