package vis

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Logger().Debug("estimator fallback", "reason", "occluder partially overlaps")
	if !strings.Contains(buf.String(), "estimator fallback") {
		t.Errorf("log output missing message: %q", buf.String())
	}

	// nil restores the silent default.
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestLoggingEngineQueriesObservable(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	before, expected := capturePair(10, 10, func(x, y int) bool { return x >= 5 })
	c := New(&fakeRenderer{before: before, expected: expected})
	c.PercentVisibleArea(coveredSubject())

	out := buf.String()
	if !strings.Contains(out, "estimator fallback") {
		t.Errorf("expected fallback trace in output: %q", out)
	}
	if !strings.Contains(out, "measured element") {
		t.Errorf("expected verifier trace in output: %q", out)
	}
}
