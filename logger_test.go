package gradkit

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestDiscardHandler(t *testing.T) {
	var h slog.Handler = discard{}
	ctx := context.Background()

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}

	derived := []slog.Handler{
		h.WithAttrs([]slog.Attr{slog.String("file", "Metals.grd")}),
		h.WithGroup("grd"),
	}
	for _, d := range derived {
		if _, ok := d.(discard); !ok {
			t.Errorf("derived handler is %T, want discard", d)
		}
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger() != silent {
		t.Fatal("Logger() is not the silent logger before SetLogger")
	}
	if Logger().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("default logger is enabled at warn")
	}
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	if Logger() != l {
		t.Fatal("Logger() did not return the installed logger")
	}

	Logger().Info("decoded gradients", "gradients", 3)
	if !strings.Contains(buf.String(), "gradients=3") {
		t.Errorf("log output = %q, want gradients=3", buf.String())
	}

	SetLogger(nil)
	if Logger() != silent {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLoggerConcurrentSwap(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("record", "index", 1)
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkSilentLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("stop", "position", 0.5)
	}
}
