package gradkit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers never
// format attributes for a silenced logger.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the diagnostics of gradkit and its sub-packages to l.
// The library logs nothing until this is called; nil silences it again.
// It may be called while decodes are running on other goroutines.
//
// Levels:
//   - [slog.LevelDebug]: per-record and per-stop decode detail
//   - [slog.LevelInfo]: per-file summaries (gradients, groups, files written)
//   - [slog.LevelWarn]: skipped gradient records, failed conversions
//
// For full detail on stderr:
//
//	gradkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger. Sub-packages log
// through it.
func Logger() *slog.Logger {
	return current.Load()
}
