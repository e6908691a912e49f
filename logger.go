package unmult

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false for all levels, so
// slog never builds the attributes of a call that would be discarded.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func silentLogger() *slog.Logger { return slog.New(nopHandler{}) }

// activeLogger is read by every render and may be swapped at any time.
var activeLogger atomic.Pointer[slog.Logger]

func init() {
	activeLogger.Store(silentLogger())
}

// SetLogger routes unmult diagnostics to l. A nil l silences them again,
// which is also the state before the first call.
//
// Records are emitted at two levels:
//   - [slog.LevelDebug]: one record per render with the formats, frame
//     size, traversal and strategy, plus a record when the table strategy
//     falls back to the exact kernel
//   - [slog.LevelInfo]: a Renderer starting and closing
//
// It may be called while renders are running on other goroutines.
//
//	unmult.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	activeLogger.Store(l)
}

// Logger returns the logger unmult currently writes to. It never returns nil.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
