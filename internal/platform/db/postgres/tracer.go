package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// SlogTracer は pgx の tracelog 出力を slog へ流すアダプタです。
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer は SlogTracer を生成します。
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	return &SlogTracer{logger: logger}
}

// Log は tracelog.Logger を実装します。
func (t *SlogTracer) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data)+1)
	attrs = append(attrs, slog.String("component", "pgx"))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	t.logger.LogAttrs(ctx, toSlogLevel(level), msg, attrs...)
}

func toSlogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
