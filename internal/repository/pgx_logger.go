package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger routes pgx trace output into zerolog.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("module", "repository").Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

var pgxLevels = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// Log implements tracelog.Logger. Query arguments are only emitted at trace
// level since they may carry subnet payloads.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	zl, known := pgxLevels[level]
	if !known {
		zl = zerolog.InfoLevel
	}
	event := l.logger.WithLevel(zl)
	if !known {
		event = event.Str("pgx_log_level", level.String())
	}

	for k, v := range data {
		switch k {
		case "sql":
			if s, ok := v.(string); ok {
				event = event.Str("sql", s)
			} else {
				event = event.Interface("sql", v)
			}
		case "args":
			if zl == zerolog.TraceLevel {
				event = event.Interface("args", v)
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				event = event.Dur("took", d)
			} else {
				event = event.Interface("time", v)
			}
		case "err":
			if err, ok := v.(error); ok {
				event = event.Err(err)
			} else {
				event = event.Interface("err", v)
			}
		default:
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}
