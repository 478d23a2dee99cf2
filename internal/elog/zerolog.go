package elog

import "github.com/rs/zerolog"

// zerologAdapter wraps a zerolog.Logger to satisfy the Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter adapts an existing zerolog.Logger for use as EC4X's
// process-wide logger via SetLogger.
func NewZerologAdapter(l zerolog.Logger) Logger {
	return &zerologAdapter{logger: l}
}

func (a *zerologAdapter) Debug(msg string, fields ...Field) {
	ev := a.logger.Debug()
	for _, f := range fields {
		ev = addField(ev, f)
	}
	ev.Msg(msg)
}

func (a *zerologAdapter) Info(msg string, fields ...Field) {
	ev := a.logger.Info()
	for _, f := range fields {
		ev = addField(ev, f)
	}
	ev.Msg(msg)
}

func (a *zerologAdapter) Warn(msg string, fields ...Field) {
	ev := a.logger.Warn()
	for _, f := range fields {
		ev = addField(ev, f)
	}
	ev.Msg(msg)
}

func (a *zerologAdapter) Error(msg string, fields ...Field) {
	ev := a.logger.Error()
	for _, f := range fields {
		ev = addField(ev, f)
	}
	ev.Msg(msg)
}

func addField(ev *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return ev.Str(f.Key, v)
	case int:
		return ev.Int(f.Key, v)
	case int32:
		return ev.Int32(f.Key, v)
	case int64:
		return ev.Int64(f.Key, v)
	case uint32:
		return ev.Uint32(f.Key, v)
	case uint64:
		return ev.Uint64(f.Key, v)
	case float64:
		return ev.Float64(f.Key, v)
	case bool:
		return ev.Bool(f.Key, v)
	case error:
		return ev.AnErr(f.Key, v)
	default:
		return ev.Interface(f.Key, v)
	}
}
