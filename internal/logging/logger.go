package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used by the HTTP server.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field is a key/value attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{key, value} }
func Int(key string, value int) Field { return Field{key, value} }
func Bool(key string, value bool) Field { return Field{key, value} }
func Float64(key string, value float64) Field { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// Err returns the conventional "error" field.
func Err(err error) Field { return Field{"error", err} }

// ZerologAdapter implements Logger over a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps zl.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger writes timestamped JSON to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "")
}

// NewLogger writes timestamped JSON to w. A non-empty component is added
// to every entry.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	ctx := zerolog.New(w).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return NewZerologAdapter(ctx.Logger())
}

// With returns a child logger whose entries carry fields.
func (z *ZerologAdapter) With(fields ...Field) *ZerologAdapter {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return NewZerologAdapter(ctx.Logger())
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) { emit(z.logger.Debug(), fields, msg) }
func (z *ZerologAdapter) Info(msg string, fields ...Field) { emit(z.logger.Info(), fields, msg) }
func (z *ZerologAdapter) Warn(msg string, fields ...Field) { emit(z.logger.Warn(), fields, msg) }

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	emit(z.logger.Error().Err(err), fields, msg)
}

// emit types each field onto e so numbers stay numbers in the JSON output.
func emit(e *zerolog.Event, fields []Field, msg string) {
	if e == nil {
		return // level disabled
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e.Str(f.Key, v)
		case int:
			e.Int(f.Key, v)
		case bool:
			e.Bool(f.Key, v)
		case float64:
			e.Float64(f.Key, v)
		case time.Duration:
			e.Dur(f.Key, v)
		case error:
			e.AnErr(f.Key, v)
		default:
			e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// SetLevel sets the global zerolog level from a name such as "debug".
// Unknown names select info.
func SetLevel(name string) {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
