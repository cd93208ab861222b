package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to Logger. The level is held in an AtomicLevel
// so SetLevel affects every child created with With.
type ZapLogger struct {
	base  *zap.Logger
	level zap.AtomicLevel
}

// NewZapLogger builds a production zap logger (JSON encoder, ISO8601 time) at level
func NewZapLogger(level Level) (*ZapLogger, error) {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{base: base, level: atom}, nil
}

// WrapZap adapts an existing zap logger. Its core decides filtering; SetLevel
// only gates entries before they reach the core.
func WrapZap(base *zap.Logger, level Level) *ZapLogger {
	return &ZapLogger{base: base, level: zap.NewAtomicLevelAt(toZapLevel(level))}
}

func (z *ZapLogger) Debug(msg string, fields ...Field) { z.write(zapcore.DebugLevel, msg, fields) }
func (z *ZapLogger) Info(msg string, fields ...Field)  { z.write(zapcore.InfoLevel, msg, fields) }
func (z *ZapLogger) Warn(msg string, fields ...Field)  { z.write(zapcore.WarnLevel, msg, fields) }
func (z *ZapLogger) Error(msg string, fields ...Field) { z.write(zapcore.ErrorLevel, msg, fields) }

func (z *ZapLogger) write(lvl zapcore.Level, msg string, fields []Field) {
	if !z.level.Enabled(lvl) {
		return
	}
	if ce := z.base.Check(lvl, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

func (z *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{base: z.base.With(toZapFields(fields)...), level: z.level}
}

func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

func (z *ZapLogger) GetLevel() Level {
	switch z.level.Level() {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Sync flushes buffered entries
func (z *ZapLogger) Sync() error {
	return z.base.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
