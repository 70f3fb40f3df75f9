package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	L = build(zap.NewProductionConfig(), zapcore.InfoLevel)
}

// Init rebuilds the global logger for the given environment. Outside production the
// console encoder is used; level falls back to info when it cannot be parsed.
func Init(environment, level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if environment != "production" {
		cfg = zap.NewDevelopmentConfig()
	}
	L = build(cfg, lvl)
}

func build(config zap.Config, level zapcore.Level) *zap.Logger {
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l
}

// WithComponent returns a logger tagged with a component field (handler, service, mail, ...).
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

func Sync() {
	_ = L.Sync()
}
