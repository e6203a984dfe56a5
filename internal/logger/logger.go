package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON logger for production and a console logger otherwise.
// level accepts zap level names; empty means info.
func New(appEnv string, level string) (*zap.Logger, error) {
	atomicLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if IsProduction(appEnv) {
		config = zap.NewProductionConfig()
		config.EncoderConfig = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = atomicLevel

	return config.Build()
}

func IsProduction(appEnv string) bool {
	switch strings.ToLower(strings.TrimSpace(appEnv)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync(logger *zap.Logger) {
	if logger == nil {
		return
	}
	_ = logger.Sync()
}

func parseLevel(raw string) (zap.AtomicLevel, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return zap.NewAtomicLevelAt(level), nil
}
