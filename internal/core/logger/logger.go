package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Unknown levels fall back to info.
func NewLogger(level string) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if level == "debug" {
		loggerConfig = zap.NewDevelopmentConfig()
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(parsed)

	return loggerConfig.Build()
}

func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return logger
}
