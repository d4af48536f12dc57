package logger

import (
	"context"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
)

type closeLog func() error

// Log is the process-wide logger, set once by Init.
var Log *zap.Logger

func Init() (closeLog, error) {
	config := zap.NewProductionConfig()
	// ECS-compatible encoding so logs can be shipped to the Elastic Stack later
	config.EncoderConfig = ecszap.ECSCompatibleEncoderConfig(config.EncoderConfig)

	var err error
	Log, err = config.Build(ecszap.WrapCoreOption())
	if err != nil {
		return nil, err
	}

	return func() error {
		return Log.Sync()
	}, nil
}

func With(fields ...zap.Field) *zap.Logger {
	return Log.With(fields...)
}

type loggerKey struct{}

func NewContext(parent context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(parent, loggerKey{}, logger)
}

func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(loggerKey{}).(*zap.Logger)
	if ok {
		return log
	}
	return Log
}
