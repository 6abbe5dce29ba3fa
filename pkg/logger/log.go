package logger

import (
	"os"

	"go.uber.org/zap"
)

// Loggers - именованные логгеры по областям приложения.
type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Context *zap.Logger
	Backend *zap.Logger
	Public  *zap.Logger
}

func NewLogger() *zap.Logger {
	outputs := []string{"stdout"}
	if err := os.MkdirAll("./logs", 0o755); err == nil {
		outputs = append(outputs, "./logs/app.log")
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

func NewLoggers(base *zap.Logger) *Loggers {
	return &Loggers{
		Main:    base,
		Auth:    base.Named("auth"),
		Context: base.Named("context"),
		Backend: base.Named("backend"),
		Public:  base.Named("public"),
	}
}

// NewNopLoggers - для тестов.
func NewNopLoggers() *Loggers {
	return NewLoggers(zap.NewNop())
}
