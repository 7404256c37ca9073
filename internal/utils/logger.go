package utils

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	diagnosticOutputPath = "stderr"
	messageKey           = "message"
)

// NewLogLevel returns the adjustable level shared by application loggers. Warnings and errors are
// enabled by default; the CLI lowers it to debug on request.
func NewLogLevel() zap.AtomicLevel {
	return zap.NewAtomicLevelAt(zapcore.WarnLevel)
}

// NewApplicationLogger constructs a zap logger configured for human-readable console output on stderr.
func NewApplicationLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	config := newConsoleConfig(level)
	return config.Build()
}

// NewWriterLogger constructs a console logger identical to NewApplicationLogger that writes to writer.
func NewWriterLogger(writer io.Writer, level zap.AtomicLevel) *zap.Logger {
	config := newConsoleConfig(level)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(writer), level)
	return zap.New(core)
}

func newConsoleConfig(level zap.AtomicLevel) zap.Config {
	config := zap.NewProductionConfig()
	config.Level = level
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{diagnosticOutputPath}
	config.ErrorOutputPaths = []string{diagnosticOutputPath}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = messageKey
	config.EncoderConfig.StacktraceKey = ""
	return config
}
