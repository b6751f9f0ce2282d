// Package logging builds the zap logger used by the CLI. Logs go to stderr
// so stdout stays parseable in --json mode.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config selects the level and encoder.
type Config struct {
	Level    string
	Encoding string
}

// New builds a logger writing to stderr.
func New(cfg Config) *zap.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to w. An unparseable level falls
// back to warn; an unknown encoding falls back to console.
func NewWithWriter(cfg Config, w io.Writer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			level = zapcore.WarnLevel
		}
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case EncodingJSON:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}

// ValidLevel reports whether s names a zap level.
func ValidLevel(s string) bool {
	var l zapcore.Level
	return l.Set(s) == nil
}
