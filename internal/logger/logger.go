package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// Init configures the package logger. Output goes to stderr and, when
// logfilePath is set, is also appended to that file. Level is one of
// debug, info, warn, error or none; anything else means info.
func Init(logfilePath string, levelStr string) error {
	level, enabled := parseLevel(levelStr)
	if !enabled {
		log = zap.NewNop().Sugar()
		return nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if logfilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logfilePath), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		sinks = append(sinks, zapcore.AddSync(f))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	log = zap.New(core).Named("morphemb").Sugar()
	return nil
}

// Use replaces the package logger, mainly for tests.
func Use(l *zap.Logger) {
	log = l.Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = log.Sync()
}

func parseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "none":
		return zapcore.InfoLevel, false
	default:
		return zapcore.InfoLevel, true
	}
}

func Debug(msg string, keysAndValues ...any) { log.Debugw(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...any)  { log.Infow(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...any)  { log.Warnw(msg, keysAndValues...) }
func Error(msg string, keysAndValues ...any) { log.Errorw(msg, keysAndValues...) }
