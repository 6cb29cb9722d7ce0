package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewSimpleLogger returns development logger writing to stderr. Info level unless debug
func NewSimpleLogger(debug bool) *zap.SugaredLogger {
	return New(os.Stderr, debug)
}

// New returns development style console logger writing to w
func New(w io.Writer, debug bool) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel)).Sugar()
}

// NewObservedLogger returns logger which keeps all entries in memory for assertions
func NewObservedLogger(lvl zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(lvl)
	return zap.New(core).Sugar(), logs
}
