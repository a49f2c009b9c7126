package zapadapter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/OdyseeTeam/videoshrink/pkg/logging"
)

// kvLogger adapts Uber's zap to the logging.KVLogger interface.
type kvLogger struct {
	logger *zap.SugaredLogger
	core   zapcore.Core
}

// NewKV returns a new key-value logger backed by zap.
// If logger is nil, the global zap instance is used.
func NewKV(logger *zap.Logger) logging.KVLogger {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.WithOptions(zap.AddCallerSkip(1))

	return &kvLogger{
		logger: logger.Sugar(),
		core:   logger.Core(),
	}
}

func (l *kvLogger) Debug(msg string, keyvals ...interface{}) {
	if !l.core.Enabled(zap.DebugLevel) {
		return
	}
	l.logger.Debugw(msg, keyvals...)
}

func (l *kvLogger) Info(msg string, keyvals ...interface{}) {
	if !l.core.Enabled(zap.InfoLevel) {
		return
	}
	l.logger.Infow(msg, keyvals...)
}

func (l *kvLogger) Warn(msg string, keyvals ...interface{}) {
	if !l.core.Enabled(zap.WarnLevel) {
		return
	}
	l.logger.Warnw(msg, keyvals...)
}

func (l *kvLogger) Error(msg string, keyvals ...interface{}) {
	if !l.core.Enabled(zap.ErrorLevel) {
		return
	}
	l.logger.Errorw(msg, keyvals...)
}

func (l *kvLogger) Fatal(msg string, keyvals ...interface{}) {
	l.logger.Fatalw(msg, keyvals...)
}

func (l *kvLogger) With(keyvals ...interface{}) logging.KVLogger {
	return &kvLogger{
		logger: l.logger.With(keyvals...),
		core:   l.core,
	}
}
