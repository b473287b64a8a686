package main

import "go.uber.org/zap"

// zapLogger adapts zap's sugared logger to the finpulse.Logger interface.
// The core logs key/value pairs after the message, which maps onto
// SugaredLogger's *w methods directly.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(base *zap.Logger, name string) *zapLogger {
	return &zapLogger{sugar: base.Named(name).Sugar()}
}

func (l *zapLogger) Debug(format string, args ...any) {
	l.sugar.Debugw(format, args...)
}

func (l *zapLogger) Info(format string, args ...any) {
	l.sugar.Infow(format, args...)
}

func (l *zapLogger) Warn(format string, args ...any) {
	l.sugar.Warnw(format, args...)
}

func (l *zapLogger) Error(format string, args ...any) {
	l.sugar.Errorw(format, args...)
}
