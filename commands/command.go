package commands

import (
	"go.uber.org/zap"
)

const APP = "metrika-app-sheets"

type Options struct {
	Config string
	Debug  bool
}

var logger = zap.NewNop().Sugar()

// SetLogger sets the logger used by the commands. The default logger discards everything.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
}

func debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
