package logger

import (
	"context"
	"strings"
)

// PrintfAdapter exposes a Logger through the Errorf/Warnf/Debugf methods
// expected by HTTP client libraries.
type PrintfAdapter struct {
	l Logger
}

func NewPrintfAdapter(l Logger) *PrintfAdapter {
	return &PrintfAdapter{l: l}
}

func (a *PrintfAdapter) Errorf(format string, v ...interface{}) {
	a.l.Error(context.Background(), strings.TrimSuffix(format, "\n"), v...)
}

func (a *PrintfAdapter) Warnf(format string, v ...interface{}) {
	a.l.Warn(context.Background(), strings.TrimSuffix(format, "\n"), v...)
}

func (a *PrintfAdapter) Debugf(format string, v ...interface{}) {
	a.l.Debug(context.Background(), strings.TrimSuffix(format, "\n"), v...)
}
