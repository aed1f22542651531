//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Logger implements compiler logging facility.
type Logger struct {
	out    io.Writer
	params *Params
}

// NewLogger creates a new logger outputting to the argument
// io.Writer. The params control which message classes are emitted.
func NewLogger(out io.Writer, params *Params) *Logger {
	if params == nil {
		params = NewParams()
	}
	return &Logger{
		out:    out,
		params: params,
	}
}

// Params returns the logger parameters.
func (l *Logger) Params() *Params {
	return l.params
}

func (l *Logger) print(prefix, format string, a ...interface{}) {
	if l.out == nil {
		return
	}
	msg := fmt.Sprintf(format, a...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprintf(l.out, "%s%s", prefix, msg)
}

// Errorf logs an error message and returns it as an error.
func (l *Logger) Errorf(loc Point, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	if loc.Undefined() {
		l.print(loc.Source+": ", "%s", msg)
	} else {
		l.print(loc.String()+": ", "%s", msg)
	}

	idx := strings.IndexRune(msg, '\n')
	if idx > 0 {
		msg = msg[:idx]
	}
	return errors.New(msg)
}

// Warningf logs a warning message.
func (l *Logger) Warningf(loc Point, format string, a ...interface{}) {
	if loc.Undefined() {
		l.print(loc.Source+": warning: ", format, a...)
	} else {
		l.print(loc.String()+": warning: ", format, a...)
	}
}

// Printf logs a compile-time message if verbose output is enabled.
func (l *Logger) Printf(format string, a ...interface{}) {
	if l.params.Verbose {
		l.print("", format, a...)
	}
}

// Debugf logs a per-operation message if diagnostics are enabled.
func (l *Logger) Debugf(format string, a ...interface{}) {
	if l.params.Diagnostics || l.params.Trace {
		l.print("", format, a...)
	}
}

// Tracing tests if tracing is enabled. Callers must check this
// before revealing secrets for Tracef arguments.
func (l *Logger) Tracing() bool {
	return l.params.Trace
}

// Tracef logs a trace message if tracing is enabled.
func (l *Logger) Tracef(format string, a ...interface{}) {
	if l.params.Trace {
		l.print("", format, a...)
	}
}
