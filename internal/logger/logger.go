// Package logger provides the leveled stderr logger used as the
// diagnostic sink for skipped lines and failed files.
package logger

import (
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	logger  *log.Logger
	verbose bool
}

var std = &Logger{
	logger: log.New(os.Stderr, "", log.LstdFlags),
}

// SetVerbose enables DEBUG and INFO output. WARN and ERROR always log.
func SetVerbose(v bool) {
	std.verbose = v
}

func (l *Logger) shouldLog(level Level) bool {
	if level >= WARN {
		return true
	}
	return l.verbose
}

func (l *Logger) Debug(format string, v ...any) {
	if l.shouldLog(DEBUG) {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) Info(format string, v ...any) {
	if l.shouldLog(INFO) {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

func (l *Logger) Warn(format string, v ...any) {
	if l.shouldLog(WARN) {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

func (l *Logger) Error(format string, v ...any) {
	if l.shouldLog(ERROR) {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// Package-level functions delegating to the shared logger.
func Debug(format string, v ...any) { std.Debug(format, v...) }
func Info(format string, v ...any)  { std.Info(format, v...) }
func Warn(format string, v ...any)  { std.Warn(format, v...) }
func Error(format string, v ...any) { std.Error(format, v...) }
