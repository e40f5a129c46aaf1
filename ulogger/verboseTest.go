package ulogger

import (
	"fmt"
	"sync"
	"testing"
)

// VerboseTestLogger writes every line through t.Logf, so output only shows for failing or -v runs.
type VerboseTestLogger struct {
	t       testing.TB
	service string
	mutex   sync.Mutex
}

func NewVerboseTestLogger(t testing.TB) *VerboseTestLogger {
	return &VerboseTestLogger{t: t, service: "test"}
}

func (l *VerboseTestLogger) LogLevel() int {
	return 0
}

func (l *VerboseTestLogger) SetLogLevel(level string) {}

func (l *VerboseTestLogger) New(service string, options ...Option) Logger {
	return &VerboseTestLogger{t: l.t, service: service}
}

func (l *VerboseTestLogger) Duplicate(options ...Option) Logger {
	return l.New(l.service, options...)
}

func (l *VerboseTestLogger) log(level, format string, args ...interface{}) string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.t.Helper()

	line := fmt.Sprintf("[%s] %s | %s", level, l.service, fmt.Sprintf(format, args...))
	l.t.Log(line)

	return line
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.t.Fatal(l.log("FATAL", format, args...))
}
