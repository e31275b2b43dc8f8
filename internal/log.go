package internal

import (
	"fmt"
	"os"
	"sync"
)

// Logger writes leveled, line-oriented log output to a file. A nil
// *Logger is valid and discards everything, so library code never has to
// check before logging.
type Logger struct {
	mu      sync.Mutex
	f       *os.File
	Verbose bool
}

func NewLogger(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f}, nil
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write("WARN", format, args...)
}

// Debugf only emits when Verbose is set.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.Verbose {
		return
	}
	l.write("DEBUG", format, args...)
}

func (l *Logger) write(level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, level+" "+format+"\n", args...)
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
