package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger is a leveled, line oriented log around a single output stream. It
// remembers whether anything was logged at error level, so that a command can
// exit non-zero after reporting every problem it found.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the output stream, closing any prior one that is closable.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if wc, ok := log.output.(io.Closer); ok {
		wc.Close()
	}
	log.output = out
}

// ExitCode returns a code to pass to os.Exit: 0 unless an error was logged.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Close flushes any buffered output, such as a Writer's partial last line;
// the output stream itself stays open.
func (log *Logger) Close() {
	log.mu.Lock()
	defer log.mu.Unlock()
	if fl, ok := log.output.(interface{ Flush() error }); ok {
		if err := fl.Flush(); err != nil {
			log.reportError(err)
		}
	}
}

// Leveledf returns a printf-style function that logs at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error at error level.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.mu.Lock()
		defer log.mu.Unlock()
		log.reportError(err)
	}
}

// Errorf is like Printf("ERROR", ...) but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf("ERROR", mess, args...)
	log.exitCode = 1
}

// Printf writes one line like "level: message\n". A write failure is itself
// reported at error level.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.reportError(err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.output == nil {
		return nil
	}
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}

func (log *Logger) reportError(err error) {
	log.printf("ERROR", "%+v", err)
	log.exitCode = 2
}
