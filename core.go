package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsl-lang/jsl/internal/flushio"
)

// core carries the host side of a VM: where output goes, how to trace, and
// how to stop.
type core struct {
	logging
	out flushio.WriteFlusher
}

func (core *core) Close() error {
	if core.out != nil {
		return core.out.Flush()
	}
	return nil
}

// halt stops evaluation by panicking with a haltError; the API entry points
// recover it and return err.
func (core *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (core *core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

// Output is written as given, bytes and all, and flushed immediately.

func (core *core) writeString(s string) {
	if _, err := io.WriteString(core.out, s); err != nil {
		core.halt(err)
	}
	core.haltif(core.out.Flush())
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
