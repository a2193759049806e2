package infra

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(pc)
	return f
}

func (frame Frame) line() int {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(pc)
	return l
}

func (frame Frame) name() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %v - verbose, equivalent to %s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		_, _ = io.WriteString(s, path.Base(frame.file()))
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func caller(skip int) Frame {
	pcs := [1]uintptr{}
	n := runtime.Callers(skip, pcs[:])
	if n < 1 {
		return Frame(0)
	}
	return Frame(pcs[0])
}

type errorStack struct {
	err   error
	msg   string
	frame Frame
}

func (e *errorStack) Error() string {
	if len(e.msg) <= 0 {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *errorStack) Unwrap() error {
	return e.err
}

func (e *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, e.Error())
		if s.Flag('+') {
			_, _ = io.WriteString(s, " (")
			e.frame.Format(s, 'v')
			_, _ = io.WriteString(s, ")")
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	}
}

// WrapErrorStack decorates err with the caller's frame.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	return &errorStack{err: err, frame: caller(3)}
}

// WrapErrorStackWithMessage decorates err with the caller's frame
// and a prefix message.
func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &errorStack{err: err, msg: msg, frame: caller(3)}
}
