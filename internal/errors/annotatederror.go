// Package errors extends the standard library errors with slog annotations and source locations.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	file  string
	line  int
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates a sentinel error meant to be declared as a package level variable and compared with [Is].
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // this is the sentinel constructor.
}

// Wrap annotates err with a message and optional slog attributes. The caller's source location is recorded so that
// [SlogError] can point to where the error was first annotated.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	file, line := caller(2) //nolint:mnd // skip runtime.Callers and Wrap.
	return &annotatedError{
		msg:   msg,
		cause: err,
		attrs: attrs,
		file:  file,
		line:  line,
	}
}

// DecoratePanic converts a recovered panic value into an error. It returns nil if v is nil.
func DecoratePanic(v any) error {
	if v == nil {
		return nil
	}
	file, line := caller(2) //nolint:mnd // skip runtime.Callers and DecoratePanic.
	if err, ok := v.(error); ok {
		return &annotatedError{msg: "panic", cause: err, attrs: nil, file: file, line: line}
	}
	return &annotatedError{msg: fmt.Sprintf("panic: %v", v), cause: nil, attrs: nil, file: file, line: line}
}

// SlogError converts err into a structured log attribute under the "error" key containing the message, all
// annotations collected from the error chain, and the source location of the innermost annotation.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		annotations []any
		source      string
	)
	walk(err, func(ae *annotatedError) {
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.file != "" {
			source = ae.file + ":" + strconv.Itoa(ae.line)
		}
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// walk visits the annotated errors in the chain from outermost to innermost, following joined errors too.
func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // we walk the chain manually.
		visit(ae)
	}
	switch u := err.(type) { //nolint:errorlint // we walk the chain manually.
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}

func caller(skip int) (string, int) {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+1, pcs) == 0 {
		return "", 0
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return frame.File, frame.Line
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text) //nolint:err113 // mirrors the standard library.
}
