// Package errors implements a basic error wrapping pattern, so that errors can be
// annotated with additional information without losing the original error.
//
// Example:
//
//	import "github.com/bytom/sm3/errors"
//
//	func query() error {
//		err := pq.Exec("SELECT...")
//		if err != nil {
//			return errors.Wrap(err, "select query failed")
//		}
//
//		err = pq.Exec("INSERT...")
//		if err != nil {
//			return errors.Wrap(err, "insert query failed")
//		}
//
//		return nil
//	}
//
//	func main() {
//		err := query()
//		if _, ok := errors.Root(err).(sql.ErrNoRows); ok {
//			log.Println("There were no results")
//			return
//		} else if err != nil {
//			log.Println(err)
//			return
//		}
//
//		log.Println("success")
//	}
//
// When to wrap errors
//
// Errors should be wrapped with additional messages when the context is ambiguous.
// This includes when the error could arise in multiple locations in the same
// function, when the error is very common and likely to appear at different points
// in the call tree (e.g., JSON serialization errors), or when you need specific
// parameters alongside the original error message.
//
// Error handling best practices
//
// Errors are part of a function's interface. If you expect the caller to perform
// conditional error handling, you should document the errors returned by your
// function in a function comment, and include it as part of your unit tests.
//
// Be disciplined about validating user input. Programs should draw a very clear
// distinction between user errors and internal errors.
//
// Avoid redundant error logging. If you return an error, don't log it. Otherwise
// the error may be logged multiple times.
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// wrapperError satisfies the error interface.
type wrapperError struct {
	msg    string
	detail []string
	data   map[string]interface{}
	stack  pkgerrors.StackTrace
	root   error
}

// It satisfies the error interface.
func (e wrapperError) Error() string {
	return e.msg
}

// Unwrap returns the root error so the standard library helpers
// (errors.Is, errors.As) see through the wrapper.
func (e wrapperError) Unwrap() error {
	return e.root
}

// Root returns the original error that was wrapped by one or more
// calls to Wrap. If e does not wrap other errors, it will be returned
// as-is.
func Root(e error) error {
	if wErr, ok := e.(wrapperError); ok {
		return wErr.root
	}
	return e
}

// wrap adds a context message and stack trace to err and returns a new error
// containing the new context. This function is meant to be composed within
// other exported functions, such as Wrap and WithDetail.
// The argument stackSkip is the number of stack frames to ascend, with 0
// identifying the caller of wrap.
func wrap(err error, msg string, stackSkip int) error {
	if err == nil {
		return nil
	}

	werr, ok := err.(wrapperError)
	if !ok {
		werr.root = err
		werr.msg = err.Error()
		werr.stack = callers(stackSkip + 1)
	}
	if msg != "" {
		werr.msg = msg + ": " + werr.msg
	}

	return werr
}

// callers records the stack above the caller of callers, skipping skip
// additional frames.
func callers(skip int) pkgerrors.StackTrace {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}

	// WithStack records frames starting at its caller, which is this function.
	st := pkgerrors.WithStack(errors.New("")).(stackTracer).StackTrace()
	if skip+1 >= len(st) {
		return nil
	}
	return st[skip+1:]
}

// Wrap adds a context message and stack trace to err and returns a new error
// with the new context. Arguments are handled as in fmt.Print.
// Use Root to recover the original error wrapped by one or more calls to Wrap.
// Use Stack to recover the stack trace.
// Wrap returns nil if err is nil.
func Wrap(err error, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprint(a...), 1)
}

// Wrapf is like Wrap, but arguments are handled as in fmt.Printf.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprintf(format, a...), 1)
}

// WithDetail returns a new error that wraps
// err as a chain error messsage containing text
// as its additional context.
// Function Detail will return the given text
// when called on the new error value.
func WithDetail(err error, text string) error {
	if err == nil {
		return nil
	}
	if text == "" {
		return err
	}
	e1 := wrap(err, text, 1).(wrapperError)
	e1.detail = append(e1.detail, text)
	return e1
}

// WithDetailf is like WithDetail, except it formats
// the detail message as in fmt.Printf.
// Function Detail will return the formatted text
// when called on the new error value.
func WithDetailf(err error, format string, v ...interface{}) error {
	if err == nil {
		return nil
	}
	text := fmt.Sprintf(format, v...)
	e1 := wrap(err, text, 1).(wrapperError)
	e1.detail = append(e1.detail, text)
	return e1
}

// Detail returns the detail message contained in err, if any.
// An error has a detail message if it was made by WithDetail
// or WithDetailf.
func Detail(err error) string {
	wrapper, _ := err.(wrapperError)
	return strings.Join(wrapper.detail, "; ")
}

// withData returns a new error that wraps err
// as a chain error message containing v as
// an extra data item.
// Calling Data on the returned error yields v.
// Note that if err already has a data item,
// it will not be accessible via the returned error value.
func withData(err error, v map[string]interface{}) error {
	if err == nil {
		return nil
	}
	e1 := wrap(err, "", 1).(wrapperError)
	e1.data = v
	return e1
}

// WithData returns a new error that wraps err
// as a chain error message containing a value of type
// map[string]interface{} as an extra data item.
// The map contains the values in the map in err,
// if any, plus the items in keyval.
// Keyval takes the form
//
//	k1, v1, k2, v2, ...
//
// Values kN must be strings.
// Calling Data on the returned error yields the map.
// Note that if err already has a data item of any other type,
// it will not be accessible via the returned error value.
func WithData(err error, keyval ...interface{}) error {
	if err == nil {
		return nil
	}
	newkv := make(map[string]interface{})
	for k, v := range Data(err) {
		newkv[k] = v
	}
	for i := 0; i < len(keyval); i += 2 {
		newkv[keyval[i].(string)] = keyval[i+1]
	}
	return withData(err, newkv)
}

// Data returns the data item in err, if any.
func Data(err error) map[string]interface{} {
	wrapper, _ := err.(wrapperError)
	return wrapper.data
}

// Sub returns an error containing root as its root and
// taking all other metadata (stack trace, detail, message,
// and data items) from err.
//
// Sub returns nil when either root or err is nil.
//
// Use this when you need to substitute a new root error in place
// of an existing error that may already hold a stack trace
// or other metadata.
func Sub(root, err error) error {
	if wrapper, ok := err.(wrapperError); ok && root != nil {
		wrapper.root = Root(root)
		wrapper.msg = root.Error()
		root = wrapper
	}
	if err == nil {
		return nil
	}
	return Wrap(root, err.Error())
}

// Stack returns the stack trace of an error. The error must contain the stack
// trace, or wrap an error that has a stack trace,
func Stack(err error) pkgerrors.StackTrace {
	if wErr, ok := err.(wrapperError); ok {
		return wErr.stack
	}
	return nil
}
