package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// CustomizedError carries a trace chain, a message (usually an i18n id) and
// an HTTP-like status code. The cause stays reachable through Unwrap.
type CustomizedError struct {
	cause   error
	message string
	trace   []string
	code    int
	data    map[string]any
}

func (e *CustomizedError) WithData(data map[string]any) *CustomizedError {
	e.data = data
	return e
}

func (e *CustomizedError) Data() map[string]any {
	return e.data
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	return e.code
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
}

func (e *CustomizedError) Trace(trace string) *CustomizedError {
	e.trace = append(e.trace, trace)
	return e
}

// Wrap keeps the code of an incoming CustomizedError.
func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
	var income *CustomizedError
	if stderrors.As(err, &income) {
		ce.code = income.code
	}
	return ce
}

func Trace(trace string, err error) *CustomizedError {
	if ce, ok := err.(*CustomizedError); ok {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

func (e *CustomizedError) Message() string {
	if e.message == "" && e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	return e.cause
}

func (e *CustomizedError) Error() string {
	cause := `""`
	if e.cause != nil {
		cause = fmt.Sprintf("%q", e.cause.Error())
	}
	return fmt.Sprintf(`{"trace":"%s","code":%d,"msg":%q,"error":%s}`, strings.Join(e.trace, "->"), e.code, e.message, cause)
}

// CodeOf returns the code of the first CustomizedError in err's chain, or
// fallback when there is none.
func CodeOf(err error, fallback int) int {
	var ce *CustomizedError
	if stderrors.As(err, &ce) {
		return ce.code
	}
	return fallback
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
