package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies a failed operation so the transport layer can pick a
// status code without inspecting error strings.
type ErrorKind int

const (
	// KindConversion is a failure inside a conversion library (corrupt
	// input, codec error). Maps to a server error.
	KindConversion ErrorKind = iota
	// KindBadInput is a client mistake (missing field, empty filename).
	KindBadInput
	// KindTimeout means the conversion exceeded its time budget.
	KindTimeout
)

// Error carries an ErrorKind alongside the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "conversion error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadInput builds a client-input error with the given message.
func BadInput(msg string) *Error {
	return &Error{Kind: KindBadInput, Message: msg}
}

// ConversionFailed wraps an underlying conversion failure.
func ConversionFailed(err error) *Error {
	return &Error{Kind: KindConversion, Err: err}
}

// Classify normalizes an arbitrary error into a domain Error. Context
// expiry becomes KindTimeout; everything else defaults to KindConversion.
func Classify(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Message: "conversion timed out", Err: err}
	}
	return ConversionFailed(err)
}

// KindOf reports the kind of err, defaulting to KindConversion for errors
// produced outside this package.
func KindOf(err error) ErrorKind {
	return Classify(err).Kind
}
