package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPrepare is reported when the engine rejects the statement (bad SQL, missing table...).
	ErrPrepare = errors.New("statement preparation failed")
	// ErrRowRead is reported when executing the statement or reading a row fails.
	ErrRowRead = errors.New("row read failed")
	// ErrValueDecode is reported when a cell does not fit any of the five value kinds.
	ErrValueDecode = errors.New("value decode failed")
)

// FetchError carries the failing query together with the failure kind.
// Kind is one of ErrPrepare, ErrRowRead or ErrValueDecode.
type FetchError struct {
	Kind  error
	Query string
	Err   error
}

// NewFetchError wraps err as a fetch failure of the given kind.
func NewFetchError(kind error, query string, err error) error {
	return &FetchError{Kind: kind, Query: query, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", e.Kind, e.Query)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Query, e.Err)
}

// Unwrap exposes both the kind sentinel and the engine error to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// DecodeError describes a cell that could not be classified.
type DecodeError struct {
	Value  any
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot decode value of type %T", e.Value)
	}
	return fmt.Sprintf("cannot decode value of type %T: %s", e.Value, e.Reason)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrValueDecode
}
