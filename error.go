package graphql

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Failure stages of a fetch. A *FetchError always unwraps to exactly one
// of them, test with errors.Is.
var (
	ErrSigning       = errors.New("signing error")
	ErrTransport     = errors.New("transport error")
	ErrDecode        = errors.New("decode error")
	ErrServer        = errors.New("graphql server error")
	ErrSerialization = errors.New("serialization error")
)

// ErrorDetail is a single entry of the errors list of a GraphQL response.
type ErrorDetail struct {
	Message    string                 `json:"message"`
	Locations  []ErrorLocation        `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`

	// AppSync specific.
	ErrorType string      `json:"errorType,omitempty"`
	ErrorInfo interface{} `json:"errorInfo,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// ErrorLocation points into the query document.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e ErrorDetail) Error() string {
	return "graphql: " + e.Message
}

// FetchError is the only error returned by Fetch. Status and Message are
// set only if an HTTP response was received before the failure.
type FetchError struct {
	Status      string        `json:"status,omitempty"`
	Message     string        `json:"message,omitempty"`
	Description string        `json:"description,omitempty"`
	Errors      []ErrorDetail `json:"errors,omitempty"`

	err error
}

func (e *FetchError) Error() string {
	var buf bytes.Buffer
	buf.WriteString("graphql: ")
	if e.Status != "" {
		buf.WriteString(fmt.Sprintf("status %s %s", e.Status, e.Message))
	} else {
		buf.WriteString("fetch failed")
	}
	if e.Description != "" {
		buf.WriteString(": " + e.Description)
	}
	for idx, detail := range e.Errors {
		buf.WriteString(fmt.Sprintf("; error %d: %s", idx, detail.Message))
	}
	return buf.String()
}

// Unwrap returns the stage failure, which in turn wraps the cause.
func (e *FetchError) Unwrap() error {
	return e.err
}

// stageError tags a cause with the stage it happened in.
type stageError struct {
	stage error
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func (e *stageError) Is(target error) bool { return target == e.stage }

func atStage(stage, err error) error {
	return &stageError{stage: stage, err: err}
}

// stageName is the short label of the stage err failed in.
func stageName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSigning):
		return "signing"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrServer):
		return "server"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	}
	return "unknown"
}
