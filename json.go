package graphql

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// responseWrapper mirrors the GraphQL envelope. The typed result lives
// under data.resource.
type responseWrapper[T any] struct {
	Data   *resourceData[T] `json:"data"`
	Errors []ErrorDetail    `json:"errors"`
}

type resourceData[T any] struct {
	Resource *T `json:"resource"`
}

// resource returns data.resource, or nil when either level is absent.
func (w *responseWrapper[T]) resource() *T {
	if w.Data == nil {
		return nil
	}
	return w.Data.Resource
}

// decodeSuccessBody parses a full envelope. Unknown fields are ignored.
func decodeSuccessBody[T any](raw *rawResponse) (*responseWrapper[T], error) {
	if err := checkObject(raw.Body); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	var w responseWrapper[T]
	if err := json.Unmarshal(raw.Body, &w); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	return &w, nil
}

// decodeErrorBody parses only the errors of an envelope. Error responses
// discard data, so a data shape that does not match the caller's type
// must not hide the errors.
func decodeErrorBody(raw *rawResponse) ([]ErrorDetail, error) {
	if err := checkObject(raw.Body); err != nil {
		return nil, errors.Wrap(err, "decoding error response")
	}
	var w struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(raw.Body, &w); err != nil {
		return nil, errors.Wrap(err, "decoding error response")
	}
	return w.Errors, nil
}

// checkObject rejects bodies that are not a JSON object, including a bare
// null which would otherwise decode into an empty envelope.
func checkObject(body []byte) error {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("response body is not a JSON object")
	}
	return nil
}
