package graphql

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Responses at or above this status are failures even when the body
// decodes.
const statusCodeThreshold = 400

// Result is a successful fetch. Errors may be non-empty: GraphQL allows
// partial data next to errors.
type Result[T any] struct {
	// Response is data.resource of the envelope, nil when absent or null.
	Response *T            `json:"response,omitempty"`
	Errors   []ErrorDetail `json:"errors"`
}

// Fetch signs and posts req, then decodes data.resource of the response
// into a T.
//
// Either a Result or an error is returned, never both. The error is always
// a *FetchError: HTTP statuses of 400 and above are failures carrying the
// GraphQL errors of the body, and signing, transport, decoding and
// serialization failures carry the cause in Description. Nothing is
// retried.
func Fetch[T any](ctx context.Context, c *Client, req *Request) (*Result[T], error) {
	start := time.Now()
	logger := log.With(c.logger, "request_id", uuid.NewString())

	result, err := fetch[T](ctx, c, req, logger)
	c.metrics.observe(stageName(err), time.Since(start))
	if err != nil {
		level.Error(logger).Log("msg", "error sending request", "err", err)
		return nil, err
	}
	return result, nil
}

func fetch[T any](ctx context.Context, c *Client, req *Request, logger log.Logger) (*Result[T], error) {
	body, err := req.body()
	if err != nil {
		return nil, fetchError(nil, atStage(ErrSerialization, err))
	}
	if err := c.creds.Validate(); err != nil {
		return nil, fetchError(nil, atStage(ErrSigning, err))
	}
	level.Debug(logger).Log("msg", "sending request", "endpoint", req.endpoint, "body", string(body))

	// The signer aborts on a done request context, so ctx is attached
	// after signing and a cancelled call fails in send.
	r, err := http.NewRequest(http.MethodPost, req.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fetchError(nil, atStage(ErrTransport, errors.Wrap(err, "build request")))
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	r.Header.Set("charset", "utf-8")
	req.CopyHeaders(r)

	if err := c.signer.sign(r, body); err != nil {
		return nil, fetchError(nil, atStage(ErrSigning, err))
	}
	r = r.WithContext(ctx)

	raw, err := c.send(r)
	if err != nil {
		return nil, fetchError(raw, atStage(ErrTransport, err))
	}
	level.Debug(logger).Log("msg", "received response", "status", raw.StatusCode, "body", string(raw.Body))

	if raw.StatusCode >= statusCodeThreshold {
		level.Error(logger).Log("msg", "error in response", "status", raw.StatusText, "body", string(raw.Body))
		details, err := decodeErrorBody(raw)
		if err != nil {
			return nil, fetchError(raw, atStage(ErrDecode, err))
		}
		return nil, &FetchError{
			Status:  strconv.Itoa(raw.StatusCode),
			Message: raw.StatusText,
			Errors:  details,
			err:     atStage(ErrServer, errors.Errorf("server returned status %d", raw.StatusCode)),
		}
	}

	wrapper, err := decodeSuccessBody[T](raw)
	if err != nil {
		return nil, fetchError(raw, atStage(ErrDecode, err))
	}
	return &Result[T]{
		Response: wrapper.resource(),
		Errors:   wrapper.Errors,
	}, nil
}

// fetchError normalizes a stage failure. raw is nil when no response was
// received.
func fetchError(raw *rawResponse, err error) *FetchError {
	fe := &FetchError{
		Description: err.Error(),
		err:         err,
	}
	if raw != nil {
		fe.Status = strconv.Itoa(raw.StatusCode)
		fe.Message = raw.StatusText
	}
	return fe
}
