package graphql

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Request is a GraphQL request.
type Request struct {
	endpoint string
	q        string
	vars     map[string]interface{}

	// Header represent any request headers that will be set
	// when the request is made. They are covered by the signature.
	Header http.Header
}

// NewRequest makes a new Request for the query q, to be posted to endpoint.
func NewRequest(endpoint, q string) *Request {
	req := &Request{
		endpoint: endpoint,
		q:        q,
		Header:   make(map[string][]string),
	}

	return req
}

// Var sets a variable.
func (req *Request) Var(key string, value interface{}) {
	if req.vars == nil {
		req.vars = make(map[string]interface{})
	}

	req.vars[key] = value
}

// Vars gets the variables for this Request.
func (req *Request) Vars() map[string]interface{} {
	return req.vars
}

// Query gets the query string of this request.
func (req *Request) Query() string {
	return req.q
}

// Endpoint gets the URL this request is posted to.
func (req *Request) Endpoint() string {
	return req.endpoint
}

// CopyHeaders copies Request headers to http.Request. A header already
// set on r is replaced, not appended to.
func (req *Request) CopyHeaders(r *http.Request) {
	for key, values := range req.Header {
		r.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
}

type payload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// body serializes the request into the JSON body sent on the wire.
// Unset variables are sent as an empty object, never null.
func (req *Request) body() ([]byte, error) {
	vars := req.vars
	if vars == nil {
		vars = map[string]interface{}{}
	}
	b, err := json.Marshal(payload{Query: req.q, Variables: vars})
	if err != nil {
		return nil, errors.Wrap(err, "encode body")
	}
	return b, nil
}
