package graphql

import (
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Client is a client for a GraphQL API that authenticates callers with
// AWS Signature Version 4, such as AppSync with IAM authorization.
// It is safe for concurrent use.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	signer     *signer
	logger     log.Logger
	metrics    *metrics
	now        func() time.Time
}

// NewClient makes a new Client that signs every request with creds.
// Missing credentials are reported by Fetch, before anything is sent.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		creds:  creds,
		logger: log.NewNopLogger(),
		now:    time.Now,
	}
	for _, optionFunc := range opts {
		optionFunc(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	// work on a copy so the caller's client keeps its redirect policy
	hc := *c.httpClient
	hc.CheckRedirect = noRedirect
	c.httpClient = &hc
	c.signer = newSigner(creds, c.now)
	return c
}

// ClientOption is a function that modifies the client in some way.
type ClientOption func(*Client)

// WithHTTPClient specifies the underlying http.Client to use when
// making requests. Redirects are never followed regardless of its policy.
//
//	NewClient(creds, WithHTTPClient(specificHTTPClient))
func WithHTTPClient(httpclient *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = httpclient
	}
}

// WithLogger sets the logger for request and response traces.
func WithLogger(logger log.Logger) ClientOption {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// WithClock sets the clock used to timestamp signatures.
func WithClock(now func() time.Time) ClientOption {
	return func(client *Client) {
		if now != nil {
			client.now = now
		}
	}
}

// WithMetrics registers fetch counters and latency histograms with reg.
// Clients sharing reg share the collectors. It panics if reg rejects them
// for any other reason, such as a conflicting metric of the same name.
func WithMetrics(reg prometheus.Registerer) ClientOption {
	return func(client *Client) {
		client.metrics = newMetrics(reg)
	}
}
