package graphql

import "context"

// contextKey provides unique keys for context values.
type contextKey string

// clientContextKey is the context value key for the Client.
var clientContextKey = contextKey("graphql client context")

// FromContext gets the client from the specified Context.
func FromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(clientContextKey).(*Client)
	return c, ok
}

// NewContext makes a new context.Context that carries c.
func NewContext(parent context.Context, c *Client) context.Context {
	return context.WithValue(parent, clientContextKey, c)
}
