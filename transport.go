package graphql

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// rawResponse is what came back over the wire, before any decoding.
type rawResponse struct {
	StatusCode int
	StatusText string
	Body       []byte
}

// send issues r exactly once. HTTP error statuses are returned as a
// rawResponse, only connection level failures are errors. If the body
// cannot be read the partial response is returned alongside the error so
// the status is not lost.
func (c *Client) send(r *http.Request) (*rawResponse, error) {
	res, err := c.httpClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer res.Body.Close()

	raw := &rawResponse{
		StatusCode: res.StatusCode,
		StatusText: statusText(res),
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, res.Body); err != nil {
		return raw, errors.Wrap(err, "reading body")
	}
	raw.Body = buf.Bytes()
	return raw, nil
}

// statusText strips the numeric code from res.Status, so "401 Unauthorized"
// becomes "Unauthorized".
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
