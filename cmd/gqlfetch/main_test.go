package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, endpoint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gqlfetch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: `+endpoint+`
aws:
  access_key_id: AKIDEXAMPLE
  secret_key: secret
  region: us-east-1
headers:
  X-From-Config: yes
`), 0o600))
	return path
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-From-Config"))
		assert.Equal(t, "flag", r.Header.Get("X-From-Flag"))
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, `{"query":"{ping}","variables":{"id":"42"}}`, string(b))
		_, _ = io.WriteString(w, `{"data":{"resource":{"ping":"pong"}}}`)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", writeConfig(t, srv.URL),
		"-query", "{ping}",
		"-vars", `{"id":"42"}`,
		"-H", "X-From-Flag: flag",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var out struct {
		Response map[string]interface{} `json:"response"`
		Errors   []interface{}          `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "pong", out.Response["ping"])
}

func TestRunFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errors":[{"message":"unauthorized"}]}`)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", writeConfig(t, srv.URL), "-query", "{ping}"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `"status": "401"`)
	assert.Contains(t, stderr.String(), `"message": "unauthorized"`)
}

func TestRunQueryFileAndURLOverride(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"data":null}`)
	}))
	defer srv.Close()

	queryPath := filepath.Join(t.TempDir(), "q.graphql")
	require.NoError(t, os.WriteFile(queryPath, []byte("{ resource: ping }"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", writeConfig(t, "http://127.0.0.1:1/unused"),
		"-url", srv.URL,
		"-query-file", queryPath,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, 1, calls)
	assert.NotContains(t, stdout.String(), `"response"`)
}

func TestRunInvalidInput(t *testing.T) {
	cfg := writeConfig(t, "https://example.com/graphql")
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "bad header", args: []string{"-H", "nocolon"}, code: 2, want: "Key: value"},
		{name: "missing config", args: []string{"-config", "/nonexistent.yaml", "-query", "{ping}"}, code: 1, want: "failed to load config"},
		{name: "no query", args: []string{"-config", cfg}, code: 1, want: "no query"},
		{name: "bad vars", args: []string{"-config", cfg, "-query", "{ping}", "-vars", "[1]"}, code: 1, want: "parse -vars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.code, code)
			assert.True(t, strings.Contains(stderr.String(), tt.want), stderr.String())
		})
	}
}
