package graphql

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestRequestBody(t *testing.T) {
	is := is.New(t)

	req := NewRequest("https://example.com/graphql", "query {}")
	b, err := req.body()
	is.NoErr(err)
	is.Equal(string(b), `{"query":"query {}","variables":{}}`) // unset variables are an empty object

	req.Var("username", "matryer")
	is.Equal(req.Vars()["username"], "matryer")
	b, err = req.body()
	is.NoErr(err)
	is.Equal(string(b), `{"query":"query {}","variables":{"username":"matryer"}}`)
}

func TestRequestBodyUnserializable(t *testing.T) {
	is := is.New(t)

	req := NewRequest("https://example.com/graphql", "query {}")
	req.Var("fn", func() {})
	_, err := req.body()
	is.True(err != nil)
}

func TestCopyHeaders(t *testing.T) {
	is := is.New(t)

	req := NewRequest("https://example.com/graphql", "query {}")
	req.Header.Add("X-Multi", "a")
	req.Header.Add("X-Multi", "b")
	req.Header["charset"] = []string{"latin1"}

	r, err := http.NewRequest(http.MethodPost, req.Endpoint(), nil)
	is.NoErr(err)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Multi", "default")
	r.Header.Set("charset", "utf-8")
	req.CopyHeaders(r)

	is.Equal(r.Header.Values("X-Multi"), []string{"a", "b"}) // caller values replace existing ones
	is.Equal(r.Header.Values("Charset"), []string{"latin1"})
	is.Equal(r.Header.Get("Accept"), "application/json")
	is.Equal(req.Query(), "query {}")
}
