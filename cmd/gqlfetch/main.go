// Command gqlfetch posts one GraphQL query to an endpoint that authorizes
// callers with AWS Signature Version 4 and prints the decoded response.
//
//	gqlfetch -config gqlfetch.yaml -query '{ resource: ping }'
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	graphql "github.com/joaopandolfi/graphql-sigv4"
	"github.com/joaopandolfi/graphql-sigv4/internal/config"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// headerFlags collects repeated -H "Key: value" flags.
type headerFlags []string

func (h *headerFlags) String() string { return strings.Join(*h, ", ") }

func (h *headerFlags) Set(v string) error {
	if !strings.Contains(v, ":") {
		return errors.Errorf("header %q is not in Key: value form", v)
	}
	*h = append(*h, v)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gqlfetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "gqlfetch.yaml", "path to the YAML config file")
		envFiles   = fs.String("env", "", "comma separated .env files loaded before the config is expanded")
		endpoint   = fs.String("url", "", "GraphQL endpoint, overrides the config file")
		query      = fs.String("query", "", "GraphQL query document")
		queryFile  = fs.String("query-file", "", "file holding the GraphQL query document")
		vars       = fs.String("vars", "", "query variables as a JSON object")
		verbose    = fs.Bool("v", false, "log requests and responses")
		headers    headerFlags
	)
	fs.Var(&headers, "H", "extra request header, Key: value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowWarn())
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var files []string
	if *envFiles != "" {
		files = strings.Split(*envFiles, ",")
	}
	cfg, err := config.Load(*configPath, files...)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load config", "err", err)
		return 1
	}

	req, err := buildRequest(cfg, *endpoint, *query, *queryFile, *vars, headers)
	if err != nil {
		level.Error(logger).Log("msg", "invalid request", "err", err)
		return 1
	}

	client := graphql.NewClient(cfg.Credentials(),
		graphql.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		graphql.WithLogger(logger),
	)
	ctx = graphql.NewContext(ctx, client)
	return fetch(ctx, req, stdout, stderr)
}

func fetch(ctx context.Context, req *graphql.Request, stdout, stderr io.Writer) int {
	client, ok := graphql.FromContext(ctx)
	if !ok {
		fmt.Fprintln(stderr, "gqlfetch: no client in context")
		return 1
	}
	res, err := graphql.Fetch[interface{}](ctx, client, req)
	if err != nil {
		var fe *graphql.FetchError
		if errors.As(err, &fe) {
			writeJSON(stderr, fe)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	writeJSON(stdout, res)
	return 0
}

func buildRequest(cfg *config.Config, endpoint, query, queryFile, vars string, headers headerFlags) (*graphql.Request, error) {
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}
	if endpoint == "" {
		return nil, errors.New("no endpoint: set -url or endpoint in the config")
	}
	if queryFile != "" {
		b, err := os.ReadFile(queryFile)
		if err != nil {
			return nil, errors.Wrap(err, "read query file")
		}
		query = string(b)
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("no query: set -query or -query-file")
	}

	req := graphql.NewRequest(endpoint, query)
	if vars != "" {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(vars), &m); err != nil {
			return nil, errors.Wrap(err, "parse -vars")
		}
		for k, v := range m {
			req.Var(k, v)
		}
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}
	for _, h := range headers {
		k, v, _ := strings.Cut(h, ":")
		req.Header.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return req, nil
}

func writeJSON(w io.Writer, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, string(b))
}
