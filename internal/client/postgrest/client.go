// Package postgrest reads the public deal catalogue straight from a
// PostgREST endpoint over the same schema the API server uses.
package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/pkg/errs"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: apiclient.DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Query is a read against one table or view. Builder methods return the
// receiver so calls chain.
type Query struct {
	c      *Client
	table  string
	params url.Values
	single bool
}

func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table, params: url.Values{}}
}

func (q *Query) Select(cols string) *Query {
	q.params.Set("select", cols)
	return q
}

func (q *Query) Eq(col, val string) *Query {
	q.params.Add(col, "eq."+val)
	return q
}

// Search matches term case-insensitively against any of cols.
func (q *Query) Search(term string, cols ...string) *Query {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	// PostgREST reserves these inside or=(...) values.
	term = strings.NewReplacer(",", " ", "(", " ", ")", " ", "*", " ").Replace(term)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + ".ilike.*" + term + "*"
	}
	q.params.Set("or", "("+strings.Join(parts, ",")+")")
	return q
}

// Order appends a sort term such as "created_at.desc".
func (q *Query) Order(terms ...string) *Query {
	if existing := q.params.Get("order"); existing != "" {
		terms = append([]string{existing}, terms...)
	}
	q.params.Set("order", strings.Join(terms, ","))
	return q
}

func (q *Query) Limit(n int) *Query {
	if n > 0 {
		q.params.Set("limit", strconv.Itoa(n))
	}
	return q
}

// Single expects exactly one row; zero rows surface as apiclient.ErrNotFound.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) URL() string {
	u := q.c.baseURL + "/" + q.table
	if len(q.params) > 0 {
		u += "?" + q.params.Encode()
	}
	return u
}

func (q *Query) Execute(ctx context.Context, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.URL(), nil)
	if err != nil {
		return errs.Wrap(err, "build postgrest request")
	}
	req.Header.Set("Accept", "application/json")
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	if q.c.apiKey != "" {
		req.Header.Set("apikey", q.c.apiKey)
		req.Header.Set("Authorization", "Bearer "+q.c.apiKey)
	}

	start := time.Now()
	resp, err := q.c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &apiclient.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apiclient.TransportError{Err: err}
	}
	q.c.logger.DebugContext(ctx, "postgrest",
		"table", q.table,
		"status", resp.StatusCode,
		"latency", time.Since(start).String(),
	)

	if resp.StatusCode == http.StatusNotAcceptable && q.single {
		return &apiclient.Error{Status: http.StatusNotFound, Message: "Not found"}
	}
	if resp.StatusCode >= 400 {
		return apiclient.DecodeError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	return errs.Wrap(json.Unmarshal(body, out), "decode postgrest response")
}
