package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"local-deals/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

const DefaultTimeout = 15 * time.Second

// TokenSource yields the bearer token for the next request. It is consulted
// at the start of every request so sign-in and sign-out take effect at once.
type TokenSource interface {
	Token() string
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
	logger   *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithToken pins a fixed bearer token.
func WithToken(token string) Option {
	return WithTokenSource(staticToken(token))
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New expects baseURL to include the API prefix, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		tokens:   staticToken(""),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) Validate(ctx context.Context, v any) error {
	if err := c.validate.StructCtx(ctx, v); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, r request) error {
	if r.body != nil {
		if err := c.Validate(ctx, r.body); err != nil {
			return err
		}
	}

	// GETs are idempotent and get one retry on transport failure.
	attempts := 1
	if r.method == http.MethodGet {
		attempts = 2
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = c.once(ctx, r)
		if err == nil || !errors.Is(err, ErrTransport) || ctx.Err() != nil {
			return err
		}
		if i+1 < attempts {
			c.logger.WarnContext(ctx, "retrying request after transport error",
				"method", r.method, "path", r.path, "error", err.Error())
		}
	}
	return err
}

func (c *Client) once(ctx context.Context, r request) error {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return errs.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return errs.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, r.out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	c.logger.DebugContext(req.Context(), "api request",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return DecodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	return errs.Wrap(json.Unmarshal(data, out), "decode response")
}
