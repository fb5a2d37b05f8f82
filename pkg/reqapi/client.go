package reqapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quka-ai/quka-client/pkg/auth"
)

const (
	API_PREFIX = "/api/v1"

	DEFAULT_TIMEOUT = 30 * time.Second

	maxErrorBody = 4 << 10
)

// Observer receives one call per finished round trip. api is the logical
// operation name, e.g. "teams.list".
type Observer interface {
	ObserveRequest(api, method string, status int, elapsed time.Duration)
}

type Option func(*options)

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
	observer  Observer
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithTimeout bounds every JSON request. Message streams are bounded by
// their context only.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// Client issues typed requests against the community REST API.
type Client struct {
	baseURL string
	tokens  auth.TokenProvider

	http   *http.Client
	stream *http.Client
}

func New(baseURL string, tokens auth.TokenProvider, opts ...Option) *Client {
	o := &options{
		transport: http.DefaultTransport,
		timeout:   DEFAULT_TIMEOUT,
	}
	for _, opt := range opts {
		opt(o)
	}
	if tokens == nil {
		tokens = auth.Static("")
	}

	rt := &loggingRoundTripper{inner: o.transport, observer: o.observer}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: o.timeout, Transport: rt},
		stream:  &http.Client{Transport: rt},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPError is returned for every non-2xx response. It is not translated.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("reqapi: %s %s failed: status=%d body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsStatus reports whether err carries an HTTPError with the given code.
func IsStatus(err error, code int) bool {
	var herr *HTTPError
	if !asHTTPError(err, &herr) {
		return false
	}
	return herr.StatusCode == code
}

// ValidationError means the response body did not match the declared shape.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reqapi: invalid response from %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var errEmptyBody = errors.New("empty response body")

func isSlicePointer(out any) bool {
	rv := reflect.ValueOf(out)
	return rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Slice
}

type apiKey struct{}

func withAPI(ctx context.Context, api string) context.Context {
	return context.WithValue(ctx, apiKey{}, api)
}

func apiFromContext(ctx context.Context) string {
	api, _ := ctx.Value(apiKey{}).(string)
	return api
}

// endpoint joins escaped path segments under API_PREFIX.
func endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(API_PREFIX)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func (c *Client) newRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("reqapi: relPath must not contain query string: %s", relPath)
	}
	u, err := url.Parse(c.baseURL + relPath)
	if err != nil {
		return nil, fmt.Errorf("reqapi: invalid url: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.tokens.Token(ctx))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends in (JSON encoded unless nil) and decodes a 2xx body into out
// (skipped when out is nil).
func (c *Client) do(ctx context.Context, api, method, relPath string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(withAPI(ctx, api), method, relPath, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, relPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(method, relPath, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if out == nil {
		return nil
	}
	return decode(relPath, raw, out)
}

func newHTTPError(method, relPath string, resp *http.Response) *HTTPError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		Method:     method,
		Path:       relPath,
		StatusCode: resp.StatusCode,
		Body:       string(snippet),
	}
}

func decode(relPath string, raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		// an empty list is the only thing a missing body can stand for
		if isSlicePointer(out) {
			return nil
		}
		return &ValidationError{Path: relPath, Err: errEmptyBody}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ValidationError{Path: relPath, Err: err}
	}
	if err := validateValue(out); err != nil {
		return &ValidationError{Path: relPath, Err: err}
	}
	return nil
}

func validateValue(out any) error {
	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i)
			for item.Kind() == reflect.Pointer && !item.IsNil() {
				item = item.Elem()
			}
			if item.Kind() != reflect.Struct {
				continue
			}
			if err := validate.Struct(item.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
