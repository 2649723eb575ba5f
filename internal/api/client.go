package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	authPrefix  = "/auth"
	refreshPath = "/auth/refresh"
)

// Client is the single point of outbound communication with the backend.
// Session credentials are cookies held in the jar, so every request carries
// them automatically. A 401 on a non-auth request triggers one transparent
// refresh; concurrent 401s share that refresh instead of issuing their own.
type Client struct {
	base      *url.URL
	http      *http.Client
	log       zerolog.Logger
	refreshSF singleflight.Group
	onRefresh func(AuthResponse)
}

// NewClient builds a client for the backend at baseURL. The base URL should
// include the /api prefix, e.g. https://questify.example/api.
func NewClient(baseURL string, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}
	return &Client{
		base: base,
		http: &http.Client{Jar: jar},
		log:  logger,
	}, nil
}

// SetRefreshHook registers a callback invoked after every successful
// transparent refresh, so the session store can pick up the new token.
func (c *Client) SetRefreshHook(fn func(AuthResponse)) {
	c.onRefresh = fn
}

// request is one outbound call with its body buffered so it can be replayed
// after a refresh.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	retried     bool
}

func (c *Client) urlFor(r *request) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	return u.String()
}

// do executes the request, running the 401-refresh protocol when it applies,
// and decodes a 2xx JSON body into out (out may be nil).
func (c *Client) do(ctx context.Context, r *request, out any) error {
	status, data, err := c.roundTrip(ctx, r)
	if err != nil {
		// Transport failure: no response, refresh logic does not apply.
		return err
	}

	if status == http.StatusUnauthorized && c.refreshable(r) {
		r.retried = true
		if rerr := c.runRefresh(ctx); rerr != nil {
			// Refresh failed: propagate the original 401.
			return &Error{Status: status, Message: errorMessage(data)}
		}
		status, data, err = c.roundTrip(ctx, r)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return &Error{Status: status, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// refreshable excludes requests that may never trigger a refresh: anything
// in the auth namespace, the
// refresh endpoint itself, and requests that already got their one retry.
func (c *Client) refreshable(r *request) bool {
	if r.retried {
		return false
	}
	return !strings.HasPrefix(r.path, authPrefix)
}

// runRefresh issues at most one refresh call at a time. Callers that hit a
// 401 while a refresh is in flight wait on the same call and observe its
// outcome; the in-flight slot is released when the call settles, success or
// not.
func (c *Client) runRefresh(ctx context.Context) error {
	_, err, shared := c.refreshSF.Do("refresh", func() (any, error) {
		req := &request{method: http.MethodPost, path: refreshPath}
		status, data, err := c.roundTrip(ctx, req)
		if err != nil {
			return nil, err
		}
		if status < 200 || status > 299 {
			return nil, &Error{Status: status, Message: errorMessage(data)}
		}
		var auth AuthResponse
		if len(data) > 0 {
			_ = json.Unmarshal(data, &auth)
		}
		if c.onRefresh != nil {
			c.onRefresh(auth)
		}
		return nil, nil
	})
	if err != nil {
		c.log.Warn().Err(err).Bool("shared", shared).Msg("session refresh failed")
		return err
	}
	c.log.Debug().Bool("shared", shared).Msg("session refreshed")
	return nil
}

func (c *Client) roundTrip(ctx context.Context, r *request) (int, []byte, error) {
	var body io.Reader
	if len(r.body) > 0 {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.urlFor(r), body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: build request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Str("request_id", reqID).Msg("request failed")
		return 0, nil, fmt.Errorf("api: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: read response: %w", err)
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Msg("request")
	return resp.StatusCode, data, nil
}

func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, &request{method: http.MethodPatch, path: path, query: query}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: path}, nil)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	r := &request{method: method, path: path, query: query}
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		r.body = data
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}

// postMultipart uploads a single file under the given form field. The
// multipart body is buffered up front so the refresh flow can replay it.
func (c *Client) postMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("api: multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("api: read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: multipart: %w", err)
	}
	r := &request{
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}
	return c.do(ctx, r, out)
}
