// Package api speaks the device's web console surface: plain HTTP requests
// for HTML pages, the login password transforms and the session lifecycle.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ckarrie/ha-netgear-plus/model"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Response is a fetched device page.
type Response struct {
	StatusCode int
	Body       []byte
	Cookies    []*http.Cookie
}

// OK reports whether the device answered with status 200.
func (r *Response) OK() bool { return r != nil && r.StatusCode == http.StatusOK }

// Fetcher issues HTTP requests against one device and returns raw response
// bodies. It enforces a per-request timeout and maps transport failures to
// model.ErrUnreachable. It never retries and never interprets content;
// retry policy belongs to the caller, interpretation to the parser.
type Fetcher struct {
	host   string
	client *http.Client
	log    *zap.Logger
}

func NewFetcher(host string, timeout time.Duration, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		host:   host,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Host returns the device address the fetcher is bound to.
func (f *Fetcher) Host() string { return f.host }

// URL builds the absolute URL for a device page path.
func (f *Fetcher) URL(path string) string {
	return "http://" + f.host + path
}

// Get fetches a device page, optionally with query parameters and a session
// cookie.
func (f *Fetcher) Get(ctx context.Context, path string, query url.Values, cookie *http.Cookie) (*Response, error) {
	target := f.URL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return f.do(ctx, http.MethodGet, target, nil, cookie)
}

// Post submits a form to a device page.
func (f *Fetcher) Post(ctx context.Context, path string, form url.Values, cookie *http.Cookie) (*Response, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	return f.do(ctx, http.MethodPost, f.URL(path), body, cookie)
}

func (f *Fetcher) do(ctx context.Context, method, target string, body *strings.Reader, cookie *http.Cookie) (*Response, error) {
	f.log.Debug("send request", zap.String("method", method), zap.String("url", target))

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return nil, err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, target, model.ErrUnreachable, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, target, model.ErrUnreachable, err)
	}

	f.log.Debug("received response",
		zap.String("url", target),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(data)))

	return &Response{
		StatusCode: res.StatusCode,
		Body:       data,
		Cookies:    res.Cookies(),
	}, nil
}
