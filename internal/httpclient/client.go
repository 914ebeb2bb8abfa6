// Package httpclient fetches remote JSON documents with retries, redirect
// limits and a response size cap.
package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

const (
	acceptHeader  = "application/json, application/yaml;q=0.9, */*;q=0.5"
	errorBodySize = 1024
)

// Request is a GET of URL with extra headers on top of the client defaults.
type Request struct {
	URL    string
	Header http.Header
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Document is the result of Fetch.
type Document struct {
	Body         []byte
	ContentType  string
	ETag         string
	LastModified string
	StatusCode   int
}

// Client fetches documents over HTTP.
type Client struct {
	http   *http.Client
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a client from opts.
func New(opts Options, logger zerolog.Logger) (*Client, error) {
	if opts.MaxBodySize < 0 {
		return nil, common.NewValidationError("max_body_size", opts.MaxBodySize, "cannot be negative")
	}
	logger = logger.With().Str("component", "HTTPClient").Logger()

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		DialContext:         (&net.Dialer{Timeout: dialTimeout, KeepAlive: keepAlive}).DialContext,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify},
	}
	if opts.HTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("HTTP/2 unavailable, using HTTP/1.1")
		}
	}

	c := &Client{
		http: &http.Client{
			Transport:     transport,
			Timeout:       opts.Timeout,
			CheckRedirect: redirectPolicy(opts),
		},
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}

	logger.Debug().
		Dur("timeout", opts.Timeout).
		Int("max_redirects", opts.MaxRedirects).
		Bool("follow_redirects", opts.FollowRedirects).
		Int("max_retries", opts.Retry.MaxRetries).
		Msg("HTTP client ready")
	return c, nil
}

func redirectPolicy(opts Options) func(*http.Request, []*http.Request) error {
	switch {
	case !opts.FollowRedirects:
		return func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	case opts.MaxRedirects > 0:
		limit := opts.MaxRedirects
		return func(_ *http.Request, via []*http.Request) error {
			if len(via) >= limit {
				return fmt.Errorf("stopped after %d redirects", limit)
			}
			return nil
		}
	default:
		return nil
	}
}

// StdClient exposes the underlying *http.Client, e.g. for test interception.
func (c *Client) StdClient() *http.Client {
	return c.http
}

// Options returns the settings the client was built with.
func (c *Client) Options() Options {
	return c.opts
}

// Do sends req, retrying transport failures and retryable statuses as the
// retry policy allows. When retries run out on a retryable status the last
// response is returned together with an *common.HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	policy := c.opts.Retry
	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, req)
		last := attempt >= policy.MaxRetries

		switch {
		case err != nil:
			if ctx.Err() != nil || errors.Is(err, common.ErrTooLarge) || last {
				return nil, err
			}
		case !policy.Retryable(resp.StatusCode):
			return resp, nil
		case last:
			if !policy.Enabled() {
				return resp, nil
			}
			httpErr := common.NewHTTPErrorWithURL(resp.StatusCode, string(truncate(resp.Body)), req.URL)
			return resp, common.WrapErrorf(httpErr, "giving up after %d attempts", attempt+1)
		}

		wait := policy.delay(attempt, resp, c.now())
		event := c.logger.Warn().Str("url", req.URL).Int("attempt", attempt+1).Dur("delay", wait)
		if err != nil {
			event = event.Err(err)
		} else {
			event = event.Int("status_code", resp.StatusCode)
		}
		event.Msg("Retrying request")

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}

	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	for key, value := range c.opts.Headers {
		httpReq.Header.Set(key, value)
	}
	for key, values := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(key)] = values
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, common.NewNetworkError(req.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	body, err := common.ReadLimited(ctx, resp.Body, c.opts.MaxBodySize)
	if errors.Is(err, common.ErrTooLarge) {
		c.logger.Warn().Str("url", req.URL).Int64("max_body_size", c.opts.MaxBodySize).Msg("Response body exceeds size limit")
		return nil, common.WrapErrorf(err, "response from '%s'", req.URL)
	}
	if err != nil {
		return nil, common.NewNetworkError(req.URL, "failed to read response body", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// Fetch GETs url and returns its body. Any status other than 200 is an
// error; the returned document then carries at most the first kilobyte of
// the body.
func (c *Client) Fetch(ctx context.Context, url string) (*Document, error) {
	resp, err := c.Do(ctx, &Request{URL: url})
	if err != nil && resp == nil {
		c.logger.Error().Err(err).Str("url", url).Msg("Fetch failed")
		return nil, err
	}

	doc := &Document{
		Body:         resp.Body,
		ContentType:  resp.Header.Get("Content-Type"),
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		StatusCode:   resp.StatusCode,
	}
	if err == nil && resp.StatusCode == http.StatusOK {
		c.logger.Debug().Str("url", url).Int("size", len(doc.Body)).Str("content_type", doc.ContentType).Msg("Fetched document")
		return doc, nil
	}

	doc.Body = truncate(resp.Body)
	c.logger.Warn().Str("url", url).Int("status_code", resp.StatusCode).Msg("Unexpected HTTP status")
	if err == nil {
		err = common.NewHTTPErrorWithURL(resp.StatusCode, string(doc.Body), url)
	}
	return doc, err
}

func truncate(body []byte) []byte {
	if len(body) > errorBodySize {
		return body[:errorBodySize]
	}
	return body
}
