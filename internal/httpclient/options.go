package httpclient

import (
	"maps"
	"time"

	"github.com/aleister1102/respdiff/internal/config"
)

const (
	mib = 1024 * 1024

	idleConnTimeout     = 30 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	dialTimeout         = 10 * time.Second
	keepAlive           = 30 * time.Second
	maxIdleConnsPerHost = 2
)

// Options controls how documents are fetched.
type Options struct {
	Timeout            time.Duration
	UserAgent          string
	Headers            map[string]string
	MaxBodySize        int64 // bytes, 0 disables the limit
	FollowRedirects    bool
	MaxRedirects       int
	InsecureSkipVerify bool
	HTTP2              bool
	Retry              RetryPolicy
}

// DefaultOptions mirrors the defaults of the fetch config section, with
// retries turned off.
func DefaultOptions() Options {
	opts := OptionsFromFetch(config.NewDefaultFetchConfig())
	opts.Retry = RetryPolicy{}
	return opts
}

// OptionsFromFetch converts the fetch section of the application config.
// Non-positive limits fall back to the built-in defaults.
func OptionsFromFetch(cfg config.FetchConfig) Options {
	opts := Options{
		Timeout:            time.Duration(config.DefaultFetchTimeoutSecs) * time.Second,
		UserAgent:          cfg.UserAgent,
		Headers:            maps.Clone(cfg.Headers),
		MaxBodySize:        int64(config.DefaultFetchMaxResponseSizeMB) * mib,
		FollowRedirects:    cfg.FollowRedirects,
		MaxRedirects:       config.DefaultFetchMaxRedirects,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		HTTP2:              cfg.EnableHTTP2,
		Retry: RetryPolicy{
			MaxRetries:  cfg.Retry.MaxRetries,
			BaseDelay:   time.Duration(cfg.Retry.BaseDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.Retry.MaxDelayMs) * time.Millisecond,
			Jitter:      true,
			StatusCodes: append([]int(nil), cfg.Retry.StatusCodes...),
		},
	}
	if opts.Headers == nil {
		opts.Headers = map[string]string{}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultFetchUserAgent
	}
	if cfg.TimeoutSecs > 0 {
		opts.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	if cfg.MaxResponseSizeMB > 0 {
		opts.MaxBodySize = int64(cfg.MaxResponseSizeMB) * mib
	}
	if cfg.MaxRedirects > 0 {
		opts.MaxRedirects = cfg.MaxRedirects
	}
	return opts
}
