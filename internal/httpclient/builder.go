package httpclient

import (
	"time"

	"github.com/aleister1102/respdiff/internal/config"
	"github.com/rs/zerolog"
)

// Builder assembles a Client step by step.
type Builder struct {
	opts   Options
	logger zerolog.Logger
}

// NewBuilder starts from DefaultOptions.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{opts: DefaultOptions(), logger: logger}
}

// WithFetchConfig replaces every option with the fetch config section.
func (b *Builder) WithFetchConfig(cfg config.FetchConfig) *Builder {
	b.opts = OptionsFromFetch(cfg)
	return b
}

func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.opts.Timeout = timeout
	return b
}

func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.opts.UserAgent = userAgent
	return b
}

// WithHeader adds a header sent with every request.
func (b *Builder) WithHeader(key, value string) *Builder {
	if b.opts.Headers == nil {
		b.opts.Headers = map[string]string{}
	}
	b.opts.Headers[key] = value
	return b
}

func (b *Builder) WithFollowRedirects(follow bool) *Builder {
	b.opts.FollowRedirects = follow
	return b
}

func (b *Builder) WithMaxRedirects(n int) *Builder {
	b.opts.MaxRedirects = n
	return b
}

// WithMaxBodySize limits response bodies to size bytes; 0 removes the limit.
func (b *Builder) WithMaxBodySize(size int64) *Builder {
	b.opts.MaxBodySize = size
	return b
}

func (b *Builder) WithInsecureSkipVerify(skip bool) *Builder {
	b.opts.InsecureSkipVerify = skip
	return b
}

func (b *Builder) WithHTTP2(enabled bool) *Builder {
	b.opts.HTTP2 = enabled
	return b
}

func (b *Builder) WithRetry(policy RetryPolicy) *Builder {
	b.opts.Retry = policy
	return b
}

// Build creates the client.
func (b *Builder) Build() (*Client, error) {
	return New(b.opts, b.logger)
}
