package httpclient

import (
	"testing"
	"time"

	"github.com/aleister1102/respdiff/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	client, err := NewBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithFollowRedirects(false).
		WithInsecureSkipVerify(true).
		WithMaxRedirects(5).
		WithHeader("X-Env", "staging").
		WithMaxBodySize(1024).
		WithHTTP2(false).
		Build()
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, 15*time.Second, opts.Timeout)
	assert.Equal(t, "test-agent", opts.UserAgent)
	assert.False(t, opts.FollowRedirects)
	assert.True(t, opts.InsecureSkipVerify)
	assert.Equal(t, 5, opts.MaxRedirects)
	assert.Equal(t, "staging", opts.Headers["X-Env"])
	assert.Equal(t, int64(1024), opts.MaxBodySize)
	assert.False(t, opts.Retry.Enabled())
	assert.Equal(t, 15*time.Second, client.StdClient().Timeout)
}

func TestBuilder_RejectsNegativeBodySize(t *testing.T) {
	_, err := NewBuilder(zerolog.Nop()).WithMaxBodySize(-1).Build()
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, time.Duration(config.DefaultFetchTimeoutSecs)*time.Second, opts.Timeout)
	assert.Equal(t, config.DefaultFetchUserAgent, opts.UserAgent)
	assert.Equal(t, config.DefaultFetchFollowRedirects, opts.FollowRedirects)
	assert.Equal(t, config.DefaultFetchMaxRedirects, opts.MaxRedirects)
	assert.Equal(t, int64(config.DefaultFetchMaxResponseSizeMB)*mib, opts.MaxBodySize)
	assert.False(t, opts.Retry.Enabled())
}

func TestOptionsFromFetch(t *testing.T) {
	fetch := config.NewDefaultFetchConfig()
	fetch.TimeoutSecs = 7
	fetch.Headers = map[string]string{"Authorization": "Bearer t"}
	fetch.MaxResponseSizeMB = 2
	fetch.Retry.MaxRetries = 3
	fetch.Retry.BaseDelayMs = 100

	opts := OptionsFromFetch(fetch)

	assert.Equal(t, 7*time.Second, opts.Timeout)
	assert.Equal(t, "Bearer t", opts.Headers["Authorization"])
	assert.Equal(t, int64(2*mib), opts.MaxBodySize)
	assert.Equal(t, 3, opts.Retry.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, opts.Retry.BaseDelay)
	assert.True(t, opts.Retry.Retryable(503))

	fetch.Headers["Authorization"] = "changed"
	assert.Equal(t, "Bearer t", opts.Headers["Authorization"], "headers are copied")
}

func TestOptionsFromFetch_ZeroValuesKeepDefaults(t *testing.T) {
	opts := OptionsFromFetch(config.FetchConfig{})

	assert.Equal(t, config.DefaultFetchUserAgent, opts.UserAgent)
	assert.Equal(t, time.Duration(config.DefaultFetchTimeoutSecs)*time.Second, opts.Timeout)
	assert.NotNil(t, opts.Headers)
	assert.False(t, opts.Retry.Enabled())
}
