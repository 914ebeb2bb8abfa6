package config

// FetchConfig controls how URL references are downloaded.
type FetchConfig struct {
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=0"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	Headers            map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" validate:"dive,keys,required,endkeys"`
	MaxResponseSizeMB  int               `json:"max_response_size_mb,omitempty" yaml:"max_response_size_mb,omitempty" validate:"min=0"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	Retry              RetryConfig       `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// RetryConfig sets the backoff for failed fetches. MaxRetries counts
// attempts after the first one; 0 disables retrying.
type RetryConfig struct {
	MaxRetries  int   `json:"max_retries" yaml:"max_retries" validate:"min=0,max=10"`
	BaseDelayMs int   `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"min=0"`
	MaxDelayMs  int   `json:"max_delay_ms,omitempty" yaml:"max_delay_ms,omitempty" validate:"min=0"`
	StatusCodes []int `json:"status_codes,omitempty" yaml:"status_codes,omitempty" validate:"dive,min=100,max=599"`
}

func NewDefaultFetchConfig() FetchConfig {
	return FetchConfig{
		TimeoutSecs:        DefaultFetchTimeoutSecs,
		UserAgent:          DefaultFetchUserAgent,
		Headers:            map[string]string{},
		MaxResponseSizeMB:  DefaultFetchMaxResponseSizeMB,
		FollowRedirects:    DefaultFetchFollowRedirects,
		MaxRedirects:       DefaultFetchMaxRedirects,
		EnableHTTP2:        DefaultFetchEnableHTTP2,
		InsecureSkipVerify: DefaultFetchInsecureSkipVerify,
		Retry: RetryConfig{
			MaxRetries:  DefaultFetchMaxRetries,
			BaseDelayMs: DefaultFetchRetryBaseDelayMs,
			MaxDelayMs:  DefaultFetchRetryMaxDelayMs,
			StatusCodes: []int{429, 502, 503, 504},
		},
	}
}
