package weather

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrServiceShuttingDown = errors.New("weather service is shutting down")

	ErrUpstreamUnavailable = errors.New("weather provider unavailable")
	ErrUpstreamTimeout     = errors.New("weather provider timed out")
	ErrUpstreamAuth        = errors.New("weather provider rejected credentials")
	ErrUpstreamRateLimited = errors.New("weather provider rate limit reached")
	ErrUpstreamRejected    = errors.New("weather provider rejected request")
	ErrMalformedResponse   = errors.New("weather provider returned malformed response")
)

// ValidationError lists every request field that failed validation and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid coordinates: " + strings.Join(parts, "; ")
}

// ConfigurationError means the process is misconfigured. It is never retried.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("weather service misconfigured: %s %s", e.Setting, e.Reason)
}

type UpstreamKind string

const (
	UpstreamUnavailable UpstreamKind = "upstream_unavailable"
	UpstreamTimeout     UpstreamKind = "upstream_timeout"
	UpstreamAuthError   UpstreamKind = "upstream_auth_error"
	UpstreamRateLimited UpstreamKind = "upstream_rate_limited"
	UpstreamRejected    UpstreamKind = "upstream_rejected"
	MalformedResponse   UpstreamKind = "malformed_response"
)

var upstreamSentinels = map[UpstreamKind]error{
	UpstreamUnavailable: ErrUpstreamUnavailable,
	UpstreamTimeout:     ErrUpstreamTimeout,
	UpstreamAuthError:   ErrUpstreamAuth,
	UpstreamRateLimited: ErrUpstreamRateLimited,
	UpstreamRejected:    ErrUpstreamRejected,
	MalformedResponse:   ErrMalformedResponse,
}

// UpstreamError is the failure of a provider fetch. errors.Is matches it against the
// Err* sentinel for its Kind and, through Unwrap, against its cause.
type UpstreamError struct {
	Kind       UpstreamKind
	StatusCode int
	Attempts   int
	RetryAfter time.Duration
	Err        error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	if sentinel, ok := upstreamSentinels[e.Kind]; ok {
		b.WriteString(sentinel.Error())
	} else {
		b.WriteString("weather provider request failed")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Attempts > 1 {
		fmt.Fprintf(&b, " after %d attempts", e.Attempts)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	sentinel, ok := upstreamSentinels[e.Kind]
	return ok && sentinel == target
}

// Transient reports whether another attempt may succeed.
func (e *UpstreamError) Transient() bool {
	switch e.Kind {
	case UpstreamUnavailable, UpstreamTimeout, MalformedResponse:
		return true
	default:
		return false
	}
}

// RateLimitError is returned when the local limiter rejects a request.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s, retry in %s", ErrRateLimitExceeded, e.RetryAfter.Round(time.Second))
	}
	return ErrRateLimitExceeded.Error()
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}
