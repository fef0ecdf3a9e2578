package providers

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// Kind is the tagged classification of a provider error. Throttle durations
// are looked up by (provider, kind), never by error identity.
type Kind string

const (
	KindTooManyRequests    Kind = "too_many_requests"
	KindDownloadLimit      Kind = "download_limit"
	KindServiceUnavailable Kind = "service_unavailable"
	KindTimeout            Kind = "timeout"
	KindAuthError          Kind = "auth_error"
	KindConfigError        Kind = "config_error"
	KindParseError         Kind = "parse_error"
	KindStaleCache         Kind = "stale_cache"
	KindUnknown            Kind = "unknown"
)

// Typed errors providers return to signal throttle-worthy conditions.
var (
	ErrTooManyRequests    = errors.New("provider: too many requests")
	ErrDownloadLimit      = errors.New("provider: download limit exceeded")
	ErrServiceUnavailable = errors.New("provider: service unavailable")
	ErrAuth               = errors.New("provider: authentication failed")
	ErrConfig             = errors.New("provider: misconfigured")
	ErrParse              = errors.New("provider: unparseable response")
)

// Classify maps a raw provider error to its kind. Message sniffing is used
// only for the stale on-disk cache signal, which has no typed form.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case strings.HasPrefix(rootMessage(err), "unsupported pickle protocol"):
		return KindStaleCache
	case errors.Is(err, ErrTooManyRequests):
		return KindTooManyRequests
	case errors.Is(err, ErrDownloadLimit):
		return KindDownloadLimit
	case errors.Is(err, ErrServiceUnavailable):
		return KindServiceUnavailable
	case errors.Is(err, ErrAuth):
		return KindAuthError
	case errors.Is(err, ErrConfig):
		return KindConfigError
	case errors.Is(err, ErrParse):
		return KindParseError
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return KindTimeout
		}
		return KindUnknown
	}
}

// Countable reports whether occurrences of the kind are tolerated a few
// times before committing a throttle.
func (k Kind) Countable() bool {
	switch k {
	case KindTimeout, KindServiceUnavailable, KindParseError:
		return true
	}
	return false
}

// defaultPenalties maps each kind to its throttle duration when no
// per-provider override applies. Unmapped kinds fall back to
// defaultPenalty.
var defaultPenalties = map[Kind]time.Duration{
	KindTooManyRequests:    time.Hour,
	KindDownloadLimit:      24 * time.Hour,
	KindServiceUnavailable: 20 * time.Minute,
	KindTimeout:            10 * time.Minute,
	KindAuthError:          12 * time.Hour,
	KindConfigError:        12 * time.Hour,
	KindParseError:         10 * time.Minute,
}

const defaultPenalty = 10 * time.Minute

func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
