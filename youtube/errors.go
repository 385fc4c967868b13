package youtube

import (
	"context"
	"errors"
	"net"
	"strings"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for remote API failures.
var (
	ErrQuotaExceeded   = errors.New("youtube: quota exceeded")
	ErrInvalidKey      = errors.New("youtube: invalid api key")
	ErrNoDetails       = errors.New("youtube: no details available")
	ErrChannelNotFound = errors.New("youtube: channel not found")
)

// Kind is the error taxonomy at the remote-client boundary. Callers
// branch on Classify instead of scanning error text.
type Kind int

const (
	// KindOther covers errors with no special handling.
	KindOther Kind = iota
	// KindTransient covers network faults and 5xx-equivalent responses.
	KindTransient
	// KindQuotaExceeded covers daily-quota and rate-limit rejections.
	KindQuotaExceeded
	// KindInvalidKey covers rejections proving the API key is unusable.
	KindInvalidKey
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindQuotaExceeded:
		return "quota exceeded"
	case KindInvalidKey:
		return "invalid key"
	default:
		return "other"
	}
}

// quotaReasons are googleapi error reasons that indicate quota or rate
// exhaustion.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// invalidKeyReasons are googleapi error reasons that prove the key
// itself is bad.
var invalidKeyReasons = map[string]bool{
	"keyInvalid":       true,
	"badRequest":       true,
	"ipRefererBlocked": true,
	"keyExpired":       true,
}

// Classify maps an error from the remote client to its Kind. It
// prefers the structured googleapi error payload; the message-text
// fallback only covers errors the transport has already flattened.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	if errors.Is(err, ErrQuotaExceeded) {
		return KindQuotaExceeded
	}
	if errors.Is(err, ErrInvalidKey) {
		return KindInvalidKey
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTransient
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, e := range apiErr.Errors {
			if quotaReasons[e.Reason] {
				return KindQuotaExceeded
			}
		}
		switch {
		case apiErr.Code == 400 && hasReason(apiErr, invalidKeyReasons):
			return KindInvalidKey
		case apiErr.Code == 403:
			// 403 without a quota reason: the key is refused outright.
			return KindInvalidKey
		case apiErr.Code >= 500:
			return KindTransient
		}
		return KindOther
	}

	// Fallback for errors flattened to text by the transport.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"):
		return KindQuotaExceeded
	case strings.Contains(msg, "key not valid"), strings.Contains(msg, "keyinvalid"):
		return KindInvalidKey
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"):
		return KindTransient
	}
	return KindOther
}

func hasReason(apiErr *googleapi.Error, reasons map[string]bool) bool {
	for _, e := range apiErr.Errors {
		if reasons[e.Reason] {
			return true
		}
	}
	return false
}
