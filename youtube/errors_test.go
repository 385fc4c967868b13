package youtube

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func apiError(code int, reason string) error {
	return &googleapi.Error{
		Code: code,
		Errors: []googleapi.ErrorItem{
			{Reason: reason},
		},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindOther},
		{"sentinel quota", ErrQuotaExceeded, KindQuotaExceeded},
		{"wrapped sentinel quota", fmt.Errorf("search: %w", ErrQuotaExceeded), KindQuotaExceeded},
		{"sentinel invalid key", ErrInvalidKey, KindInvalidKey},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"quota reason", apiError(403, "quotaExceeded"), KindQuotaExceeded},
		{"daily limit reason", apiError(403, "dailyLimitExceeded"), KindQuotaExceeded},
		{"rate limit reason", apiError(403, "rateLimitExceeded"), KindQuotaExceeded},
		{"bad key 400", apiError(400, "keyInvalid"), KindInvalidKey},
		{"bare 403", apiError(403, "forbidden"), KindInvalidKey},
		{"server error", apiError(503, "backendError"), KindTransient},
		{"plain 404", apiError(404, "notFound"), KindOther},
		{"flattened quota text", errors.New("googleapi: Error 403: quota exceeded for quota metric"), KindQuotaExceeded},
		{"flattened key text", errors.New("API key not valid. Please pass a valid API key."), KindInvalidKey},
		{"flattened timeout text", errors.New("dial tcp: i/o timeout"), KindTransient},
		{"unrelated", errors.New("something else"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyWrappedAPIError(t *testing.T) {
	err := fmt.Errorf("fetch details: %w", apiError(403, "quotaExceeded"))
	if got := Classify(err); got != KindQuotaExceeded {
		t.Errorf("Classify(wrapped) = %v, want %v", got, KindQuotaExceeded)
	}
}

func TestKindString(t *testing.T) {
	if KindQuotaExceeded.String() != "quota exceeded" {
		t.Errorf("KindQuotaExceeded.String() = %q", KindQuotaExceeded.String())
	}
	if Kind(99).String() != "other" {
		t.Errorf("unknown kind String() = %q", Kind(99).String())
	}
}
