package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the completion endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Message)
}

// Quota reports whether the key ran out of quota or hit a rate limit.
func (e *APIError) Quota() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(strings.ToLower(e.Message), "quota") ||
		strings.Contains(e.Message, "RESOURCE_EXHAUSTED") ||
		e.Status == "RESOURCE_EXHAUSTED"
}

var retryInPattern = regexp.MustCompile(`retry in (\d+)`)

// RetryAfter reads the "retry in N" hint from the message, falling back to DefaultBlock.
func (e *APIError) RetryAfter() time.Duration {
	m := retryInPattern.FindStringSubmatch(e.Message)
	if m == nil {
		return DefaultBlock
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil || secs <= 0 {
		return DefaultBlock
	}
	return time.Duration(secs) * time.Second
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
