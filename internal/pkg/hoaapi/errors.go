package hoaapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"syscall"
)

// ErrorKind classifies a normalized API failure. Callers branch on the kind
// when they need to (session expiry), and display Message otherwise; transport
// details never leak past this package.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindValidation
	KindAuth
	KindTimeout
	KindNetwork
)

// APIError is the single error shape every request failure is normalized
// into. Status is zero for transport-level failures.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAuth reports whether err is a 401-class session failure.
func IsAuth(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// IsValidation reports whether err is a 422 field-validation failure.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

// IsTransport reports whether err never reached the server (timeout or
// network failure), so the operation is safely retryable.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Kind == KindTimeout || apiErr.Kind == KindNetwork)
}

// errorBody is the server's error envelope: either a single message or a
// field->messages map on validation failures.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// normalizeResponse maps a non-2xx response to an APIError following the
// server conventions: 422 carries field errors flattened into one display
// string, 401 means the session is invalid, anything else uses the message
// when present.
func normalizeResponse(status int, body []byte) *APIError {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	switch status {
	case http.StatusUnprocessableEntity:
		return &APIError{Kind: KindValidation, Status: status, Message: flattenValidation(parsed)}
	case http.StatusUnauthorized:
		message := parsed.Message
		if message == "" {
			message = "Unauthorized"
		}
		return &APIError{Kind: KindAuth, Status: status, Message: message}
	default:
		message := parsed.Message
		if message == "" {
			message = "An error occurred"
		}
		return &APIError{Kind: KindServer, Status: status, Message: message}
	}
}

func flattenValidation(parsed errorBody) string {
	if parsed.Message != "" && len(parsed.Errors) == 0 {
		return parsed.Message
	}
	if len(parsed.Errors) == 0 {
		return "Validation failed"
	}

	// Sort fields so the combined message is stable.
	fields := make([]string, 0, len(parsed.Errors))
	for field := range parsed.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var lines []string
	for _, field := range fields {
		lines = append(lines, parsed.Errors[field]...)
	}
	return strings.Join(lines, "\n")
}

// classifyRequestError maps transport failures into APIError, separating
// timeouts from unreachable-host errors.
func classifyRequestError(ctx context.Context, err error) *APIError {
	if isTimeoutError(ctx, err) {
		return &APIError{Kind: KindTimeout, Message: "Request timed out"}
	}
	if isNetworkError(err) {
		return &APIError{Kind: KindNetwork, Message: "Network error, please check your connection"}
	}
	return &APIError{Kind: KindNetwork, Message: err.Error()}
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}
