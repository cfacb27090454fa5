package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FallbackMessage is surfaced when an error response carries no
// parsable body.
const FallbackMessage = "operation failed"

// APIError is a well-formed server rejection: the transport succeeded
// but the status signals failure (bad credentials, missing fields,
// not found).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError is a transport-level failure: DNS, connection refused,
// timeout. The server was never heard from.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsAPIError unwraps err into an APIError, if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// messageFromBody extracts the failure message from an error body,
// trying the candidate keys "error" then "message". An absent or
// unparsable body yields the fallback.
func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return FallbackMessage
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return FallbackMessage
	}

	for _, key := range []string{"error", "message"} {
		if v, ok := fields[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return FallbackMessage
}
