package wan

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrAPIKeyMissing is returned before any network call is attempted when
// no upstream credential is configured.
var ErrAPIKeyMissing = errors.New("API Key not configured on server")

// UpstreamError is a non-success HTTP response from the upstream API.
// The raw body is carried so callers can pass it through untouched.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Detail returns the upstream body as structured JSON when it is valid
// JSON, or as a plain string otherwise.
func (e *UpstreamError) Detail() interface{} {
	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return string(e.Body)
}

// ContractError is a success response whose body does not match the
// expected schema. Retrying cannot fix malformed input, so it is
// terminal.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "upstream contract violation: " + e.Reason
}

// NetworkError is a transport-level failure (connect error or timeout).
// For submissions it means every retry attempt was exhausted.
type NetworkError struct {
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
