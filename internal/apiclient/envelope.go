package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusSuccess is the envelope status of a successful backend operation.
const StatusSuccess = "success"

// Envelope models the top-level structure of every backend response.
// Data is kept raw so callers receive the backend's payload unchanged.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// OK reports whether the backend accepted the operation. A 2xx response can
// still carry a non-success status; that is a business failure.
func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// HasData reports whether the envelope carries a non-null payload.
func (e *Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// DecodeData unmarshals the payload into v. A missing or null payload leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if !e.HasData() {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return nil
}
