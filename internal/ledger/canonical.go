package ledger

import "encoding/json"

// RequestContext describes the request an entry originated from. Nil means
// the action came from outside a request (background job, migration).
type RequestContext struct {
	SourceIP      string `json:"source_ip,omitempty"`
	Method        string `json:"method,omitempty"`
	Path          string `json:"path,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Encode returns the canonical JSON text for the context, or "" for nil.
// Struct fields marshal in declaration order, so the encoding is
// deterministic.
func (rc *RequestContext) Encode() (string, error) {
	if rc == nil {
		return "", nil
	}
	data, err := json.Marshal(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeState serializes a field-name to serialized-value snapshot as
// canonical JSON. encoding/json sorts map keys, so the same snapshot always
// encodes to the same bytes, which hash recomputation depends on.
// Returns "" for a nil map.
func EncodeState(state map[string]string) (string, error) {
	if state == nil {
		return "", nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
