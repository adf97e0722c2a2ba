package inventorysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int

	// Message is the "error" field of the body, when present.
	Message string

	// Fields holds inventory validation errors.
	Fields []FieldError

	// FieldMap holds account registration errors, keyed by field.
	FieldMap map[string]string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("inventorysdk: HTTP %d: %s", e.StatusCode, e.Message)
	case len(e.Fields) > 0:
		msgs := make([]string, 0, len(e.Fields))
		for _, fe := range e.Fields {
			msgs = append(msgs, fe.Field+": "+fe.Message)
		}
		return fmt.Sprintf("inventorysdk: HTTP %d: %s", e.StatusCode, strings.Join(msgs, "; "))
	case len(e.FieldMap) > 0:
		keys := make([]string, 0, len(e.FieldMap))
		for k := range e.FieldMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, k+": "+e.FieldMap[k])
		}
		return fmt.Sprintf("inventorysdk: HTTP %d: %s", e.StatusCode, strings.Join(msgs, "; "))
	default:
		return fmt.Sprintf("inventorysdk: HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// HasField reports whether the error names field.
func (e *APIError) HasField(field string) bool {
	if _, ok := e.FieldMap[field]; ok {
		return true
	}
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// parseErrorResponse recognises the three error bodies the service
// writes: a field error array, {"error": msg}, and a field to message map.
func parseErrorResponse(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var fields []FieldError
	if err := json.Unmarshal(body, &fields); err == nil {
		apiErr.Fields = fields
		return apiErr
	}

	var m map[string]string
	if err := json.Unmarshal(body, &m); err == nil {
		if msg, ok := m["error"]; ok && len(m) == 1 {
			apiErr.Message = msg
		} else {
			apiErr.FieldMap = m
		}
		return apiErr
	}

	// Health responses carry nested checks; keep the status only.
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err == nil && health.Status != "" {
		apiErr.Message = health.Status
	}
	return apiErr
}
