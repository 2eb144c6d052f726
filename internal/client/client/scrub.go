package client

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	redacted = "[REDACTED]"

	// maxLoggedBody bounds server bodies written to logs.
	maxLoggedBody = 4 << 10
)

// decodeJSON decodes a single JSON value of any kind, keeping numbers as
// json.Number.
func decodeJSON(body []byte) (any, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return v, true
}

// decodeObject returns the body as a JSON object, or nil when it is empty or
// not an object. Numbers are kept as json.Number.
func decodeObject(body []byte) map[string]any {
	v, _ := decodeJSON(body)
	obj, _ := v.(map[string]any)
	return obj
}

// scrubObject removes password keys at any depth and redacts occurrences of
// secret inside string values. obj is modified in place.
func scrubObject(obj map[string]any, secret string) map[string]any {
	if obj == nil {
		return nil
	}
	scrubValue(obj, secret)
	return obj
}

func scrubValue(v any, secret string) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if strings.EqualFold(k, "password") {
				delete(t, k)
				continue
			}
			t[k] = scrubValue(child, secret)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = scrubValue(child, secret)
		}
		return t
	case string:
		return redactText(t, secret)
	}
	return v
}

func redactText(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, redacted)
}

// loggableBody renders a body for logs, at most 4 KiB. A JSON body is decoded
// first so escaped forms of secret are caught, then re-encoded with password
// keys removed. Anything else only gets the literal secret redacted.
func loggableBody(body []byte, secret string) string {
	var s string
	if v, ok := decodeJSON(body); ok {
		b, err := json.Marshal(scrubValue(v, secret))
		if err != nil {
			return redacted
		}
		s = string(b)
	} else {
		s = redactText(string(body), secret)
	}
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "...(truncated)"
	}
	return s
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
