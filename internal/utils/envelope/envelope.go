// Package envelope unwraps the response shapes of the remote accounting service.
//
// The service does not use one envelope consistently. A listing may come back as
// a bare array, as {"data": [...]}, as a paginated {"data": {"docs": [...]}}, or,
// for by-id routes, as a single record either bare or under "data".
package envelope

import (
	"strings"

	"github.com/tidwall/gjson"
)

// maxDepth bounds how many envelope levels are peeled.
const maxDepth = 3

var envelopeKeys = []string{"data", "docs", "results"}

// Records flattens body into the records it carries. isRecord decides whether a
// bare object is itself a record; a nil isRecord accepts any object that is not an
// envelope. Non-object array elements are dropped. Invalid JSON yields nil.
func Records(body []byte, isRecord func(gjson.Result) bool) []gjson.Result {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil
	}
	return unwrap(gjson.ParseBytes(body), isRecord, 0)
}

func unwrap(v gjson.Result, isRecord func(gjson.Result) bool, depth int) []gjson.Result {
	switch {
	case v.IsArray():
		var out []gjson.Result
		for _, el := range v.Array() {
			if el.IsObject() {
				out = append(out, el)
			}
		}
		return out
	case v.IsObject():
		if isRecord != nil && isRecord(v) {
			return []gjson.Result{v}
		}
		if depth < maxDepth {
			for _, key := range envelopeKeys {
				inner := v.Get(key)
				if inner.IsArray() || inner.IsObject() {
					return unwrap(inner, isRecord, depth+1)
				}
			}
		}
		if isRecord == nil && depth > 0 {
			return []gjson.Result{v}
		}
		return nil
	default:
		return nil
	}
}

// IsNotFound reports whether body carries an explicit "no such resource" signal
// even though the transport status was not 404.
func IsNotFound(body []byte) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	v := gjson.ParseBytes(body)
	if !v.IsObject() {
		return false
	}
	for _, key := range []string{"status", "statusCode", "code"} {
		if s := v.Get(key); s.Type == gjson.Number && s.Int() == 404 {
			return true
		}
	}
	if s := v.Get("success"); s.Exists() && s.Type == gjson.False {
		return strings.Contains(strings.ToLower(ErrorMessage(body)), "not found")
	}
	if e := v.Get("error"); e.Exists() {
		return strings.Contains(strings.ToLower(ErrorMessage(body)), "not found")
	}
	return false
}

// IsDuplicateKey reports whether body carries the store's duplicate key signal.
func IsDuplicateKey(body []byte) bool {
	lower := strings.ToLower(string(body))
	if strings.Contains(lower, "e11000") || strings.Contains(lower, "duplicate key") {
		return true
	}
	if !gjson.ValidBytes(body) {
		return false
	}
	v := gjson.ParseBytes(body)
	for _, path := range []string{"code", "error.code"} {
		if c := v.Get(path); c.Type == gjson.Number && c.Int() == 11000 {
			return true
		}
	}
	return false
}

// ErrorMessage extracts a human readable message from an error body, or "".
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	v := gjson.ParseBytes(body)
	for _, path := range []string{"message", "error.message", "error", "msg"} {
		if m := v.Get(path); m.Type == gjson.String && m.Str != "" {
			return m.Str
		}
	}
	return ""
}
