package transport

import (
	"encoding/json"
	"net/http"
	"strings"
)

// sensitiveFields are body field names filtered from request/response logs.
var sensitiveFields = []string{
	"password",
	"confirmpassword",
	"token",
	"jwttoken",
	"refreshtoken",
	"authorization",
	"secret",
}

var sensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
}

func filterSensitiveHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if isSensitiveHeader(name) {
			out[name] = "[FILTERED]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func isSensitiveHeader(name string) bool {
	for _, s := range sensitiveHeaders {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// filterSensitiveBody redacts credential-bearing fields from a JSON body
// before logging. Non-object bodies are logged as-is.
func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}

	for name := range fields {
		if isSensitiveField(name) {
			fields[name] = "[FILTERED]"
		}
	}

	filtered, err := json.Marshal(fields)
	if err != nil {
		return string(body)
	}
	return string(filtered)
}

func isSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveFields {
		if lower == s || strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
