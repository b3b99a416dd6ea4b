package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxRenderedBody = 500

// RequestError is a non-2xx answer from the remote API, carrying the HTTP
// status and the raw response body. The concrete subtypes below classify the
// common statuses; match them with errors.As.
type RequestError struct {
	StatusCode int
	Body       string
}

func (r *RequestError) Error() string {
	if rendered, ok := renderEnvelope(r.Body); ok {
		return fmt.Sprintf("status %d: %s", r.StatusCode, rendered)
	}

	return fmt.Sprintf("status %d: %s", r.StatusCode, truncateBody(r.Body))
}

// truncateBody caps the raw body without splitting a multibyte rune; error
// bodies are Spanish text.
func truncateBody(body string) string {
	if len(body) <= maxRenderedBody {
		return body
	}
	cut := maxRenderedBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}

// status and body give the subtypes below a common surface through embedding.
func (r *RequestError) status() int  { return r.StatusCode }
func (r *RequestError) body() string { return r.Body }

// AuthenticationError is a 401: missing or invalid API key.
type AuthenticationError struct{ RequestError }

// NotFoundError is a 404: unknown endpoint or token.
type NotFoundError struct{ RequestError }

// RateLimitError is a 429.
type RateLimitError struct{ RequestError }

// ServerError is any 5xx.
type ServerError struct{ RequestError }

func requestErrorFromStatus(status int, body string) error {
	base := RequestError{StatusCode: status, Body: body}
	switch {
	case status == 401:
		return &AuthenticationError{base}
	case status == 404:
		return &NotFoundError{base}
	case status == 429:
		return &RateLimitError{base}
	case status >= 500:
		return &ServerError{base}
	default:
		return &base
	}
}

// errorEnvelope is the domain error shape the API nests into 4xx/5xx bodies.
type errorEnvelope struct {
	Code    string
	Message string
	Details []ErrorDetail
}

// ErrorDetail is one field-level problem inside an error envelope.
type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// extractEnvelope pulls {error:{code,message,details}} out of a parsed body or
// a raw JSON string. The shape check is strict: no error object, no envelope.
func extractEnvelope(body any) (*errorEnvelope, bool) {
	var parsed map[string]any

	switch b := body.(type) {
	case map[string]any:
		parsed = b
	case string:
		if err := json.Unmarshal([]byte(b), &parsed); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}

	inner, ok := parsed["error"].(map[string]any)
	if !ok {
		return nil, false
	}

	envelope := &errorEnvelope{}
	if code, ok := inner["code"].(string); ok {
		envelope.Code = code
	}
	if message, ok := inner["message"].(string); ok {
		envelope.Message = message
	}
	if list, ok := inner["details"].([]any); ok {
		for _, item := range list {
			detail, ok := item.(map[string]any)
			if !ok {
				continue
			}
			field, _ := detail["field"].(string)
			issue, _ := detail["issue"].(string)
			envelope.Details = append(envelope.Details, ErrorDetail{Field: field, Issue: issue})
		}
	}

	if envelope.Code == "" && envelope.Message == "" {
		return nil, false
	}
	return envelope, true
}

func renderEnvelope(body string) (string, bool) {
	envelope, ok := extractEnvelope(body)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", envelope.Code, envelope.Message)
	for _, detail := range envelope.Details {
		fmt.Fprintf(&sb, "\n  - %s: %s", detail.Field, detail.Issue)
	}
	return sb.String(), true
}
