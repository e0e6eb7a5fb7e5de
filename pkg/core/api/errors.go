// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// unknownField replaces an error type or code the backend did not send.
const unknownField = "unknown"

var (
	// ErrNoOutputMessages reports a response with an empty output list.
	ErrNoOutputMessages = errors.New("No output messages returned from OpenAI")

	// ErrEmptyResponse reports a response whose output messages carried no
	// content items.
	ErrEmptyResponse = errors.New("Empty response content")
)

// APIError is a structured rejection from the backend:
//
//	{"error": {"message": "...", "type": "...", "code": "...", "param": "..."}}
type APIError struct {
	StatusCode int
	Message    string
	Type       string // "unknown" when absent
	Code       string // "unknown" when absent
	Param      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %s (Type: %s, Code: %s)", e.Message, e.Type, e.Code)
}

// HTTPError is a non-2xx reply whose body is not a structured error.
// Body holds the response text verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Error %s: %s", statusString(e.StatusCode), e.Body)
}

// JSONParseError is a 2xx reply that does not decode as a Response.
type JSONParseError struct {
	Err error
}

func (e *JSONParseError) Error() string {
	return "JSON Parse Error: " + e.Err.Error()
}

func (e *JSONParseError) Unwrap() error { return e.Err }

// NetworkError wraps a transport failure (DNS, refused connection, timeout,
// truncated body).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "Network Error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

type errorEnvelope struct {
	Error *struct {
		Message *string `json:"message"`
		Type    *string `json:"type"`
		Code    *string `json:"code"`
		Param   *string `json:"param"`
	} `json:"error"`
}

// ClassifyError turns a non-2xx reply into an *APIError when the body is a
// structured error envelope with a message, and into an *HTTPError carrying
// the raw body otherwise. It never fails on its own.
func ClassifyError(statusCode int, body string) error {
	var env errorEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil || env.Error == nil || env.Error.Message == nil {
		return &HTTPError{StatusCode: statusCode, Body: body}
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    *env.Error.Message,
		Type:       valueOr(env.Error.Type, unknownField),
		Code:       valueOr(env.Error.Code, unknownField),
	}
	if env.Error.Param != nil {
		apiErr.Param = *env.Error.Param
	}
	return apiErr
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func statusString(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}
