// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the body of a successful /v1/responses call.
//
// Required fields are plain values. Optional fields are pointers or
// interfaces with omitempty, so a field that was absent or null in the
// source document is also absent when the response is re-encoded.
type Response struct {
	ID        string `json:"id"`
	Object    string `json:"object"` // "response"
	CreatedAt int64  `json:"created_at"`
	Status    string `json:"status"` // "completed", "in_progress", "failed", "incomplete"

	Error             any     `json:"error,omitempty"`
	IncompleteDetails any     `json:"incomplete_details,omitempty"`
	Instructions      *string `json:"instructions,omitempty"`
	MaxOutputTokens   *uint32 `json:"max_output_tokens,omitempty"`

	Model  string          `json:"model"`
	Output []OutputMessage `json:"output"`

	ParallelToolCalls  bool           `json:"parallel_tool_calls"`
	PreviousResponseID *string        `json:"previous_response_id,omitempty"`
	Reasoning          *ReasoningInfo `json:"reasoning,omitempty"`
	Store              bool           `json:"store"`
	Temperature        float64        `json:"temperature"`
	Text               TextConfig     `json:"text"`
	ToolChoice         ToolChoice     `json:"tool_choice"`
	Tools              []any          `json:"tools"`
	TopP               float64        `json:"top_p"`
	Truncation         string         `json:"truncation"`
	Usage              Usage          `json:"usage"`
	User               *string        `json:"user,omitempty"`
	Metadata           map[string]any `json:"metadata,omitzero"`
}

var responseRequired = []string{
	"id", "object", "created_at", "status", "model", "output",
	"parallel_tool_calls", "store", "temperature", "text", "tool_choice",
	"tools", "top_p", "truncation", "usage",
}

// UnmarshalJSON rejects documents that lack a required field, so a 2xx body
// of the wrong shape fails to decode instead of yielding a zero Response.
func (r *Response) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, responseRequired); err != nil {
		return err
	}
	type plain Response
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*r = Response(out)
	return nil
}

// ReasoningInfo is the reasoning summary echoed by reasoning models.
type ReasoningInfo struct {
	Effort  *string `json:"effort,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

// Usage reports token consumption for a response.
type Usage struct {
	InputTokens         uint32               `json:"input_tokens"`
	OutputTokens        uint32               `json:"output_tokens"`
	TotalTokens         uint32               `json:"total_tokens"`
	InputTokensDetails  *InputTokensDetails  `json:"input_tokens_details,omitempty"`
	OutputTokensDetails *OutputTokensDetails `json:"output_tokens_details,omitempty"`
}

var usageRequired = []string{"input_tokens", "output_tokens", "total_tokens"}

func (u *Usage) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, usageRequired); err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	type plain Usage
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*u = Usage(out)
	return nil
}

// CachedTokens returns the cached input token count, if reported.
func (u Usage) CachedTokens() (uint32, bool) {
	if u.InputTokensDetails == nil || u.InputTokensDetails.CachedTokens == nil {
		return 0, false
	}
	return *u.InputTokensDetails.CachedTokens, true
}

// ReasoningTokens returns the reasoning token count, if reported.
func (u Usage) ReasoningTokens() (uint32, bool) {
	if u.OutputTokensDetails == nil || u.OutputTokensDetails.ReasoningTokens == nil {
		return 0, false
	}
	return *u.OutputTokensDetails.ReasoningTokens, true
}

// InputTokensDetails breaks down input tokens.
type InputTokensDetails struct {
	CachedTokens *uint32 `json:"cached_tokens,omitempty"`
}

// OutputTokensDetails breaks down output tokens.
type OutputTokensDetails struct {
	ReasoningTokens *uint32 `json:"reasoning_tokens,omitempty"`
}

// OutputMessage is one entry of Response.Output.
type OutputMessage struct {
	Type    string        `json:"type"` // "message"
	ID      string        `json:"id"`
	Status  string        `json:"status"` // "completed"
	Role    string        `json:"role"`   // "assistant"
	Content []ContentItem `json:"content"`
}

var outputMessageRequired = []string{"type", "id", "status", "role", "content"}

func (m *OutputMessage) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, outputMessageRequired); err != nil {
		return fmt.Errorf("output message: %w", err)
	}
	type plain OutputMessage
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = OutputMessage(out)
	return nil
}

// requireFields checks that data is a JSON object holding every key in
// fields with a non-null value.
func requireFields(data []byte, fields []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("expected an object, got null")
	}
	for _, f := range fields {
		raw, ok := obj[f]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("missing field %q", f)
		}
	}
	return nil
}

// ContentKind discriminates ContentItem variants.
type ContentKind string

const (
	// ContentText is a bare text part.
	ContentText ContentKind = "text"
	// ContentOutputText is model output text with annotations.
	ContentOutputText ContentKind = "output_text"
)

// ContentItem is a part of an output message. Both variants carry text;
// only output_text carries annotations.
type ContentItem struct {
	Kind        ContentKind
	Text        string
	Annotations []any
}

// TextContent returns a "text" content item.
func TextContent(text string) ContentItem {
	return ContentItem{Kind: ContentText, Text: text}
}

// OutputTextContent returns an "output_text" content item.
func OutputTextContent(text string, annotations []any) ContentItem {
	if annotations == nil {
		annotations = []any{}
	}
	return ContentItem{Kind: ContentOutputText, Text: text, Annotations: annotations}
}

type textContentJSON struct {
	Type ContentKind `json:"type"`
	Text string      `json:"text"`
}

type outputTextContentJSON struct {
	Type        ContentKind `json:"type"`
	Text        string      `json:"text"`
	Annotations []any       `json:"annotations"`
}

func (c ContentItem) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentText:
		return json.Marshal(textContentJSON{Type: c.Kind, Text: c.Text})
	case ContentOutputText:
		annotations := c.Annotations
		if annotations == nil {
			annotations = []any{}
		}
		return json.Marshal(outputTextContentJSON{Type: c.Kind, Text: c.Text, Annotations: annotations})
	default:
		return nil, fmt.Errorf("unknown content type %q", c.Kind)
	}
}

// UnmarshalJSON rejects content types other than "text" and "output_text",
// so unsupported parts surface as a decode error instead of vanishing.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        ContentKind `json:"type"`
		Text        *string     `json:"text"`
		Annotations []any       `json:"annotations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != ContentText && raw.Type != ContentOutputText {
		return fmt.Errorf("unknown content type %q", raw.Type)
	}
	if raw.Text == nil {
		return fmt.Errorf("content of type %q is missing field text", raw.Type)
	}
	if raw.Type == ContentText {
		*c = TextContent(*raw.Text)
		return nil
	}
	*c = OutputTextContent(*raw.Text, raw.Annotations)
	return nil
}
