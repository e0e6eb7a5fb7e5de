// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultStore is the store flag applied by every construction path.
const DefaultStore = true

// ServiceTier selects the processing tier for a request.
type ServiceTier string

const (
	ServiceTierAuto     ServiceTier = "auto"
	ServiceTierDefault  ServiceTier = "default"
	ServiceTierFlex     ServiceTier = "flex"
	ServiceTierPriority ServiceTier = "priority"
)

// ServiceTiers lists the accepted service tier values.
var ServiceTiers = []ServiceTier{ServiceTierAuto, ServiceTierDefault, ServiceTierFlex, ServiceTierPriority}

// Truncation selects how the backend handles context overflow.
type Truncation string

const (
	TruncationAuto     Truncation = "auto"
	TruncationDisabled Truncation = "disabled"
)

// Truncations lists the accepted truncation values.
var Truncations = []Truncation{TruncationAuto, TruncationDisabled}

// Request is a single call to the /v1/responses endpoint.
//
// Every field is optional. Unset pointers, nil slices and nil maps are left
// out of the JSON body entirely so the server applies its own defaults.
// Build values with RequestBuilder or SimpleRequest.
type Request struct {
	// Core parameters
	Model *string `json:"model,omitempty"`
	Input *Input  `json:"input,omitempty"`

	// Response configuration
	Instructions    *string  `json:"instructions,omitempty"`
	MaxOutputTokens *uint32  `json:"max_output_tokens,omitempty"`
	Temperature     *float32 `json:"temperature,omitempty"`  // 0-2
	TopP            *float32 `json:"top_p,omitempty"`        // 0-1
	TopLogprobs     *uint32  `json:"top_logprobs,omitempty"` // 0-20

	// Behavior configuration
	Background        *bool `json:"background,omitempty"`
	Stream            *bool `json:"stream,omitempty"`
	Store             *bool `json:"store,omitempty"`
	ParallelToolCalls *bool `json:"parallel_tool_calls,omitempty"`

	// Advanced configuration
	ServiceTier        *ServiceTier `json:"service_tier,omitempty"`
	Truncation         *Truncation  `json:"truncation,omitempty"`
	User               *string      `json:"user,omitempty"`
	PreviousResponseID *string      `json:"previous_response_id,omitempty"`

	// Tools
	Tools        []any       `json:"tools,omitzero"`
	ToolChoice   *ToolChoice `json:"tool_choice,omitempty"`
	MaxToolCalls *uint32     `json:"max_tool_calls,omitempty"`

	// Advanced features
	Prompt    *PromptTemplate  `json:"prompt,omitempty"`
	Reasoning *ReasoningConfig `json:"reasoning,omitempty"`
	Text      *TextConfig      `json:"text,omitempty"`
	Include   []string         `json:"include,omitzero"`
	Metadata  map[string]any   `json:"metadata,omitzero"` // up to 16 pairs, not checked locally
}

// SimpleRequest returns a request carrying only a model, a plain text input
// and the default store flag.
func SimpleRequest(model, input string) Request {
	store := DefaultStore
	return Request{
		Model: &model,
		Input: TextInput(input),
		Store: &store,
	}
}

// Input is the request payload: either a plain string or an array of
// structured input items (messages, images, files...).
type Input struct {
	text  *string
	items []any
}

// TextInput returns a plain text input.
func TextInput(text string) *Input {
	return &Input{text: &text}
}

// ArrayInput returns a structured input. A nil slice is sent as [].
func ArrayInput(items []any) *Input {
	if items == nil {
		items = []any{}
	}
	return &Input{items: items}
}

// IsText reports whether the input is the plain text variant.
func (in *Input) IsText() bool { return in.text != nil }

// Text returns the plain text and true for the text variant.
func (in *Input) Text() (string, bool) {
	if in.text == nil {
		return "", false
	}
	return *in.text, true
}

// Items returns the structured items and true for the array variant.
func (in *Input) Items() ([]any, bool) {
	if in.text != nil {
		return nil, false
	}
	return in.items, true
}

// MarshalJSON emits the bare string or the bare array.
func (in Input) MarshalJSON() ([]byte, error) {
	if in.text != nil {
		return json.Marshal(*in.text)
	}
	items := in.items
	if items == nil {
		items = []any{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON accepts either a JSON string or a JSON array.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input{text: &s}
		return nil
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("input must be a string or an array: %w", err)
	}
	*in = *ArrayInput(items)
	return nil
}

func (in *Input) clone() *Input {
	if in == nil {
		return nil
	}
	if in.text != nil {
		return TextInput(*in.text)
	}
	return &Input{items: append([]any{}, in.items...)}
}

// ToolChoice is either a named mode ("auto", "none", "required") or an
// object selecting a specific tool.
type ToolChoice struct {
	name   *string
	object any
}

// NamedToolChoice returns a string tool choice.
func NamedToolChoice(name string) *ToolChoice {
	return &ToolChoice{name: &name}
}

// ObjectToolChoice returns an object tool choice, e.g.
// {"type":"function","name":"get_weather"}.
func ObjectToolChoice(selector any) *ToolChoice {
	return &ToolChoice{object: selector}
}

// Name returns the mode and true for the named variant.
func (tc *ToolChoice) Name() (string, bool) {
	if tc.name == nil {
		return "", false
	}
	return *tc.name, true
}

// Object returns the selector and true for the object variant.
func (tc *ToolChoice) Object() (any, bool) {
	if tc.name != nil {
		return nil, false
	}
	return tc.object, true
}

// String renders the choice for display: the name, or the selector as JSON.
func (tc ToolChoice) String() string {
	if tc.name != nil {
		return *tc.name
	}
	b, err := json.Marshal(tc.object)
	if err != nil {
		return fmt.Sprintf("%v", tc.object)
	}
	return string(b)
}

func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	if tc.name != nil {
		return json.Marshal(*tc.name)
	}
	return json.Marshal(tc.object)
}

func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*tc = ToolChoice{name: &s}
		return nil
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*tc = ToolChoice{object: obj}
	return nil
}

// PromptTemplate references a stored prompt template.
type PromptTemplate struct {
	ID        *string `json:"id,omitempty"`
	Variables any     `json:"variables,omitempty"`
}

// ReasoningConfig configures reasoning models.
type ReasoningConfig struct {
	Effort           *string `json:"effort,omitempty"` // "low", "medium", "high"
	EncryptedContent *bool   `json:"encrypted_content,omitempty"`
}

// TextFormat specifies the output text format.
type TextFormat struct {
	Type string `json:"type"` // "text", "json_object", "json_schema"
}

// TextConfig wraps TextFormat for the text configuration.
type TextConfig struct {
	Format TextFormat `json:"format"`
}
