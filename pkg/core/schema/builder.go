// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"maps"
	"slices"
)

// RequestBuilder assembles a Request through chained setters.
//
// The builder accumulates values in a private draft; Build hands out an
// independent copy, so a partially configured draft is never shared with a
// transport. Setters never fail and the last call for a field wins. Range and
// enum checks are the caller's job (see cli.Options.Validate).
type RequestBuilder struct {
	draft Request
}

// NewRequestBuilder returns a builder with store enabled and every other
// field unset.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		draft: Request{Store: ptr(DefaultStore)},
	}
}

func (b *RequestBuilder) Model(model string) *RequestBuilder {
	b.draft.Model = &model
	return b
}

// InputText sets a plain text input, replacing any earlier input.
func (b *RequestBuilder) InputText(text string) *RequestBuilder {
	b.draft.Input = TextInput(text)
	return b
}

// InputArray sets a structured input, replacing any earlier input.
func (b *RequestBuilder) InputArray(items []any) *RequestBuilder {
	b.draft.Input = ArrayInput(items)
	return b
}

func (b *RequestBuilder) Instructions(instructions string) *RequestBuilder {
	b.draft.Instructions = &instructions
	return b
}

func (b *RequestBuilder) MaxOutputTokens(tokens uint32) *RequestBuilder {
	b.draft.MaxOutputTokens = &tokens
	return b
}

func (b *RequestBuilder) Temperature(temperature float32) *RequestBuilder {
	b.draft.Temperature = &temperature
	return b
}

func (b *RequestBuilder) TopP(topP float32) *RequestBuilder {
	b.draft.TopP = &topP
	return b
}

func (b *RequestBuilder) TopLogprobs(n uint32) *RequestBuilder {
	b.draft.TopLogprobs = &n
	return b
}

func (b *RequestBuilder) Background(background bool) *RequestBuilder {
	b.draft.Background = &background
	return b
}

func (b *RequestBuilder) Stream(stream bool) *RequestBuilder {
	b.draft.Stream = &stream
	return b
}

func (b *RequestBuilder) Store(store bool) *RequestBuilder {
	b.draft.Store = &store
	return b
}

func (b *RequestBuilder) ParallelToolCalls(parallel bool) *RequestBuilder {
	b.draft.ParallelToolCalls = &parallel
	return b
}

func (b *RequestBuilder) ServiceTier(tier ServiceTier) *RequestBuilder {
	b.draft.ServiceTier = &tier
	return b
}

func (b *RequestBuilder) Truncation(truncation Truncation) *RequestBuilder {
	b.draft.Truncation = &truncation
	return b
}

func (b *RequestBuilder) User(user string) *RequestBuilder {
	b.draft.User = &user
	return b
}

// PreviousResponseID chains this request onto a stored response. The ID is
// not checked locally.
func (b *RequestBuilder) PreviousResponseID(id string) *RequestBuilder {
	b.draft.PreviousResponseID = &id
	return b
}

// Tools sets the tool definitions. A non-nil empty slice is sent as [].
func (b *RequestBuilder) Tools(tools []any) *RequestBuilder {
	b.draft.Tools = tools
	return b
}

// ToolChoiceNamed sets a string tool choice such as "auto".
func (b *RequestBuilder) ToolChoiceNamed(choice string) *RequestBuilder {
	b.draft.ToolChoice = NamedToolChoice(choice)
	return b
}

// ToolChoiceObject sets an object tool choice.
func (b *RequestBuilder) ToolChoiceObject(selector any) *RequestBuilder {
	b.draft.ToolChoice = ObjectToolChoice(selector)
	return b
}

func (b *RequestBuilder) MaxToolCalls(n uint32) *RequestBuilder {
	b.draft.MaxToolCalls = &n
	return b
}

func (b *RequestBuilder) PromptTemplate(template PromptTemplate) *RequestBuilder {
	b.draft.Prompt = &template
	return b
}

func (b *RequestBuilder) Reasoning(reasoning ReasoningConfig) *RequestBuilder {
	b.draft.Reasoning = &reasoning
	return b
}

func (b *RequestBuilder) Text(text TextConfig) *RequestBuilder {
	b.draft.Text = &text
	return b
}

func (b *RequestBuilder) Include(include []string) *RequestBuilder {
	b.draft.Include = include
	return b
}

func (b *RequestBuilder) Metadata(metadata map[string]any) *RequestBuilder {
	b.draft.Metadata = metadata
	return b
}

// Build returns a copy of the draft. The builder stays usable; later setter
// calls do not affect requests already built.
func (b *RequestBuilder) Build() Request {
	return b.draft.clone()
}

func (r Request) clone() Request {
	out := Request{
		Model:              clonePtr(r.Model),
		Input:              r.Input.clone(),
		Instructions:       clonePtr(r.Instructions),
		MaxOutputTokens:    clonePtr(r.MaxOutputTokens),
		Temperature:        clonePtr(r.Temperature),
		TopP:               clonePtr(r.TopP),
		TopLogprobs:        clonePtr(r.TopLogprobs),
		Background:         clonePtr(r.Background),
		Stream:             clonePtr(r.Stream),
		Store:              clonePtr(r.Store),
		ParallelToolCalls:  clonePtr(r.ParallelToolCalls),
		ServiceTier:        clonePtr(r.ServiceTier),
		Truncation:         clonePtr(r.Truncation),
		User:               clonePtr(r.User),
		PreviousResponseID: clonePtr(r.PreviousResponseID),
		Tools:              slices.Clone(r.Tools),
		ToolChoice:         clonePtr(r.ToolChoice),
		MaxToolCalls:       clonePtr(r.MaxToolCalls),
		Reasoning:          clonePtr(r.Reasoning),
		Text:               clonePtr(r.Text),
		Include:            slices.Clone(r.Include),
		Metadata:           maps.Clone(r.Metadata),
	}
	if r.Prompt != nil {
		out.Prompt = &PromptTemplate{ID: clonePtr(r.Prompt.ID), Variables: r.Prompt.Variables}
	}
	if out.Reasoning != nil {
		out.Reasoning.Effort = clonePtr(out.Reasoning.Effort)
		out.Reasoning.EncryptedContent = clonePtr(out.Reasoning.EncryptedContent)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
