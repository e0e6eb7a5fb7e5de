// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

// MockResponsesClient is a ResponsesAPIClient for tests. It answers every
// request with "Mock response to: <prompt>" and records the last request.
type MockResponsesClient struct {
	// Err, when set, is returned instead of a response.
	Err error
	// Empty makes the mock return a response with no output messages.
	Empty bool

	LastRequest *schema.Request
}

var _ ResponsesAPIClient = (*MockResponsesClient)(nil)

// NewMockResponsesClient creates a new mock client
func NewMockResponsesClient() *MockResponsesClient {
	return &MockResponsesClient{}
}

// CreateResponse implements ResponsesAPIClient.
func (m *MockResponsesClient) CreateResponse(ctx context.Context, req *schema.Request) (*schema.Response, error) {
	m.LastRequest = req
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}
	if m.Err != nil {
		return nil, m.Err
	}

	prompt := promptText(req)
	reply := fmt.Sprintf("Mock response to: %s", prompt)

	model := ""
	if req.Model != nil {
		model = *req.Model
	}
	store := schema.DefaultStore
	if req.Store != nil {
		store = *req.Store
	}

	now := time.Now().Unix()
	resp := &schema.Response{
		ID:         fmt.Sprintf("resp_mock_%d", now),
		Object:     "response",
		CreatedAt:  now,
		Status:     "completed",
		Model:      model,
		Store:      store,
		ToolChoice: *schema.NamedToolChoice("auto"),
		Tools:      []any{},
		Truncation: "disabled",
		Text:       schema.TextConfig{Format: schema.TextFormat{Type: "text"}},
		Usage: schema.Usage{
			InputTokens:  estimateTokens(prompt),
			OutputTokens: estimateTokens(reply),
			TotalTokens:  estimateTokens(prompt) + estimateTokens(reply),
		},
		PreviousResponseID: req.PreviousResponseID,
	}
	if m.Empty {
		resp.Output = []schema.OutputMessage{}
		return resp, nil
	}
	resp.Output = []schema.OutputMessage{{
		Type:    "message",
		ID:      fmt.Sprintf("msg_mock_%d", now),
		Status:  "completed",
		Role:    "assistant",
		Content: []schema.ContentItem{schema.OutputTextContent(reply, nil)},
	}}
	return resp, nil
}

// promptText returns the plain text input, or the input_text parts of a
// structured input joined by spaces.
func promptText(req *schema.Request) string {
	if req.Input == nil {
		return ""
	}
	if text, ok := req.Input.Text(); ok {
		return text
	}
	items, _ := req.Input.Items()
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	var messages []struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &messages); err != nil {
		return ""
	}

	var parts []string
	for _, msg := range messages {
		var text string
		if err := json.Unmarshal(msg.Content, &text); err == nil {
			parts = append(parts, text)
			continue
		}
		var content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(msg.Content, &content); err != nil {
			continue
		}
		for _, c := range content {
			if c.Type == "input_text" {
				parts = append(parts, c.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// estimateTokens provides a rough token count estimate
// Using ~4 characters per token as a simple heuristic
func estimateTokens(text string) uint32 {
	return uint32(len(text) / 4)
}
