// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leseb/openresponses-cli/pkg/core/api"
	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

func u32(v uint32) *uint32 { return &v }
func str(v string) *string { return &v }

func testResponse() *schema.Response {
	return &schema.Response{
		ID:        "resp_123",
		Object:    "response",
		CreatedAt: 1741476542,
		Status:    "completed",
		Model:     "gpt-4.1",
		Output: []schema.OutputMessage{{
			Type:    "message",
			ID:      "msg_1",
			Status:  "completed",
			Role:    "assistant",
			Content: []schema.ContentItem{schema.OutputTextContent("Hello there", nil)},
		}},
		ParallelToolCalls: true,
		Store:             true,
		Temperature:       1,
		TopP:              0.5,
		ToolChoice:        *schema.NamedToolChoice("auto"),
		Tools:             []any{},
		Truncation:        "disabled",
		Usage: schema.Usage{
			InputTokens:         36,
			OutputTokens:        87,
			TotalTokens:         123,
			InputTokensDetails:  &schema.InputTokensDetails{CachedTokens: u32(4)},
			OutputTokensDetails: &schema.OutputTokensDetails{ReasoningTokens: u32(9)},
		},
	}
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlain(&buf, testResponse(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "\n📝 Response:\nHello there\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWritePlain_NoOutput(t *testing.T) {
	resp := testResponse()
	resp.Output = nil

	var buf bytes.Buffer
	if err := WritePlain(&buf, resp, true); !errors.Is(err, api.ErrNoOutputMessages) {
		t.Errorf("error = %v, want ErrNoOutputMessages", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q before failing", buf.String())
	}
}

func TestWritePlain_EmptyContent(t *testing.T) {
	resp := testResponse()
	resp.Output[0].Content = []schema.ContentItem{}

	var buf bytes.Buffer
	if err := WritePlain(&buf, resp, false); !errors.Is(err, api.ErrEmptyResponse) {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q before failing", buf.String())
	}
}

func TestVerboseText(t *testing.T) {
	out := VerboseText(testResponse())

	for _, line := range []string{
		"📊 Response Metadata:",
		"  Response ID: resp_123",
		"  Created At: 1741476542",
		"  Message ID: msg_1",
		"  Role: assistant",
		"📊 Configuration:",
		"  Temperature: 1\n",
		"  Top P: 0.5",
		"  Tool Choice: auto",
		"  Parallel Tool Calls: true",
		"📊 Token Usage:",
		"  Input tokens: 36\n",
		"  Output tokens: 87\n",
		"  Total tokens: 123\n",
		"  Cached tokens: 4",
		"  Reasoning tokens: 9",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("verbose output missing %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Reasoning:") || strings.Contains(out, "Previous Response ID") {
		t.Errorf("verbose output has absent sections:\n%s", out)
	}
}

func TestVerboseText_ReasoningAndPrevious(t *testing.T) {
	resp := testResponse()
	resp.Reasoning = &schema.ReasoningInfo{Effort: str("high"), Summary: str("thought hard")}
	resp.PreviousResponseID = str("resp_prev")
	resp.Usage.InputTokensDetails = nil

	out := VerboseText(resp)
	if strings.Contains(out, "Cached tokens") {
		t.Errorf("cached tokens shown without details:\n%s", out)
	}
	want := "\n📊 Reasoning:\n  Effort: high\n  Summary: thought hard\n  Previous Response ID: resp_prev\n"
	if !strings.HasSuffix(out, want) {
		t.Errorf("output tail = %q, want suffix %q", out, want)
	}
}

func TestVerboseMarkdown(t *testing.T) {
	resp := testResponse()
	resp.Reasoning = &schema.ReasoningInfo{Summary: str("short")}

	out := VerboseMarkdown(resp)
	for _, line := range []string{
		"## 📊 Response Metadata",
		"- **Response ID**: `resp_123`",
		"- **Total tokens**: `123`",
		"## 📊 Reasoning",
		"- **Summary**: short",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("markdown output missing %q:\n%s", line, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testResponse()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"id\": \"resp_123\"") {
		t.Errorf("output not indented: %s", buf.String())
	}

	var back schema.Response
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not a response: %v", err)
	}
	if back.Usage.TotalTokens != 123 {
		t.Errorf("TotalTokens = %d, want 123", back.Usage.TotalTokens)
	}
}
