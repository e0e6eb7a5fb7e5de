// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"testing"
)

func marshalMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return m
}

func TestSimpleRequest(t *testing.T) {
	req := SimpleRequest("gpt-4.1", "Hello")

	if req.Model == nil || *req.Model != "gpt-4.1" {
		t.Errorf("Model = %v, want gpt-4.1", req.Model)
	}
	if req.Store == nil || !*req.Store {
		t.Errorf("Store = %v, want true", req.Store)
	}
	text, ok := req.Input.Text()
	if !ok || text != "Hello" {
		t.Errorf("Input.Text() = %q, %v; want Hello, true", text, ok)
	}
}

func TestRequest_MarshalJSON_OmitsUnsetFields(t *testing.T) {
	m := marshalMap(t, SimpleRequest("gpt-4.1", "Hello"))

	if len(m) != 3 {
		t.Errorf("got %d keys %v, want model, input, store", len(m), m)
	}
	for _, key := range []string{"temperature", "tools", "metadata", "include", "tool_choice", "stream"} {
		if _, ok := m[key]; ok {
			t.Errorf("key %q present, want omitted", key)
		}
	}
	if m["input"] != "Hello" {
		t.Errorf("input = %v, want bare string", m["input"])
	}
	if m["store"] != true {
		t.Errorf("store = %v, want true", m["store"])
	}
}

func TestRequest_MarshalJSON_EmptyCollectionsAreSent(t *testing.T) {
	req := NewRequestBuilder().
		Tools([]any{}).
		Include([]string{}).
		Metadata(map[string]any{}).
		Build()
	m := marshalMap(t, req)

	for _, key := range []string{"tools", "include", "metadata"} {
		if _, ok := m[key]; !ok {
			t.Errorf("key %q omitted, want present", key)
		}
	}
}

func TestInput_JSON(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
		want  string
	}{
		{"text", TextInput("hi"), `"hi"`},
		{"array", ArrayInput([]any{map[string]any{"role": "user", "content": "hi"}}), `[{"content":"hi","role":"user"}]`},
		{"nil array", ArrayInput(nil), `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}

			var back Input
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if back.IsText() != tt.input.IsText() {
				t.Errorf("IsText() = %v, want %v", back.IsText(), tt.input.IsText())
			}
		})
	}
}

func TestInput_UnmarshalJSON_RejectsObject(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`{"role":"user"}`), &in); err == nil {
		t.Fatal("expected error for object input")
	}
}

func TestToolChoice_JSON(t *testing.T) {
	named := NamedToolChoice("auto")
	data, err := json.Marshal(named)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != `"auto"` {
		t.Errorf("named = %s, want \"auto\"", data)
	}

	var tc ToolChoice
	if err := json.Unmarshal([]byte(`{"type":"function","name":"get_weather"}`), &tc); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if _, ok := tc.Name(); ok {
		t.Error("Name() ok = true for object choice")
	}
	obj, ok := tc.Object()
	if !ok {
		t.Fatal("Object() ok = false")
	}
	if obj.(map[string]any)["name"] != "get_weather" {
		t.Errorf("Object() = %v", obj)
	}
	if tc.String() != `{"name":"get_weather","type":"function"}` {
		t.Errorf("String() = %s", tc.String())
	}
}
