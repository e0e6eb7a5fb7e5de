// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	var opts Options
	fs := NewFlagSet("test", &opts)
	fs.SetOutput(io.Discard)
	if err := Parse(fs, &opts, args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return &opts
}

func TestParse_Defaults(t *testing.T) {
	opts := parse(t)

	if opts.Truncation != "disabled" {
		t.Errorf("Truncation = %q, want disabled", opts.Truncation)
	}
	if opts.Temperature != nil || opts.Store != nil || opts.ServiceTier != nil || opts.TopLogprobs != nil {
		t.Errorf("optional flags set without being passed: %+v", opts)
	}
	if opts.DisplayMode() != DisplayMarkdown {
		t.Errorf("DisplayMode() = %v, want markdown", opts.DisplayMode())
	}
}

func TestParse_FlagsAndPrompt(t *testing.T) {
	opts := parse(t,
		"-m", "gpt-4.1",
		"What", "is", "Go?",
		"-t", "0.5",
		"--top-p=0.9",
		"--top-logprobs", "3",
		"--store=false",
		"--parallel-tool-calls",
		"--service-tier", "flex",
		"--file", "a.txt",
		"--file", "s3://b/k",
		"-v",
	)

	if opts.Prompt != "What is Go?" {
		t.Errorf("Prompt = %q", opts.Prompt)
	}
	if opts.Model != "gpt-4.1" || !opts.Verbose {
		t.Errorf("Model/Verbose = %q/%v", opts.Model, opts.Verbose)
	}
	if opts.Temperature == nil || *opts.Temperature != 0.5 {
		t.Errorf("Temperature = %v", opts.Temperature)
	}
	if opts.TopP == nil || *opts.TopP != 0.9 {
		t.Errorf("TopP = %v", opts.TopP)
	}
	if opts.TopLogprobs == nil || *opts.TopLogprobs != 3 {
		t.Errorf("TopLogprobs = %v", opts.TopLogprobs)
	}
	if opts.Store == nil || *opts.Store {
		t.Errorf("Store = %v, want false", opts.Store)
	}
	if opts.ParallelToolCalls == nil || !*opts.ParallelToolCalls {
		t.Errorf("ParallelToolCalls = %v, want true", opts.ParallelToolCalls)
	}
	if len(opts.Files) != 2 || opts.Files[1] != "s3://b/k" {
		t.Errorf("Files = %v", opts.Files)
	}
}

func TestParse_InvalidNumber(t *testing.T) {
	var opts Options
	fs := NewFlagSet("test", &opts)
	fs.SetOutput(io.Discard)
	if err := Parse(fs, &opts, []string{"--temperature", "hot"}); err == nil {
		t.Fatal("expected error for non-numeric temperature")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"valid", []string{"-t", "2.0", "--top-p", "0", "--top-logprobs", "20", "--service-tier", "priority", "--truncation", "auto"}, ""},
		{"temperature too high", []string{"-t", "2.1"}, "Temperature must be between 0.0 and 2.0"},
		{"temperature negative", []string{"-t", "-0.1"}, "Temperature must be between 0.0 and 2.0"},
		{"top_p too high", []string{"--top-p", "1.5"}, "Top-p must be between 0.0 and 1.0"},
		{"top_logprobs too high", []string{"--top-logprobs", "21"}, "Top logprobs must be between 0 and 20"},
		{"bad service tier", []string{"--service-tier", "turbo"}, "Service tier must be one of: auto, default, flex, priority"},
		{"bad truncation", []string{"--truncation", "sometimes"}, "Truncation must be either 'auto' or 'disabled'"},
		{"json and plain", []string{"--json", "--plain"}, "--json and --plain cannot be used together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parse(t, tt.args...).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDisplayMode(t *testing.T) {
	tests := []struct {
		args []string
		want DisplayMode
	}{
		{nil, DisplayMarkdown},
		{[]string{"--md"}, DisplayMarkdown},
		{[]string{"--plain"}, DisplayPlain},
		{[]string{"--plain", "--markdown"}, DisplayPlain},
		{[]string{"-j"}, DisplayJSON},
		{[]string{"--json", "--markdown"}, DisplayJSON},
	}
	for _, tt := range tests {
		if got := parse(t, tt.args...).DisplayMode(); got != tt.want {
			t.Errorf("DisplayMode(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestReadPrompt(t *testing.T) {
	opts := &Options{Prompt: "given"}
	got, err := opts.ReadPrompt(strings.NewReader("ignored\n"), io.Discard)
	if err != nil || got != "given" {
		t.Errorf("ReadPrompt() = %q, %v", got, err)
	}

	var out bytes.Buffer
	got, err = (&Options{}).ReadPrompt(strings.NewReader("  typed question \n"), &out)
	if err != nil || got != "typed question" {
		t.Errorf("ReadPrompt() = %q, %v", got, err)
	}
	if out.String() != "Enter your question: " {
		t.Errorf("prompt text = %q", out.String())
	}

	_, err = (&Options{}).ReadPrompt(strings.NewReader("\n"), io.Discard)
	if !errors.Is(err, ErrNoPrompt) || err.Error() != "No prompt provided" {
		t.Errorf("empty line: error = %v, want ErrNoPrompt", err)
	}
	_, err = (&Options{}).ReadPrompt(strings.NewReader(""), io.Discard)
	if !errors.Is(err, ErrNoPrompt) {
		t.Errorf("EOF: error = %v, want ErrNoPrompt", err)
	}
}

func TestToBuilder(t *testing.T) {
	opts := parse(t, "--instructions", "Be brief", "--max-output-tokens", "50", "--user", "u1",
		"--previous-response-id", "resp_1", "--stream", "--background", "--store=false")

	req := opts.ToBuilder("gpt-4o-mini", "Hi").Build()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"model":                "gpt-4o-mini",
		"input":                "Hi",
		"instructions":         "Be brief",
		"max_output_tokens":    float64(50),
		"user":                 "u1",
		"previous_response_id": "resp_1",
		"stream":               true,
		"background":           true,
		"store":                false,
		"truncation":           "disabled",
	}
	if len(body) != len(want) {
		t.Errorf("body = %v, want %d keys", body, len(want))
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("%s = %v, want %v", k, body[k], v)
		}
	}
}

func TestToBuilder_ModelAndArrayInput(t *testing.T) {
	opts := parse(t, "--model", "gpt-4.1")
	req := opts.ToBuilder("gpt-4o-mini", []any{map[string]any{"role": "user"}}).Build()

	if *req.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want flag value", *req.Model)
	}
	if req.Input.IsText() {
		t.Error("Input is text, want array")
	}
	if *req.Store != true {
		t.Errorf("Store = %v, want default true", *req.Store)
	}
}
