// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package attachment turns --file references into structured request input.
//
// A reference is a local path, a file:// URL or an s3://bucket/key URL. The
// scheme selects a Source from Providers; source packages register
// themselves in init(), so blank-import the ones the binary should support:
//
//	import _ "github.com/leseb/openresponses-cli/pkg/attachment/local"
//	import _ "github.com/leseb/openresponses-cli/pkg/attachment/s3"
package attachment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leseb/openresponses-cli/pkg/attachment/extractor"
	"github.com/leseb/openresponses-cli/pkg/provider"
)

// MaxBytes caps the size of a single attachment.
const MaxBytes = 20 << 20

// ErrNotFound is returned by sources when the referenced object is missing.
var ErrNotFound = errors.New("attachment not found")

// Providers is the registry of attachment sources, keyed by URL scheme.
var Providers = provider.NewRegistry[Source]("attachment_source")

// Document is the raw content fetched from a source.
type Document struct {
	Name    string
	Content []byte
}

// Source fetches documents by location. The location is the reference with
// its scheme removed ("bucket/key" for s3, a path for file).
type Source interface {
	Fetch(ctx context.Context, location string) (*Document, error)
}

// Attachment is a fetched document reduced to plain text.
type Attachment struct {
	Name string
	Text string
}

// ParseRef splits a reference into scheme and location. References without
// a scheme are local paths.
func ParseRef(ref string) (scheme, location string) {
	if i := strings.Index(ref, "://"); i > 0 {
		return strings.ToLower(ref[:i]), ref[i+3:]
	}
	return "file", ref
}

// Load fetches ref through the matching source and extracts its text.
// params are passed to the source factory (e.g. "region", "endpoint").
func Load(ctx context.Context, ref string, params map[string]string) (*Attachment, error) {
	scheme, location := ParseRef(ref)
	if location == "" {
		return nil, fmt.Errorf("attachment %q: empty location", ref)
	}

	if !Providers.Has(scheme) {
		return nil, fmt.Errorf("attachment %q: unsupported scheme %q (available: %s)",
			ref, scheme, strings.Join(Providers.Available(), ", "))
	}
	src, err := Providers.New(ctx, scheme, params)
	if err != nil {
		return nil, fmt.Errorf("attachment %q: %w", ref, err)
	}

	doc, err := src.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("attachment %q: %w", ref, err)
	}
	if len(doc.Content) > MaxBytes {
		return nil, fmt.Errorf("attachment %q: %d bytes exceeds limit of %d", ref, len(doc.Content), MaxBytes)
	}

	text, err := extractor.ExtractText(doc.Content, doc.Name)
	if err != nil {
		return nil, fmt.Errorf("attachment %q: %w", ref, err)
	}
	return &Attachment{Name: doc.Name, Text: text}, nil
}

// LoadAll loads every reference in order and stops at the first failure.
func LoadAll(ctx context.Context, refs []string, params map[string]string) ([]*Attachment, error) {
	out := make([]*Attachment, 0, len(refs))
	for _, ref := range refs {
		a, err := Load(ctx, ref, params)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// InputText is an "input_text" content part of an input message.
type InputText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// InputMessage is a structured input item.
type InputMessage struct {
	Role    string      `json:"role"`
	Content []InputText `json:"content"`
}

// BuildInput returns the structured input for a prompt with attachments:
// one user message holding the prompt followed by one part per attachment.
func BuildInput(prompt string, attachments []*Attachment) []any {
	parts := make([]InputText, 0, len(attachments)+1)
	parts = append(parts, InputText{Type: "input_text", Text: prompt})
	for _, a := range attachments {
		parts = append(parts, InputText{
			Type: "input_text",
			Text: fmt.Sprintf("[file: %s]\n%s", a.Name, a.Text),
		})
	}
	return []any{InputMessage{Role: "user", Content: parts}}
}
