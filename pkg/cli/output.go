// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leseb/openresponses-cli/pkg/core/api"
	"github.com/leseb/openresponses-cli/pkg/core/content"
	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

const responseHeading = "📝 Response:"

// responseText extracts the text to display. It fails with
// ErrNoOutputMessages when there are no messages and with ErrEmptyResponse
// when none of them carries a content item.
func responseText(resp *schema.Response) (string, error) {
	if len(resp.Output) == 0 {
		return "", api.ErrNoOutputMessages
	}
	for _, msg := range resp.Output {
		if len(msg.Content) > 0 {
			return content.FromResponse(resp), nil
		}
	}
	return "", api.ErrEmptyResponse
}

// WritePlain prints the extracted text under a heading, followed by the
// metadata block when verbose is set.
func WritePlain(w io.Writer, resp *schema.Response, verbose bool) error {
	text, err := responseText(resp)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", responseHeading)
	fmt.Fprintln(w, text)

	if verbose {
		fmt.Fprint(w, VerboseText(resp))
	}
	return nil
}

// WriteJSON pretty-prints the whole response.
func WriteJSON(w io.Writer, resp *schema.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// field is one line of the verbose metadata block.
type field struct {
	label string
	value string
	code  bool // rendered as inline code in markdown
}

type section struct {
	title  string
	fields []field
}

// metadata lays out the verbose block. The previous response ID trails the
// last section, which is the reasoning section when present.
func metadata(resp *schema.Response) []section {
	meta := section{title: "Response Metadata", fields: []field{
		{"Response ID", resp.ID, true},
		{"Model", resp.Model, true},
		{"Created At", fmt.Sprint(resp.CreatedAt), true},
		{"Status", resp.Status, true},
		{"Object", resp.Object, true},
	}}
	if len(resp.Output) > 0 {
		first := resp.Output[0]
		meta.fields = append(meta.fields,
			field{"Message ID", first.ID, true},
			field{"Message Status", first.Status, true},
			field{"Role", first.Role, true},
		)
	}

	conf := section{title: "Configuration", fields: []field{
		{"Temperature", fmt.Sprint(resp.Temperature), true},
		{"Top P", fmt.Sprint(resp.TopP), true},
		{"Tool Choice", resp.ToolChoice.String(), true},
		{"Truncation", resp.Truncation, true},
		{"Store", fmt.Sprint(resp.Store), true},
		{"Parallel Tool Calls", fmt.Sprint(resp.ParallelToolCalls), true},
	}}

	usage := section{title: "Token Usage", fields: []field{
		{"Input tokens", fmt.Sprint(resp.Usage.InputTokens), true},
		{"Output tokens", fmt.Sprint(resp.Usage.OutputTokens), true},
		{"Total tokens", fmt.Sprint(resp.Usage.TotalTokens), true},
	}}
	if n, ok := resp.Usage.CachedTokens(); ok {
		usage.fields = append(usage.fields, field{"Cached tokens", fmt.Sprint(n), true})
	}
	if n, ok := resp.Usage.ReasoningTokens(); ok {
		usage.fields = append(usage.fields, field{"Reasoning tokens", fmt.Sprint(n), true})
	}

	sections := []section{meta, conf, usage}
	if r := resp.Reasoning; r != nil {
		reasoning := section{title: "Reasoning"}
		if r.Effort != nil {
			reasoning.fields = append(reasoning.fields, field{"Effort", *r.Effort, true})
		}
		if r.Summary != nil {
			reasoning.fields = append(reasoning.fields, field{"Summary", *r.Summary, false})
		}
		sections = append(sections, reasoning)
	}
	if resp.PreviousResponseID != nil {
		last := &sections[len(sections)-1]
		last.fields = append(last.fields, field{"Previous Response ID", *resp.PreviousResponseID, true})
	}
	return sections
}

// VerboseText renders the metadata block as indented plain text.
func VerboseText(resp *schema.Response) string {
	var sb strings.Builder
	for _, s := range metadata(resp) {
		fmt.Fprintf(&sb, "\n📊 %s:\n", s.title)
		for _, f := range s.fields {
			fmt.Fprintf(&sb, "  %s: %s\n", f.label, f.value)
		}
	}
	return sb.String()
}

// VerboseMarkdown renders the metadata block as a markdown document.
func VerboseMarkdown(resp *schema.Response) string {
	var sb strings.Builder
	for _, s := range metadata(resp) {
		fmt.Fprintf(&sb, "\n## 📊 %s\n\n", s.title)
		for _, f := range s.fields {
			if f.code {
				fmt.Fprintf(&sb, "- **%s**: `%s`\n", f.label, f.value)
			} else {
				fmt.Fprintf(&sb, "- **%s**: %s\n", f.label, f.value)
			}
		}
	}
	return sb.String()
}
