// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("39"))

// markdownMarkers are substrings that suggest the text is markdown.
var markdownMarkers = []string{"**", "*", "`", "# ", "## ", "- ", "1. ", "```", "> "}

// LooksLikeMarkdown reports whether text contains common markdown syntax.
func LooksLikeMarkdown(text string) bool {
	for _, m := range markdownMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// MarkdownRenderer prints responses through a glamour terminal renderer.
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer. style is a glamour standard style
// name ("dark", "light", "notty", "ascii"); width <= 0 disables wrapping.
func NewMarkdownRenderer(style string, width int) (*MarkdownRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &MarkdownRenderer{term: term}, nil
}

// Write prints the response text, rendering it as markdown only when it
// looks like markdown.
func (r *MarkdownRenderer) Write(w io.Writer, resp *schema.Response, verbose bool) error {
	text, err := responseText(resp)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", headingStyle.Render(responseHeading))
	if LooksLikeMarkdown(text) {
		rendered, err := r.term.Render(text)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprintln(w, rendered)
	} else {
		fmt.Fprintln(w, text)
	}

	if verbose {
		rendered, err := r.term.Render(VerboseMarkdown(resp))
		if err != nil {
			return fmt.Errorf("failed to render metadata: %w", err)
		}
		fmt.Fprintln(w, rendered)
	}
	return nil
}
