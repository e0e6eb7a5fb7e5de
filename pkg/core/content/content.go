// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package content flattens response output into display text.
package content

import (
	"strings"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

// NoContent is returned instead of an empty string when a response carries
// no text at all.
const NoContent = "No content available"

// FromResponse joins the text of every content item of every output message,
// in order, separated by a single space.
func FromResponse(resp *schema.Response) string {
	if resp == nil || len(resp.Output) == 0 {
		return NoContent
	}

	var parts []string
	for _, msg := range resp.Output {
		parts = appendTexts(parts, msg.Content)
	}
	return join(parts)
}

// FromItems flattens a bare content slice the same way FromResponse flattens
// a single message.
func FromItems(items []schema.ContentItem) string {
	return join(appendTexts(nil, items))
}

// Both content variants are display-equivalent; annotations are not shown.
func appendTexts(parts []string, items []schema.ContentItem) []string {
	for _, item := range items {
		parts = append(parts, item.Text)
	}
	return parts
}

func join(parts []string) string {
	if len(parts) == 0 {
		return NoContent
	}
	return strings.Join(parts, " ")
}
