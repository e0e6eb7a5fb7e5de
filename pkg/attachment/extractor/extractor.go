// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package extractor reduces attachment bytes to plain text for the prompt.
package extractor

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrBinary is returned for content that is neither a supported document
// format nor UTF-8 text.
var ErrBinary = errors.New("unsupported binary content")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExtractText extracts plain text from content. The format is chosen by the
// filename extension, falling back to content sniffing when the extension
// is unknown.
func ExtractText(content []byte, filename string) (string, error) {
	switch Format(content, filename) {
	case "pdf":
		return extractPDF(content)
	case "html":
		return extractHTML(content)
	case "csv":
		return extractCSV(content)
	case "json":
		return extractJSON(content), nil
	case "jsonl":
		return extractJSONL(content), nil
	default:
		return extractText(content)
	}
}

// Format names the extractor used for content: pdf, html, csv, json, jsonl
// or text.
func Format(content []byte, filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".html", ".htm":
		return "html"
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".txt", ".md", ".markdown", ".log", ".go", ".py", ".yaml", ".yml":
		return "text"
	}

	sniffed := http.DetectContentType(content)
	switch {
	case strings.HasPrefix(sniffed, "application/pdf"):
		return "pdf"
	case strings.HasPrefix(sniffed, "text/html"):
		return "html"
	default:
		return "text"
	}
}

// extractText passes UTF-8 text through, minus a leading byte order mark.
func extractText(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", ErrBinary
	}
	return string(content), nil
}
