// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// extractCSV rewrites CSV rows as tab-separated lines. Unparseable input is
// returned unchanged.
func extractCSV(content []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return string(content), nil
		}
		rows = append(rows, strings.Join(record, "\t"))
	}
	return strings.Join(rows, "\n"), nil
}

// extractJSON pretty-prints a JSON document; invalid JSON is returned as-is.
func extractJSON(content []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(content), "", "  "); err != nil {
		return string(content)
	}
	return buf.String()
}

// extractJSONL pretty-prints each non-blank line of a JSON Lines file.
func extractJSONL(content []byte) string {
	var records []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, extractJSON([]byte(line)))
	}
	return strings.Join(records, "\n")
}
