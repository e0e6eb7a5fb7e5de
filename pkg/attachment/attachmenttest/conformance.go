// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package attachmenttest provides a shared conformance test suite for
// attachment.Source implementations. Each source should call
// RunConformanceTests from its own _test.go file.
package attachmenttest

import (
	"context"
	"errors"
	"testing"

	"github.com/leseb/openresponses-cli/pkg/attachment"
)

// Fixture is the content every conformance run seeds, keyed by location.
// Locations have the form "bucket/key" so object stores can serve them too.
var Fixture = map[string][]byte{
	"docs/hello.txt":         []byte("hello"),
	"docs/nested/report.csv": []byte("a,b\n1,2"),
	"docs/nested/empty.md":   {},
}

// RunConformanceTests exercises a Source against the shared contract.
// newSource is called once per sub-test and must return a source that
// serves exactly the Fixture entries.
func RunConformanceTests(t *testing.T, newSource func(t *testing.T, files map[string][]byte) attachment.Source) {
	t.Helper()

	t.Run("Fetch", func(t *testing.T) {
		src := newSource(t, Fixture)

		doc, err := src.Fetch(context.Background(), "docs/hello.txt")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if doc.Name != "hello.txt" || string(doc.Content) != "hello" {
			t.Errorf("Fetch returned %q with %q", doc.Name, doc.Content)
		}
	})

	t.Run("FetchNested", func(t *testing.T) {
		src := newSource(t, Fixture)

		doc, err := src.Fetch(context.Background(), "docs/nested/report.csv")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if doc.Name != "report.csv" {
			t.Errorf("Name = %q, want report.csv", doc.Name)
		}
	})

	t.Run("FetchEmpty", func(t *testing.T) {
		src := newSource(t, Fixture)

		doc, err := src.Fetch(context.Background(), "docs/nested/empty.md")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if len(doc.Content) != 0 {
			t.Errorf("expected empty content, got %d bytes", len(doc.Content))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		src := newSource(t, Fixture)

		_, err := src.Fetch(context.Background(), "docs/missing.txt")
		if !errors.Is(err, attachment.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
