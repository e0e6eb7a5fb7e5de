// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/leseb/openresponses-cli/pkg/attachment"
	"github.com/leseb/openresponses-cli/pkg/attachment/attachmenttest"
)

type fakeGetter struct {
	objects map[string][]byte // "bucket/key" -> body
	err     error
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestConformance(t *testing.T) {
	attachmenttest.RunConformanceTests(t, func(t *testing.T, files map[string][]byte) attachment.Source {
		return &Source{client: &fakeGetter{objects: files}}
	})
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		location   string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"bucket/key.txt", "bucket", "key.txt", false},
		{"bucket/docs/2024/report.pdf", "bucket", "docs/2024/report.pdf", false},
		{"bucket", "", "", true},
		{"bucket/", "", "", true},
		{"/key", "", "", true},
	}
	for _, tt := range tests {
		bucket, key, err := SplitLocation(tt.location)
		if (err != nil) != tt.wantErr {
			t.Errorf("SplitLocation(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			continue
		}
		if bucket != tt.wantBucket || key != tt.wantKey {
			t.Errorf("SplitLocation(%q) = %q, %q", tt.location, bucket, key)
		}
	}
}

func TestFetch(t *testing.T) {
	src := &Source{client: &fakeGetter{objects: map[string][]byte{
		"docs/reports/q1.md": []byte("# Q1"),
	}}}

	doc, err := src.Fetch(context.Background(), "docs/reports/q1.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "q1.md" || string(doc.Content) != "# Q1" {
		t.Errorf("got %+v", doc)
	}
}

func TestFetch_NotFound(t *testing.T) {
	src := &Source{client: &fakeGetter{objects: map[string][]byte{}}}

	_, err := src.Fetch(context.Background(), "docs/missing.txt")
	if !errors.Is(err, attachment.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetch_OtherError(t *testing.T) {
	src := &Source{client: &fakeGetter{err: errors.New("access denied")}}

	_, err := src.Fetch(context.Background(), "docs/a.txt")
	if err == nil || errors.Is(err, attachment.ErrNotFound) {
		t.Errorf("error = %v, want non-ErrNotFound failure", err)
	}
}

func TestFetch_OversizeTruncatedForCaller(t *testing.T) {
	big := bytes.Repeat([]byte("a"), attachment.MaxBytes+10)
	src := &Source{client: &fakeGetter{objects: map[string][]byte{"b/big.txt": big}}}

	doc, err := src.Fetch(context.Background(), "b/big.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content) != attachment.MaxBytes+1 {
		t.Errorf("read %d bytes, want %d", len(doc.Content), attachment.MaxBytes+1)
	}
}
