// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package local reads attachments from the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leseb/openresponses-cli/pkg/attachment"
)

func init() {
	attachment.Providers.Register("file", func(_ context.Context, params map[string]string) (attachment.Source, error) {
		return New(params["base_dir"]), nil
	})
}

// compile-time check
var _ attachment.Source = (*Source)(nil)

// Source reads files relative to baseDir (the working directory when empty).
type Source struct {
	baseDir string
}

// New creates a filesystem source.
func New(baseDir string) *Source {
	return &Source{baseDir: baseDir}
}

// Fetch reads the file at location.
func (s *Source) Fetch(_ context.Context, location string) (*attachment.Document, error) {
	path := location
	if s.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, attachment.ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > attachment.MaxBytes {
		return nil, fmt.Errorf("%s: %d bytes exceeds limit of %d", path, info.Size(), attachment.MaxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &attachment.Document{Name: filepath.Base(path), Content: data}, nil
}
