// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package s3 reads attachments from S3 (or an S3-compatible store such as
// MinIO) using s3://bucket/key references.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/leseb/openresponses-cli/pkg/attachment"
)

func init() {
	attachment.Providers.Register("s3", func(ctx context.Context, params map[string]string) (attachment.Source, error) {
		return New(ctx, Options{
			Region:   params["region"],
			Endpoint: params["endpoint"],
		})
	})
}

// compile-time check
var _ attachment.Source = (*Source)(nil)

// Options configures the S3 source. Credentials come from the default AWS
// chain (env, shared config, instance role).
type Options struct {
	Region   string // e.g. "us-east-1"
	Endpoint string // custom endpoint for MinIO compatibility
}

// objectGetter is the subset of *s3.Client used here.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source fetches objects from S3.
type Source struct {
	client objectGetter
}

// New creates an S3-backed Source.
func New(ctx context.Context, opts Options) (*Source, error) {
	optFns := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Opts := []func(*s3.Options){}
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	return &Source{client: s3.NewFromConfig(cfg, s3Opts...)}, nil
}

// SplitLocation splits "bucket/key/with/slashes" into bucket and key.
func SplitLocation(location string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(location, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location %q must be bucket/key", location)
	}
	return bucket, key, nil
}

// Fetch downloads the object at "bucket/key".
func (s *Source) Fetch(ctx context.Context, location string) (*attachment.Document, error) {
	bucket, key, err := SplitLocation(location)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3://%s: %w", location, attachment.ErrNotFound)
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, attachment.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}
	return &attachment.Document{Name: path.Base(key), Content: data}, nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	// Some S3-compatible services return a generic "NotFound" status.
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}
