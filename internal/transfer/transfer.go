// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package transfer moves snapshot documents between the library and local
// files or S3 objects.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/mtreilly/arc-bookshelf/internal/config"
)

const s3Scheme = "s3://"

// Target is a parsed transfer destination: either a local path or an S3 object.
type Target struct {
	Path   string
	Bucket string
	Key    string
}

// IsS3 reports whether the target names an S3 object.
func (t Target) IsS3() bool { return t.Bucket != "" }

// Name is the base name used to pick a decoder.
func (t Target) Name() string {
	if t.IsS3() {
		return filepath.Base(t.Key)
	}
	return filepath.Base(t.Path)
}

func (t Target) String() string {
	if t.IsS3() {
		return s3Scheme + t.Bucket + "/" + t.Key
	}
	return t.Path
}

// ParseTarget accepts a filesystem path or s3://bucket/key.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, errors.New("empty transfer target")
	}
	if !strings.HasPrefix(raw, s3Scheme) {
		return Target{Path: raw}, nil
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Target{}, fmt.Errorf("invalid S3 target %q (want s3://bucket/key)", raw)
	}
	return Target{Bucket: bucket, Key: key}, nil
}

// S3API is the subset of the S3 client used for transfers.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Transfer reads and writes snapshot documents. The S3 client is created on
// first use so local transfers never touch AWS configuration.
type Transfer struct {
	fs  afero.Fs
	cfg config.S3

	once  sync.Once
	s3    S3API
	s3Err error
}

// Option configures a Transfer.
type Option func(*Transfer)

// WithS3Client uses client instead of one built from the default AWS chain.
func WithS3Client(client S3API) Option {
	return func(t *Transfer) {
		t.s3 = client
		t.once.Do(func() {})
	}
}

// New creates a Transfer over fs. A nil fs uses the OS filesystem.
func New(fs afero.Fs, cfg config.S3, opts ...Option) *Transfer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	t := &Transfer{fs: fs, cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewS3Client builds an S3 client from the default credential chain and cfg.
func NewS3Client(ctx context.Context, cfg config.S3) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (t *Transfer) client(ctx context.Context) (S3API, error) {
	t.once.Do(func() {
		t.s3, t.s3Err = NewS3Client(ctx, t.cfg)
	})
	return t.s3, t.s3Err
}

// Read returns the document stored at target.
func (t *Transfer) Read(ctx context.Context, target Target) ([]byte, error) {
	if !target.IsS3() {
		data, err := afero.ReadFile(t.fs, target.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", target, err)
		}
		return data, nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(target.Bucket),
		Key:    aws.String(target.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	return data, nil
}

// Write stores data at target, replacing what was there. Missing local parent
// directories are created.
func (t *Transfer) Write(ctx context.Context, target Target, data []byte) error {
	if !target.IsS3() {
		if dir := filepath.Dir(target.Path); dir != "." {
			if err := t.fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := afero.WriteFile(t.fs, target.Path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		return nil
	}

	client, err := t.client(ctx)
	if err != nil {
		return err
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(target.Bucket),
		Key:           aws.String(target.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(target.Name())),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", target, err)
	}
	return nil
}

// IsDir reports whether target is an existing local directory.
func (t *Transfer) IsDir(target Target) bool {
	if target.IsS3() {
		return false
	}
	ok, err := afero.IsDir(t.fs, target.Path)
	return err == nil && ok
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/json"
	}
}
