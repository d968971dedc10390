// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package transfer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-bookshelf/internal/config"
)

// fakeS3 serves path-style GetObject and PutObject from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(req.URL.Path, "/")
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[path] = body
		f.types[path] = req.Header.Get("Content-Type")
		return respond(http.StatusOK, nil), nil
	case http.MethodGet:
		body, ok := f.objects[path]
		if !ok {
			return respond(http.StatusNotFound, []byte(`<Error><Code>NoSuchKey</Code></Error>`)), nil
		}
		return respond(http.StatusOK, body), nil
	}
	return respond(http.StatusNotImplemented, nil), nil
}

func respond(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/xml"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func newFakeS3Client(t *testing.T) (*s3.Client, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return client, fake
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw     string
		want    Target
		wantErr bool
	}{
		{raw: "backup.json", want: Target{Path: "backup.json"}},
		{raw: " /tmp/x.yaml ", want: Target{Path: "/tmp/x.yaml"}},
		{raw: "s3://shelf/backups/today.json", want: Target{Bucket: "shelf", Key: "backups/today.json"}},
		{raw: "s3://shelf", wantErr: true},
		{raw: "s3:///key.json", wantErr: true},
		{raw: "s3://shelf/dir/", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTarget(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetNameAndString(t *testing.T) {
	s3t := Target{Bucket: "shelf", Key: "a/b.yaml"}
	assert.True(t, s3t.IsS3())
	assert.Equal(t, "b.yaml", s3t.Name())
	assert.Equal(t, "s3://shelf/a/b.yaml", s3t.String())

	local := Target{Path: "out/export.json"}
	assert.False(t, local.IsS3())
	assert.Equal(t, "export.json", local.Name())
}

func TestLocalRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	tr := New(fs, config.S3{})
	ctx := context.Background()
	target := Target{Path: "/exports/nested/arc-bookshelf-export.json"}

	require.NoError(t, tr.Write(ctx, target, []byte(`{"books":[]}`)))
	data, err := tr.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, `{"books":[]}`, string(data))

	require.NoError(t, tr.Write(ctx, target, []byte(`{}`)))
	data, err = tr.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data), "writes replace the file")

	assert.True(t, tr.IsDir(Target{Path: "/exports"}))
	assert.False(t, tr.IsDir(target))
}

func TestLocalReadMissing(t *testing.T) {
	tr := New(afero.NewMemMapFs(), config.S3{})
	_, err := tr.Read(context.Background(), Target{Path: "/missing.json"})
	assert.ErrorContains(t, err, "/missing.json")
}

func TestS3RoundTrip(t *testing.T) {
	client, fake := newFakeS3Client(t)
	tr := New(afero.NewMemMapFs(), config.S3{}, WithS3Client(client))
	ctx := context.Background()
	target := Target{Bucket: "shelf", Key: "backups/export.yaml"}

	require.NoError(t, tr.Write(ctx, target, []byte("books: []\n")))
	assert.Equal(t, "books: []\n", string(fake.objects["shelf/backups/export.yaml"]))
	assert.Equal(t, "application/yaml", fake.types["shelf/backups/export.yaml"])

	data, err := tr.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, "books: []\n", string(data))
}

func TestS3ReadMissing(t *testing.T) {
	client, _ := newFakeS3Client(t)
	tr := New(nil, config.S3{}, WithS3Client(client))

	_, err := tr.Read(context.Background(), Target{Bucket: "shelf", Key: "nope.json"})
	assert.ErrorContains(t, err, "s3://shelf/nope.json")
}
