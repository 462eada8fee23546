// Package s3 stores run artifacts in an S3-compatible bucket under
// <runID>/<path>.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/specialistvlad/axiomgrid/internal/artifactsink"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/executor"
)

// Config holds the bucket connection settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Transport is optional; the minio default is used when nil.
	Transport http.RoundTripper
}

// Sink is an artifactsink.Sink backed by minio-go.
type Sink struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

var _ artifactsink.Sink = (*Sink)(nil)

// New validates cfg and creates the client. No request is made until the
// first Put.
func New(cfg Config) (*Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(access, secret, ""),
		Secure:    cfg.UseSSL,
		Region:    region,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Sink{client: client, bucketName: bucket, region: region}, nil
}

func (s *Sink) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *Sink) Put(ctx context.Context, runID string, f executor.GeneratedFile) error {
	key, err := objectKey(runID, f.Path)
	if err != nil {
		return err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	content := []byte(f.Content)
	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType(f.Path),
		UserMetadata: map[string]string{
			"unit":     string(f.Unit),
			"language": f.Language,
		},
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	ctxlog.FromContext(ctx).Debug("Uploaded artifact.", "bucket", s.bucketName, "key", key, "size", len(content))
	return nil
}

func objectKey(runID, path string) (string, error) {
	runID = strings.TrimSpace(runID)
	normalized := strings.TrimLeft(strings.TrimSpace(path), "/")
	if runID == "" {
		return "", fmt.Errorf("run_id is required")
	}
	if normalized == "" {
		return "", fmt.Errorf("path is required")
	}
	return runID + "/" + normalized, nil
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "text/plain; charset=utf-8"
}
