// Package export writes the customer roster out of the console, either
// to a local file or to an S3-compatible bucket.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sabastianrafa/powergym-ag-system/internal/filex"
)

// Sink receives one finished export.
type Sink interface {
	Put(ctx context.Context, body []byte) error
	// Location is a human-readable destination, e.g. "s3://bucket/key".
	Location() string
}

// FileSink writes the export to a local file readable only by the owner.
type FileSink struct {
	Path string
}

func (f FileSink) Put(ctx context.Context, body []byte) error {
	if err := filex.EnsureParentDir(f.Path); err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, body, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (f FileSink) Location() string { return f.Path }

// PutObjectAPI is the part of *s3.Client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Sink struct {
	Client PutObjectAPI
	Bucket string
	Key    string
}

func (s S3Sink) Put(ctx context.Context, body []byte) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.Key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return nil
}

func (s S3Sink) Location() string { return "s3://" + s.Bucket + "/" + s.Key }

// S3Config addresses an S3-compatible store. Endpoint is set for MinIO
// and similar services; empty keys fall back to the default AWS chain.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewS3Client builds an S3 client from cfg.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

var ErrBadDestination = errors.New("export destination must be a file path or s3://bucket/key")

// ParseS3URL splits "s3://bucket/key". ok is false for other schemes.
func ParseS3URL(dest string) (bucket, key string, ok bool, err error) {
	rest, found := strings.CutPrefix(dest, "s3://")
	if !found {
		return "", "", false, nil
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || strings.TrimSpace(key) == "" {
		return "", "", true, ErrBadDestination
	}
	return bucket, key, true, nil
}

// OpenSink resolves dest to a FileSink or, for s3:// URLs, an S3Sink.
func OpenSink(ctx context.Context, dest string, cfg S3Config) (Sink, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return nil, ErrBadDestination
	}

	bucket, key, isS3, err := ParseS3URL(dest)
	if err != nil {
		return nil, err
	}
	if !isS3 {
		return FileSink{Path: dest}, nil
	}

	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return S3Sink{Client: client, Bucket: bucket, Key: key}, nil
}
