// Package publish uploads synthesized templates to an S3 bucket, where the
// provisioning engine picks them up.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Options configures a Publisher.
type Options struct {
	Bucket string
	Prefix string
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string

	AccessKeyID     string
	SecretAccessKey string
}

// Publisher uploads templates to one bucket.
type Publisher struct {
	client *s3.Client
	bucket string
	prefix string
	log    *zap.Logger
}

// New builds a Publisher with static credentials.
func New(opts Options, log *zap.Logger) (*Publisher, error) {
	if opts.Bucket == "" {
		return nil, errors.New("publish: bucket is required")
	}
	if opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, errors.New("publish: credentials are required")
	}

	clientOpts := s3.Options{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
	}
	if opts.Endpoint != "" {
		clientOpts.BaseEndpoint = aws.String(opts.Endpoint)
		clientOpts.UsePathStyle = true
	}

	return &Publisher{
		client: s3.New(clientOpts),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		log:    log,
	}, nil
}

// Publish uploads one synthesized template and returns its object key.
// Format selects the key extension and content type ("json" or "yaml").
func (p *Publisher) Publish(ctx context.Context, stack string, body []byte, format string) (string, error) {
	contentType := "application/json"
	if format == "yaml" {
		contentType = "application/yaml"
	}
	key := path.Join(p.prefix, stack+"."+format)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	p.log.Info("published template",
		zap.String("stack", stack),
		zap.String("bucket", p.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(body)))
	return key, nil
}
