/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store reads schedule and results documents held in Amazon S3
 * and provides an implementation of httpcache.Cache backed by an S3
 * bucket so remote fetches are cached between runs.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/internal/logging"
)

const cachePrefix = "chessvalidate-cache"

var (
	ErrNotFound = errors.New("s3store: object not found")
	ErrBadURI   = errors.New("s3store: not an s3://bucket/key uri")
)

// ObjectAPI is the part of the S3 client the store uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store caches HTTP responses in one bucket and reads documents from any
// bucket the credentials allow.
type Store struct {
	client ObjectAPI
	bucket string
	// gzip compresses cache entries, whose object keys then end in ".gz".
	gzip   bool
	logger *logging.Logger
	ctx    context.Context
}

type Option func(s *Store)

func WithGzip(gz bool) Option {
	return func(s *Store) {
		s.gzip = gz
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClient replaces the client Init would build from the default AWS
// configuration.
func WithClient(c ObjectAPI) Option {
	return func(s *Store) {
		s.client = c
	}
}

// New returns a Store caching in bucket. Init must be called before use.
func New(ctx context.Context, bucket string, opts ...Option) *Store {
	s := &Store{
		bucket: bucket,
		logger: logging.Default(),
		ctx:    ctx,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init builds the S3 client from the default AWS configuration sources
// (environment, shared config and credentials files) unless one was
// given, then checks the cache bucket is reachable.
func (s *Store) Init() error {
	if s.client == nil {
		cfg, err := config.LoadDefaultConfig(s.ctx)
		if err != nil {
			return errors.Wrap(err, "s3store.init: loading AWS config")
		}
		s.client = s3.NewFromConfig(cfg)
	}
	if s.bucket == "" {
		return nil
	}
	if _, err := s.client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return errors.Wrapf(err, "s3store.init: head bucket %v", s.bucket)
	}
	return nil
}

// ParseURI splits "s3://bucket/key" into bucket and key.
func ParseURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", errors.Wrapf(ErrBadURI, "%q", uri)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.Wrapf(ErrBadURI, "%q", uri)
	}
	return bucket, key, nil
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// Fetch returns the object at "s3://bucket/key".
func (s *Store) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errors.Wrapf(ErrNotFound, "%v", uri)
		}
		return nil, errors.Wrapf(err, "s3store.fetch: %v", uri)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "s3store.fetch: reading %v", uri)
	}
	return data, nil
}

// Get returns the cached response for key.
func (s *Store) Get(key string) ([]byte, bool) {
	objKey := s.objectKey(key)
	resp, err := s.client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		// a missing key is a cache miss
		if !isNoSuchKey(err) {
			s.logger.Warn("s3store get failed", "bucket", s.bucket, "key", objKey, "err", err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if s.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			s.logger.Warn("s3store compressed object unreadable", "bucket", s.bucket,
				"key", objKey, "err", err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		s.logger.Warn("s3store read failed", "bucket", s.bucket, "key", objKey, "err", err)
		return nil, false
	}
	return data, true
}

// Set stores data under key.
func (s *Store) Set(key string, data []byte) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
		Body:   bytes.NewReader(data),
	}
	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			s.logger.Warn("s3store gzip failed", "key", *in.Key, "err", err)
			return
		}
		if err := gw.Close(); err != nil {
			s.logger.Warn("s3store gzip failed", "key", *in.Key, "err", err)
			return
		}
		in.Body = &buf
		in.ContentEncoding = aws.String("gzip")
	}
	if _, err := s.client.PutObject(s.ctx, in); err != nil {
		s.logger.Warn("s3store put failed", "bucket", s.bucket, "key", *in.Key, "err", err)
	}
}

func (s *Store) Delete(key string) {
	objKey := s.objectKey(key)
	if _, err := s.client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	}); err != nil {
		s.logger.Warn("s3store delete failed", "bucket", s.bucket, "key", objKey, "err", err)
	}
}

func (s *Store) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := cachePrefix + "/" + hex.EncodeToString(sum[:])
	if s.gzip {
		objKey += ".gz"
	}
	return objKey
}
