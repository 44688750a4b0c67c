/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package source loads schedule and results text from files, standard
// input, web pages, S3 objects and saved emails.
package source

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/spf13/afero"
)

const Stdin = "-"

var (
	ErrNoS3     = errors.New("source: no s3 store configured")
	ErrHTTPCode = errors.New("source: unexpected http status")
)

// Fetcher reads "s3://bucket/key" documents.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

type Loader struct {
	fs     afero.Fs
	stdin  io.Reader
	client *http.Client
	s3     Fetcher
	// authDelay is attached to the headers of emailed reports.
	authDelay *time.Duration
	logger    *logging.Logger
}

type Option func(l *Loader)

func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

func WithS3(f Fetcher) Option {
	return func(l *Loader) {
		l.s3 = f
	}
}

// WithAuthorizationDelay sets how long after it was sent an emailed
// report becomes authorized.
func WithAuthorizationDelay(d *time.Duration) Option {
	return func(l *Loader) {
		l.authDelay = d
	}
}

func WithLogger(lg *logging.Logger) Option {
	return func(l *Loader) {
		l.logger = lg
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		client: http.DefaultClient,
		logger: logging.Default(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads the document at uri and returns its lines tagged with uri.
// uri is "-" for standard input, an http(s) URL, an "s3://bucket/key"
// object or a file path. HTML is reduced to its text. Saved emails
// (".eml") carry their send and delivery times for authorization.
func (l *Loader) Load(ctx context.Context, uri string) ([]model.Line, error) {
	var data []byte
	var contentType string
	var err error
	switch {
	case uri == Stdin:
		data, err = io.ReadAll(l.stdin)
		if err != nil {
			return nil, errors.Wrap(err, "source: reading stdin")
		}
	case strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://"):
		data, contentType, err = l.fetchHTTP(ctx, uri)
		if err != nil {
			return nil, err
		}
	case strings.HasPrefix(uri, "s3://"):
		if l.s3 == nil {
			return nil, errors.Wrapf(ErrNoS3, "%v", uri)
		}
		data, err = l.s3.Fetch(ctx, uri)
		if err != nil {
			return nil, err
		}
	default:
		data, err = afero.ReadFile(l.fs, uri)
		if err != nil {
			return nil, errors.Wrapf(err, "source: reading %v", uri)
		}
	}

	var headers *model.Headers
	text := string(data)
	switch {
	case strings.EqualFold(filepath.Ext(uri), ".eml"):
		msg, err := parseEmail(data)
		if err != nil {
			return nil, errors.Wrapf(err, "source: %v", uri)
		}
		text = msg.text
		headers = &model.Headers{AuthorizationDelay: l.authDelay, Dates: msg.dates}
	case isHTML(contentType, data):
		text, err = HTMLText(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "source: %v", uri)
		}
	}

	lines := model.NewLines(uri, text, headers)
	l.logger.Debug("source loaded", "uri", uri, "bytes", len(data), "lines", len(lines))
	return lines, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, uri string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "source: %v", uri)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "source: fetching %v", uri)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Wrapf(ErrHTTPCode, "status %d fetching %s", resp.StatusCode, uri)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "source: reading %v", uri)
	}
	if resp.Header.Get("X-From-Cache") == "1" {
		l.logger.Debug("source cached", "uri", uri)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
