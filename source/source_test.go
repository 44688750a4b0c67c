/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(lines []model.Line) []string {
	ret := make([]string, 0, len(lines))
	for _, l := range lines {
		ret = append(ret, l.Text)
	}
	return ret
}

type fakeS3 map[string]string

func (f fakeS3) Fetch(_ context.Context, uri string) ([]byte, error) {
	data, ok := f[uri]
	if !ok {
		return nil, errors.Newf("no object %v", uri)
	}
	return []byte(data), nil
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.txt",
		[]byte("Example League\r\nleague Division 1\n"), 0o644))
	l := NewLoader(WithFs(fs), WithLogger(logging.NewNop()))

	lines, err := l.Load(context.Background(), "results.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Example League", "league Division 1", ""}, texts(lines))
	assert.Equal(t, "results.txt:2", lines[1].Tag.String())
	assert.Nil(t, lines[0].Tag.Headers)

	_, err = l.Load(context.Background(), "missing.txt")
	assert.Error(t, err)
}

func TestLoadStdin(t *testing.T) {
	l := NewLoader(WithStdin(strings.NewReader("Example League")), WithLogger(logging.NewNop()))
	lines, err := l.Load(context.Background(), Stdin)
	require.NoError(t, err)
	assert.Equal(t, []string{"Example League"}, texts(lines))
	assert.Equal(t, "-", lines[0].Tag.DataTag)
}

func TestLoadS3(t *testing.T) {
	l := NewLoader(WithLogger(logging.NewNop()))
	_, err := l.Load(context.Background(), "s3://league/results.txt")
	assert.True(t, errors.Is(err, ErrNoS3))

	l = NewLoader(WithS3(fakeS3{"s3://league/results.txt": "Example League\nleague D1"}),
		WithLogger(logging.NewNop()))
	lines, err := l.Load(context.Background(), "s3://league/results.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Example League", "league D1"}, texts(lines))
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fixtures":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><head><title>x</title><script>var a;</script></head><body>
<h1>Example   League</h1>
<table>
<tr><td>Sat</td><td>12 Oct 2024</td><td>Division 1</td><td>Reading</td><td>Newbury</td></tr>
<tr><td>Sat</td><td>19 Oct 2024</td><td>Division 1</td><td>Newbury</td><td>Reading</td></tr>
</table>
<p>league Division 1<br>Reading 1-0 Newbury</p>
</body></html>`)
		case "/plain":
			fmt.Fprint(w, "Example League\nleague D1")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	l := NewLoader(WithHTTPClient(srv.Client()), WithLogger(logging.NewNop()))

	lines, err := l.Load(context.Background(), srv.URL+"/fixtures")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Example League",
		"Sat\t12 Oct 2024\tDivision 1\tReading\tNewbury",
		"Sat\t19 Oct 2024\tDivision 1\tNewbury\tReading",
		"league Division 1",
		"Reading 1-0 Newbury",
	}, texts(lines))

	lines, err = l.Load(context.Background(), srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"Example League", "league D1"}, texts(lines))

	_, err = l.Load(context.Background(), srv.URL+"/missing")
	assert.True(t, errors.Is(err, ErrHTTPCode))
}

const plainEmail = "From: captain@example.org\r\n" +
	"To: results@example.org\r\n" +
	"Subject: Division 1 result\r\n" +
	"Received: from mx.example.org by mail.example.org; Sat, 12 Oct 2024 21:05:00 +0000\r\n" +
	"Date: Sat, 12 Oct 2024 21:00:00 +0000\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"league Division 1\r\n" +
	"Reading 1-0 Newbury\r\n"

func TestLoadEmail(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "mail/result.eml", []byte(plainEmail), 0o644))
	delay := 5 * 24 * time.Hour
	l := NewLoader(WithFs(fs), WithAuthorizationDelay(&delay), WithLogger(logging.NewNop()))

	lines, err := l.Load(context.Background(), "mail/result.eml")
	require.NoError(t, err)
	assert.Equal(t, []string{"league Division 1", "Reading 1-0 Newbury", ""}, texts(lines))

	h := lines[0].Tag.Headers
	require.NotNil(t, h)
	assert.Equal(t, &delay, h.AuthorizationDelay)
	require.Len(t, h.Dates, 2)
	latest, ok := h.Latest()
	require.True(t, ok)
	assert.True(t, latest.Equal(time.Date(2024, 10, 12, 21, 5, 0, 0, time.UTC)))
}

func TestLoadMultipartEmail(t *testing.T) {
	msg := "Date: Sat, 12 Oct 2024 21:00:00 +0000\r\n" +
		"Content-Type: multipart/alternative; boundary=XYZ\r\n" +
		"\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html part</p>\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Reading 1-0 Newbury=\r\n" +
		" extra\r\n" +
		"--XYZ--\r\n"
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "result.EML", []byte(msg), 0o644))
	l := NewLoader(WithFs(fs), WithLogger(logging.NewNop()))

	lines, err := l.Load(context.Background(), "result.EML")
	require.NoError(t, err)
	assert.Equal(t, "Reading 1-0 Newbury extra", lines[0].Text)
	require.NotNil(t, lines[0].Tag.Headers)
	assert.Nil(t, lines[0].Tag.Headers.AuthorizationDelay)
	assert.Len(t, lines[0].Tag.Headers.Dates, 1)
}

func TestHTMLText(t *testing.T) {
	text, err := HTMLText(strings.NewReader("<div>one<div>two</div></div><ul><li>a b</li><li>c</li></ul>"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\na b\nc", text)
}
