/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// email is the text and timestamps of a saved email.
type email struct {
	text  string
	dates []time.Time
}

// emailDates returns the Date header and the delivery time of each
// Received header that can be read.
func emailDates(h mail.Header) []time.Time {
	var dates []time.Time
	if d, err := h.Date(); err == nil {
		dates = append(dates, d)
	}
	for _, r := range h["Received"] {
		idx := strings.LastIndex(r, ";")
		if idx < 0 {
			continue
		}
		if d, err := mail.ParseDate(strings.TrimSpace(r[idx+1:])); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}

func decodeBody(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	}
	return r
}

// bodyText returns the text of a message body. Of the parts of a
// multipart body the plain text one is preferred, then html.
func bodyText(contentType, encoding string, body io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}
	body = decodeBody(body, encoding)

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(body, params["boundary"])
		var htmlPart string
		for {
			p, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return "", errors.Wrap(err, "source: reading multipart email")
			}
			text, err := bodyText(p.Header.Get("Content-Type"),
				p.Header.Get("Content-Transfer-Encoding"), p)
			if err != nil {
				return "", err
			}
			partType, _, _ := mime.ParseMediaType(p.Header.Get("Content-Type"))
			switch {
			case partType == "text/plain" || partType == "":
				return text, nil
			case htmlPart == "" && (partType == "text/html" || strings.HasPrefix(partType, "multipart/")):
				htmlPart = text
			}
		}
		return htmlPart, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.Wrap(err, "source: reading email body")
	}
	if mediaType == "text/html" {
		return HTMLText(bytes.NewReader(data))
	}
	return string(data), nil
}

func parseEmail(data []byte) (*email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "source: reading email")
	}
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}
	text, err := bodyText(contentType, msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return nil, err
	}
	return &email{text: text, dates: emailDates(msg.Header)}, nil
}
