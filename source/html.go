/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "blockquote": {}, "caption": {}, "dd": {},
	"div": {}, "dl": {}, "dt": {}, "footer": {}, "form": {}, "h1": {},
	"h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {},
	"hr": {}, "li": {}, "main": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tbody": {}, "thead": {}, "tfoot": {},
	"tr": {}, "ul": {},
}

// htmlWriter collects the text of a page. Block elements start new lines
// and table cells on a row are separated by tabs, so a fixture table
// reads like a typed fixture list.
type htmlWriter struct {
	sb      strings.Builder
	pending string
}

func (w *htmlWriter) text(s string) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return
	}
	if w.pending != "" {
		w.sb.WriteString(w.pending)
		w.pending = ""
	}
	w.sb.WriteString(s)
}

func (w *htmlWriter) lineBreak() {
	if w.sb.Len() > 0 {
		w.pending = "\n"
	}
}

func (w *htmlWriter) cellBreak() {
	if w.pending == "" && w.sb.Len() > 0 {
		w.pending = "\t"
	}
}

func (w *htmlWriter) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		node := goquery.NodeName(c)
		switch node {
		case "#text":
			w.text(c.Text())
			return
		case "script", "style", "head", "#comment":
			return
		case "br":
			w.lineBreak()
			return
		}
		_, block := blockElements[node]
		if block {
			w.lineBreak()
		}
		if node == "td" || node == "th" {
			if c.Prev().Length() > 0 {
				w.cellBreak()
			}
		}
		w.walk(c)
		if block {
			w.lineBreak()
		}
	})
}

// HTMLText returns the visible text of an HTML document as lines.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", errors.Wrap(err, "source: parsing html")
	}
	w := &htmlWriter{}
	w.walk(doc.Selection)
	return w.sb.String(), nil
}

func isHTML(contentType string, data []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 512)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
