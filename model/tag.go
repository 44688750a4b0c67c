/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

import (
	"time"
)

// Headers carries the email metadata of a report source. Sources without
// headers, such as downloaded files, are always authorized.
type Headers struct {
	// AuthorizationDelay is nil when no delay applies.
	AuthorizationDelay *time.Duration
	// Dates holds the Date and delivery timestamps of the email.
	Dates []time.Time
}

// Latest returns the most recent of h.Dates.
func (h *Headers) Latest() (time.Time, bool) {
	if h == nil || len(h.Dates) == 0 {
		return time.Time{}, false
	}
	latest := h.Dates[0]
	for _, d := range h.Dates[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}

// Tag identifies where a line of text came from.
type Tag struct {
	// DataTag names the source document, e.g. an email file name.
	DataTag string
	// TeamOne and TeamTwo are set for lines derived from a match.
	TeamOne string
	TeamTwo string
	// LineNo is the 1-based line within the source, 0 if unknown.
	LineNo  int
	Headers *Headers
}

func (t *Tag) String() string {
	if t == nil {
		return ""
	}
	if t.LineNo == 0 {
		return t.DataTag
	}
	return t.DataTag + ":" + itoa(t.LineNo)
}

// Line is one line of schedule or results text and its origin.
type Line struct {
	Text string
	Tag  *Tag
}

// NewLines splits text into lines tagged with dataTag and line numbers.
func NewLines(dataTag string, text string, headers *Headers) []Line {
	raw := splitLines(text)
	lines := make([]Line, 0, len(raw))
	for idx, l := range raw {
		lines = append(lines, Line{
			Text: l,
			Tag:  &Tag{DataTag: dataTag, LineNo: idx + 1, Headers: headers},
		})
	}
	return lines
}

// ReportError is a problem found in schedule or results text. Source is
// nil for problems not tied to one line.
type ReportError struct {
	Message string
	Source  *Tag
}

func (e ReportError) String() string {
	return e.Message
}

type ErrorLog []ReportError

func (l *ErrorLog) Append(msg string, source *Tag) {
	*l = append(*l, ReportError{Message: msg, Source: source})
}

// Blank appends an empty line, used to separate blocks of messages.
func (l *ErrorLog) Blank() {
	*l = append(*l, ReportError{})
}

func (l ErrorLog) Messages() []string {
	ret := make([]string, 0, len(l))
	for _, e := range l {
		ret = append(ret, e.Message)
	}
	return ret
}
