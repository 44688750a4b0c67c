/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

const (
	ISODateLayout = "2006-01-02"
	// maxDateWords bounds the words tried as a leading date, as in
	// "Saturday 12 October 2024".
	maxDateWords = 5
)

var (
	numericDate = regexp.MustCompile(`^(\d{1,2})([/.-])(\d{1,2})([/.-])(\d{2,4})$`)
	weekdays    = []string{"monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday"}
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return ParseDate(s)
}

// ParseDate reads a free-form date. Numeric dates are day first, as in
// 12/10/2024 for 12 October.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if m := numericDate.FindStringSubmatch(s); m != nil {
		s = m[3] + m[2] + m[1] + m[4] + m[5]
	}
	return dateparse.ParseAny(s)
}

// ParseDatePrefix finds the longest run of leading words of text that
// reads as a date. It returns the ISO date and the byte offset in text
// just past the date. Bare numbers are never dates, so "1 Smith" has no
// date prefix.
func ParseDatePrefix(text string) (string, int, bool) {
	ends := wordEnds(text)
	limit := len(ends)
	if limit > maxDateWords {
		limit = maxDateWords
	}
	for n := limit; n > 0; n-- {
		candidate := text[:ends[n-1]]
		if !looksLikeDate(candidate) {
			continue
		}
		t, err := ParseDate(stripWeekday(candidate))
		if err != nil {
			continue
		}
		return t.Format(ISODateLayout), ends[n-1], true
	}
	return "", 0, false
}

// ParseWholeDate reports the ISO date when all of text is a date.
func ParseWholeDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	iso, off, ok := ParseDatePrefix(text)
	if !ok || off != len(text) {
		return "", false
	}
	return iso, true
}

// WeekdayName returns the English day name of an ISO date.
func WeekdayName(iso string) (string, bool) {
	t, err := time.Parse(ISODateLayout, iso)
	if err != nil {
		return "", false
	}
	return t.Weekday().String(), true
}

func wordEnds(text string) []int {
	var ends []int
	inWord := false
	for idx, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				ends = append(ends, idx)
			}
			inWord = false
			continue
		}
		inWord = true
	}
	if inWord {
		ends = append(ends, len(text))
	}
	return ends
}

func looksLikeDate(s string) bool {
	seps := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			return hasDigit(s)
		}
		if r == '-' || r == '/' || r == '.' {
			seps++
		}
	}
	return seps >= 2
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func stripWeekday(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}
	first := strings.ToLower(strings.TrimRight(fields[0], ","))
	if len(first) < 3 {
		return s
	}
	for _, d := range weekdays {
		if strings.HasPrefix(d, first) {
			return strings.Join(fields[1:], " ")
		}
	}
	return s
}
