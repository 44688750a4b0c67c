/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
)

func TestParseDatePrefix(t *testing.T) {
	cases := []struct {
		text   string
		iso    string
		offset int
		ok     bool
	}{
		{"2024-10-12 Team A", "2024-10-12", 10, true},
		{"12/10/2024 Team A", "2024-10-12", 10, true},
		{"12 Feb 2024 Team A", "2024-02-12", 11, true},
		{"Monday 12 Feb 2024", "2024-02-12", 18, true},
		{"1 Team A", "", 0, false},
		{"Team A", "", 0, false},
		{"", "", 0, false},
	}
	for _, tc := range cases {
		iso, offset, ok := ParseDatePrefix(tc.text)
		if ok != tc.ok || iso != tc.iso || offset != tc.offset {
			t.Errorf("ParseDatePrefix(%q) = %q, %d, %v; want %q, %d, %v",
				tc.text, iso, offset, ok, tc.iso, tc.offset, tc.ok)
		}
	}
}

func TestParseWholeDate(t *testing.T) {
	if iso, ok := ParseWholeDate(" 2024-09-01 "); !ok || iso != "2024-09-01" {
		t.Errorf("got %q %v", iso, ok)
	}
	if _, ok := ParseWholeDate("2024-09-01 extra"); ok {
		t.Errorf("trailing text accepted as date")
	}
}

func TestWeekdayName(t *testing.T) {
	day, ok := WeekdayName("2024-10-12")
	if !ok || day != "Saturday" {
		t.Errorf("got %q %v; want Saturday", day, ok)
	}
	if _, ok := WeekdayName("00000000"); ok {
		t.Errorf("invalid date has a weekday")
	}
}
