/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

// MatchFixture is a scheduled match between two teams.
type MatchFixture struct {
	Competition string
	Source      string
	Round       string
	HomeTeam    string
	AwayTeam    string
	// Date is ISO formatted, "" when not given and "00000000" when the
	// given date could not be read.
	Date string
	Day  string
	// PDate is the date as written in the fixture list.
	PDate  string
	DateOK bool
	Tag    *Tag
}

func (f *MatchFixture) Equal(other *MatchFixture) bool {
	return f.Competition == other.Competition &&
		f.Source == other.Source &&
		f.Round == other.Round &&
		f.HomeTeam == other.HomeTeam &&
		f.AwayTeam == other.AwayTeam &&
		f.Date == other.Date &&
		f.Day == other.Day &&
		f.PDate == other.PDate &&
		f.DateOK == other.DateOK
}
