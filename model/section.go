/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

import (
	"strconv"
	"strings"
)

// SectionInfo holds what every reported section has.
type SectionInfo struct {
	Competition string
	// Order sorts duplicate reports, latest last.
	Order int
	// Source distinguishes independent reports of the same match.
	Source string
	Date   string
	Day    string
	PDate  string
	DateOK bool
	Tag    *Tag
}

func (s *SectionInfo) Equal(other *SectionInfo) bool {
	return s.Competition == other.Competition &&
		s.Order == other.Order &&
		s.Source == other.Source &&
		s.Date == other.Date &&
		s.Day == other.Day &&
		s.PDate == other.PDate &&
		s.DateOK == other.DateOK
}

// Section is the games of a tournament section or individual games.
type Section struct {
	SectionInfo
	Games []GameRecord
}

// MatchReport is one report of a team match.
type MatchReport struct {
	SectionInfo
	Round     string
	HomeTeam  string
	HomeScore string
	AwayTeam  string
	AwayScore string
	Default   bool
	Games     []*MatchGame
}

func (m *MatchReport) Equal(other *MatchReport) bool {
	if !m.SectionInfo.Equal(&other.SectionInfo) ||
		m.Round != other.Round ||
		m.HomeTeam != other.HomeTeam ||
		m.HomeScore != other.HomeScore ||
		m.AwayTeam != other.AwayTeam ||
		m.AwayScore != other.AwayScore ||
		m.Default != other.Default ||
		len(m.Games) != len(other.Games) {
		return false
	}
	for idx := range m.Games {
		if !m.Games[idx].Equal(other.Games[idx]) {
			return false
		}
	}
	return true
}

// UnfinishedGamesAndScoreConsistency returns the games without a result
// and whether the match score agrees with the game results. A match
// reported without a score, or defaulted with every game finished, is
// consistent. So is a match with a game whose result code has no score
// contribution, since its scores cannot be checked.
func (m *MatchReport) UnfinishedGamesAndScoreConsistency() ([]*MatchGame, bool) {
	var unfinished []*MatchGame
	var difference, points float64
	unknownCode := false
	for _, g := range m.Games {
		if !g.Result.IsFinished() {
			unfinished = append(unfinished, g)
		}
		if !g.CountedInMatchScore() {
			continue
		}
		if d, ok := g.Result.ScoreDifference(); ok {
			difference += d
		} else {
			unknownCode = true
		}
		if t, ok := g.Result.ScoreTotal(); ok {
			points += t
		} else {
			unknownCode = true
		}
	}
	if unknownCode {
		return unfinished, true
	}
	if m.HomeScore == "" && m.AwayScore == "" {
		return unfinished, true
	}
	if m.Default && len(unfinished) == 0 {
		return unfinished, true
	}
	home := parseScore(m.HomeScore)
	away := parseScore(m.AwayScore)
	if points != home+away || difference != home-away {
		return unfinished, false
	}
	return unfinished, true
}

// TeamDetails returns round, home team, home score, away team, away score
// and the default flag for tabular output.
func (m *MatchReport) TeamDetails() (string, string, string, string, string, bool) {
	return m.Round, m.HomeTeam, m.HomeScore, m.AwayTeam, m.AwayScore, m.Default
}

func parseScore(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), "½", ".5")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
