/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	crossTableRow    = regexp.MustCompile(`^(\d*)\.?((?:\s+[wb]?[-+=~])* *)$`)
	crossTableResult = regexp.MustCompile(`^([wb]?)([-+=~])$`)
	swissTableRow    = regexp.MustCompile(
		`^(\d*)\.?((?:\s+(?:x|--|def[-+]|bye[-=+]|[wb][1-9][0-9]*[-=+pme]))* *)$`)
	swissTableResult = regexp.MustCompile(
		`^(?:(x|--|def[-+]|bye[-=+])|([wb])([1-9][0-9]*)([-=+pme]))$`)
	matchName = regexp.MustCompile(
		`^(.*?)(\s[0-9]*(?:\.5)?\s*-\s*[0-9]*(?:\.5)?\s)(.*)$`)
	gameResult = regexp.MustCompile(
		`^(?:(\d*(?:\.\d*)?)?([w|b])?[ \t])?(.*?[ \t]|[ \t]*)?` +
			`(dbld|def-|def[=+]|bye[=+]|draw|1-0|0-1|void|unfinished|default)` +
			`([ \t].*)?$`)
	individualGame = regexp.MustCompile(
		`^(.*?)(\s[dD][rR][aA][wW]\s|\s1-0\s|\s0-1\s)(.*)$`)
)

var oppositeScore = map[string]string{
	"-": "+",
	"m": "+",
	"=": "=",
	"e": "=",
	"+": "-",
	"p": "-",
	"1": "0",
	"0": "1",
	"x": "x",
	"~": "~",
}

var oppositeColour = map[string]string{
	"w": "b",
	"b": "w",
	"":  "",
}

// OppositeScore returns the score seen by the opponent. "p", "m" and
// "e" are the +, - and = of games decided by default or adjudication.
func OppositeScore(score string) string {
	return oppositeScore[score]
}

func OppositeColour(colour string) string {
	return oppositeColour[colour]
}

// NormalizeScore maps p, m and e to +, - and =.
func NormalizeScore(score string) string {
	return oppositeScore[oppositeScore[score]]
}

// ParseCrossTableRow splits an all-play-all row "<pin>. <result>*" into
// its pin, "" if omitted, and result entries.
func ParseCrossTableRow(text string) (string, []string, bool) {
	m := crossTableRow.FindStringSubmatch(text)
	if m == nil {
		return "", nil, false
	}
	return m[1], strings.Fields(m[2]), true
}

// ParseCrossTableResult splits an entry like "w+" into colour and score.
func ParseCrossTableResult(entry string) (string, string, bool) {
	m := crossTableResult.FindStringSubmatch(entry)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func ParseSwissRow(text string) (string, []string, bool) {
	m := swissTableRow.FindStringSubmatch(text)
	if m == nil {
		return "", nil, false
	}
	return m[1], strings.Fields(m[2]), true
}

// SwissEntry is one round of a swiss pairing card.
type SwissEntry struct {
	// NotPlayed is x, --, def+, def-, bye+, bye= or bye- when no game
	// was played.
	NotPlayed string
	Colour    string
	Opponent  int
	Score     string
}

func ParseSwissResult(entry string) (SwissEntry, bool) {
	m := swissTableResult.FindStringSubmatch(entry)
	if m == nil {
		return SwissEntry{}, false
	}
	if m[1] != "" {
		return SwissEntry{NotPlayed: m[1]}, true
	}
	opp, err := strconv.Atoi(m[3])
	if err != nil {
		return SwissEntry{}, false
	}
	return SwissEntry{Colour: m[2], Opponent: opp, Score: m[4]}, true
}

// MatchName is a parsed "Home 2.5-1.5 Away" line. HomeText may still
// carry a leading date and round number.
type MatchName struct {
	HomeText  string
	AwayTeam  string
	HomeScore string
	AwayScore string
}

func ParseMatchName(text string) (MatchName, bool) {
	m := matchName.FindStringSubmatch(text)
	if m == nil {
		return MatchName{}, false
	}
	ret := MatchName{
		HomeText: m[1],
		AwayTeam: strings.Join(strings.Fields(m[3]), " "),
	}
	score := strings.Split(strings.ToLower(strings.TrimSpace(m[2])), "-")
	if len(score) > 1 {
		ret.HomeScore = strings.TrimRight(score[0], " \t")
		ret.AwayScore = strings.TrimLeft(score[1], " \t")
	}
	return ret, true
}

// GameLine is a parsed game result line within a match.
type GameLine struct {
	Board  string
	Colour string
	// DatePlayer is the home player, possibly preceded by a date.
	DatePlayer string
	Score      string
	AwayPlayer string
}

func ParseGameResult(text string) (GameLine, bool) {
	m := gameResult.FindStringSubmatch(text)
	if m == nil {
		return GameLine{}, false
	}
	return GameLine{
		Board:      m[1],
		Colour:     m[2],
		DatePlayer: strings.Join(strings.Fields(m[3]), " "),
		Score:      strings.ToLower(strings.TrimSpace(m[4])),
		AwayPlayer: strings.Join(strings.Fields(m[5]), " "),
	}, true
}

// IndividualGame is a parsed "White 1-0 Black" line. White may carry a
// leading date.
type IndividualGame struct {
	White string
	Score string
	Black string
}

func ParseIndividualGame(text string) (IndividualGame, bool) {
	m := individualGame.FindStringSubmatch(text)
	if m == nil {
		return IndividualGame{}, false
	}
	return IndividualGame{
		White: strings.Join(strings.Fields(m[1]), " "),
		Score: strings.ToLower(strings.TrimSpace(m[2])),
		Black: strings.Join(strings.Fields(m[3]), " "),
	}, true
}
