/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package classify

import (
	"strings"
)

// SectionType is the format of a section of a schedule or results report.
type SectionType int

const (
	SectionUnknown SectionType = iota
	SectionAllPlayAll
	SectionLeague
	SectionSwiss
	SectionFixtureList
	SectionIndividual
)

var sectionNames = map[string]SectionType{
	"allplayall":  SectionAllPlayAll,
	"league":      SectionLeague,
	"swiss":       SectionSwiss,
	"fixturelist": SectionFixtureList,
	"individual":  SectionIndividual,
}

func (s SectionType) String() string {
	for name, st := range sectionNames {
		if st == s {
			return name
		}
	}
	return "unknown"
}

// ParseSectionType maps a section keyword, in any case, to its type.
func ParseSectionType(word string) (SectionType, bool) {
	st, ok := sectionNames[strings.ToLower(word)]
	return st, ok
}

// IsMatchSection reports whether results for s are team matches.
func (s SectionType) IsMatchSection() bool {
	return s == SectionLeague || s == SectionFixtureList
}

// ParsePlayType reports whether word is rapidplay or normalplay, and
// which.
func ParsePlayType(word string) (rapid bool, ok bool) {
	switch strings.ToLower(word) {
	case "rapidplay":
		return true, true
	case "normalplay":
		return false, true
	}
	return false, false
}

// MatchType says how a league section lists its matches.
type MatchType int

const (
	MatchTypeUnknown MatchType = iota
	// MatchTypeMatches is an explicit list of matches.
	MatchTypeMatches
	// MatchTypeRounds is a list of matches grouped by "round N" lines.
	MatchTypeRounds
	// MatchTypeGenerate generates a round robin.
	MatchTypeGenerate
)

func ParseMatchType(word string) (MatchType, bool) {
	switch strings.ToLower(word) {
	case "matches":
		return MatchTypeMatches, true
	case "rounds":
		return MatchTypeRounds, true
	case "generate":
		return MatchTypeGenerate, true
	}
	return MatchTypeUnknown, false
}

// Kind is what a line of text was recognised as.
type Kind int

const (
	KindUnknown Kind = iota
	KindSection
	KindPlayType
	KindMatchType
	KindColourRule
	KindPlayedOn
	KindSource
	KindRound
	KindDate
	KindGames
	KindMatchDefaulted
	KindPlayers
	KindGameResult
	KindMatchName
	KindSwissRow
	KindCrossTableRow
	KindIndividualGame
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindSection:        "section",
	KindPlayType:       "play type",
	KindMatchType:      "match type",
	KindColourRule:     "colour rule",
	KindPlayedOn:       "played on",
	KindSource:         "source",
	KindRound:          "round",
	KindDate:           "date",
	KindGames:          "games",
	KindMatchDefaulted: "match defaulted",
	KindPlayers:        "players",
	KindGameResult:     "game result",
	KindMatchName:      "match name",
	KindSwissRow:       "swiss row",
	KindCrossTableRow:  "cross table row",
	KindIndividualGame: "individual game",
}

func (k Kind) String() string {
	return kindNames[k]
}

const PlayedOn = "played_on"

// Directive classifies text by its first word. It returns KindUnknown
// for lines which are not keyword directives, along with the words of
// text.
func Directive(text string) (Kind, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return KindUnknown, fields
	}
	first := strings.ToLower(fields[0])
	if _, ok := sectionNames[first]; ok {
		return KindSection, fields
	}
	if _, ok := ParsePlayType(first); ok {
		return KindPlayType, fields
	}
	if _, ok := ParseMatchType(first); ok {
		return KindMatchType, fields
	}
	if _, ok := ParseColourRule(first); ok {
		return KindColourRule, fields
	}
	switch first {
	case PlayedOn:
		return KindPlayedOn, fields
	case "played":
		if len(fields) == 2 && strings.ToLower(fields[1]) == "on" {
			return KindPlayedOn, fields
		}
	case "source":
		return KindSource, fields
	case "round":
		return KindRound, fields
	case "date":
		return KindDate, fields
	case "games":
		return KindGames, fields
	case "matchdefaulted":
		return KindMatchDefaulted, fields
	case "players":
		if len(fields) == 1 {
			return KindPlayers, fields
		}
	}
	return KindUnknown, fields
}

// Classify recognises a stripped line of schedule or results text.
// Directives take precedence, then game results, match names, swiss and
// cross table rows and individual games.
func Classify(text string) Kind {
	text = strings.TrimSpace(text)
	if text == "" {
		return KindUnknown
	}
	if k, _ := Directive(text); k != KindUnknown {
		return k
	}
	if _, ok := ParseGameResult(text); ok {
		return KindGameResult
	}
	if _, ok := ParseMatchName(text); ok {
		return KindMatchName
	}
	if _, _, ok := ParseSwissRow(text); ok {
		return KindSwissRow
	}
	if _, _, ok := ParseCrossTableRow(text); ok {
		return KindCrossTableRow
	}
	if _, ok := ParseIndividualGame(text); ok {
		return KindIndividualGame
	}
	return KindUnknown
}
