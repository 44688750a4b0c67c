/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package schedule

import (
	"strconv"
	"strings"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/model"
)

func parseDatePrefix(text string) (string, int, bool) {
	return internal.ParseDatePrefix(text)
}

func parseWholeDate(text string) (string, bool) {
	return internal.ParseWholeDate(text)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// roundDates reads "N date" lines ahead of the player list of an
// all-play-all or swiss section.
func (s *Schedule) roundDates(text string, tag *model.Tag) state {
	if strings.ToLower(text) == "players" {
		return statePlayers
	}
	words := strings.Fields(text)
	first, rest := words[0], words[1:]
	if isDigits(first) {
		if iso, ok := parseWholeDate(strings.Join(rest, " ")); ok {
			rnd, _ := strconv.Atoi(first)
			s.RoundDates[s.section][rnd] = iso
			return stateRoundDates
		}
	}
	for _, w := range rest {
		if !isDigits(w) {
			continue
		}
		if isDigits(first) {
			s.errorf(tag, `"`, text, `" assumed to be invalid date for round `, first)
		} else {
			s.errorf(tag, `"`, text, `" assumed to start with invalid round`)
		}
		s.errorRepeat = false
		return stateRoundDates
	}
	return s.playerLine(text, tag)
}

// playerLine reads "pin name<TAB>affiliation".
func (s *Schedule) playerLine(text string, tag *model.Tag) state {
	parts := splitTextAndPad(text, 1)
	words := strings.Fields(parts[0])
	if len(words) == 0 {
		s.errorf(tag, `No PIN in "`, text, `"`)
		s.errorRepeat = false
		return statePlayers
	}
	first := strings.ToLower(words[0])
	if !isDigits(first) {
		if _, ok := classify.ParseSectionType(first); ok {
			return s.sectionLine(text, tag)
		}
		if _, ok := classify.ParsePlayType(first); ok {
			return s.sectionLine(text, tag)
		}
		s.errorf(tag, `No PIN in "`, text, `"`)
		s.errorRepeat = false
		return statePlayers
	}
	if len(words) == 1 {
		s.errorf(tag, `No player name in "`, text, `"`)
		s.errorRepeat = false
		return statePlayers
	}
	pin, err := strconv.Atoi(first)
	if err != nil {
		s.errorf(tag, `PIN must be digits in "`, text, `"`)
		s.errorRepeat = false
		return statePlayers
	}
	name, codes := model.SplitCodesFromName(strings.Join(words[1:], " "))
	if name == "" {
		s.errorf(tag, `No player name in "`, text, `"`)
		s.errorRepeat = false
		return statePlayers
	}
	if _, ok := s.Pins[s.section][pin]; ok {
		s.errorf(tag, `PIN in "`, text, `" duplicates earlier PIN in section`)
		s.errorRepeat = false
		return statePlayers
	}
	s.Players[s.section][PlayerKey{Name: name, Pin: pin}] = model.NewPlayer(model.Player{
		Name:          name,
		Event:         s.Name,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		Section:       s.section,
		Pin:           pin,
		Affiliation:   normalize(parts[1]),
		ReportedCodes: codes,
		Tag:           tag,
	})
	s.Pins[s.section][pin] = name
	return statePlayers
}
