/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/model"
)

// teamLine reads "team<TAB>club<TAB>alias<TAB>alias...".
func (s *Schedule) teamLine(text string, tag *model.Tag) state {
	parts := splitTextAndPad(text, 2)
	words := strings.Fields(parts[0])
	if len(words) > 0 {
		if _, ok := classify.ParseMatchType(words[0]); ok {
			return s.matchType(text, tag)
		}
	}
	team := strings.Join(words, " ")
	club := normalize(parts[1])
	var aliases []string
	for _, a := range strings.Split(parts[2], "\t") {
		if a = normalize(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	if team == "" {
		s.errorf(tag, `No team name in "`, text, `"`)
		s.errorRepeat = false
		return stateTeams
	}
	bad := false
	if _, ok := s.Teams[s.section][team]; ok {
		s.errorf(tag, `Team name "`, team, `" in "`, text,
			`" is a duplicate in section "`, s.section, `"`)
		s.errorRepeat = false
		bad = true
	}
	for _, alias := range aliases {
		if _, ok := s.Teams[s.section][alias]; ok {
			s.errorf(tag, `Team name (alias) "`, alias, `" in "`, text,
				`" is a duplicate in section "`, s.section, `"`)
			s.errorRepeat = false
			bad = true
		} else if alias == team {
			s.errorf(tag, `Team name (alias) "`, alias, `" in "`, text,
				`" is same as team name in section "`, s.section, `"`)
			s.errorRepeat = false
			bad = true
		}
	}
	if bad {
		return stateTeams
	}
	if club == "" {
		club = DefaultClubForTeam(team)
	}
	s.Teams[s.section][team] = &Team{Name: team, Club: club, Section: s.section}
	s.TeamNumber[s.section][team] = len(s.TeamNumber[s.section]) + 1
	s.teamOrder[s.section] = append(s.teamOrder[s.section], team)
	s.setTeamAliases(team, aliases)
	return stateTeams
}

// setTeamAliases records that team and each of its aliases name the
// same team.
func (s *Schedule) setTeamAliases(team string, aliases []string) {
	sta := s.TeamAlias[s.section]
	names := append([]string{team}, aliases...)
	for _, name := range names {
		m, ok := sta[name]
		if !ok {
			m = make(map[string]string)
			sta[name] = m
		}
		for _, other := range names {
			if _, ok := m[other]; !ok {
				m[other] = team
			}
		}
	}
}

// matchType reads "matches", "rounds N" or "generate N".
func (s *Schedule) matchType(text string, tag *model.Tag) state {
	words := strings.Fields(text)
	first := strings.ToLower(words[0])
	mt, ok := classify.ParseMatchType(first)
	if !ok {
		if s.errorRepeat {
			return stateMatchType
		}
		s.errorf(tag, `Match type "`, first, `" not recognised.`,
			"\n\nAllowed match types are:",
			"\n\tmatches\t\ta list of matches",
			"\n\trounds\t\ta list of matches in rounds",
			"\n\tgenerate\t\tgenerate a list of matches")
		s.errorRepeat = true
		return stateMatchType
	}
	if s.errorRepeat {
		s.errorf(tag, `Match type "`, first, `" found after errors`)
		s.errorRepeat = false
	}
	switch mt {
	case classify.MatchTypeMatches:
		return stateMatches
	case classify.MatchTypeRounds:
		if len(words) != 2 {
			s.errorf(tag, `"`, text, `" must be like "rounds 10" to specify `,
				"the number of rounds of matches.  If a round is given for a ",
				"match it must be between 1 and the number.  The matches ",
				"should be given in a fixture list.")
			return stateMatchType
		}
		if !isDigits(words[1]) {
			s.errorf(tag, `Number of rounds in "`, text, `" is not digits`)
			return stateMatchType
		}
		n, _ := strconv.Atoi(words[1])
		if n == 0 {
			s.errorf(tag, `Number of matches between each team in "`, text,
				`" must not be zero`)
			return stateMatchType
		}
		s.maximumRound = strconv.Itoa(n)
		return stateMatchesByRound
	case classify.MatchTypeGenerate:
		if len(words) != 2 {
			s.errorf(tag, `"`, text, `" must be like "generate 2" to specify `,
				"the number of times the teams play each other.  The team ",
				"names are reversed in odd and even numbered matches ",
				"assuming this may mean home and away.  The generated list ",
				"of matches does not give dates or rounds for the matches.")
			return stateMatchType
		}
		if !isDigits(words[1]) {
			s.errorf(tag, `Number of rounds in "`, text, `" is not digits`)
			return stateMatchType
		}
		n, _ := strconv.Atoi(words[1])
		s.generateMatches(n)
	}
	return stateSection
}

// generateMatches makes a round robin of cycles repetitions. Home and
// away alternate with the cycle and with the parity of the sum of the
// team numbers, which balances home and away fixtures for every team.
func (s *Schedule) generateMatches(cycles int) {
	numbers := s.TeamNumber[s.section]
	order := s.teamOrder[s.section]
	for rnd := 0; rnd < cycles; rnd++ {
		for i, tm1 := range order {
			for _, tm2 := range order[i+1:] {
				oddSum := (numbers[tm1]+numbers[tm2])%2 == 1
				home, away := tm1, tm2
				if (rnd%2 == 1) != oddSum {
					home, away = tm2, tm1
				}
				f := &model.MatchFixture{
					Competition: s.section,
					HomeTeam:    home,
					AwayTeam:    away,
				}
				s.Matches[s.section][MatchKey{HomeTeam: home, AwayTeam: away, Cycle: rnd + 1}] = f
				s.setMatch(f)
			}
		}
	}
	s.logger.Debug("generated matches", "section", s.section,
		"cycles", cycles, "matches", s.Summary[s.section].Matches)
}

// parseMatch reads "[date] home<TAB>away". It returns a state other
// than stateMatches, and no fixture, when text starts with a keyword.
func (s *Schedule) parseMatch(text string, tag *model.Tag) (state, *model.MatchFixture, MatchKey, bool) {
	home, away, found := strings.Cut(text, "\t")
	if !found {
		home, away, _ = strings.Cut(text, " - ")
	}
	words := strings.Fields(home)
	if len(words) == 0 {
		s.errorf(tag, `No team name in "`, text, `"`)
		return stateMatches, nil, MatchKey{}, false
	}
	first := strings.ToLower(words[0])
	if _, ok := classify.ParseMatchType(first); ok {
		return s.matchType(text, tag), nil, MatchKey{}, false
	}
	if _, ok := classify.ParseSectionType(first); ok {
		return s.sectionLine(text, tag), nil, MatchKey{}, false
	}
	if rapid, ok := classify.ParsePlayType(first); ok {
		s.rapidplay = rapid
		return stateSection, nil, MatchKey{}, false
	}
	home = strings.Join(words, " ")
	date := ""
	// a short leading date is more likely part of a team name
	if iso, off, ok := parseDatePrefix(home); ok && off >= 3 {
		date = iso
		home = normalize(home[off:])
	}
	away = normalize(away)
	bad := false
	for _, team := range []string{home, away} {
		if _, ok := s.Teams[s.section][team]; !ok {
			s.errorf(tag, `Team name "`, team, `" in "`, text,
				`" is not in team list for section "`, s.section, `"`)
			s.errorRepeat = false
			bad = true
		}
	}
	if bad {
		return stateMatches, nil, MatchKey{}, false
	}
	key := MatchKey{HomeTeam: home, AwayTeam: away, Date: date}
	if _, ok := s.Matches[s.section][key]; ok {
		s.errorf(tag, `Match "`, text, `" duplicates an earlier match for section "`,
			s.section, `"`)
		s.errorRepeat = false
		return stateMatches, nil, MatchKey{}, false
	}
	return stateMatches, &model.MatchFixture{
		Date:        date,
		Competition: s.section,
		Round:       s.round,
		HomeTeam:    home,
		AwayTeam:    away,
		DateOK:      true,
		Tag:         tag,
	}, key, true
}

func (s *Schedule) matchLine(text string, tag *model.Tag) state {
	next, f, key, ok := s.parseMatch(text, tag)
	if ok {
		s.Matches[s.section][key] = f
		s.setMatch(f)
	}
	return next
}

// matchByRoundLine reads "round N" lines and the matches of each round.
func (s *Schedule) matchByRoundLine(text string, tag *model.Tag) state {
	words := strings.Fields(text)
	if strings.ToLower(words[0]) == "round" {
		if len(words) != 2 {
			s.errorf(tag, `Round number specification for "`, s.section, `" in "`,
				text, `" not recognised`)
			return stateMatchType
		}
		if !isDigits(words[1]) {
			s.errorf(tag, `Round number for "`, s.section, `" in "`, text,
				`" must be all digits`)
			return stateMatchType
		}
		n, _ := strconv.Atoi(words[1])
		maxRound, _ := strconv.Atoi(s.maximumRound)
		if n > maxRound {
			s.errorf(tag, `Round number for "`, s.section, `" in "`, text,
				`" must not be more than `, s.maximumRound)
			return stateMatchType
		}
		if n == 0 {
			s.errorf(tag, `Round number for "`, s.section, `" in "`, text,
				`" must not be zero`)
			return stateMatchType
		}
		s.round = strconv.Itoa(n)
		return stateMatchesByRound
	}

	next, f, key, ok := s.parseMatch(text, tag)
	if !ok {
		if next == stateMatches {
			return stateMatchesByRound
		}
		return next
	}
	for _, other := range s.Matches[s.section] {
		if other == nil || other.Round != s.round {
			continue
		}
		if other.HomeTeam == f.HomeTeam || other.AwayTeam == f.HomeTeam ||
			other.HomeTeam == f.AwayTeam || other.AwayTeam == f.AwayTeam {
			s.errorf(tag, `Match "`, text, `" involves a team in an earlier match for round "`,
				s.round, `" in section "`, s.section, `"`)
			s.errorRepeat = false
			return stateMatchesByRound
		}
	}
	s.Matches[s.section][key] = f
	s.setMatch(f)
	return stateMatchesByRound
}

// fixtureListLine reads "day<TAB>date<TAB>competition<TAB>home<TAB>away".
func (s *Schedule) fixtureListLine(text string, tag *model.Tag) state {
	fields := strings.Split(text, "\t")
	if len(fields) < 5 {
		s.Errors.Append(text, tag)
		return stateFixtureList
	}
	dateOK := true
	day := title(strings.TrimSpace(fields[0]))
	pdate := title(normalize(fields[1]))
	var date string
	iso, _, ok := parseDatePrefix(pdate)
	if !ok {
		dateOK = false
		s.Errors.Append(text, tag)
		date = fmt.Sprintf("%08d", 0)
	} else {
		date = iso
		weekday, _ := internal.WeekdayName(iso)
		if len(day) <= 1 || !strings.HasPrefix(weekday, day) {
			dateOK = false
			s.Errors.Append(text, tag)
		}
	}
	section := title(normalize(fields[2]))
	if _, ok := s.Matches[section]; !ok {
		s.setLeague(section)
	} else {
		s.section = section
	}
	s.setMatch(&model.MatchFixture{
		Day:         day,
		PDate:       pdate,
		Date:        date,
		Competition: s.section,
		HomeTeam:    normalize(fields[3]),
		AwayTeam:    normalize(fields[4]),
		DateOK:      dateOK,
		Tag:         tag,
	})
	return stateFixtureList
}
