/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package schedule

import (
	"strings"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Team is an entry in a league section's team list.
type Team struct {
	Name    string
	Club    string
	Section string
}

// TeamSummary counts the fixtures of one team.
type TeamSummary struct {
	Name        string
	Division    string
	HomeMatches int
	AwayMatches int
}

// Summary counts the fixtures of one league section.
type Summary struct {
	Matches int
	Teams   map[string]*TeamSummary
}

// PlayerKey identifies a player in an all-play-all or swiss section.
type PlayerKey struct {
	Name string
	Pin  int
}

// MatchKey identifies a fixture within a league section. Cycle is 0 for
// listed matches and the 1-based repetition for generated ones.
type MatchKey struct {
	HomeTeam string
	AwayTeam string
	Date     string
	Cycle    int
}

// Schedule is the event schedule built from schedule text.
type Schedule struct {
	Name      string
	StartDate string
	EndDate   string

	// Sections maps section name to type in the order of ReportOrder.
	Sections    map[string]classify.SectionType
	ReportOrder []string
	Rapidplay   map[string]bool

	Teams map[string]map[string]*Team
	// TeamAlias maps section, then a team name or alias, to the names
	// and aliases that refer to the same team.
	TeamAlias  map[string]map[string]map[string]string
	TeamNumber map[string]map[string]int
	Matches    map[string]map[MatchKey]*model.MatchFixture
	Fixtures   []*model.MatchFixture
	Summary    map[string]*Summary

	RoundDates map[string]map[int]string
	Players    map[string]map[PlayerKey]*model.Player
	Pins       map[string]map[int]string

	Errors model.ErrorLog
	// Fatal is set when the schedule cannot anchor any results.
	Fatal bool

	logger *logging.Logger

	state        state
	section      string
	round        string
	maximumRound string
	rapidplay    bool
	errorRepeat  bool
	teamOrder    map[string][]string
}

type Option func(s *Schedule)

func WithLogger(l *logging.Logger) Option {
	return func(s *Schedule) {
		s.logger = l
	}
}

type state int

const (
	stateEventName state = iota
	stateEventDates
	stateSection
	stateRoundDates
	statePlayers
	stateTeams
	stateMatchType
	stateMatches
	stateMatchesByRound
	stateFixtureList
)

var titleCaser = cases.Title(language.English)

func newSchedule(opts ...Option) *Schedule {
	s := &Schedule{
		Sections:   make(map[string]classify.SectionType),
		Rapidplay:  make(map[string]bool),
		Teams:      make(map[string]map[string]*Team),
		TeamAlias:  make(map[string]map[string]map[string]string),
		TeamNumber: make(map[string]map[string]int),
		Matches:    make(map[string]map[MatchKey]*model.MatchFixture),
		Summary:    make(map[string]*Summary),
		RoundDates: make(map[string]map[int]string),
		Players:    make(map[string]map[PlayerKey]*model.Player),
		Pins:       make(map[string]map[int]string),
		teamOrder:  make(map[string][]string),
		logger:     logging.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Build parses schedule text. Problems are collected in Errors; parsing
// continues past every recoverable one.
func Build(lines []model.Line, opts ...Option) *Schedule {
	s := newSchedule(opts...)

	header := false
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		if !header && s.state == stateEventName {
			header = !startsSection(text)
			if !header {
				s.state = stateSection
			}
		}
		s.state = s.process(text, l.Tag)
	}

	if len(s.Sections) == 0 && !header {
		s.Errors.Append("Schedule has too few lines for event dates to be present", nil)
		s.Fatal = true
	} else if header && (s.StartDate == "" || s.EndDate == "") {
		s.Errors.Append("Schedule has too few lines for event dates to be present", nil)
		s.Fatal = true
	}
	s.logger.Info("schedule built",
		"event", s.Name,
		"sections", len(s.ReportOrder),
		"fixtures", len(s.Fixtures),
		"errors", len(s.Errors))
	return s
}

func startsSection(text string) bool {
	first := strings.Fields(text)[0]
	if _, ok := classify.ParseSectionType(first); ok {
		return true
	}
	_, ok := classify.ParsePlayType(first)
	return ok
}

func (s *Schedule) process(text string, tag *model.Tag) state {
	switch s.state {
	case stateEventName:
		return s.eventName(text, tag)
	case stateEventDates:
		return s.eventDates(text, tag)
	case stateSection:
		return s.sectionLine(text, tag)
	case stateRoundDates:
		return s.roundDates(text, tag)
	case statePlayers:
		return s.playerLine(text, tag)
	case stateTeams:
		return s.teamLine(text, tag)
	case stateMatchType:
		return s.matchType(text, tag)
	case stateMatches:
		return s.matchLine(text, tag)
	case stateMatchesByRound:
		return s.matchByRoundLine(text, tag)
	case stateFixtureList:
		return s.fixtureListLine(text, tag)
	}
	return s.state
}

func (s *Schedule) errorf(tag *model.Tag, parts ...string) {
	s.Errors.Append(strings.Join(parts, ""), tag)
}

func (s *Schedule) eventName(text string, tag *model.Tag) state {
	s.Name = model.JoinFields(text)
	return stateEventDates
}

func (s *Schedule) eventDates(text string, tag *model.Tag) state {
	dtext := model.JoinFields(text)
	start, off, ok := parseDatePrefix(dtext)
	if ok {
		end, eok := parseWholeDate(dtext[off:])
		if eok {
			s.StartDate = start
			s.EndDate = end
			return stateSection
		}
	}
	s.errorf(tag, `Start or end date not recognised in "`, dtext, `"`)
	return stateSection
}

func (s *Schedule) sectionLine(text string, tag *model.Tag) state {
	words := strings.Fields(text)
	first := strings.ToLower(words[0])
	if rapid, ok := classify.ParsePlayType(first); ok {
		s.rapidplay = rapid
		return stateSection
	}
	st, ok := classify.ParseSectionType(first)
	if !ok {
		if s.errorRepeat {
			return stateSection
		}
		s.errorf(tag, `Section type "`, first, `" not recognised`,
			"\n\nAllowed section types are:",
			"\n\tallplayall\t\tall play all table for individuals",
			"\n\tleague\t\ta list of matches in rounds",
			"\n\tswiss\t\tswiss tournament table for individuals",
			"\n\tfixturelist\t\ta list of matches from a fixture list",
			"\n\tindividual\t\ta list of games between individuals",
			"\n\nAlso allowed at this point is the type of game in following sections:",
			"\n\trapidplay\t\t\n\tnormalplay\t\t(the default)")
		s.errorRepeat = true
		return stateSection
	}
	if s.errorRepeat {
		s.errorf(tag, `Section type "`, first, `" found after errors`)
		s.errorRepeat = false
	}
	s.section = strings.Join(words[1:], " ")
	s.round = ""
	if _, ok := s.Sections[s.section]; ok {
		s.errorf(tag, `Section "`, s.section, `" named earlier`)
		s.errorRepeat = true
		return stateSection
	}
	s.Sections[s.section] = st
	s.ReportOrder = append(s.ReportOrder, s.section)
	s.logger.Debug("schedule section", "section", s.section, "type", st.String())

	switch st {
	case classify.SectionAllPlayAll, classify.SectionSwiss:
		s.addTableSection()
		return stateRoundDates
	case classify.SectionLeague:
		s.setLeagueSection()
		return stateTeams
	case classify.SectionFixtureList:
		return stateFixtureList
	case classify.SectionIndividual:
		s.addIndividualSection()
	}
	return stateSection
}

func (s *Schedule) addTableSection() {
	if s.Pins[s.section] == nil {
		s.Pins[s.section] = make(map[int]string)
	}
	if s.Players[s.section] == nil {
		s.Players[s.section] = make(map[PlayerKey]*model.Player)
	}
	if s.RoundDates[s.section] == nil {
		s.RoundDates[s.section] = make(map[int]string)
	}
	if _, ok := s.Rapidplay[s.section]; !ok {
		s.Rapidplay[s.section] = s.rapidplay
	}
}

func (s *Schedule) addIndividualSection() {
	if s.Players[s.section] == nil {
		s.Players[s.section] = make(map[PlayerKey]*model.Player)
	}
	if _, ok := s.Rapidplay[s.section]; !ok {
		s.Rapidplay[s.section] = s.rapidplay
	}
}

func (s *Schedule) setLeagueSection() {
	if s.Teams[s.section] == nil {
		s.Teams[s.section] = make(map[string]*Team)
	}
	if s.TeamNumber[s.section] == nil {
		s.TeamNumber[s.section] = make(map[string]int)
	}
	if s.TeamAlias[s.section] == nil {
		s.TeamAlias[s.section] = make(map[string]map[string]string)
	}
	if s.Matches[s.section] == nil {
		s.Matches[s.section] = make(map[MatchKey]*model.MatchFixture)
	}
	if _, ok := s.Rapidplay[s.section]; !ok {
		s.Rapidplay[s.section] = s.rapidplay
	}
	if s.Summary[s.section] == nil {
		s.Summary[s.section] = &Summary{Teams: make(map[string]*TeamSummary)}
	}
}

// setLeague makes section, which need not have been named in a section
// line, the current league section.
func (s *Schedule) setLeague(section string) {
	s.section = strings.TrimSpace(section)
	s.setLeagueSection()
}

// DefaultClubForTeam drops a trailing one character team letter or
// number, so "Reading A" plays for "Reading".
func DefaultClubForTeam(team string) string {
	words := strings.Fields(team)
	if len(words) > 1 && len(words[len(words)-1]) == 1 {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// ClubTeam returns the club of team in section.
func (s *Schedule) ClubTeam(section, team string) string {
	if t, ok := s.Teams[section][team]; ok {
		return t.Club
	}
	return DefaultClubForTeam(team)
}

// TeamOrder returns the teams of a league section in team list order.
func (s *Schedule) TeamOrder(section string) []string {
	return s.teamOrder[section]
}

// AddEventToPlayer copies the event identity to player.
func (s *Schedule) AddEventToPlayer(player *model.Player, section string) {
	player.Event = s.Name
	player.StartDate = s.StartDate
	player.EndDate = s.EndDate
	player.Section = section
	player.SetIdentitySection()
}

func (s *Schedule) setMatch(f *model.MatchFixture) {
	s.Fixtures = append(s.Fixtures, f)
	comp := f.Competition
	teams := s.Teams[comp]
	summary := s.Summary[comp]
	summary.Matches++
	for _, team := range []string{f.HomeTeam, f.AwayTeam} {
		if _, ok := teams[team]; !ok {
			teams[team] = &Team{Name: team, Club: DefaultClubForTeam(team), Section: comp}
		}
		ts, ok := summary.Teams[team]
		if !ok {
			ts = &TeamSummary{Name: team, Division: comp}
			summary.Teams[team] = ts
		}
		if team == f.HomeTeam {
			ts.HomeMatches++
		} else {
			ts.AwayMatches++
		}
	}
}

func splitTextAndPad(text string, count int) []string {
	parts := strings.SplitN(text, "\t", count+1)
	for len(parts) < count+1 {
		parts = append(parts, "")
	}
	return parts
}

func normalize(s string) string {
	return model.JoinFields(s)
}

func title(s string) string {
	return titleCaser.String(s)
}
