/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"strconv"
	"strings"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
)

// PlayedOn is the state of played-on game processing. A "played on"
// line makes the next match line introduce games completed after being
// reported unfinished; the match line after those resets the state.
type PlayedOn int

const (
	NotPlayedOn PlayedOn = iota
	SeekPlayedOnReport
	GameReportPlayedOn
)

// ResultKey identifies a consistent match result within a competition.
type ResultKey struct {
	HomeTeam string
	AwayTeam string
	Date     string
	Round    string
	Source   string
}

// CrossTableEntry is one cell of an all-play-all cross table row. The
// entry against oneself has NominalRound 0.
type CrossTableEntry struct {
	Tag          *model.Tag
	Colour       string
	Score        string
	NominalRound int
}

// SwissEntry is one round of a swiss pairing card. Opponent is 0 when
// no game was played.
type SwissEntry struct {
	Tag       *model.Tag
	NotPlayed string
	Colour    string
	Opponent  int
	Score     string
}

type playerKey struct {
	name  string
	event string
	team  string
}

// Report is the results report built from results text.
type Report struct {
	Name        string
	Sections    map[string]classify.SectionType
	ReportOrder []string

	// MatchResults holds every match report in the order found.
	MatchResults    []*model.MatchReport
	UnfinishedGames []*model.UnfinishedGame
	// Results holds the match reports accepted by collation.
	Results     map[string]map[ResultKey]*model.MatchReport
	Individual  map[string]*model.Section
	CrossTables map[string]map[int][]CrossTableEntry
	SwissTables map[string]map[int][]SwissEntry

	Errors model.ErrorLog
	// Fatal is set when no event could be found in the text.
	Fatal bool

	logger *logging.Logger

	state       state
	source      string
	section     string
	round       string
	date        string
	colourRule  classify.ColourRule
	playedOn    PlayedOn
	playerLimit int
	errorRepeat bool

	match         *currentMatch
	games         map[string]*model.MatchGame
	homeCounts    map[*model.Player]int
	awayCounts    map[*model.Player]int
	players       map[playerKey]*model.Player
	rowOrder      map[string][]int
	swissRowOrder map[string][]int
}

// currentMatch is the match whose games are being read.
type currentMatch struct {
	homeTeam string
	awayTeam string
	date     string
	round    string
	source   string
}

type Option func(r *Report)

func WithLogger(l *logging.Logger) Option {
	return func(r *Report) {
		r.logger = l
	}
}

type state int

const (
	stateEventName state = iota
	stateSection
	stateMatches
	stateGames
	stateCrossTable
	stateSwissTable
	stateIndividual
)

func newReport(opts ...Option) *Report {
	r := &Report{
		Sections:      make(map[string]classify.SectionType),
		Results:       make(map[string]map[ResultKey]*model.MatchReport),
		Individual:    make(map[string]*model.Section),
		CrossTables:   make(map[string]map[int][]CrossTableEntry),
		SwissTables:   make(map[string]map[int][]SwissEntry),
		players:       make(map[playerKey]*model.Player),
		rowOrder:      make(map[string][]int),
		swissRowOrder: make(map[string][]int),
		logger:        logging.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Build parses results text. Problems are collected in Errors; parsing
// continues past every recoverable one.
func Build(lines []model.Line, opts ...Option) *Report {
	r := newReport(opts...)

	found := false
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		if !found {
			found = true
			switch k, _ := classify.Directive(text); k {
			case classify.KindSection, classify.KindSource:
				r.state = stateSection
			}
		}
		r.state = r.process(text, l.Tag)
	}
	if !found {
		r.Errors.Append("Results report has too few lines for event name to be present", nil)
		r.Fatal = true
	}
	r.checkSwissOpponents()

	r.logger.Info("results built",
		"event", r.Name,
		"sections", len(r.ReportOrder),
		"matches", len(r.MatchResults),
		"unfinished", len(r.UnfinishedGames),
		"errors", len(r.Errors))
	return r
}

func (r *Report) process(text string, tag *model.Tag) state {
	switch r.state {
	case stateEventName:
		return r.eventName(text, tag)
	case stateSection:
		return r.sectionLine(text, tag)
	case stateMatches:
		return r.matchesLine(text, tag)
	case stateGames:
		return r.gamesLine(text, tag)
	case stateCrossTable:
		return r.crossTableLine(text, tag)
	case stateSwissTable:
		return r.swissTableLine(text, tag)
	case stateIndividual:
		return r.individualLine(text, tag)
	}
	return r.state
}

func (r *Report) errorf(tag *model.Tag, parts ...string) {
	r.Errors.Append(strings.Join(parts, ""), tag)
}

// SetMatchResult records a match report accepted by collation.
func (r *Report) SetMatchResult(m *model.MatchReport) {
	results, ok := r.Results[m.Competition]
	if !ok {
		results = make(map[ResultKey]*model.MatchReport)
		r.Results[m.Competition] = results
	}
	results[ResultKey{
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		Date:     m.Date,
		Round:    m.Round,
		Source:   m.Source,
	}] = m
}

// CrossTablePins returns the pins of the cross table rows of section in
// the order the rows were read.
func (r *Report) CrossTablePins(section string) []int {
	return r.rowOrder[section]
}

// SwissTablePins returns the pins of the pairing cards of section in the
// order the rows were read.
func (r *Report) SwissTablePins(section string) []int {
	return r.swissRowOrder[section]
}

func (r *Report) eventName(text string, _ *model.Tag) state {
	r.Name = model.JoinFields(text)
	return stateSection
}

func (r *Report) isEventNameRepeated(text string) bool {
	return r.Name != "" && r.Name == model.JoinFields(text)
}

func (r *Report) setSource(words []string) {
	r.source = strings.Join(words[1:], " ")
}

func (r *Report) sectionLine(text string, tag *model.Tag) state {
	words := strings.Fields(text)
	first := strings.ToLower(words[0])
	if first == "source" {
		r.setSource(words)
		return stateSection
	}
	st, ok := classify.ParseSectionType(first)
	if !ok {
		if r.errorRepeat {
			return stateSection
		}
		r.errorf(tag, `Section type "`, first, `" not recognised.`)
		r.errorRepeat = true
		return stateSection
	}
	if r.errorRepeat {
		r.errorf(tag, `Section type "`, first, `" found after errors.`)
		r.errorRepeat = false
	}
	r.section = strings.Join(words[1:], " ")
	if _, ok := r.Sections[r.section]; ok {
		if st != classify.SectionFixtureList {
			r.errorf(tag, `Section "`, r.section, `" named earlier.`)
			r.errorRepeat = true
			return stateSection
		}
	} else {
		r.Sections[r.section] = st
		r.ReportOrder = append(r.ReportOrder, r.section)
		r.addSection(st)
	}
	r.logger.Debug("results section", "section", r.section, "type", st.String())

	switch st {
	case classify.SectionAllPlayAll:
		return stateCrossTable
	case classify.SectionSwiss:
		return stateSwissTable
	case classify.SectionIndividual:
		return stateIndividual
	}
	return stateMatches
}

func (r *Report) addSection(st classify.SectionType) {
	switch st {
	case classify.SectionAllPlayAll:
		if r.CrossTables[r.section] == nil {
			r.CrossTables[r.section] = make(map[int][]CrossTableEntry)
		}
	case classify.SectionSwiss:
		if r.SwissTables[r.section] == nil {
			r.SwissTables[r.section] = make(map[int][]SwissEntry)
		}
	case classify.SectionIndividual:
		if r.Individual[r.section] == nil {
			r.Individual[r.section] = &model.Section{
				SectionInfo: model.SectionInfo{Competition: r.section},
			}
		}
	case classify.SectionLeague, classify.SectionFixtureList:
		if r.Results[r.section] == nil {
			r.Results[r.section] = make(map[ResultKey]*model.MatchReport)
		}
		r.round = ""
		r.date = ""
		r.playerLimit = 1
	}
}

// gameProcessingRule handles "played on" and the board colour rules.
func (r *Report) gameProcessingRule(kind classify.Kind, first string) bool {
	switch kind {
	case classify.KindPlayedOn:
		r.playedOn = SeekPlayedOnReport
		return true
	case classify.KindColourRule:
		r.colourRule, _ = classify.ParseColourRule(first)
		return true
	}
	return false
}

// directive handles the lines allowed between matches and between games.
// It reports whether text was a directive and the state to continue in.
func (r *Report) directive(text string, tag *model.Tag) (state, bool) {
	kind, words := classify.Directive(text)
	if r.gameProcessingRule(kind, strings.ToLower(words[0])) {
		return stateMatches, true
	}
	switch kind {
	case classify.KindSource:
		r.setSource(words)
		return r.state, true
	case classify.KindRound:
		r.setRound(words, tag)
		return stateMatches, true
	case classify.KindDate:
		r.setDate(words, tag)
		return stateMatches, true
	case classify.KindGames:
		r.setPlayerLimit(words, tag)
		return stateMatches, true
	case classify.KindSection:
		return r.sectionLine(text, tag), true
	}
	return r.state, false
}

func (r *Report) setRound(words []string, tag *model.Tag) {
	if len(words) != 2 {
		r.errorf(tag, `"`, strings.Join(words, " "),
			`" must be like "round 2" to specify the round.`)
		return
	}
	// rounds like "Semi-Final" are allowed
	if n, err := strconv.Atoi(words[1]); err == nil {
		r.round = strconv.Itoa(n)
	} else {
		r.round = words[1]
	}
}

func (r *Report) setDate(words []string, tag *model.Tag) {
	text := strings.Join(words[1:], " ")
	iso, off, ok := internal.ParseDatePrefix(text)
	switch {
	case !ok:
		r.errorf(tag, `Date not recognised in "`, strings.Join(words, " "), `".`)
	case off != len(text):
		r.errorf(tag, `Date found in "`, strings.Join(words, " "),
			`" but extra text is present.`)
	default:
		r.date = iso
	}
}

func (r *Report) setPlayerLimit(words []string, tag *model.Tag) {
	if len(words) != 2 {
		r.errorf(tag, `"`, strings.Join(words, " "),
			`" must be like "games 2" to specify the number of times a player `,
			"may appear in a match without a warning message being generated.")
		return
	}
	n, err := strconv.Atoi(words[1])
	if err != nil || n < 0 {
		r.errorf(tag, `"`, words[1], `" in "`, strings.Join(words, " "),
			`" must be digits to specify the number of times a player may `,
			"appear in a match without a warning message being generated.")
		return
	}
	r.playerLimit = n
}

// player returns the Player for a name reported for team, creating it on
// first use. Players are shared across the whole report.
func (r *Report) player(nameAndCodes, event, team string, tag *model.Tag) *model.Player {
	name, codes := model.SplitCodesFromName(nameAndCodes)
	key := playerKey{name: name, event: event, team: team}
	p, ok := r.players[key]
	if !ok {
		p = model.NewPlayer(model.Player{
			Name:          name,
			Event:         event,
			Club:          team,
			ReportedCodes: codes,
			Tag:           tag,
		})
		r.players[key] = p
		return p
	}
	p.AddReportedCodes(codes)
	return p
}
