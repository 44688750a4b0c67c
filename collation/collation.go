/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package collation

import (
	"sort"
	"strconv"
	"time"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/report"
	"github.com/mikeb26/chessvalidate/schedule"
)

// MatchKey groups the reports of one match from one source.
type MatchKey struct {
	HomeTeam string
	AwayTeam string
	Source   string
}

func (k MatchKey) less(o MatchKey) bool {
	if k.HomeTeam != o.HomeTeam {
		return k.HomeTeam < o.HomeTeam
	}
	if k.AwayTeam != o.AwayTeam {
		return k.AwayTeam < o.AwayTeam
	}
	return k.Source < o.Source
}

// Collation reconciles a results report with its schedule.
type Collation struct {
	Schedule *schedule.Schedule
	Report   *report.Report

	// ReportOrder lists the results sections followed by schedule
	// sections with no results.
	ReportOrder []string
	SectionType map[string]classify.SectionType

	// Sections holds the games of all-play-all, swiss and individual
	// sections.
	Sections map[string]*model.Section
	// Matches holds every report of each match, most recent last.
	Matches map[string]map[MatchKey][]*model.MatchReport
	// Accepted holds the most recent report of each match whose reports
	// agree.
	Accepted map[string]map[MatchKey]*model.MatchReport

	// MatchFixture maps each accepted report to its fixture, nil when no
	// fixture was found.
	MatchFixture map[*model.MatchReport]*model.MatchFixture
	FixtureMatch map[*model.MatchFixture]*model.MatchReport
	// RepeatedFixture marks reports whose fixture was already taken by
	// another report.
	RepeatedFixture   map[*model.MatchReport]bool
	FixturesNotPlayed []*model.MatchFixture

	// Completions maps an accepted completion to the unfinished game it
	// completes, nil when none was found.
	Completions map[*model.UnfinishedGame]*model.MatchGame
	CompletedBy map[*model.MatchGame]*model.UnfinishedGame

	Players     map[model.Identity]*model.Player
	TeamPlayers map[string]map[model.Identity][]*model.MatchReport
	ClubPlayers map[string]map[model.Identity]map[string]struct{}

	// Fatal is set when schedule or results could not be read at all.
	Fatal bool

	logger *logging.Logger
	now    time.Time
	// competitions in the order first reported
	competitions []string
	// finished holds the reports of games completed after being reported
	// unfinished, most recent last.
	finished map[string]map[unfinishedKey][]*model.UnfinishedGame
}

type Option func(c *Collation)

func WithLogger(l *logging.Logger) Option {
	return func(c *Collation) {
		c.logger = l
	}
}

// WithNow sets the time against which report authorization delays are
// measured.
func WithNow(now time.Time) Option {
	return func(c *Collation) {
		c.now = now
	}
}

// Collate reconciles r with s. Problems are appended to r.Errors.
func Collate(s *schedule.Schedule, r *report.Report, opts ...Option) *Collation {
	c := &Collation{
		Schedule:        s,
		Report:          r,
		SectionType:     make(map[string]classify.SectionType),
		Sections:        make(map[string]*model.Section),
		Matches:         make(map[string]map[MatchKey][]*model.MatchReport),
		Accepted:        make(map[string]map[MatchKey]*model.MatchReport),
		MatchFixture:    make(map[*model.MatchReport]*model.MatchFixture),
		FixtureMatch:    make(map[*model.MatchFixture]*model.MatchReport),
		RepeatedFixture: make(map[*model.MatchReport]bool),
		Completions:     make(map[*model.UnfinishedGame]*model.MatchGame),
		CompletedBy:     make(map[*model.MatchGame]*model.UnfinishedGame),
		Players:         make(map[model.Identity]*model.Player),
		TeamPlayers:     make(map[string]map[model.Identity][]*model.MatchReport),
		ClubPlayers:     make(map[string]map[model.Identity]map[string]struct{}),
		finished:        make(map[string]map[unfinishedKey][]*model.UnfinishedGame),
		logger:          logging.Default(),
		now:             time.Now(),
	}
	for _, o := range opts {
		o(c)
	}
	if s.Fatal || r.Fatal {
		c.Fatal = true
		c.logger.Warn("collation skipped", "scheduleFatal", s.Fatal, "resultsFatal", r.Fatal)
		return c
	}

	leagueFound := false
	for _, section := range r.ReportOrder {
		st := r.Sections[section]
		switch st {
		case classify.SectionAllPlayAll:
			c.collateAllPlayAll(section)
		case classify.SectionSwiss:
			c.collateSwiss(section)
		case classify.SectionIndividual:
			c.collateIndividual(section)
		case classify.SectionLeague, classify.SectionFixtureList:
			leagueFound = true
		default:
			r.Errors.Blank()
			r.Errors.Append(section+" type not known", nil)
			r.Errors.Blank()
		}
		c.SectionType[section] = st
		c.ReportOrder = append(c.ReportOrder, section)
	}
	if leagueFound {
		c.CollateMatches()
		c.CollateUnfinishedGames()
		c.CollatePlayers()
	}
	for _, section := range s.ReportOrder {
		if _, ok := c.SectionType[section]; !ok {
			c.SectionType[section] = s.Sections[section]
			c.ReportOrder = append(c.ReportOrder, section)
		}
	}

	c.logger.Info("collated",
		"sections", len(c.ReportOrder),
		"matches", len(c.MatchFixture),
		"fixturesNotPlayed", len(c.FixturesNotPlayed),
		"players", len(c.Players),
		"errors", len(r.Errors))
	return c
}

// setPlayer notes player under its identity unless one is known.
func (c *Collation) setPlayer(p *model.Player) {
	if p == nil {
		return
	}
	id := p.PlayerIdentity()
	if _, ok := c.Players[id]; !ok {
		c.Players[id] = p
	}
}

// AllErrors returns the schedule errors followed by the results errors.
func (c *Collation) AllErrors() model.ErrorLog {
	ret := make(model.ErrorLog, 0, len(c.Schedule.Errors)+len(c.Report.Errors))
	ret = append(ret, c.Schedule.Errors...)
	return append(ret, c.Report.Errors...)
}

var mapScore = map[string]model.Result{
	"+": model.ResultHomeWin,
	"=": model.ResultDraw,
	"-": model.ResultAwayWin,
	"1": model.ResultHomeWin,
	"0": model.ResultAwayWin,
}

var invertScore = map[string]string{
	"-": "+",
	"=": "=",
	"+": "-",
	"1": "0",
	"0": "1",
}

type tableGame struct {
	round    int
	pin      int
	opponent int
	home     int
	away     int
	result   model.Result
	colour   model.Color
	tag      *model.Tag
}

func sortTableGames(games []tableGame) {
	sort.Slice(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.round != b.round {
			return a.round < b.round
		}
		if a.pin != b.pin {
			return a.pin < b.pin
		}
		return a.opponent < b.opponent
	})
}

// roundDates returns the date of each of rounds rounds, the event start
// date where the schedule gives none.
func (c *Collation) roundDates(section string, rounds int) map[int]string {
	ret := make(map[int]string, rounds)
	for i := 1; i <= rounds; i++ {
		if d, ok := c.Schedule.RoundDates[section][i]; ok {
			ret[i] = d
		} else {
			ret[i] = c.Schedule.StartDate
		}
	}
	return ret
}

func (c *Collation) dateOfRound(dates map[int]string, round int) string {
	if d, ok := dates[round]; ok {
		return d
	}
	return c.Schedule.StartDate
}

func (c *Collation) errorf(msg string) {
	c.Report.Errors.Append(msg, nil)
}

func (c *Collation) checkSchedulePlayers(section string) bool {
	if _, ok := c.Schedule.Players[section]; !ok {
		c.errorf("Section " + section +
			` has no information in schedule about player "pins" and "clubs"`)
		return false
	}
	return true
}

func (c *Collation) tablePlayer(section string, pin int) *model.Player {
	name := c.Schedule.Pins[section][pin]
	return c.Schedule.Players[section][schedule.PlayerKey{Name: name, Pin: pin}]
}

func (c *Collation) collateAllPlayAll(section string) {
	ok := c.checkSchedulePlayers(section)
	table, found := c.Report.CrossTables[section]
	if !found {
		c.errorf("Section " + section + " has no cross table of results in reports")
		ok = false
	}
	if !ok {
		return
	}
	pins := sortedPins(table)
	for _, pin := range pins {
		if _, known := c.Schedule.Pins[section][pin]; !known {
			c.errorf("Section " + section + " has no player name for PIN " + strconv.Itoa(pin))
			ok = false
		}
	}
	for _, pin := range sortedNames(c.Schedule.Pins[section]) {
		if _, reported := table[pin]; !reported {
			c.errorf("Section " + section + " has no results in report for name " +
				c.Schedule.Pins[section][pin] + " (PIN " + strconv.Itoa(pin) + ")")
			ok = false
		}
	}
	if !ok {
		return
	}

	dates := c.roundDates(section, len(table))
	var games []tableGame
	for _, pin := range pins {
		for idx, e := range table[pin] {
			opponent := idx + 1
			if e.NominalRound == 0 || opponent <= pin {
				continue
			}
			if _, scored := mapScore[e.Score]; !scored {
				continue
			}
			g := tableGame{
				round:    e.NominalRound,
				pin:      pin,
				opponent: opponent,
				home:     pin,
				away:     opponent,
				result:   mapScore[e.Score],
				tag:      e.Tag,
			}
			switch e.Colour {
			case "w":
				g.colour = model.ColorWhite
			case "b":
				g.home, g.away = opponent, pin
				g.result = mapScore[invertScore[e.Score]]
				g.colour = model.ColorWhite
			}
			games = append(games, g)
		}
	}
	sortTableGames(games)

	sg := &model.Section{SectionInfo: model.SectionInfo{Competition: section}}
	for _, g := range games {
		home := c.tablePlayer(section, g.home)
		away := c.tablePlayer(section, g.away)
		sg.Games = append(sg.Games, &model.SwissGame{
			Game: model.Game{
				Result:          g.result,
				Date:            c.dateOfRound(dates, g.round),
				HomePlayerColor: g.colour,
				HomePlayer:      home,
				AwayPlayer:      away,
				Tag:             g.tag,
			},
		})
		c.setPlayer(home)
		c.setPlayer(away)
	}
	c.Sections[section] = sg
}

func (c *Collation) collateSwiss(section string) {
	ok := c.checkSchedulePlayers(section)
	table, found := c.Report.SwissTables[section]
	if !found {
		c.errorf("Section " + section + " has no swiss table of results in reports")
		ok = false
	}
	if !ok {
		return
	}
	pins := sortedPins(table)
	for _, pin := range pins {
		name, known := c.Schedule.Pins[section][pin]
		if !known {
			c.errorf("Section " + section + " has no information in schedule about pin " +
				strconv.Itoa(pin))
			ok = false
			continue
		}
		if _, known := c.Schedule.Players[section][schedule.PlayerKey{Name: name, Pin: pin}]; !known {
			c.errorf("Section " + section + " has no information in schedule about pin " +
				strconv.Itoa(pin) + " player " + name)
			ok = false
		}
	}
	for _, pin := range sortedNames(c.Schedule.Pins[section]) {
		if _, reported := table[pin]; !reported {
			c.errorf("Section " + section + " has no results in report about pin " +
				strconv.Itoa(pin) + " player " + c.Schedule.Pins[section][pin])
			ok = false
		}
	}
	if !ok {
		return
	}

	dates := c.roundDates(section, len(table))
	var games []tableGame
	for _, pin := range pins {
		for idx, e := range table[pin] {
			if e.Opponent <= pin {
				continue
			}
			result, scored := mapScore[e.Score]
			if !scored {
				continue
			}
			g := tableGame{
				round:    idx + 1,
				pin:      pin,
				opponent: e.Opponent,
				home:     pin,
				away:     e.Opponent,
				result:   result,
				tag:      e.Tag,
			}
			if e.Colour == "b" {
				g.home, g.away = e.Opponent, pin
				g.result = mapScore[invertScore[e.Score]]
			}
			games = append(games, g)
		}
	}
	sortTableGames(games)

	sg := &model.Section{SectionInfo: model.SectionInfo{Competition: section}}
	for _, g := range games {
		home := c.tablePlayer(section, g.home)
		away := c.tablePlayer(section, g.away)
		sg.Games = append(sg.Games, &model.SwissGame{
			Game: model.Game{
				Result:          g.result,
				Date:            c.dateOfRound(dates, g.round),
				HomePlayerColor: model.ColorWhite,
				HomePlayer:      home,
				AwayPlayer:      away,
				Tag:             g.tag,
			},
			Round: strconv.Itoa(g.round),
		})
		c.setPlayer(home)
		c.setPlayer(away)
	}
	c.Sections[section] = sg
}

func (c *Collation) collateIndividual(section string) {
	sg, ok := c.Report.Individual[section]
	if !ok {
		c.errorf("Section " + section + " has no results in reports")
		return
	}
	for _, gr := range sg.Games {
		g := gr.GameBase()
		for _, p := range []*model.Player{g.HomePlayer, g.AwayPlayer} {
			if p != nil && p.Event == "" {
				c.Schedule.AddEventToPlayer(p, section)
			}
		}
		if g.Date == "" {
			g.Date = c.Schedule.StartDate
		}
		c.setPlayer(g.HomePlayer)
		c.setPlayer(g.AwayPlayer)
	}
	c.Sections[section] = sg
}

func sortedPins[T any](table map[int]T) []int {
	ret := make([]int, 0, len(table))
	for pin := range table {
		ret = append(ret, pin)
	}
	sort.Ints(ret)
	return ret
}

func sortedNames(pins map[int]string) []int {
	return sortedPins(pins)
}
