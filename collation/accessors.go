/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package collation

import (
	"sort"
	"strings"

	"github.com/mikeb26/chessvalidate/model"
)

// PlayerMatch is a match a player played in for team.
type PlayerMatch struct {
	Team  string
	Match *model.MatchReport
}

// PlayerReports lists the matches of one player.
type PlayerReports struct {
	Player  model.Identity
	Matches []PlayerMatch
}

// SourceMatch is one report of a match with its unfinished games and
// whether its match score agrees with its game results.
type SourceMatch struct {
	Match      *model.MatchReport
	Unfinished []*model.MatchGame
	Consistent bool
}

// UnfinishedMatchGame is a game with no result in the most recent report
// of its match.
type UnfinishedMatchGame struct {
	Match *model.MatchReport
	Game  *model.MatchGame
}

// FixturesPlayed returns the fixtures with an accepted report in schedule
// order.
func (c *Collation) FixturesPlayed() []*model.MatchFixture {
	var ret []*model.MatchFixture
	for _, f := range c.Schedule.Fixtures {
		if _, ok := c.FixtureMatch[f]; ok {
			ret = append(ret, f)
		}
	}
	return ret
}

// NonFixturesPlayed returns the accepted reports matching no fixture, or
// matching a fixture already taken by another report.
func (c *Collation) NonFixturesPlayed() []*model.MatchReport {
	var ret []*model.MatchReport
	for _, comp := range c.competitions {
		for _, key := range sortedMatchKeys(c.Accepted[comp]) {
			m := c.Accepted[comp][key]
			if c.MatchFixture[m] == nil {
				ret = append(ret, m)
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Competition != ret[j].Competition {
			return ret[i].Competition < ret[j].Competition
		}
		return compareTags(ret[i].Tag, ret[j].Tag) < 0
	})
	return ret
}

// SortName returns name with the surname first so that lists of players
// sort by surname. Initials separated by dots are treated as forenames.
func SortName(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '.' || r == '\t'
	})
	if len(fields) < 2 {
		return strings.ToLower(name)
	}
	last := len(fields) - 1
	return strings.ToLower(fields[last] + " " + strings.Join(fields[:last], " "))
}

func sortIdentities(ids []model.Identity) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := SortName(ids[i].Name), SortName(ids[j].Name)
		if a != b {
			return a < b
		}
		if ids[i].Name != ids[j].Name {
			return ids[i].Name < ids[j].Name
		}
		return ids[i].Club < ids[j].Club
	})
}

// PlayersByClub returns the players of each club sorted by surname.
func (c *Collation) PlayersByClub() map[string][]model.Identity {
	ret := make(map[string][]model.Identity, len(c.ClubPlayers))
	for club, players := range c.ClubPlayers {
		ids := make([]model.Identity, 0, len(players))
		for id := range players {
			ids = append(ids, id)
		}
		sortIdentities(ids)
		ret[club] = ids
	}
	return ret
}

// ReportsByMatch returns the most recent report of each match sorted by
// competition then team names.
func (c *Collation) ReportsByMatch() []*model.MatchReport {
	var ret []*model.MatchReport
	for _, byKey := range c.Matches {
		for _, group := range byKey {
			ret = append(ret, group[len(group)-1])
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		switch {
		case a.Competition != b.Competition:
			return a.Competition < b.Competition
		case a.HomeTeam != b.HomeTeam:
			return a.HomeTeam < b.HomeTeam
		case a.AwayTeam != b.AwayTeam:
			return a.AwayTeam < b.AwayTeam
		}
		return a.Source < b.Source
	})
	return ret
}

// ReportsByPlayer returns the matches of each player sorted by surname.
func (c *Collation) ReportsByPlayer() []PlayerReports {
	byID := make(map[model.Identity][]PlayerMatch)
	for team, players := range c.TeamPlayers {
		for id, matches := range players {
			for _, m := range matches {
				byID[id] = append(byID[id], PlayerMatch{Team: team, Match: m})
			}
		}
	}
	ids := make([]model.Identity, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sortIdentities(ids)
	ret := make([]PlayerReports, 0, len(ids))
	for _, id := range ids {
		matches := byID[id]
		sort.Slice(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if a.Team != b.Team {
				return a.Team < b.Team
			}
			if a.Match.Date != b.Match.Date {
				return a.Match.Date < b.Match.Date
			}
			return a.Match.AwayTeam < b.Match.AwayTeam
		})
		ret = append(ret, PlayerReports{Player: id, Matches: matches})
	}
	return ret
}

func dataTag(t *model.Tag) string {
	if t == nil {
		return ""
	}
	return t.DataTag
}

// MatchesBySource returns every report of every match keyed by the data
// tag of the source it was read from.
func (c *Collation) MatchesBySource() map[string][]SourceMatch {
	ret := make(map[string][]SourceMatch)
	for _, comp := range c.competitions {
		byKey := c.Matches[comp]
		for _, key := range sortedMatchKeys(byKey) {
			for _, m := range byKey[key] {
				unfinished, consistent := m.UnfinishedGamesAndScoreConsistency()
				tag := dataTag(m.Tag)
				ret[tag] = append(ret[tag], SourceMatch{
					Match:      m,
					Unfinished: unfinished,
					Consistent: consistent,
				})
			}
		}
	}
	return ret
}

// ReportsBySource returns every match report ordered by source then team
// names, and every report of a completed game ordered by source.
func (c *Collation) ReportsBySource() ([]SourceMatch, []*model.UnfinishedGame) {
	bySource := c.MatchesBySource()
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		if len(sources[i]) != len(sources[j]) {
			return len(sources[i]) < len(sources[j])
		}
		return sources[i] < sources[j]
	})
	var matches []SourceMatch
	for _, s := range sources {
		reports := bySource[s]
		sort.SliceStable(reports, func(i, j int) bool {
			a, b := reports[i].Match, reports[j].Match
			if a.HomeTeam != b.HomeTeam {
				return a.HomeTeam < b.HomeTeam
			}
			return a.AwayTeam < b.AwayTeam
		})
		matches = append(matches, reports...)
	}

	var finished []*model.UnfinishedGame
	for _, byKey := range c.finished {
		for _, group := range byKey {
			finished = append(finished, group...)
		}
	}
	sortByTag(finished)
	return matches, finished
}

// UnfinishedGames returns the games with both players named but no result
// in the most recent report of each match, sorted by teams and board.
func (c *Collation) UnfinishedGames() []UnfinishedMatchGame {
	var ret []UnfinishedMatchGame
	for _, comp := range c.competitions {
		byKey := c.Matches[comp]
		for _, key := range sortedMatchKeys(byKey) {
			group := byKey[key]
			m := group[len(group)-1]
			for _, g := range m.Games {
				if g.Result != model.ResultToBeReported {
					continue
				}
				if g.HomePlayer == nil || g.AwayPlayer == nil {
					continue
				}
				ret = append(ret, UnfinishedMatchGame{Match: m, Game: g})
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		switch {
		case a.Match.HomeTeam != b.Match.HomeTeam:
			return a.Match.HomeTeam < b.Match.HomeTeam
		case a.Match.AwayTeam != b.Match.AwayTeam:
			return a.Match.AwayTeam < b.Match.AwayTeam
		}
		return a.Game.Board < b.Game.Board
	})
	return ret
}
