/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package collation

import (
	"sort"
	"strings"
	"time"

	"github.com/mikeb26/chessvalidate/model"
)

// Authorized reports whether a match may be accepted from reports at
// now. Reports without email headers, or without an authorization delay,
// are always authorized. Otherwise the delay must have passed since the
// most recent date on any of the reports.
func Authorized(reports []*model.MatchReport, now time.Time) bool {
	var latest time.Time
	var delay time.Duration
	dated := false
	for _, m := range reports {
		var h *model.Headers
		if m.Tag != nil {
			h = m.Tag.Headers
		}
		if h == nil || h.AuthorizationDelay == nil {
			return true
		}
		if *h.AuthorizationDelay > delay {
			delay = *h.AuthorizationDelay
		}
		if t, ok := h.Latest(); ok {
			if !dated || t.After(latest) {
				latest = t
			}
			dated = true
		}
	}
	if !dated {
		return false
	}
	return now.Sub(latest) > delay
}

// gameProblems are the problems found with one game of the most recent
// report of a match.
type gameProblems struct {
	game     *model.MatchGame
	problems model.ProblemSet
}

// CollateMatches checks duplicate reports of each match against the most
// recent one and cross-references the accepted reports with the fixtures.
func (c *Collation) CollateMatches() {
	reports := make([]*model.MatchReport, len(c.Report.MatchResults))
	copy(reports, c.Report.MatchResults)
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Order != reports[j].Order {
			return reports[i].Order < reports[j].Order
		}
		return reports[i].Source < reports[j].Source
	})
	for _, m := range reports {
		byKey, ok := c.Matches[m.Competition]
		if !ok {
			byKey = make(map[MatchKey][]*model.MatchReport)
			c.Matches[m.Competition] = byKey
			c.competitions = append(c.competitions, m.Competition)
		}
		key := MatchKey{HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam, Source: m.Source}
		byKey[key] = append(byKey[key], m)
	}

	fixtures := c.fixturesByDate()
	for _, comp := range c.competitions {
		byKey := c.Matches[comp]
		for _, key := range sortedMatchKeys(byKey) {
			group := byKey[key]
			latest := group[len(group)-1]
			matchProblems := make(model.ProblemSet)
			var perGame []*gameProblems

			if len(group) == 1 {
				if _, consistent := latest.UnfinishedGamesAndScoreConsistency(); !consistent {
					matchProblems.Add(model.ProblemOnlyReport)
				}
			}
			for _, earlier := range group[:len(group)-1] {
				if _, consistent := earlier.UnfinishedGamesAndScoreConsistency(); !consistent {
					matchProblems.Add(model.ProblemMatchScore)
				}
				if len(earlier.Games) != len(latest.Games) {
					matchProblems.Add(model.ProblemGameCount)
					continue
				}
				for idx, g := range latest.Games {
					problems := make(model.ProblemSet)
					g.IsInconsistent(earlier.Games[idx], problems)
					if len(problems) > 0 {
						perGame = addGameProblems(perGame, g, problems)
					}
				}
			}
			if !Authorized(group, c.now) {
				matchProblems.Add(model.ProblemAuthorization)
			}

			if len(matchProblems) == 0 && len(perGame) == 0 {
				c.accept(comp, key, latest, fixtures)
				continue
			}
			c.reportInconsistentMatch(group, matchProblems, perGame)
		}
	}

	type unplayed struct {
		fixture *model.MatchFixture
		index   int
	}
	var fnp []unplayed
	for idx, f := range c.Schedule.Fixtures {
		if _, ok := c.FixtureMatch[f]; !ok {
			fnp = append(fnp, unplayed{fixture: f, index: idx})
		}
	}
	sort.SliceStable(fnp, func(i, j int) bool {
		a, b := fnp[i].fixture, fnp[j].fixture
		if a.Competition != b.Competition {
			return a.Competition < b.Competition
		}
		if d := compareTags(a.Tag, b.Tag); d != 0 {
			return d < 0
		}
		return fnp[i].index < fnp[j].index
	})
	c.FixturesNotPlayed = make([]*model.MatchFixture, 0, len(fnp))
	for _, u := range fnp {
		c.FixturesNotPlayed = append(c.FixturesNotPlayed, u.fixture)
	}
}

func addGameProblems(perGame []*gameProblems, g *model.MatchGame, problems model.ProblemSet) []*gameProblems {
	for _, gp := range perGame {
		if gp.game == g {
			for p := range problems {
				gp.problems.Add(p)
			}
			return perGame
		}
	}
	return append(perGame, &gameProblems{game: g, problems: problems})
}

// fixturesByDate returns the fixtures sorted by date, keeping schedule
// order within a date.
func (c *Collation) fixturesByDate() []*model.MatchFixture {
	fixtures := make([]*model.MatchFixture, len(c.Schedule.Fixtures))
	copy(fixtures, c.Schedule.Fixtures)
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].Date < fixtures[j].Date
	})
	return fixtures
}

// accept records latest as the result of its match and links it to the
// first unused fixture between the same teams, allowing for aliases.
func (c *Collation) accept(comp string, key MatchKey, latest *model.MatchReport,
	fixtures []*model.MatchFixture) {

	c.MatchFixture[latest] = nil
	home := c.teamNames(comp, latest.HomeTeam)
	away := c.teamNames(comp, latest.AwayTeam)
	for _, f := range fixtures {
		if f.Competition != comp {
			continue
		}
		if _, ok := home[f.HomeTeam]; !ok {
			continue
		}
		if _, ok := away[f.AwayTeam]; !ok {
			continue
		}
		if _, taken := c.FixtureMatch[f]; !taken {
			c.FixtureMatch[f] = latest
			c.MatchFixture[latest] = f
			delete(c.RepeatedFixture, latest)
			if latest.Date == "" {
				latest.Date = f.Date
			}
			break
		}
		c.RepeatedFixture[latest] = true
	}

	accepted, ok := c.Accepted[comp]
	if !ok {
		accepted = make(map[MatchKey]*model.MatchReport)
		c.Accepted[comp] = accepted
	}
	accepted[key] = latest
	c.Report.SetMatchResult(latest)
}

// teamNames returns the names by which team is known in comp.
func (c *Collation) teamNames(comp, team string) map[string]string {
	if names, ok := c.Schedule.TeamAlias[comp][team]; ok {
		return names
	}
	return map[string]string{team: team}
}

func gameLine(g *model.MatchGame) string {
	return strings.Join([]string{
		"      ",
		g.Board,
		g.HomePlayer.DisplayName(),
		g.Result.Display(),
		g.AwayPlayer.DisplayName(),
	}, " ")
}

func (c *Collation) reportInconsistentMatch(group []*model.MatchReport,
	matchProblems model.ProblemSet, perGame []*gameProblems) {

	errs := &c.Report.Errors
	latest := group[len(group)-1]
	heading := []string{"Inconsistent reports for", latest.Competition}
	if latest.Round != "" {
		heading = append(heading, "Round", latest.Round)
	}
	heading = append(heading, "match:")
	errs.Append(strings.Join(heading, " "), nil)
	errs.Append(strings.Join([]string{
		" ",
		latest.HomeTeam,
		latest.HomeScore + "-" + latest.AwayScore,
		latest.AwayTeam,
		"    ",
		latest.Source,
	}, " "), nil)
	errs.Append("   Error detail:", nil)
	if len(matchProblems) > 0 {
		names := make([]string, 0, len(matchProblems))
		for _, p := range matchProblems.Sorted() {
			names = append(names, string(p))
		}
		errs.Append("       "+strings.Join(names, ", "), nil)
	}
	for _, gp := range perGame {
		names := make([]string, 0, len(gp.problems))
		for _, p := range gp.problems.Sorted() {
			names = append(names, string(p))
		}
		errs.Append(gameLine(gp.game)+"   ** "+strings.Join(names, ", "), nil)
	}
	errs.Append("   Most recent report:", latest.Tag)
	for _, g := range latest.Games {
		errs.Append(gameLine(g), g.Tag)
	}
	for _, earlier := range group[:len(group)-1] {
		errs.Append("   Earlier report:", earlier.Tag)
		for _, g := range earlier.Games {
			errs.Append(gameLine(g), g.Tag)
		}
	}
	errs.Blank()
	c.logger.Debug("inconsistent match reports",
		"competition", latest.Competition,
		"home", latest.HomeTeam,
		"away", latest.AwayTeam,
		"reports", len(group))
}

// compareTags orders tags by data tag length, data tag, then teams.
func compareTags(a, b *model.Tag) int {
	var at, bt model.Tag
	if a != nil {
		at = *a
	}
	if b != nil {
		bt = *b
	}
	switch {
	case len(at.DataTag) != len(bt.DataTag):
		return len(at.DataTag) - len(bt.DataTag)
	case at.DataTag != bt.DataTag:
		return strings.Compare(at.DataTag, bt.DataTag)
	case at.TeamOne != bt.TeamOne:
		return strings.Compare(at.TeamOne, bt.TeamOne)
	}
	return strings.Compare(at.TeamTwo, bt.TeamTwo)
}

func sortedMatchKeys[T any](m map[MatchKey]T) []MatchKey {
	keys := make([]MatchKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}
