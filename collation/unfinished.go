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

// unfinishedKey identifies a completed game. The board is left out
// because it may have been derived from the position of the game in a
// report.
type unfinishedKey struct {
	homeTeam   string
	awayTeam   string
	homePlayer *model.Player
	awayPlayer *model.Player
	source     string
}

// CollateUnfinishedGames checks repeated reports of the completion of
// each unfinished game and links accepted completions to the game first
// reported without a result.
func (c *Collation) CollateUnfinishedGames() {
	var sections []string
	var keys = make(map[string][]unfinishedKey)
	for _, g := range c.Report.UnfinishedGames {
		byKey, ok := c.finished[g.Section]
		if !ok {
			byKey = make(map[unfinishedKey][]*model.UnfinishedGame)
			c.finished[g.Section] = byKey
			sections = append(sections, g.Section)
		}
		key := unfinishedKey{
			homeTeam:   g.HomeTeam,
			awayTeam:   g.AwayTeam,
			homePlayer: g.HomePlayer,
			awayPlayer: g.AwayPlayer,
			source:     g.Source,
		}
		if _, ok := byKey[key]; !ok {
			keys[g.Section] = append(keys[g.Section], key)
		}
		byKey[key] = append(byKey[key], g)
	}

	for _, section := range sections {
		for _, key := range keys[section] {
			group := c.finished[section][key]
			latest := group[len(group)-1]
			problems := make(model.ProblemSet)
			var inconsistent *model.UnfinishedGame
			for _, earlier := range group[:len(group)-1] {
				if latest.IsInconsistent(earlier, problems) {
					inconsistent = earlier
				}
			}
			if len(problems) == 0 {
				c.complete(latest)
				continue
			}
			c.reportInconsistentGame(latest, inconsistent)
		}
	}
}

// complete links g to a game without a result, between the same
// players, in the most recent report of the same match.
func (c *Collation) complete(g *model.UnfinishedGame) {
	c.Completions[g] = nil
	byKey, ok := c.Matches[g.Section]
	if !ok {
		return
	}
	for _, key := range sortedMatchKeys(byKey) {
		if key.HomeTeam != g.HomeTeam || key.AwayTeam != g.AwayTeam {
			continue
		}
		group := byKey[key]
		match := group[len(group)-1]
		for _, mg := range match.Games {
			if mg.Result != model.ResultToBeReported {
				continue
			}
			if !mg.HomePlayer.Equal(g.HomePlayer) || !mg.AwayPlayer.Equal(g.AwayPlayer) {
				continue
			}
			if _, taken := c.CompletedBy[mg]; !taken {
				c.CompletedBy[mg] = g
				c.Completions[g] = mg
				return
			}
		}
	}
}

func unfinishedLine(g *model.UnfinishedGame) string {
	return strings.Join([]string{
		"      ",
		g.HomeTeam,
		"-",
		g.AwayTeam,
		"  ",
		g.HomePlayer.DisplayName(),
		g.Result.Display(),
		g.AwayPlayer.DisplayName(),
	}, " ")
}

func (c *Collation) reportInconsistentGame(latest, earlier *model.UnfinishedGame) {
	errs := &c.Report.Errors
	errs.Append("Inconsistent reports for "+latest.Section+" game.", nil)
	errs.Append("   Most recent report:", latest.Tag)
	errs.Append(unfinishedLine(latest), latest.Tag)
	if earlier != nil {
		errs.Append("   Earlier report:", earlier.Tag)
		errs.Append(unfinishedLine(earlier), earlier.Tag)
	}
	errs.Blank()
}

// FinishedGames returns the most recent report of each completed
// game, by section in the order first reported.
func (c *Collation) FinishedGames() []*model.UnfinishedGame {
	sections := make([]string, 0, len(c.finished))
	for s := range c.finished {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	var ret []*model.UnfinishedGame
	for _, s := range sections {
		var section []*model.UnfinishedGame
		for _, group := range c.finished[s] {
			section = append(section, group[len(group)-1])
		}
		sortByTag(section)
		ret = append(ret, section...)
	}
	return ret
}

func sortByTag(games []*model.UnfinishedGame) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i].Tag, games[j].Tag
		if d := compareTags(a, b); d != 0 {
			return d < 0
		}
		var al, bl int
		if a != nil {
			al = a.LineNo
		}
		if b != nil {
			bl = b.LineNo
		}
		return al < bl
	})
}
