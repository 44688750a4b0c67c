/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package eventctx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TabularProblem reports a board of a tabular match whose rows disagree,
// or a match score that differs between rows of the same match.
type TabularProblem struct {
	Source      string
	Competition string
	TeamOne     string
	TeamTwo     string
	Date        string
	Board       string
	// Detail names the conflicting values.
	Detail string
}

func (p TabularProblem) String() string {
	return fmt.Sprintf("%s: %s %s v %s %s board %s: %s",
		p.Source, p.Competition, p.TeamOne, p.TeamTwo, p.Date, p.Board, p.Detail)
}

type tabularMatchKey struct {
	teamOne string
	teamTwo string
	date    string
}

type tabularGame struct {
	results    map[string]struct{}
	rounds     map[string]struct{}
	dates      map[string]struct{}
	rows       []*EventData
	matchScore map[[2]string]struct{}
}

type tabularMatch struct {
	boards map[string]*tabularGame
}

type tabularCompetition struct {
	matches map[tabularMatchKey]*tabularMatch
	keys    []tabularMatchKey
}

// gamePoints are the points for each side of a tabular game result.
var gamePoints = map[string][2]float64{
	"1-0":  {1, 0},
	"0-1":  {0, 1},
	"draw": {0.5, 0.5},
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func addTo[K comparable](set map[K]struct{}, v K) {
	set[v] = struct{}{}
}

// ConvertTabularData turns rows of CSV tabular data into match and game
// result items. Rows are grouped by source, competition, match and board.
// Every board must carry one result, round, date and row; every row of a
// match must give the same match score where it gives one. A match
// without a consistent score takes the total of its game results.
func (c *EventContext) ConvertTabularData() []TabularProblem {
	bySource := make(map[string]map[string]*tabularCompetition)
	var compOrder []string
	compSeen := make(map[string]struct{})
	var first *EventData

	for _, comp := range c.tabular.Competitions() {
		for _, row := range c.tabular.Get(comp) {
			if row.Found != FoundCSVTabular {
				continue
			}
			if row.TeamOne == "" || row.TeamTwo == "" || (row.NameOne == "" && row.NameTwo == "") {
				continue
			}
			if first == nil {
				first = row
			}
			comps, ok := bySource[row.Source]
			if !ok {
				comps = make(map[string]*tabularCompetition)
				bySource[row.Source] = comps
			}
			tc, ok := comps[comp]
			if !ok {
				tc = &tabularCompetition{matches: make(map[tabularMatchKey]*tabularMatch)}
				comps[comp] = tc
			}
			if _, ok := compSeen[comp]; !ok {
				compSeen[comp] = struct{}{}
				compOrder = append(compOrder, comp)
			}
			mkey := tabularMatchKey{teamOne: row.TeamOne, teamTwo: row.TeamTwo, date: row.ResultDate}
			m, ok := tc.matches[mkey]
			if !ok {
				m = &tabularMatch{boards: make(map[string]*tabularGame)}
				tc.matches[mkey] = m
				tc.keys = append(tc.keys, mkey)
			}
			board := row.Board()
			if board == "" {
				board = strconv.Itoa(len(m.boards) + 1)
			}
			g, ok := m.boards[board]
			if !ok {
				g = &tabularGame{
					results:    make(map[string]struct{}),
					rounds:     make(map[string]struct{}),
					dates:      make(map[string]struct{}),
					matchScore: make(map[[2]string]struct{}),
				}
				m.boards[board] = g
			}
			addTo(g.results, strings.Join([]string{row.NameOne, row.Score, row.NameTwo, row.Colour}, "\t"))
			addTo(g.rounds, row.CompetitionRound)
			addTo(g.dates, row.DatePlayed)
			g.rows = append(g.rows, row)
			addTo(g.matchScore, [2]string{row.TeamOneScore, row.TeamTwoScore})
		}
	}
	if first == nil {
		return nil
	}

	var problems []TabularProblem
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	c.Add(&EventData{
		DataTag:   first.DataTag,
		Found:     FoundEventAndDates,
		Headers:   first.Headers,
		EventName: first.EventName,
		StartDate: first.StartDate,
		EndDate:   first.EndDate,
	})
	for _, source := range sources {
		for _, comp := range compOrder {
			tc, ok := bySource[source][comp]
			if !ok {
				continue
			}
			c.Add(&EventData{
				DataTag:     first.DataTag,
				Found:       FoundCompetitionName,
				Headers:     first.Headers,
				Competition: comp,
				Source:      source,
			})
			for _, mkey := range tc.keys {
				m := tc.matches[mkey]
				problem := func(board, detail string) {
					problems = append(problems, TabularProblem{
						Source:      source,
						Competition: comp,
						TeamOne:     mkey.teamOne,
						TeamTwo:     mkey.teamTwo,
						Date:        mkey.date,
						Board:       board,
						Detail:      detail,
					})
				}
				boards := make([]string, 0, len(m.boards))
				for b := range m.boards {
					boards = append(boards, b)
				}
				sort.Strings(boards)

				rowScore := make(map[[2]string]struct{})
				var total [2]float64
				for _, b := range boards {
					g := m.boards[b]
					if len(g.results) != 1 {
						problem(b, "conflicting game results")
					}
					if len(g.rounds) != 1 {
						problem(b, "conflicting rounds")
					}
					if len(g.dates) != 1 {
						problem(b, "conflicting dates played")
					}
					if len(g.rows) != 1 {
						problem(b, "board given more than once")
					}
					for score := range g.matchScore {
						if score == ([2]string{}) {
							continue
						}
						if _, seen := rowScore[score]; len(rowScore) > 0 && !seen {
							problem(b, "match score "+score[0]+" "+score[1]+" differs from other rows")
						}
						addTo(rowScore, score)
					}
					p := gamePoints[g.rows[0].Score]
					total[0] += p[0]
					total[1] += p[1]
				}

				var score [2]string
				if len(rowScore) == 1 {
					for s := range rowScore {
						score = s
					}
				} else {
					score = [2]string{formatPoints(total[0]), formatPoints(total[1])}
				}
				matchRow := m.boards[boards[0]].rows[0]
				c.Add(&EventData{
					DataTag:     matchRow.DataTag,
					Found:       FoundResultNames,
					Headers:     matchRow.Headers,
					Competition: comp,
					ResultDate:  mkey.date,
					NameOne:     mkey.teamOne,
					NameTwo:     mkey.teamTwo,
					Score:       score[0] + " " + score[1],
					Source:      source,
				})
				for _, b := range boards {
					row := m.boards[b].rows[0]
					c.Add(&EventData{
						DataTag:          row.DataTag,
						Found:            FoundResultNames,
						Headers:          row.Headers,
						Competition:      comp,
						CompetitionRound: row.CompetitionRound,
						ResultDate:       row.DatePlayed,
						NameOne:          row.NameOne,
						NameTwo:          row.NameTwo,
						Score:            row.Score,
						Numbers:          []string{b},
						Colour:           row.Colour,
						Source:           source,
					})
				}
			}
		}
	}
	for _, p := range problems {
		c.logger.Warn("tabular data inconsistent", "problem", p.String())
	}
	return problems
}
