/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

import (
	"sort"
	"strings"
)

// Problem names an inconsistency found between duplicate reports.
type Problem string

const (
	ProblemNullPlayer      Problem = "null"
	ProblemHomePlayerWhite Problem = "home player white"
	ProblemGradingOnly     Problem = "grading only"
	ProblemSection         Problem = "section"
	ProblemHomeTeamName    Problem = "home team name"
	ProblemAwayTeamName    Problem = "away team name"
	ProblemHomePlayer      Problem = "home player"
	ProblemAwayPlayer      Problem = "away player"
	ProblemGameCount       Problem = "game count"
	ProblemMatchScore      Problem = "match and game scores in earlier reports"
	ProblemOnlyReport      Problem = "match and game scores in only report"
	ProblemAuthorization   Problem = "authorization"
	ProblemRound           Problem = "round"
	ProblemCompetition     Problem = "competition"
	ProblemSource          Problem = "source"
	ProblemBoard           Problem = "board"
	ProblemResult          Problem = "result"
)

type ProblemSet map[Problem]struct{}

func (ps ProblemSet) Add(p Problem) {
	ps[p] = struct{}{}
}

func (ps ProblemSet) Has(p Problem) bool {
	_, ok := ps[p]
	return ok
}

// Sorted returns the problems in alphabetical order.
func (ps ProblemSet) Sorted() []Problem {
	ret := make([]Problem, 0, len(ps))
	for p := range ps {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func (ps ProblemSet) String() string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps.Sorted() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, "  ")
}
