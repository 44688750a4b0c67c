/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package render writes collated results as text reports and CSV.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/model"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%v\n%v\n", title, strings.Repeat("=", len(title)))
}

// ValidationReport writes every part of the validation report: errors,
// match results, unplayed fixtures, unfinished games, section games and
// players by club.
func ValidationReport(w io.Writer, c *collation.Collation) error {
	parts := []func(io.Writer, *collation.Collation) error{
		Errors,
		Matches,
		FixturesNotPlayed,
		Unfinished,
		SectionGames,
		Players,
	}
	for idx, part := range parts {
		if idx > 0 {
			fmt.Fprintln(w)
		}
		if err := part(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Errors writes the schedule and results errors, each with the line it
// was found on.
func Errors(w io.Writer, c *collation.Collation) error {
	heading(w, "Errors")
	errs := c.AllErrors()
	if len(errs) == 0 {
		fmt.Fprintln(w, "No errors found.")
		return nil
	}
	tw := newTabWriter(w)
	for _, e := range errs {
		if e.Message == "" {
			fmt.Fprintln(tw)
			continue
		}
		for idx, line := range strings.Split(e.Message, "\n") {
			where := ""
			if idx == 0 {
				where = e.Source.String()
			}
			fmt.Fprintf(tw, "%v\t%v\n", where, line)
		}
	}
	return tw.Flush()
}

func scoreText(m *model.MatchReport) string {
	if m.HomeScore == "" && m.AwayScore == "" {
		return "-"
	}
	return m.HomeScore + "-" + m.AwayScore
}

// Matches writes the accepted match reports by competition with their
// games.
func Matches(w io.Writer, c *collation.Collation) error {
	heading(w, "Matches")
	tw := newTabWriter(w)
	for _, comp := range c.ReportOrder {
		accepted := c.Accepted[comp]
		if len(accepted) == 0 {
			continue
		}
		reports := make([]*model.MatchReport, 0, len(accepted))
		for _, m := range accepted {
			reports = append(reports, m)
		}
		sort.Slice(reports, func(i, j int) bool {
			a, b := reports[i], reports[j]
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			if a.HomeTeam != b.HomeTeam {
				return a.HomeTeam < b.HomeTeam
			}
			return a.AwayTeam < b.AwayTeam
		})

		fmt.Fprintf(tw, "\n%v\n", comp)
		for _, m := range reports {
			note := ""
			switch {
			case m.Default:
				note = "match defaulted"
			case c.MatchFixture[m] == nil:
				note = "not a fixture"
			case c.RepeatedFixture[m]:
				note = "fixture already reported"
			}
			fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\n", m.Date, m.HomeTeam, scoreText(m), m.AwayTeam, note)
			for _, g := range m.Games {
				result, status, gradingOnly := g.PrintResult()
				fmt.Fprintf(tw, "\t  %v %v\t%v\t%v\t%v\n", g.Board, g.HomePlayer.DisplayName(),
					result, g.AwayPlayer.DisplayName(), strings.TrimSpace(status+" "+gradingOnly))
			}
		}
	}
	return tw.Flush()
}

// FixturesNotPlayed writes the fixtures with no accepted report.
func FixturesNotPlayed(w io.Writer, c *collation.Collation) error {
	heading(w, "Fixtures not played")
	if len(c.FixturesNotPlayed) == 0 {
		fmt.Fprintln(w, "All fixtures have a result.")
		return nil
	}
	tw := newTabWriter(w)
	for _, f := range c.FixturesNotPlayed {
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\n", f.Date, f.Day, f.Competition, f.HomeTeam, f.AwayTeam)
	}
	return tw.Flush()
}

// Unfinished writes games still to be reported and games reported as
// completed after being unfinished.
func Unfinished(w io.Writer, c *collation.Collation) error {
	heading(w, "Unfinished games")
	tw := newTabWriter(w)
	for _, u := range c.UnfinishedGames() {
		m, g := u.Match, u.Game
		fmt.Fprintf(tw, "%v\t%v v %v\t%v\t%v\t%v\n", m.Competition, m.HomeTeam, m.AwayTeam,
			g.Board, g.HomePlayer.DisplayName(), g.AwayPlayer.DisplayName())
	}
	finished := c.FinishedGames()
	if len(finished) > 0 {
		fmt.Fprintln(tw, "\nCompleted later")
	}
	for _, g := range finished {
		status := ""
		if c.Completions[g] == nil {
			status = "no unfinished game found"
		}
		fmt.Fprintf(tw, "%v\t%v v %v\t%v\t%v\t%v\t%v\t%v\n", g.Section, g.HomeTeam, g.AwayTeam,
			g.Board, g.HomePlayer.DisplayName(), g.Result.Display(), g.AwayPlayer.DisplayName(), status)
	}
	return tw.Flush()
}

// SectionGames writes the games of all-play-all, swiss and individual
// sections.
func SectionGames(w io.Writer, c *collation.Collation) error {
	heading(w, "Section games")
	tw := newTabWriter(w)
	for _, name := range c.ReportOrder {
		section, ok := c.Sections[name]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "\n%v\n", name)
		for _, rec := range section.Games {
			g := rec.GameBase()
			board, round := rec.BoardAndRound()
			where := board
			if round != "" {
				where = "r" + round + " " + board
			}
			fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\n", strings.TrimSpace(where), g.Date,
				g.HomePlayer.DisplayName(), g.Result.Display(), g.AwayPlayer.DisplayName(),
				g.HomePlayerColor.Pieces())
		}
	}
	return tw.Flush()
}

// Players writes the players reported for each club, surname first.
func Players(w io.Writer, c *collation.Collation) error {
	heading(w, "Players by club")
	byClub := c.PlayersByClub()
	clubs := make([]string, 0, len(byClub))
	for club := range byClub {
		clubs = append(clubs, club)
	}
	sort.Strings(clubs)
	tw := newTabWriter(w)
	for _, club := range clubs {
		fmt.Fprintf(tw, "\n%v\n", club)
		for _, id := range byClub[club] {
			p := c.Players[id]
			codes := ""
			if p != nil {
				codes = p.ReportedCodesString()
			}
			fmt.Fprintf(tw, "\t%v\t%v\n", id.Name, codes)
		}
	}
	return tw.Flush()
}
