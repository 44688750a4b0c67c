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
	"github.com/mikeb26/chessvalidate/model"
)

func (r *Report) matchesLine(text string, tag *model.Tag) state {
	if next, ok := r.directive(text, tag); ok {
		return next
	}
	if r.matchName(text, tag) {
		return stateGames
	}
	if r.isEventNameRepeated(text) {
		return stateMatches
	}
	r.errorf(tag, `"`, text, `" in section "`, r.section,
		`" is not recognised as a match name.`)
	return stateMatches
}

func (r *Report) gamesLine(text string, tag *model.Tag) state {
	if next, ok := r.directive(text, tag); ok {
		return next
	}
	if k, _ := classify.Directive(text); k == classify.KindMatchDefaulted {
		if n := len(r.MatchResults); n > 0 {
			r.MatchResults[n-1].Default = true
		} else {
			r.errorf(tag, `"`, text, `" in section "`, r.section,
				`" does not follow a match.`)
		}
		return stateMatches
	}
	if r.gameResult(text, tag) {
		return stateGames
	}
	if r.matchName(text, tag) {
		return stateGames
	}
	if r.isEventNameRepeated(text) {
		return stateMatches
	}
	r.errorf(tag, `"`, text, `" in section "`, r.section,
		`" is not recognised as a game result or match name.`)
	return stateMatches
}

// matchName reads "[date] [round] home [score]-[score] away" and starts
// a new match.
func (r *Report) matchName(text string, tag *model.Tag) bool {
	mn, ok := classify.ParseMatchName(text)
	if !ok {
		return false
	}
	words := strings.Fields(mn.HomeText)
	date := r.date
	if iso, off, ok := internal.ParseDatePrefix(strings.Join(words, " ")); ok {
		date = iso
		words = strings.Fields(strings.Join(words, " ")[off:])
	}
	round := r.round
	if len(words) > 1 && isDigits(words[0]) {
		n, _ := strconv.Atoi(words[0])
		round = strconv.Itoa(n)
		words = words[1:]
	}

	var source string
	switch {
	case date != "":
		source = date + " " + r.section
	case r.source != "":
		source = strings.TrimSpace(r.source + " " + r.section)
	}
	r.match = &currentMatch{
		homeTeam: strings.Join(words, " "),
		awayTeam: mn.AwayTeam,
		date:     date,
		round:    round,
		source:   source,
	}
	r.games = make(map[string]*model.MatchGame)

	if r.playedOn == SeekPlayedOnReport {
		r.playedOn = GameReportPlayedOn
		return true
	}
	r.playedOn = NotPlayedOn
	r.MatchResults = append(r.MatchResults, &model.MatchReport{
		SectionInfo: model.SectionInfo{
			Competition: r.section,
			Order:       len(r.MatchResults),
			Source:      source,
			Date:        date,
			Tag:         tag,
		},
		Round:     round,
		HomeTeam:  r.match.homeTeam,
		HomeScore: mn.HomeScore,
		AwayTeam:  r.match.awayTeam,
		AwayScore: mn.AwayScore,
	})
	r.homeCounts = make(map[*model.Player]int)
	r.awayCounts = make(map[*model.Player]int)
	return true
}

// gameResult reads "[board][w|b] [date] home result away" within a
// match.
func (r *Report) gameResult(text string, tag *model.Tag) bool {
	gl, ok := classify.ParseGameResult(text)
	if !ok || r.match == nil {
		return false
	}
	board := gl.Board
	if board == "" {
		board = strconv.Itoa(len(r.games) + 1)
	}
	var colour model.Color
	switch gl.Colour {
	case "w":
		colour = model.ColorWhite
	case "b":
		colour = model.ColorBlack
	default:
		colour = r.colourRule.BoardColour(board)
	}
	result := model.ParseResult(gl.Score)

	var away *model.Player
	if gl.AwayPlayer != "" {
		away = r.player(gl.AwayPlayer, r.Name, r.match.awayTeam, tag)
	}
	date := ""
	homeName := gl.DatePlayer
	if iso, off, ok := internal.ParseDatePrefix(homeName); ok {
		date = iso
		homeName = strings.TrimSpace(homeName[off:])
	}
	var home *model.Player
	if homeName != "" {
		home = r.player(homeName, r.Name, r.match.homeTeam, tag)
	}

	game := model.MatchGame{
		Game: model.Game{
			Result:          result,
			Date:            date,
			HomePlayerColor: colour,
			HomePlayer:      home,
			AwayPlayer:      away,
			Tag:             tag,
		},
		Board: board,
	}

	if r.playedOn == GameReportPlayedOn {
		r.UnfinishedGames = append(r.UnfinishedGames, &model.UnfinishedGame{
			MatchGame: game,
			Source:    strings.TrimSpace(r.match.source + " " + r.section),
			Section:   r.section,
			HomeTeam:  r.match.homeTeam,
			AwayTeam:  r.match.awayTeam,
		})
		return true
	}

	report := r.MatchResults[len(r.MatchResults)-1]
	earlier, ok := r.games[board]
	if !ok {
		r.checkPlayerLimit(home, r.homeCounts, text, tag)
		r.checkPlayerLimit(away, r.awayCounts, text, tag)
		g := &game
		report.Games = append(report.Games, g)
		r.games[board] = g
		return true
	}

	// a later line for the same board may complete an unfinished game
	inconsistent := earlier.HomePlayer != home ||
		earlier.AwayPlayer != away ||
		earlier.HomePlayerColor != colour ||
		earlier.Date != date
	switch {
	case earlier.Result == model.ResultToBeReported:
		earlier.Result = result
	case earlier.Result != result:
		inconsistent = true
	}
	if inconsistent {
		r.errorf(tag, `Game "`, text, `" is not consistent with earlier game on board "`,
			board, `" in match.`)
		report.Games = append(report.Games, &game)
	}
	return true
}

// checkPlayerLimit counts an appearance of p in the current match.
func (r *Report) checkPlayerLimit(p *model.Player, counts map[*model.Player]int,
	text string, tag *model.Tag) {

	if p == nil {
		return
	}
	if r.playerLimit > 0 && counts[p] >= r.playerLimit {
		r.errorf(tag, `Player "`, p.Name, `" in game "`, text,
			`" occurs too many times in match.`)
	}
	counts[p]++
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
