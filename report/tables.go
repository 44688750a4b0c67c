/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/model"
)

// tableDirective handles section and source lines within an all-play-all,
// swiss or individual section.
func (r *Report) tableDirective(text string, tag *model.Tag) (state, bool) {
	kind, words := classify.Directive(text)
	switch kind {
	case classify.KindSection:
		return r.sectionLine(text, tag), true
	case classify.KindSource:
		r.setSource(words)
		return r.state, true
	}
	return r.state, false
}

func (r *Report) crossTableLine(text string, tag *model.Tag) state {
	if next, ok := r.tableDirective(text, tag); ok {
		return next
	}
	pin, row, ok := classify.ParseCrossTableRow(text)
	if !ok {
		r.errorf(tag, `"`, text, `" is not recognised as a cross table row.`)
		r.errorRepeat = false
		return stateCrossTable
	}
	r.crossTableRow(pin, row, tag)
	return stateCrossTable
}

// nominalRound is the round in which pin plays opponent in a standard
// all-play-all pairing of rounds rounds.
func nominalRound(pin, opponent, rounds int) int {
	switch {
	case opponent > rounds:
		if pin*2 > opponent {
			return pin*2 - opponent
		}
		return pin*2 - 1
	case pin > rounds:
		if opponent*2 > pin {
			return opponent*2 - pin
		}
		return opponent*2 - 1
	}
	n := (pin + opponent - 1) % rounds
	if n == 0 {
		return rounds
	}
	return n
}

func (r *Report) crossTableRow(pinText string, row []string, tag *model.Tag) {
	table := r.CrossTables[r.section]
	pin := len(table) + 1
	if pinText != "" {
		pin, _ = strconv.Atoi(pinText)
	}
	described := strings.Join([]string{strconv.Itoa(pin), r.section, strings.Join(row, " ")}, " ")
	if pin < 1 {
		r.errorf(tag, `PIN in cross-table row "`, described, `" must be at least 1.`)
		r.errorRepeat = false
		return
	}
	if pin > len(row) {
		r.errorf(tag, "PIN is greater than number of players implied in cross-table row \"",
			described, `".`)
		r.errorRepeat = false
		return
	}
	if _, ok := table[pin]; ok {
		r.errorf(tag, `Cross-table row for PIN in "`, described, `" already exists.`)
		r.errorRepeat = false
		return
	}

	rounds := len(row)
	if rounds%2 == 0 {
		rounds--
	}
	card := make([]CrossTableEntry, 0, len(row))
	for _, e := range row {
		opponent := len(card) + 1
		colour, score, ok := classify.ParseCrossTableResult(e)
		if !ok {
			r.errorf(tag, `"`, e, `" in cross-table row "`, described,
				`" is not a recognised result.`)
			return
		}
		if opponent == pin {
			if e != "~" {
				r.errorf(tag, `Crosstable entry where opponent is self in "`,
					described, `" must be "~".`)
			}
			card = append(card, CrossTableEntry{Tag: tag, Score: "~"})
			continue
		}
		nr := nominalRound(pin, opponent, rounds)
		if other, ok := table[opponent]; ok && pin <= len(other) {
			oe := other[pin-1]
			if score != classify.OppositeScore(oe.Score) ||
				colour != classify.OppositeColour(oe.Colour) ||
				nr != oe.NominalRound {
				r.errorf(tag, `Cross table row "`, described,
					`" is not consistent with row for opponent "`,
					strconv.Itoa(opponent), `".`)
			}
		}
		card = append(card, CrossTableEntry{
			Tag:          tag,
			Colour:       colour,
			Score:        score,
			NominalRound: nr,
		})
	}
	table[pin] = card
	r.rowOrder[r.section] = append(r.rowOrder[r.section], pin)
}

func (r *Report) swissTableLine(text string, tag *model.Tag) state {
	if next, ok := r.tableDirective(text, tag); ok {
		return next
	}
	pin, row, ok := classify.ParseSwissRow(text)
	if !ok {
		r.errorf(tag, `"`, text, `" is not recognised as a swiss table row.`)
		r.errorRepeat = false
		return stateSwissTable
	}
	r.swissTableRow(pin, row, tag)
	return stateSwissTable
}

func (r *Report) swissTableRow(pinText string, row []string, tag *model.Tag) {
	table := r.SwissTables[r.section]
	pin := len(table) + 1
	if pinText != "" {
		pin, _ = strconv.Atoi(pinText)
	}
	results := strings.Join(row, " ")
	described := strings.Join([]string{strconv.Itoa(pin), r.section, results}, " ")
	if pin < 1 {
		r.errorf(tag, `PIN in swiss table row "`, described, `" must be at least 1.`)
		r.errorRepeat = false
		return
	}
	if _, ok := table[pin]; ok {
		r.errorf(tag, `Swiss table row for PIN in "`, described, `" already exists.`)
		r.errorRepeat = false
		return
	}

	others := make([]int, 0, len(table))
	for p := range table {
		others = append(others, p)
	}
	sort.Ints(others)

	card := make([]SwissEntry, 0, len(row))
	for _, e := range row {
		se, ok := classify.ParseSwissResult(e)
		if !ok {
			r.errorf(tag, `"`, e, `" in results "`, results, `" pin "`,
				strconv.Itoa(pin), `" is not a recognised result.`)
			return
		}
		round := strconv.Itoa(len(card) + 1)
		if se.Opponent == pin {
			r.errorf(tag, `Opponent pin in round "`, round, `" of results ("`,
				results, `" is same as pin ("`, strconv.Itoa(pin), `").`)
			card = append(card, SwissEntry{Tag: tag, NotPlayed: "x"})
			continue
		}
		for _, i := range others {
			if len(table[i]) <= len(card) {
				continue
			}
			oe := table[i][len(card)]
			bad := false
			switch {
			case oe.Opponent != pin:
				bad = i == se.Opponent
			case se.Opponent == i:
				bad = oe.Colour != classify.OppositeColour(se.Colour) ||
					oe.Score != classify.NormalizeScore(classify.OppositeScore(se.Score))
			default:
				bad = true
			}
			if bad {
				r.errorf(tag, `Pairing card result for round "`, round, `" ("`,
					results, `" (pin "`, strconv.Itoa(pin),
					`") is not consistent with pairing card for pin "`,
					strconv.Itoa(i), `".`)
			}
		}
		card = append(card, SwissEntry{
			Tag:       tag,
			NotPlayed: se.NotPlayed,
			Colour:    se.Colour,
			Opponent:  se.Opponent,
			Score:     classify.NormalizeScore(se.Score),
		})
	}
	table[pin] = card
	r.swissRowOrder[r.section] = append(r.swissRowOrder[r.section], pin)
}

// checkSwissOpponents reports games on a pairing card whose opponent has
// no pairing card for that round.
func (r *Report) checkSwissOpponents() {
	for _, section := range r.ReportOrder {
		table, ok := r.SwissTables[section]
		if !ok {
			continue
		}
		for _, pin := range r.swissRowOrder[section] {
			for idx, e := range table[pin] {
				if e.Opponent == 0 {
					continue
				}
				if other, ok := table[e.Opponent]; ok && len(other) > idx {
					continue
				}
				r.errorf(e.Tag, `Pairing card for pin "`, strconv.Itoa(e.Opponent),
					`" has no result for round "`, strconv.Itoa(idx+1),
					`" reported by pin "`, strconv.Itoa(pin), `" in section "`,
					section, `".`)
			}
		}
	}
}

func (r *Report) individualLine(text string, tag *model.Tag) state {
	if next, ok := r.tableDirective(text, tag); ok {
		return next
	}
	if !r.individualGame(text, tag) {
		r.errorf(tag, `"`, text, `" in section "`, r.section,
			`" is not recognised as a game result.`)
	}
	return stateIndividual
}

// individualGame reads "[date] white result black".
func (r *Report) individualGame(text string, tag *model.Tag) bool {
	ig, ok := classify.ParseIndividualGame(text)
	if !ok {
		return false
	}
	date := ""
	whiteName := ig.White
	if iso, off, ok := internal.ParseDatePrefix(whiteName); ok {
		date = iso
		whiteName = model.JoinFields(whiteName[off:])
	}
	white := r.player(whiteName, "", "", tag)
	black := r.player(ig.Black, "", "", tag)
	if white.Name == black.Name {
		r.errorf(tag, `Player names in "`, text, `" must be different.`)
		// reported, so the line is not also unrecognised
		return true
	}
	section := r.Individual[r.section]
	section.Games = append(section.Games, &model.Game{
		Result:          model.ParseResult(ig.Score),
		Date:            date,
		HomePlayerColor: model.ColorWhite,
		HomePlayer:      white,
		AwayPlayer:      black,
		Tag:             tag,
	})
	return true
}
