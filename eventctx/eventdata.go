/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package eventctx

import (
	"strconv"
	"strings"

	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/model"
)

// EventData is one item extracted from an email, a download or a CSV
// file. Which fields are meaningful depends on Found.
type EventData struct {
	DataTag string
	Found   Found
	Raw     string
	Headers *model.Headers

	EventName string
	StartDate string
	EndDate   string

	// Swiss and AllPlayAll are the result entries of a pairing card or
	// cross table row for player Person with Pin.
	Swiss      []string
	AllPlayAll []string
	Person     string
	Pin        string

	Competition      string
	CompetitionRound string
	RoundDates       []string

	TeamOne     string
	TeamTwo     string
	Teams       string
	FixtureDate string
	FixtureDay  string

	ResultDate string
	NameOne    string
	NameTwo    string
	// Names holds both player or team names when they could not be split
	// during extraction.
	Names      string
	Score      string
	ResultOnly bool
	// Numbers holds the board number first when one was given.
	Numbers  []string
	Colour   string
	PlayedOn string
	Source   string

	// TeamOneScore and TeamTwoScore are the match score columns of
	// tabular data.
	TeamOneScore string
	TeamTwoScore string
	// DatePlayed is ResultDate in ISO form when all of it is a date.
	DatePlayed string

	// ignored is the Found value of an item dropped for lack of context.
	ignored Found
}

// inherit fills fields absent from d from the event identity and the
// competition defaults of ctx.
func (d *EventData) inherit(ctx *EventContext) {
	if ctx.identified {
		fill(&d.EventName, ctx.identity.Name)
		fill(&d.StartDate, ctx.identity.StartDate)
		fill(&d.EndDate, ctx.identity.EndDate)
	}
	fill(&d.Competition, ctx.competition)
	fill(&d.ResultDate, ctx.gameDate)
	fill(&d.CompetitionRound, ctx.gameRound)
	if iso, ok := internal.ParseWholeDate(d.ResultDate); ok {
		d.DatePlayed = iso
	}
}

func fill(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Ignored returns the Found value the item had before it was ignored for
// lack of an event identity or competition.
func (d *EventData) Ignored() Found {
	return d.ignored
}

// Board returns the board number, "" if none was given.
func (d *EventData) Board() string {
	if len(d.Numbers) == 0 {
		return ""
	}
	return d.Numbers[0]
}

func (d *EventData) IsResult() bool {
	return d.Found.isRealResult()
}

// IsGameResult reports whether d is the result of a single game.
func (d *EventData) IsGameResult() bool {
	if !d.IsResult() {
		return false
	}
	if _, ok := conventionalMatchGameResults[d.Score]; ok {
		return false
	}
	return !d.IsMatchResult()
}

// IsMatchResult reports whether d is the result of a team match. A score
// ending in ½ is a match score, as is any score whose parts do not add
// up to 1.
func (d *EventData) IsMatchResult() bool {
	if !d.IsResult() {
		return false
	}
	var total float64
	for _, text := range strings.Fields(d.Score) {
		switch {
		case text == "½":
			total += 0.5
		case strings.HasSuffix(text, "½"):
			return true
		default:
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return false
			}
			total += v
		}
	}
	return total != 1
}

func (d *EventData) IsMatchAndGameResult() bool {
	return d.Found == FoundCSVTabular
}

func (d *EventData) IsMatchDefaulted() bool {
	return d.Found == FoundResult && d.Score == ScoreMatchDefaulted
}

// IsDefaultingSideKnown reports whether the side that defaulted a game
// can be decided from the score.
func (d *EventData) IsDefaultingSideKnown() bool {
	if d.Found != FoundResult {
		return false
	}
	_, ok := includedInTeamScore[d.Score]
	return ok
}

func (d *EventData) IsDefaultCounted() bool {
	return d.Found == FoundResult && d.Score == ScoreDefault
}

func (d *EventData) IsDefaultNotCounted() bool {
	if d.Found != FoundResult {
		return false
	}
	_, ok := excludedFromMatchScore[d.Score]
	return ok
}
