/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"strings"
	"testing"

	"github.com/mikeb26/chessvalidate/classify"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(text string) *Report {
	return Build(model.NewLines("results", text, nil), WithLogger(logging.NewNop()))
}

func TestLeagueMatch(t *testing.T) {
	r := build("league Division 1\nTeam A - Team B\n1 A.Smith 1-0 B.Jones")

	require.Empty(t, r.Errors.Messages())
	assert.False(t, r.Fatal)
	assert.Equal(t, classify.SectionLeague, r.Sections["Division 1"])
	require.Len(t, r.MatchResults, 1)
	m := r.MatchResults[0]
	assert.Equal(t, "Division 1", m.Competition)
	assert.Equal(t, "Team A", m.HomeTeam)
	assert.Equal(t, "Team B", m.AwayTeam)
	assert.Equal(t, "", m.Source)
	require.Len(t, m.Games, 1)
	g := m.Games[0]
	assert.Equal(t, "1", g.Board)
	assert.Equal(t, model.ResultHomeWin, g.Result)
	assert.Equal(t, "A.Smith", g.HomePlayer.Name)
	assert.Equal(t, "Team A", g.HomePlayer.Club)
	assert.Equal(t, "B.Jones", g.AwayPlayer.Name)
	assert.Equal(t, "Team B", g.AwayPlayer.Club)
}

func TestMatchHeaderLines(t *testing.T) {
	r := build("Example League 2024\nleague Division 1\nsource email\nround 3\nwhiteonodd\n" +
		"Reading 2-0 Newbury\nSmith 1-0 Jones\nBrown def+\n" +
		"date 2024-10-12\n4 Newbury 1-1 Reading\nmatchdefaulted\n" +
		"Example League 2024\nround semi final")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, `"round semi final" must be like "round 2" to specify the round.`, msgs[0])
	assert.Equal(t, "Example League 2024", r.Name)
	require.Len(t, r.MatchResults, 2)

	first := r.MatchResults[0]
	assert.Equal(t, "3", first.Round)
	assert.Equal(t, "email Division 1", first.Source)
	assert.Equal(t, "2", first.HomeScore)
	assert.Equal(t, "0", first.AwayScore)
	require.Len(t, first.Games, 2)
	assert.Equal(t, model.ColorWhite, first.Games[0].HomePlayerColor)
	assert.Equal(t, model.ColorBlack, first.Games[1].HomePlayerColor)
	assert.Equal(t, "2", first.Games[1].Board)
	assert.Nil(t, first.Games[1].AwayPlayer)
	assert.Equal(t, model.ResultHomeWinDefault, first.Games[1].Result)
	_, consistent := first.UnfinishedGamesAndScoreConsistency()
	assert.True(t, consistent)

	second := r.MatchResults[1]
	assert.Equal(t, "4", second.Round)
	assert.Equal(t, "2024-10-12", second.Date)
	assert.Equal(t, "2024-10-12 Division 1", second.Source)
	assert.Equal(t, "Newbury", second.HomeTeam)
	assert.True(t, second.Default)
	assert.Equal(t, 1, second.Order)
}

func TestNotRecognised(t *testing.T) {
	r := build("league D1\nnonsense\nA - B\nmore nonsense")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, `"nonsense" in section "D1" is not recognised as a match name.`, msgs[0])
	assert.Equal(t, `"more nonsense" in section "D1" is not recognised as a game result or match name.`, msgs[1])
}

func TestSectionErrors(t *testing.T) {
	r := build("Event\nknockout Cup\nleague D1\nA - B\nleague D1\nfixturelist D1")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, `Section type "knockout" not recognised.`, msgs[0])
	assert.Equal(t, `Section type "league" found after errors.`, msgs[1])
	assert.Equal(t, `Section "D1" named earlier.`, msgs[2])
	assert.Equal(t, `Section type "fixturelist" found after errors.`, msgs[3])
	assert.Equal(t, []string{"D1"}, r.ReportOrder)
}

func TestPlayerLimit(t *testing.T) {
	r := build("league D1\nA - B\nSmith 1-0 Jones\nSmith 0-1 Brown\ngames 2\nA - C\nSmith 1-0 Jones\nSmith 0-1 Brown")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, `Player "Smith" in game "Smith 0-1 Brown" occurs too many times in match.`, msgs[0])
	require.Len(t, r.MatchResults, 2)
	assert.Len(t, r.MatchResults[0].Games, 2)
	assert.Same(t, r.MatchResults[0].Games[0].HomePlayer, r.MatchResults[0].Games[1].HomePlayer)
}

func TestBoardCompletion(t *testing.T) {
	r := build("league D1\nA - B\n1 Smith unfinished Jones\n1 Smith 1-0 Jones\n2 Brown draw Green\n2 Brown 0-1 Green")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], `Game "2 Brown 0-1 Green" is not consistent`))
	games := r.MatchResults[0].Games
	require.Len(t, games, 3)
	assert.Equal(t, model.ResultHomeWin, games[0].Result)
	assert.Equal(t, model.ResultDraw, games[1].Result)
	assert.Equal(t, model.ResultAwayWin, games[2].Result)
}

func TestPlayedOn(t *testing.T) {
	r := build("league D1\nA - B\n1 Smith unfinished Jones\nplayed on\nA - B\n1 Smith 1-0 Jones\nC - D\n1 Brown draw Green")

	require.Empty(t, r.Errors.Messages())
	require.Len(t, r.MatchResults, 2)
	assert.Equal(t, "C", r.MatchResults[1].HomeTeam)
	require.Len(t, r.UnfinishedGames, 1)
	ug := r.UnfinishedGames[0]
	assert.Equal(t, "D1", ug.Section)
	assert.Equal(t, "D1", ug.Source)
	assert.Equal(t, "A", ug.HomeTeam)
	assert.Equal(t, model.ResultHomeWin, ug.Result)
	assert.Same(t, r.MatchResults[0].Games[0].HomePlayer, ug.HomePlayer)
}

func TestCrossTable(t *testing.T) {
	r := build("allplayall Open\n1 ~ w+ b=\n2 b- ~ w+\n3 w= b- ~")

	require.Empty(t, r.Errors.Messages())
	table := r.CrossTables["Open"]
	require.Len(t, table, 3)
	assert.Equal(t, []int{1, 2, 3}, r.CrossTablePins("Open"))
	assert.Equal(t, 2, table[1][1].NominalRound)
	assert.Equal(t, 3, table[1][2].NominalRound)
	assert.Equal(t, 1, table[2][2].NominalRound)
	assert.Equal(t, 0, table[2][1].NominalRound)
}

func TestCrossTableSymmetry(t *testing.T) {
	r := build("allplayall Open\n1 ~ w+ b=\n2 b+ ~ w+\n3 w= b- ~\n1 ~ - -\n7 ~ +\n3 ~ x ~")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, `Cross table row "2 Open b+ ~ w+" is not consistent with row for opponent "1".`, msgs[0])
	assert.Equal(t, `Cross-table row for PIN in "1 Open ~ - -" already exists.`, msgs[1])
	assert.Equal(t, `PIN is greater than number of players implied in cross-table row "7 Open ~ +".`, msgs[2])
	assert.Equal(t, `"3 ~ x ~" is not recognised as a cross table row.`, msgs[3])
	assert.Len(t, r.CrossTables["Open"], 3)
}

func TestSwissTable(t *testing.T) {
	r := build("swiss Open\n1 b3- bye+\n2 bye+ w3=\n3 w1+ b2=")

	require.Empty(t, r.Errors.Messages())
	table := r.SwissTables["Open"]
	require.Len(t, table, 3)
	assert.Equal(t, SwissEntry{Tag: table[3][0].Tag, Colour: "w", Opponent: 1, Score: "+"}, table[3][0])
	assert.Equal(t, "bye+", table[2][0].NotPlayed)
	assert.Equal(t, 0, table[2][0].Opponent)
}

func TestSwissRowAlone(t *testing.T) {
	r := build("swiss Open\n3 w1+ b2=")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 2)
	for _, msg := range msgs {
		assert.Contains(t, msg, `reported by pin "3"`)
	}
	require.Len(t, r.SwissTables["Open"][3], 2)
	assert.Equal(t, "=", r.SwissTables["Open"][3][1].Score)
}

func TestSwissInconsistent(t *testing.T) {
	r := build("swiss Open\n1 b2-\n2 b1+\n3 w3p\n1 w2+")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, `Pairing card result for round "1" ("b1+" (pin "2") is not consistent with pairing card for pin "1".`, msgs[0])
	assert.Equal(t, `Opponent pin in round "1" of results ("w3p" is same as pin ("3").`, msgs[1])
	assert.Equal(t, `Swiss table row for PIN in "1 Open w2+" already exists.`, msgs[2])
}

func TestInvalidPins(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
		rows int
	}{
		{
			name: "cross table pin zero",
			text: "allplayall Open\n1. ~ +\n0. - ~",
			msg:  `PIN in cross-table row "0 Open - ~" must be at least 1.`,
			rows: 1,
		},
		{
			name: "cross table pin beyond row",
			text: "allplayall Open\n1 ~ +\n5 + ~",
			msg:  `PIN is greater than number of players implied in cross-table row "5 Open + ~".`,
			rows: 1,
		},
		{
			name: "cross table duplicate pin",
			text: "allplayall Open\n1 ~ +\n1 ~ +",
			msg:  `Cross-table row for PIN in "1 Open ~ +" already exists.`,
			rows: 1,
		},
		{
			name: "swiss pin zero",
			text: "swiss Open\n0 w1+",
			msg:  `PIN in swiss table row "0 Open w1+" must be at least 1.`,
			rows: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r *Report
			require.NotPanics(t, func() { r = build(tc.text) })

			msgs := r.Errors.Messages()
			require.Len(t, msgs, 1)
			assert.Equal(t, tc.msg, msgs[0])
			assert.Equal(t, tc.rows, len(r.CrossTables["Open"])+len(r.SwissTables["Open"]))
		})
	}
}

func TestIndividual(t *testing.T) {
	r := build("individual Friendlies\n2024-10-12 Smith 1-0 Jones\nBrown draw Brown\nnot a game")

	msgs := r.Errors.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, `Player names in "Brown draw Brown" must be different.`, msgs[0])
	assert.Equal(t, `"not a game" in section "Friendlies" is not recognised as a game result.`, msgs[1])
	section := r.Individual["Friendlies"]
	require.Len(t, section.Games, 1)
	g := section.Games[0].GameBase()
	assert.Equal(t, "2024-10-12", g.Date)
	assert.Equal(t, "Smith", g.HomePlayer.Name)
	assert.Equal(t, model.ColorWhite, g.HomePlayerColor)
}

func TestEmptyResults(t *testing.T) {
	r := build("\n\n")
	assert.True(t, r.Fatal)
	assert.Equal(t, []string{"Results report has too few lines for event name to be present"},
		r.Errors.Messages())
}

func TestIdempotent(t *testing.T) {
	text := "Event\nleague D1\nround 1\nA 1-1 B\n1 Smith 1-0 Jones\n2 Brown 0-1 Green\nswiss Open\n1 w2+\n2 b1-"
	first := build(text)
	second := build(text)

	assert.Equal(t, first.Errors.Messages(), second.Errors.Messages())
	require.Len(t, second.MatchResults, len(first.MatchResults))
	for idx := range first.MatchResults {
		assert.True(t, first.MatchResults[idx].Equal(second.MatchResults[idx]))
	}
	assert.Equal(t, first.SwissTables["Open"][1][0].Score, second.SwissTables["Open"][1][0].Score)
}

func TestSetMatchResult(t *testing.T) {
	r := build("league D1\nA - B\nSmith 1-0 Jones")
	m := r.MatchResults[0]
	r.SetMatchResult(m)
	assert.Same(t, m, r.Results["D1"][ResultKey{HomeTeam: "A", AwayTeam: "B"}])
}
