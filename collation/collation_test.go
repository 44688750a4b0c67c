/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package collation

import (
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/report"
	"github.com/mikeb26/chessvalidate/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collate(t *testing.T, scheduleText, resultsText string, headers *model.Headers,
	opts ...Option) *Collation {

	t.Helper()
	nop := logging.NewNop()
	s := schedule.Build(model.NewLines("schedule", scheduleText, nil), schedule.WithLogger(nop))
	r := report.Build(model.NewLines("results", resultsText, headers), report.WithLogger(nop))
	return Collate(s, r, append([]Option{WithLogger(nop)}, opts...)...)
}

func TestLeagueScenario(t *testing.T) {
	c := collate(t,
		"league Division 1\nTeam A\nTeam B\nmatches\nTeam A - Team B",
		"league Division 1\nTeam A - Team B\n1 A.Smith 1-0 B.Jones",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	require.Len(t, c.Report.MatchResults, 1)
	m := c.Report.MatchResults[0]
	require.Len(t, m.Games, 1)
	assert.Equal(t, "1", m.Games[0].Board)
	assert.Equal(t, model.ResultHomeWin, m.Games[0].Result)

	require.Len(t, c.MatchFixture, 1)
	f := c.MatchFixture[m]
	require.NotNil(t, f)
	assert.Equal(t, "Team A", f.HomeTeam)
	assert.Same(t, m, c.FixtureMatch[f])
	assert.Empty(t, c.FixturesNotPlayed)
	assert.Equal(t, []*model.MatchFixture{f}, c.FixturesPlayed())
	assert.Empty(t, c.NonFixturesPlayed())

	key := MatchKey{HomeTeam: "Team A", AwayTeam: "Team B"}
	assert.Same(t, m, c.Accepted["Division 1"][key])
	assert.Same(t, m, c.Report.Results["Division 1"][report.ResultKey{HomeTeam: "Team A", AwayTeam: "Team B"}])

	smith := m.Games[0].HomePlayer
	assert.Equal(t, "Team", smith.Club)
	assert.Same(t, smith, c.Players[smith.PlayerIdentity()])
	assert.Equal(t, []*model.MatchReport{m}, c.TeamPlayers["Team A"][smith.PlayerIdentity()])
}

func TestDuplicateReports(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nmatches\nA - B",
		"league D1\nA - B\n1 Smith 1-0 Jones\nA - B\n1 Smith 0-1 Jones",
		nil)

	key := MatchKey{HomeTeam: "A", AwayTeam: "B"}
	group := c.Matches["D1"][key]
	require.Len(t, group, 2)
	assert.Equal(t, model.ResultAwayWin, group[1].Games[0].Result)
	assert.Empty(t, c.Accepted["D1"])
	assert.Len(t, c.FixturesNotPlayed, 1)

	text := strings.Join(c.AllErrors().Messages(), "\n")
	assert.Contains(t, text, "Inconsistent reports for D1 match:")
	assert.Contains(t, text, "1 Smith 1-0 Jones")
	assert.Contains(t, text, "1 Smith 0-1 Jones")
	assert.Contains(t, text, string(model.ProblemResult))
}

func TestAgreeingReports(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nmatches\nA - B",
		"league D1\nA 1-0 B\n1 Smith 1-0 Jones\nA 1-0 B\n1 Smith 1-0 Jones",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	group := c.Matches["D1"][MatchKey{HomeTeam: "A", AwayTeam: "B"}]
	require.Len(t, group, 2)
	assert.Same(t, group[1], c.Accepted["D1"][MatchKey{HomeTeam: "A", AwayTeam: "B"}])
	assert.Equal(t, []*model.MatchReport{group[1]}, c.ReportsByMatch())
}

func TestDefaultedGameInOnlyReport(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nmatches\nA - B",
		"league D1\nA 1-0 B\n1 Smith default Jones\n2 Brown 1-0 Green",
		nil)

	assert.NotContains(t, strings.Join(c.AllErrors().Messages(), "\n"), string(model.ProblemOnlyReport))
	assert.Len(t, c.Accepted["D1"], 1)
	assert.Empty(t, c.FixturesNotPlayed)
}

func TestAuthorization(t *testing.T) {
	received := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)
	delay := 5 * 24 * time.Hour
	headers := &model.Headers{AuthorizationDelay: &delay, Dates: []time.Time{received}}
	scheduleText := "league D1\nA\nB\nmatches\nA - B"
	resultsText := "league D1\nA - B\n1 Smith 1-0 Jones"

	tests := []struct {
		name       string
		after      time.Duration
		authorized bool
	}{
		{name: "two days", after: 2 * 24 * time.Hour, authorized: false},
		{name: "six days", after: 6 * 24 * time.Hour, authorized: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := collate(t, scheduleText, resultsText, headers, WithNow(received.Add(tc.after)))
			key := MatchKey{HomeTeam: "A", AwayTeam: "B"}
			_, accepted := c.Accepted["D1"][key]
			assert.Equal(t, tc.authorized, accepted)
			assert.Equal(t, tc.authorized, Authorized(c.Matches["D1"][key], received.Add(tc.after)))
			text := strings.Join(c.AllErrors().Messages(), "\n")
			if tc.authorized {
				assert.Empty(t, text)
			} else {
				assert.Contains(t, text, string(model.ProblemAuthorization))
			}
		})
	}
}

func TestAuthorizedWithoutHeaders(t *testing.T) {
	m := &model.MatchReport{SectionInfo: model.SectionInfo{Tag: &model.Tag{DataTag: "file"}}}
	assert.True(t, Authorized([]*model.MatchReport{m}, time.Time{}))

	delay := time.Hour
	undated := &model.MatchReport{SectionInfo: model.SectionInfo{
		Tag: &model.Tag{Headers: &model.Headers{AuthorizationDelay: &delay}},
	}}
	assert.False(t, Authorized([]*model.MatchReport{undated}, time.Now()))
}

func TestFixtureCrossReference(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nC\nmatches\nA - B\nB - C",
		"league D1\nA - B\n1 Smith 1-0 Jones\nC - A\n1 White 1-0 Brown",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	require.Len(t, c.FixturesNotPlayed, 1)
	assert.Equal(t, "B", c.FixturesNotPlayed[0].HomeTeam)
	assert.Equal(t, "C", c.FixturesNotPlayed[0].AwayTeam)
	played := c.FixturesPlayed()
	require.Len(t, played, 1)
	assert.Equal(t, "A", played[0].HomeTeam)
	extra := c.NonFixturesPlayed()
	require.Len(t, extra, 1)
	assert.Equal(t, "C", extra[0].HomeTeam)
	assert.Nil(t, c.MatchFixture[extra[0]])
}

func TestUnfinishedCompletion(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nmatches\nA - B",
		"league D1\nA - B\n1 Smith unfinished Jones\nplayed on\nA - B\n1 Smith 1-0 Jones",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	require.Len(t, c.Report.UnfinishedGames, 1)
	ug := c.Report.UnfinishedGames[0]
	mg := c.Report.MatchResults[0].Games[0]
	assert.Same(t, mg, c.Completions[ug])
	assert.Same(t, ug, c.CompletedBy[mg])
	assert.Equal(t, []*model.UnfinishedGame{ug}, c.FinishedGames())

	unfinished := c.UnfinishedGames()
	require.Len(t, unfinished, 1)
	assert.Same(t, mg, unfinished[0].Game)

	matches, finished := c.ReportsBySource()
	require.Len(t, matches, 1)
	assert.Len(t, matches[0].Unfinished, 1)
	assert.True(t, matches[0].Consistent)
	assert.Equal(t, []*model.UnfinishedGame{ug}, finished)
}

func TestInconsistentCompletion(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB\nmatches\nA - B",
		"league D1\nA - B\n1 Smith unfinished Jones\nplayed on\nA - B\n1 Smith 1-0 Jones\nplayed on\nA - B\n1 Smith draw Jones",
		nil)

	msgs := c.AllErrors().Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, "Inconsistent reports for D1 game.", msgs[0])
	assert.Empty(t, c.Completions)
}

func TestPlayerUnification(t *testing.T) {
	c := collate(t,
		"league D1\nReading A\nReading B\nNewbury\nmatches\nReading A - Newbury\nNewbury - Reading B",
		"league D1\nReading A - Newbury\n1 Smith 1-0 Jones\nNewbury - Reading B\n1 Green 0-1 Smith",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	require.Len(t, c.Report.MatchResults, 2)
	first := c.Report.MatchResults[0].Games[0].HomePlayer
	second := c.Report.MatchResults[1].Games[0].AwayPlayer
	assert.Same(t, first, second)
	assert.Equal(t, "Reading", first.Club)
	assert.Equal(t, "Reading", first.Affiliation)

	byClub := c.PlayersByClub()
	assert.Equal(t, []model.Identity{first.PlayerIdentity()}, byClub["Reading"])
	require.Len(t, byClub["Newbury"], 2)
	assert.Equal(t, "Green", byClub["Newbury"][0].Name)

	byPlayer := c.ReportsByPlayer()
	require.Len(t, byPlayer, 3)
	assert.Equal(t, "Green", byPlayer[0].Player.Name)
	assert.Equal(t, "Smith", byPlayer[2].Player.Name)
	require.Len(t, byPlayer[2].Matches, 2)
	assert.Equal(t, "Reading A", byPlayer[2].Matches[0].Team)
	assert.Equal(t, "Reading B", byPlayer[2].Matches[1].Team)
}

func TestSwissSection(t *testing.T) {
	c := collate(t,
		"swiss Open\n1 Alice Smith\n2 Bob Jones\n3 Carol White",
		"swiss Open\n1 b3- bye+\n2 bye+ w3=\n3 w1+ b2=",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	section := c.Sections["Open"]
	require.NotNil(t, section)
	require.Len(t, section.Games, 2)

	first := section.Games[0].(*model.SwissGame)
	assert.Equal(t, "1", first.Round)
	assert.Equal(t, "Carol White", first.HomePlayer.Name)
	assert.Equal(t, "Alice Smith", first.AwayPlayer.Name)
	assert.Equal(t, model.ResultHomeWin, first.Result)
	assert.Equal(t, model.ColorWhite, first.HomePlayerColor)

	second := section.Games[1].(*model.SwissGame)
	assert.Equal(t, "2", second.Round)
	assert.Equal(t, "Bob Jones", second.HomePlayer.Name)
	assert.Equal(t, model.ResultDraw, second.Result)
	assert.Len(t, c.Players, 3)
}

func TestSwissSectionMissingPlayers(t *testing.T) {
	c := collate(t,
		"swiss Open\n1 Alice Smith\n2 Bob Jones\n4 Dan Green",
		"swiss Open\n1 b2-\n2 w1+\n3 bye+",
		nil)

	msgs := c.AllErrors().Messages()
	assert.Contains(t, msgs, "Section Open has no information in schedule about pin 3")
	assert.Contains(t, msgs, "Section Open has no results in report about pin 4 player Dan Green")
	assert.Nil(t, c.Sections["Open"])
}

func TestAllPlayAllSection(t *testing.T) {
	c := collate(t,
		"allplayall Open\n1 Alice Smith\n2 Bob Jones\n3 Carol White",
		"allplayall Open\n1 ~ w+ b=\n2 b- ~ w+\n3 w= b- ~",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	section := c.Sections["Open"]
	require.NotNil(t, section)
	require.Len(t, section.Games, 3)

	names := func(g model.GameRecord) string {
		b := g.GameBase()
		return b.HomePlayer.Name + " " + b.Result.Display() + " " + b.AwayPlayer.Name
	}
	assert.Equal(t, "Bob Jones 1-0 Carol White", names(section.Games[0]))
	assert.Equal(t, "Alice Smith 1-0 Bob Jones", names(section.Games[1]))
	assert.Equal(t, "Carol White draw Alice Smith", names(section.Games[2]))
}

func TestAllPlayAllPinZero(t *testing.T) {
	var c *Collation
	require.NotPanics(t, func() {
		c = collate(t, "allplayall X\n1 Alice\n2 Bob", "allplayall X\n1. ~ +\n0. - ~", nil)
	})
	assert.Contains(t, c.AllErrors().Messages(), `PIN in cross-table row "0 X - ~" must be at least 1.`)
}

func TestAllPlayAllWithoutSchedule(t *testing.T) {
	c := collate(t,
		"league D1\nA\nB",
		"allplayall Open\n1 ~ w+\n2 b- ~",
		nil)

	assert.Contains(t, c.AllErrors().Messages(),
		`Section Open has no information in schedule about player "pins" and "clubs"`)
	assert.Nil(t, c.Sections["Open"])
	assert.Equal(t, []string{"Open", "D1"}, c.ReportOrder)
}

func TestIndividualSection(t *testing.T) {
	c := collate(t,
		"Friendlies 2024\n2024-09-01 2025-05-31\nindividual Friendlies",
		"individual Friendlies\nSmith 1-0 Jones\n2024-10-12 Brown draw Green",
		nil)

	require.Empty(t, c.AllErrors().Messages())
	section := c.Sections["Friendlies"]
	require.NotNil(t, section)
	require.Len(t, section.Games, 2)
	first := section.Games[0].GameBase()
	assert.Equal(t, "2024-09-01", first.Date)
	assert.Equal(t, "Friendlies 2024", first.HomePlayer.Event)
	assert.Equal(t, "2024-10-12", section.Games[1].GameBase().Date)
	assert.Len(t, c.Players, 4)
}

func TestFatalInput(t *testing.T) {
	c := collate(t, "", "league D1\nA - B\n1 Smith 1-0 Jones", nil)

	assert.True(t, c.Fatal)
	assert.Empty(t, c.Matches)
	assert.Empty(t, c.ReportOrder)
}

func TestSortName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "A.Smith", want: "smith a"},
		{name: "John Smith", want: "smith john"},
		{name: "Smith", want: "smith"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SortName(tc.name))
		})
	}
}
