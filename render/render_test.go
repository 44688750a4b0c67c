/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/report"
	"github.com/mikeb26/chessvalidate/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leagueSchedule = "Example League\n2024-09-01 2025-05-31\nleague D1\nA\nB\nC\nmatches\nA - B\nB - C"

func collate(t *testing.T, scheduleText, resultsText string) *collation.Collation {
	t.Helper()
	nop := logging.NewNop()
	s := schedule.Build(model.NewLines("schedule", scheduleText, nil), schedule.WithLogger(nop))
	r := report.Build(model.NewLines("results", resultsText, nil), report.WithLogger(nop))
	return collation.Collate(s, r, collation.WithLogger(nop))
}

func TestWriteTabular(t *testing.T) {
	c := collate(t, leagueSchedule,
		"Example League\nleague D1\nA 1.5-0.5 B\n2 Brown draw Green\n1 Smith 1-0 Jones 123A")
	require.Empty(t, c.AllErrors().Messages())

	var buf bytes.Buffer
	require.NoError(t, WriteTabular(&buf, c))
	assert.Equal(t,
		"Event,Section,HomeTeam,AwayTeam,Round,Board,HomePlayer,AwayPlayer,Date,HPColour,Result,HTScore,ATScore,Day\n"+
			"Example League,D1,A,B,,1,Smith,Jones 123A,,,1-0,1.5,0.5,\n"+
			"Example League,D1,A,B,,2,Brown,Green,,,draw,1.5,0.5,\n",
		buf.String())
}

func TestTabularRowsEmpty(t *testing.T) {
	c := collate(t, leagueSchedule, "Example League\nleague D1")
	rows, err := TabularRows(c)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestValidationReport(t *testing.T) {
	c := collate(t, leagueSchedule,
		"Example League\nleague D1\nA 1-0 B\n1 Smith 1-0 Jones\nC - A\n1 White def+")

	var buf bytes.Buffer
	require.NoError(t, ValidationReport(&buf, c))
	out := buf.String()

	assert.Contains(t, out, "Errors\n======\nNo errors found.\n")
	assert.Contains(t, out, "Matches\n=======\n")
	assert.Contains(t, out, "not a fixture")
	assert.Contains(t, out, "Smith")
	assert.Contains(t, out, "1-def")
	assert.Contains(t, out, "Fixtures not played\n===================\n")
	assert.Regexp(t, `(?m)^\s*B\s+C\s*$|D1\s+B\s+C`, out)
	assert.Contains(t, out, "Players by club")

	sections := []string{"Errors", "Matches", "Fixtures not played", "Unfinished games",
		"Section games", "Players by club"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s+"\n")
		require.GreaterOrEqual(t, idx, 0, s)
		assert.Greater(t, idx, last, s)
		last = idx
	}
}

func TestErrorsRendered(t *testing.T) {
	c := collate(t, leagueSchedule, "Example League\nleague D1\nnonsense")

	var buf bytes.Buffer
	require.NoError(t, Errors(&buf, c))
	assert.Contains(t, buf.String(), "results:3")
	assert.Contains(t, buf.String(), `"nonsense" in section "D1" is not recognised as a match name.`)
}

func TestSectionGames(t *testing.T) {
	c := collate(t,
		"Open 2024\n2024-10-12 2024-10-13\nallplayall Open\n1 Alice Smith\n2 Bob Jones",
		"Open 2024\nallplayall Open\n1 ~ w+\n2 b- ~")
	require.Empty(t, c.AllErrors().Messages())

	var buf bytes.Buffer
	require.NoError(t, SectionGames(&buf, c))
	assert.Contains(t, buf.String(), "Open\n")
	assert.Regexp(t, `Alice Smith\s+1-0\s+Bob Jones`, buf.String())
}
