/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/report"
	"github.com/mikeb26/chessvalidate/schedule"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	leagueSchedule = "Example League\n2024-09-01 2025-05-31\nleague D1\nA\nB\nC\nmatches\nA - B\nB - C"
	leagueResults  = "Example League\nleague D1\nA 1.5-0.5 B\n1 Smith 1-0 Jones 123A\n2 Brown draw Green"
)

// withFiles points the commands at an in-memory filesystem holding files
// and captures their output.
func withFiles(t *testing.T, files map[string]string) *bytes.Buffer {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, text := range files {
		require.NoError(t, afero.WriteFile(mem, name, []byte(text), 0o644))
	}
	var out bytes.Buffer
	oldFs, oldOut := fsys, stdout
	fsys, stdout = mem, &out
	t.Cleanup(func() {
		fsys, stdout = oldFs, oldOut
		logging.SetDefault(nil)
	})
	return &out
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"help", "version", "validate", "schedule", "results", "matches",
		"players", "unfinished", "fixtures", "export", "adapt", "post"} {
		assert.Contains(t, commands, name)
		assert.Contains(t, helpText, "  "+name, name)
	}
}

func TestVersion(t *testing.T) {
	out := withFiles(t, nil)
	handleVersion(context.Background(), nil)
	assert.True(t, strings.HasPrefix(out.String(), "chessvalidate "))
}

func TestValidate(t *testing.T) {
	out := withFiles(t, map[string]string{
		"league.txt":  leagueSchedule,
		"results.txt": leagueResults,
	})
	handleValidate(context.Background(), []string{"--schedule", "league.txt", "--results", "results.txt"})

	assert.Contains(t, out.String(), "No errors found.")
	assert.Contains(t, out.String(), "Smith")
	assert.Regexp(t, `D1\s+B\s+C`, out.String())
}

func TestExportAdaptRoundTrip(t *testing.T) {
	out := withFiles(t, map[string]string{
		"league.txt":  leagueSchedule,
		"results.txt": leagueResults,
	})
	handleExport(context.Background(), []string{"--schedule", "league.txt", "--results", "results.txt"})

	event, items, err := readTabular(strings.NewReader(out.String()), "games.csv")
	require.NoError(t, err)
	assert.Equal(t, "Example League", event)
	require.Len(t, items, 2)
	assert.Equal(t, "Jones 123A", items[0].NameTwo)
	assert.Equal(t, []string{"1"}, items[0].Numbers)

	lines, problems := adaptTabular(event, items, true, logging.NewNop())
	assert.Empty(t, problems)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{
		"Example League",
		"fixturelist D1",
		"blackonodd",
		"A 1.5-0.5 B",
		"1 Smith 1-0 Jones 123A",
		"2 Brown draw Green",
	}, texts)

	r := report.Build(lines, report.WithLogger(logging.NewNop()))
	require.Empty(t, r.Errors.Messages())
	require.Len(t, r.MatchResults, 1)
	m := r.MatchResults[0]
	assert.Equal(t, "1.5", m.HomeScore)
	require.Len(t, m.Games, 2)
	assert.Contains(t, m.Games[0].AwayPlayer.ReportedCodes, "123A")
	assert.Equal(t, model.ColorBlack, m.Games[0].HomePlayerColor)
}

func TestReadTabularMissingColumn(t *testing.T) {
	_, _, err := readTabular(strings.NewReader("Event,Section,HomeTeam\nX,D1,A\n"), "bad.csv")
	assert.True(t, errors.Is(err, errMissingColumn))
}

func TestReadTabularColumnOrder(t *testing.T) {
	csv := "result,awayplayer,homeplayer,awayteam,hometeam,section\n" +
		"0-1,Jones,Smith,B,A,D1\n"
	event, items, err := readTabular(strings.NewReader(csv), "games.csv")
	require.NoError(t, err)
	assert.Equal(t, "", event)
	require.Len(t, items, 1)
	assert.Equal(t, "Smith", items[0].NameOne)
	assert.Equal(t, "0-1", items[0].Score)
	assert.Equal(t, "D1", items[0].Competition)
	assert.Nil(t, items[0].Numbers)
}

func TestScheduleAndResultsCheck(t *testing.T) {
	var buf bytes.Buffer
	writeScheduleCheck(&buf, model.NewLines("league.txt", leagueSchedule, nil), logging.NewNop())
	assert.Contains(t, buf.String(), "Example League 2024-09-01 2025-05-31\n")
	assert.Contains(t, buf.String(), "D1: 3 teams, 2 matches")
	assert.Contains(t, buf.String(), "No errors found.")

	buf.Reset()
	writeResultsCheck(&buf, model.NewLines("results.txt", "Example League\nleague D1\nnonsense", nil),
		logging.NewNop())
	assert.Contains(t, buf.String(), "results.txt:3\t")
}

type fakeSender struct {
	channel string
	msgs    []string
	err     error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string,
	_ ...discordgo.RequestOption) (*discordgo.Message, error) {

	if f.err != nil {
		return nil, f.err
	}
	f.channel = channelID
	f.msgs = append(f.msgs, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestPostSummary(t *testing.T) {
	nop := logging.NewNop()
	c := collation.Collate(
		schedule.Build(model.NewLines("league.txt", leagueSchedule, nil), schedule.WithLogger(nop)),
		report.Build(model.NewLines("results.txt", leagueResults, nil), report.WithLogger(nop)),
		collation.WithLogger(nop))

	sender := &fakeSender{}
	require.NoError(t, postSummary(sender, "1234", c, nop))
	assert.Equal(t, "1234", sender.channel)
	require.Len(t, sender.msgs, 1)
	assert.True(t, strings.HasPrefix(sender.msgs[0], "```\nErrors\n"))
	assert.Contains(t, sender.msgs[0], "Fixtures not played")

	failing := &fakeSender{err: errors.New("rate limited")}
	assert.Error(t, postSummary(failing, "1234", c, nop))
}

func TestSplitMessages(t *testing.T) {
	assert.Empty(t, splitMessages(""))

	line := strings.Repeat("x", 99) + "\n"
	msgs := splitMessages(strings.Repeat(line, 50))
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), 2000)
		assert.True(t, strings.HasSuffix(m, "\n```"))
	}

	long := splitMessages(strings.Repeat("y", 5000))
	require.Len(t, long, 1)
	assert.Contains(t, long[0], "...\n")
}
