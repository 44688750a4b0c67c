/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package classify

import (
	"reflect"
	"testing"

	"github.com/mikeb26/chessvalidate/model"
)

func TestParseGameResult(t *testing.T) {
	cases := []struct {
		name string
		text string
		want GameLine
		ok   bool
	}{
		{
			name: "board and players",
			text: "1 A.Smith 1-0 B.Jones",
			want: GameLine{Board: "1", DatePlayer: "A.Smith", Score: "1-0", AwayPlayer: "B.Jones"},
			ok:   true,
		},
		{
			name: "colour after board",
			text: "2b John Smith draw Fred Bloggs",
			want: GameLine{Board: "2", Colour: "b", DatePlayer: "John Smith", Score: "draw", AwayPlayer: "Fred Bloggs"},
			ok:   true,
		},
		{
			name: "no board",
			text: "John Smith 0-1 Fred Bloggs",
			want: GameLine{DatePlayer: "John Smith", Score: "0-1", AwayPlayer: "Fred Bloggs"},
			ok:   true,
		},
		{
			name: "default with one player",
			text: "3 John Smith def+",
			want: GameLine{Board: "3", DatePlayer: "John Smith", Score: "def+"},
			ok:   true,
		},
		{
			name: "unfinished",
			text: "4 A Player unfinished B Player",
			want: GameLine{Board: "4", DatePlayer: "A Player", Score: "unfinished", AwayPlayer: "B Player"},
			ok:   true,
		},
		{
			name: "match name is not a game",
			text: "Team A - Team B",
			ok:   false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseGameResult(tc.text)
			if ok != tc.ok {
				t.Fatalf("%s: ok = %v; want %v", tc.text, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("%s: got %+v; want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseMatchName(t *testing.T) {
	cases := []struct {
		text string
		want MatchName
	}{
		{"Team A - Team B", MatchName{HomeText: "Team A", AwayTeam: "Team B"}},
		{"Team A 2.5 - 1.5 Team B", MatchName{HomeText: "Team A", AwayTeam: "Team B", HomeScore: "2.5", AwayScore: "1.5"}},
		{"3 Reading 1 4-0 Newbury", MatchName{HomeText: "3 Reading 1", AwayTeam: "Newbury", HomeScore: "4", AwayScore: "0"}},
	}
	for _, tc := range cases {
		got, ok := ParseMatchName(tc.text)
		if !ok {
			t.Errorf("%s: not recognised", tc.text)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v; want %+v", tc.text, got, tc.want)
		}
	}
	if _, ok := ParseMatchName("Team A v Team B"); ok {
		t.Errorf("Team A v Team B: recognised as a match name")
	}
}

func TestParseSwiss(t *testing.T) {
	pin, entries, ok := ParseSwissRow("3 w1+ b2=")
	if !ok {
		t.Fatalf("swiss row not recognised")
	}
	if pin != "3" || !reflect.DeepEqual(entries, []string{"w1+", "b2="}) {
		t.Fatalf("got pin %q entries %v", pin, entries)
	}

	cases := []struct {
		entry string
		want  SwissEntry
	}{
		{"w1+", SwissEntry{Colour: "w", Opponent: 1, Score: "+"}},
		{"b12p", SwissEntry{Colour: "b", Opponent: 12, Score: "p"}},
		{"bye=", SwissEntry{NotPlayed: "bye="}},
		{"x", SwissEntry{NotPlayed: "x"}},
	}
	for _, tc := range cases {
		got, ok := ParseSwissResult(tc.entry)
		if !ok || got != tc.want {
			t.Errorf("%s: got %+v %v; want %+v", tc.entry, got, ok, tc.want)
		}
	}
	if _, ok := ParseSwissResult("w0+"); ok {
		t.Errorf("w0+: opponent 0 accepted")
	}
}

func TestParseCrossTable(t *testing.T) {
	pin, entries, ok := ParseCrossTableRow("2. w+ ~ b=")
	if !ok || pin != "2" || !reflect.DeepEqual(entries, []string{"w+", "~", "b="}) {
		t.Fatalf("got %q %v %v", pin, entries, ok)
	}
	colour, score, ok := ParseCrossTableResult("b=")
	if !ok || colour != "b" || score != "=" {
		t.Errorf("b=: got %q %q %v", colour, score, ok)
	}
	if _, _, ok := ParseCrossTableRow("1 w1+"); ok {
		t.Errorf("swiss entry accepted in cross table row")
	}
}

func TestScoreMaps(t *testing.T) {
	cases := []struct {
		score, opposite, normal string
	}{
		{"+", "-", "+"},
		{"p", "-", "+"},
		{"m", "+", "-"},
		{"e", "=", "="},
		{"~", "~", "~"},
	}
	for _, tc := range cases {
		if got := OppositeScore(tc.score); got != tc.opposite {
			t.Errorf("OppositeScore(%q) = %q; want %q", tc.score, got, tc.opposite)
		}
		if got := NormalizeScore(tc.score); got != tc.normal {
			t.Errorf("NormalizeScore(%q) = %q; want %q", tc.score, got, tc.normal)
		}
	}
	if OppositeColour("w") != "b" || OppositeColour("") != "" {
		t.Errorf("OppositeColour broken")
	}
}

func TestBoardColour(t *testing.T) {
	cases := []struct {
		rule  ColourRule
		board string
		want  model.Color
	}{
		{ColourBlackOnOdd, "1", model.ColorBlack},
		{ColourBlackOnOdd, "2", model.ColorWhite},
		{ColourBlackOnOdd, "2.2", model.ColorBlack},
		{ColourBlackOnOdd, "1.2", model.ColorWhite},
		{ColourBlackOnOdd, "x", model.ColorUnknown},
		{ColourWhiteOnOdd, "1", model.ColorWhite},
		{ColourWhiteOnOdd, "3.2", model.ColorBlack},
		{ColourWhiteOnAll, "4", model.ColorWhite},
		{ColourBlackOnAll, "4", model.ColorBlack},
		{ColourNotSpecified, "1", model.ColorUnknown},
	}
	for _, tc := range cases {
		if got := tc.rule.BoardColour(tc.board); got != tc.want {
			t.Errorf("%v.BoardColour(%q) = %v; want %v", tc.rule, tc.board, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"league Division 1", KindSection},
		{"Rapidplay", KindPlayType},
		{"generate 2", KindMatchType},
		{"blackonodd", KindColourRule},
		{"played on", KindPlayedOn},
		{"played_on", KindPlayedOn},
		{"source email 12", KindSource},
		{"round 3", KindRound},
		{"date 12 October 2024", KindDate},
		{"games 2", KindGames},
		{"matchdefaulted", KindMatchDefaulted},
		{"players", KindPlayers},
		{"1 A.Smith 1-0 B.Jones", KindGameResult},
		{"Team A - Team B", KindMatchName},
		{"3 w1+ b2=", KindSwissRow},
		{"1 ~ w+ b-", KindCrossTableRow},
		{"Team A v Team B", KindUnknown},
		{"", KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %v; want %v", tc.text, got, tc.want)
		}
	}
}
