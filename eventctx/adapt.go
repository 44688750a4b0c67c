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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// mangledKeywords start lines the parsers would read as directives.
var mangledKeywords = map[string]struct{}{
	"allplayall":   {},
	"knockout":     {},
	"league":       {},
	"cup":          {},
	"swiss":        {},
	"swissteam":    {},
	"jamboree":     {},
	"team":         {},
	"fixturelist":  {},
	"individual":   {},
	"whiteonodd":   {},
	"blackonodd":   {},
	"whiteonall":   {},
	"blackonall":   {},
	"notspecified": {},
}

var titleCaser = cases.Title(language.English)

// FixtureListNames splits joined team names of fixtures into home and
// away teams. Team names found in teamNames, compared without case, are
// replaced by the mapped name.
func (c *EventContext) FixtureListNames(teamNames map[string]string) {
	lookup := make(map[string]string, len(teamNames))
	for k, v := range teamNames {
		lookup[strings.ToLower(k)] = v
	}
	for _, comp := range c.fixtures.Competitions() {
		fixtures := c.fixtures.Get(comp)
		c.splitNames(fixtures,
			func(d *EventData) *string { return &d.Teams },
			func(d *EventData) (*string, *string) { return &d.TeamOne, &d.TeamTwo })
		if len(lookup) == 0 {
			continue
		}
		for _, f := range fixtures {
			if v, ok := lookup[strings.ToLower(f.TeamOne)]; ok {
				f.TeamOne = v
			}
			if v, ok := lookup[strings.ToLower(f.TeamTwo)]; ok {
				f.TeamTwo = v
			}
		}
	}
}

// ResultsNames splits joined player or team names of results.
func (c *EventContext) ResultsNames() {
	for _, comp := range c.results.Competitions() {
		c.splitNames(c.results.Get(comp),
			func(d *EventData) *string { return &d.Names },
			func(d *EventData) (*string, *string) { return &d.NameOne, &d.NameTwo })
	}
}

func (c *EventContext) splitNames(items []*EventData, joined func(*EventData) *string,
	pair func(*EventData) (*string, *string)) {

	parts := make([][]string, len(items))
	for idx, d := range items {
		one, two := pair(d)
		for _, s := range []string{*joined(d), *one, *two} {
			if s != "" {
				parts[idx] = append(parts[idx], s)
			}
		}
	}
	split, long := SplitJoinedNames(parts, c.truncate)
	if long {
		c.logger.Warn("joined names over 50 words", "truncated", c.truncate)
	}
	for idx, d := range items {
		if *joined(d) == "" {
			continue
		}
		one, two := pair(d)
		*one, *two = split[idx].First, split[idx].Second
		*joined(d) = ""
	}
}

// Mangle prefixes the first word of text with its own first letter when
// the word is a section or colour rule keyword, so a name such as
// "League Cup" is not read as a directive.
func Mangle(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	if _, ok := mangledKeywords[strings.ToLower(words[0])]; !ok {
		return text
	}
	words[0] = words[0][:1] + words[0]
	return strings.Join(words, " ")
}

// TranslateScore converts an extracted score to a result token of the
// results parser. "½" becomes ".5", a game score such as "0.5 0.5"
// becomes "draw" and a match score such as "3½ 2½" becomes "3.5-2.5".
func TranslateScore(score string) string {
	if s, ok := adaptedScores[score]; ok {
		return s
	}
	var parts []string
	var total float64
	for _, text := range strings.Fields(score) {
		switch {
		case text == "½":
			text = "0.5"
		case strings.HasSuffix(text, "½"):
			text = strings.TrimSuffix(text, "½") + ".5"
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return score
		}
		total += v
		parts = append(parts, text)
	}
	joined := strings.Join(parts, "-")
	if total == 1 && joined == "0.5-0.5" {
		return "draw"
	}
	return joined
}

// MangleDate keeps a game date from being read as a board number when no
// board is given: the date is converted to ISO form, or its words are
// joined with "-".
func MangleDate(board, date string) string {
	if board != "" {
		return date
	}
	words := strings.Fields(date)
	if len(words) <= 1 {
		return date
	}
	if iso, ok := internal.ParseWholeDate(date); ok {
		return iso
	}
	return strings.Join(words, "-")
}

func joinWords(parts ...string) string {
	return model.JoinFields(strings.Join(parts, " "))
}

// GameText returns the game result line for d. A player named "default"
// means that side defaulted the game.
func GameText(d *EventData) string {
	board := d.Board()
	date := MangleDate(board, d.ResultDate)
	oneDefaulted := strings.EqualFold(d.NameOne, ScoreDefault)
	twoDefaulted := strings.EqualFold(d.NameTwo, ScoreDefault)
	switch {
	case !oneDefaulted && !twoDefaulted:
		return Mangle(joinWords(board, date, d.NameOne, TranslateScore(d.Score), d.NameTwo))
	case strings.EqualFold(d.NameOne, d.NameTwo):
		return Mangle(joinWords(board, date, adaptedScores[ScoreDoubleDefault]))
	case oneDefaulted:
		return Mangle(joinWords(board, date, adaptedScores[ScoreAwayWinDefault], d.NameTwo))
	}
	return Mangle(joinWords(board, date, d.NameOne, adaptedScores[ScoreHomeWinDefault]))
}

// lineWriter accumulates tagged lines of generated text.
type lineWriter struct {
	lines  []model.Line
	source string
}

func (w *lineWriter) add(text string, d *EventData) {
	tag := &model.Tag{LineNo: len(w.lines) + 1}
	if d != nil {
		tag.DataTag = d.DataTag
		tag.Headers = d.Headers
	}
	w.lines = append(w.lines, model.Line{Text: text, Tag: tag})
}

// setSource writes a source directive when d comes from a different
// source than the previous result.
func (w *lineWriter) setSource(d *EventData) {
	if d.Source != w.source {
		w.add(strings.TrimSpace("source "+d.Source), nil)
	}
	w.source = d.Source
}

func tableEntries(entries []string) string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "*" {
			e = "x"
		}
		out = append(out, e)
	}
	return strings.Join(out, " ")
}

func isResultsIndividual(results []*EventData) bool {
	for _, d := range results {
		if d.IsMatchResult() {
			return false
		}
	}
	return true
}

// ScheduleText returns schedule lines for the collected items: the event
// header, all-play-all and swiss sections with round dates and players,
// individual sections and a fixture list. It returns nil before the
// event is identified.
func (c *EventContext) ScheduleText() []model.Line {
	if !c.identified {
		return nil
	}
	w := &lineWriter{}
	w.add(c.identity.Name, nil)
	if c.identity.StartDate != "" && c.identity.EndDate != "" {
		w.add(c.identity.StartDate+" "+c.identity.EndDate, nil)
	}

	tables := []struct {
		keyword string
		items   *Items
		card    Found
	}{
		{keyword: "allplayall", items: c.allPlayAll, card: FoundAPAPlayerCard},
		{keyword: "swiss", items: c.swiss, card: FoundSwissPairingCard},
	}
	for _, table := range tables {
		for _, comp := range table.items.Competitions() {
			rows := table.items.Get(comp)
			if len(rows) == 0 {
				continue
			}
			w.add(table.keyword+" "+comp, nil)
			for _, row := range rows {
				if row.Found == FoundCompetitionAndDates {
					for idx, date := range row.RoundDates {
						w.add(strconv.Itoa(idx+1)+" "+date, row)
					}
					break
				}
			}
			for _, row := range rows {
				if row.Found == table.card {
					w.add(row.Pin+" "+row.Person, row)
				}
			}
		}
	}

	for _, comp := range c.results.Competitions() {
		results := c.results.Get(comp)
		if len(results) > 0 && isResultsIndividual(results) {
			w.add("individual "+comp, nil)
		}
	}

	listed := false
	for _, comp := range c.fixtures.Competitions() {
		for _, f := range c.fixtures.Get(comp) {
			if f.Found != FoundFixtureTeams && f.Found != FoundFixture {
				continue
			}
			if !listed {
				w.add("fixturelist", f)
				listed = true
			}
			day := f.FixtureDay
			if day == "" {
				day = "xxx"
				if iso, _, ok := internal.ParseDatePrefix(f.FixtureDate); ok {
					day, _ = internal.WeekdayName(iso)
				}
			}
			w.add(strings.Join([]string{
				day,
				f.FixtureDate,
				comp,
				titleCaser.String(f.TeamOne),
				titleCaser.String(f.TeamTwo),
			}, "\t"), f)
		}
	}
	return w.lines
}

// ResultsText returns results lines for the collected items: cross table
// rows, pairing cards, individual games and match results with their
// games. It returns nil before the event is identified.
func (c *EventContext) ResultsText() []model.Line {
	if !c.identified {
		return nil
	}
	w := &lineWriter{}
	w.add(c.identity.Name, nil)

	tables := []struct {
		keyword string
		items   *Items
		card    Found
		entries func(*EventData) []string
	}{
		{keyword: "allplayall", items: c.allPlayAll, card: FoundAPAPlayerCard,
			entries: func(d *EventData) []string { return d.AllPlayAll }},
		{keyword: "swiss", items: c.swiss, card: FoundSwissPairingCard,
			entries: func(d *EventData) []string { return d.Swiss }},
	}
	for _, table := range tables {
		for _, comp := range table.items.Competitions() {
			rows := table.items.Get(comp)
			if len(rows) == 0 {
				continue
			}
			w.add(table.keyword+" "+comp, nil)
			for _, row := range rows {
				if row.Found != table.card {
					continue
				}
				w.setSource(row)
				w.add(row.Pin+" "+tableEntries(table.entries(row)), row)
			}
		}
	}

	for _, comp := range c.results.Competitions() {
		results := c.results.Get(comp)
		if len(results) == 0 {
			continue
		}
		if isResultsIndividual(results) {
			w.add("individual "+comp, nil)
			for _, row := range results {
				w.setSource(row)
				w.add(Mangle(joinWords(row.ResultDate, row.NameOne,
					TranslateScore(row.Score), row.NameTwo)), row)
			}
			continue
		}
		w.add("fixturelist "+comp, nil)
		// boards in matches from extracted data alternate colours
		w.add("blackonodd", nil)
		for _, row := range results {
			c.matchResultLines(w, row)
		}
	}
	return w.lines
}

func (c *EventContext) matchResultLines(w *lineWriter, row *EventData) {
	switch {
	case row.IsGameResult():
		w.setSource(row)
		w.add(GameText(row), row)
	case row.IsMatchResult():
		w.setSource(row)
		if row.CompetitionRound != "" {
			w.add("round "+row.CompetitionRound, row)
		}
		if row.ResultDate != "" {
			w.add("date "+row.ResultDate, row)
		}
		if row.PlayedOn != "" {
			w.add(row.PlayedOn, row)
		}
		w.add(Mangle(joinWords(titleCaser.String(row.NameOne), TranslateScore(row.Score),
			titleCaser.String(row.NameTwo))), row)
	case row.IsMatchAndGameResult():
		c.logger.Warn("tabular match or game line not processed", "tag", row.DataTag)
	case row.IsMatchDefaulted():
		w.add(Mangle(joinWords("matchdefaulted", MangleDate("", row.ResultDate))), row)
	case row.IsDefaultingSideKnown():
		w.setSource(row)
		board := row.Board()
		w.add(Mangle(joinWords(board, MangleDate(board, row.ResultDate),
			TranslateScore(row.Score))), row)
	case row.IsDefaultCounted():
		w.setSource(row)
		board := row.Board()
		w.add(Mangle(joinWords(board, MangleDate(board, row.ResultDate), "default")), row)
	case row.IsDefaultNotCounted():
		w.setSource(row)
		board := row.Board()
		w.add(Mangle(joinWords(board, MangleDate(board, row.ResultDate), "void")), row)
	default:
		c.logger.Warn("result line ignored", "tag", row.DataTag, "raw", row.Raw)
	}
}
