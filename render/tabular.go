/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/model"
)

// TabularColumns are the CSV columns in the order that sorts rows for
// easy inspection.
var TabularColumns = []string{
	"Event",
	"Section",
	"HomeTeam",
	"AwayTeam",
	"Round",
	"Board",
	"HomePlayer",
	"AwayPlayer",
	"Date",
	"HPColour",
	"Result",
	"HTScore",
	"ATScore",
	"Day",
}

var ErrEventNames = errors.New("render: inconsistent event names")

// TabularRow is one game of a match, fields in TabularColumns order.
type TabularRow [14]string

func (r TabularRow) less(o TabularRow) bool {
	for idx := range r {
		if r[idx] != o[idx] {
			return r[idx] < o[idx]
		}
	}
	return false
}

func homePlayerText(p *model.Player) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.ReportedCodesString() + " " + p.Name)
}

func awayPlayerText(p *model.Player) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Name + " " + p.ReportedCodesString())
}

func playerEvent(p *model.Player) string {
	if p == nil {
		return ""
	}
	return p.Event
}

// TabularRows returns a row for each graded game of the accepted match
// reports. Defaulted matches are left out. Every game must belong to the
// same event.
func TabularRows(c *collation.Collation) ([]TabularRow, error) {
	var rows []TabularRow
	event := ""
	for _, comp := range c.ReportOrder {
		for _, m := range c.Accepted[comp] {
			if m.Default {
				continue
			}
			for _, g := range m.Games {
				if g.NotGraded {
					continue
				}
				home, away := playerEvent(g.HomePlayer), playerEvent(g.AwayPlayer)
				if home != "" && away != "" && home != away {
					return nil, errors.Wrapf(ErrEventNames, "%v and %v in %v", home, away, comp)
				}
				gameEvent := home
				if gameEvent == "" {
					gameEvent = away
				}
				switch {
				case event == "":
					event = gameEvent
				case gameEvent != "" && gameEvent != event:
					return nil, errors.Wrapf(ErrEventNames, "%v and %v", event, gameEvent)
				}
				board, _ := g.BoardAndRound()
				rows = append(rows, TabularRow{
					gameEvent,
					m.Competition,
					m.HomeTeam,
					m.AwayTeam,
					m.Round,
					board,
					homePlayerText(g.HomePlayer),
					awayPlayerText(g.AwayPlayer),
					g.Date,
					g.HomePlayerColor.Pieces(),
					g.Result.Display(),
					m.HomeScore,
					m.AwayScore,
					"",
				})
			}
		}
	}
	// rows of double defaults have no players to name the event
	for idx := range rows {
		rows[idx][0] = event
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].less(rows[j]) })
	return rows, nil
}

// WriteTabular writes the collated games as CSV with a header row.
func WriteTabular(w io.Writer, c *collation.Collation) error {
	rows, err := TabularRows(c)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(TabularColumns); err != nil {
		return errors.Wrap(err, "render: writing csv")
	}
	for _, r := range rows {
		if err := cw.Write(r[:]); err != nil {
			return errors.Wrap(err, "render: writing csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "render: writing csv")
}
