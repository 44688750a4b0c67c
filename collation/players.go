/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package collation

import (
	"github.com/mikeb26/chessvalidate/model"
)

// playerKey merges players reported for different teams of one club.
type playerKey struct {
	name      string
	event     string
	startDate string
	endDate   string
	club      string
}

// CollatePlayers picks one Player for each person named in the match
// reports, makes every game refer to it, and completes it with the event
// dates and club. It then indexes the most recent report of each match by
// team and club.
func (c *Collation) CollatePlayers() {
	s := c.Schedule
	teamClub := make(map[string]string)
	canonical := make(map[playerKey]*model.Player)
	var order []playerKey
	byIdentity := make(map[model.Identity]playerKey)

	for _, comp := range c.competitions {
		byKey := c.Matches[comp]
		for _, key := range sortedMatchKeys(byKey) {
			for _, m := range byKey[key] {
				for _, team := range []string{m.HomeTeam, m.AwayTeam} {
					if _, ok := teamClub[team]; !ok {
						teamClub[team] = s.ClubTeam(comp, team)
					}
				}
				for _, g := range m.Games {
					for _, slot := range []**model.Player{&g.HomePlayer, &g.AwayPlayer} {
						p := *slot
						if p == nil {
							continue
						}
						pk := playerKey{
							name:      p.Name,
							event:     p.Event,
							startDate: s.StartDate,
							endDate:   s.EndDate,
							club:      teamClub[p.Club],
						}
						if _, ok := canonical[pk]; !ok {
							canonical[pk] = p
							order = append(order, pk)
						}
						id := p.PlayerIdentity()
						if _, ok := byIdentity[id]; !ok {
							byIdentity[id] = pk
						}
						*slot = canonical[byIdentity[id]]
					}
				}
			}
		}
	}

	for _, pk := range order {
		p := canonical[pk]
		p.StartDate = s.StartDate
		p.EndDate = s.EndDate
		if club, ok := teamClub[p.Club]; ok {
			p.Club = club
		}
		p.Affiliation = p.Club
		p.SetIdentityClub()
		c.setPlayer(p)
	}

	for _, comp := range c.competitions {
		byKey := c.Matches[comp]
		for _, key := range sortedMatchKeys(byKey) {
			group := byKey[key]
			m := group[len(group)-1]
			c.indexPlayers(comp, m, m.HomeTeam, func(g *model.MatchGame) *model.Player {
				return g.HomePlayer
			})
			c.indexPlayers(comp, m, m.AwayTeam, func(g *model.MatchGame) *model.Player {
				return g.AwayPlayer
			})
		}
	}
}

func (c *Collation) indexPlayers(comp string, m *model.MatchReport, team string,
	side func(*model.MatchGame) *model.Player) {

	tp, ok := c.TeamPlayers[team]
	if !ok {
		tp = make(map[model.Identity][]*model.MatchReport)
		c.TeamPlayers[team] = tp
	}
	club := c.Schedule.ClubTeam(comp, team)
	cp, ok := c.ClubPlayers[club]
	if !ok {
		cp = make(map[model.Identity]map[string]struct{})
		c.ClubPlayers[club] = cp
	}
	for _, g := range m.Games {
		p := side(g)
		if p == nil {
			continue
		}
		id := p.PlayerIdentity()
		tp[id] = append(tp[id], m)
		codes, ok := cp[id]
		if !ok {
			codes = make(map[string]struct{})
			cp[id] = codes
		}
		for code := range p.ReportedCodes {
			codes[code] = struct{}{}
		}
	}
}
