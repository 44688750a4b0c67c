/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package eventctx

import (
	"github.com/mikeb26/chessvalidate/internal/logging"
)

// Identity is the event name and its start and end dates.
type Identity struct {
	Name      string
	StartDate string
	EndDate   string
}

// Items holds extracted items by competition, competitions in the order
// first seen.
type Items struct {
	keys   []string
	byComp map[string][]*EventData
}

func newItems() *Items {
	return &Items{byComp: make(map[string][]*EventData)}
}

// AddKey adds competition with no items unless already present.
func (it *Items) AddKey(competition string) {
	if _, ok := it.byComp[competition]; ok {
		return
	}
	it.keys = append(it.keys, competition)
	it.byComp[competition] = nil
}

func (it *Items) Append(d *EventData) {
	it.AddKey(d.Competition)
	it.byComp[d.Competition] = append(it.byComp[d.Competition], d)
}

func (it *Items) Has(competition string) bool {
	_, ok := it.byComp[competition]
	return ok
}

func (it *Items) Get(competition string) []*EventData {
	return it.byComp[competition]
}

// Competitions returns the competitions in the order first seen.
func (it *Items) Competitions() []string {
	return it.keys
}

type Option func(c *EventContext)

func WithLogger(l *logging.Logger) Option {
	return func(c *EventContext) {
		c.logger = l
	}
}

// WithTruncateLongNames cuts each part of a joined name pair of more than
// 50 words to its first 10 words before splitting it.
func WithTruncateLongNames(truncate bool) Option {
	return func(c *EventContext) {
		c.truncate = truncate
	}
}

// EventContext collects extracted items for one event and tracks the
// default competition, game date and round that items without their own
// inherit.
//
// The event identity is set once. Competition defaults can be set only
// after it. Setting a competition clears the default date and round
// unless they are given with it; date and round can be set on their own
// only when a competition is set.
type EventContext struct {
	identity   Identity
	identified bool

	competition string
	gameDate    string
	gameRound   string

	items      []*EventData
	allPlayAll *Items
	swiss      *Items
	fixtures   *Items
	results    *Items
	players    *Items
	tabular    *Items
	// roundDates holds round dates not yet claimed by a section type.
	roundDates map[string]*EventData

	truncate bool
	logger   *logging.Logger
}

// New returns an EventContext for the event identified by id. A zero id
// lets the identity be taken from the extracted items.
func New(id Identity, opts ...Option) *EventContext {
	c := &EventContext{
		allPlayAll: newItems(),
		swiss:      newItems(),
		fixtures:   newItems(),
		results:    newItems(),
		players:    newItems(),
		tabular:    newItems(),
		roundDates: make(map[string]*EventData),
		truncate:   true,
		logger:     logging.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if id.Name != "" {
		c.identity = id
		c.identified = true
	}
	return c
}

func (c *EventContext) Identity() (Identity, bool) {
	return c.identity, c.identified
}

// Competition returns the default competition, game date and round.
func (c *EventContext) Competition() (string, string, string) {
	return c.competition, c.gameDate, c.gameRound
}

// Items returns every item in the order added.
func (c *EventContext) Items() []*EventData {
	return c.items
}

func (c *EventContext) AllPlayAll() *Items { return c.allPlayAll }
func (c *EventContext) Swiss() *Items      { return c.swiss }
func (c *EventContext) Fixtures() *Items   { return c.fixtures }
func (c *EventContext) Results() *Items    { return c.results }
func (c *EventContext) Tabular() *Items    { return c.tabular }

func (c *EventContext) setIdentity(id Identity) {
	if c.identified {
		return
	}
	c.identity = id
	c.identified = true
}

func (c *EventContext) setEventName(name string) {
	if c.identified || name == "" {
		return
	}
	c.identity.Name = name
	c.identified = true
}

func (c *EventContext) setCompetition(name, date, round string) {
	if !c.identified {
		return
	}
	c.competition, c.gameDate, c.gameRound = name, date, round
	c.addKey()
}

func (c *EventContext) setGameDate(date string) {
	if c.competition == "" {
		return
	}
	c.gameDate = date
}

func (c *EventContext) setGameRound(round string) {
	if c.competition == "" {
		return
	}
	c.gameRound = round
}

// addKey makes the default competition known to every report style.
func (c *EventContext) addKey() {
	if c.competition == "" {
		return
	}
	for _, it := range []*Items{c.allPlayAll, c.swiss, c.fixtures, c.results, c.players, c.tabular} {
		it.AddKey(c.competition)
	}
}

// Add fills the fields d lacks from the current defaults, then files d by
// its Found value and updates the defaults. Items that need a competition
// but have none are marked FoundIgnore.
func (c *EventContext) Add(d *EventData) {
	d.inherit(c)
	c.items = append(c.items, d)
	if !c.process(d) {
		d.ignored = d.Found
		d.Found = FoundIgnore
		c.logger.Debug("event item ignored", "found", int(d.ignored), "tag", d.DataTag)
	}
}

func (c *EventContext) process(d *EventData) bool {
	switch d.Found {
	case FoundEventAndDates:
		if d.StartDate == "" && d.EndDate == "" && d.EventName == "" {
			return false
		}
		c.setIdentity(Identity{Name: d.EventName, StartDate: d.StartDate, EndDate: d.EndDate})
	case FoundPossibleEventName:
		c.setEventName(d.EventName)
	case FoundSwissPairingCard:
		if d.Competition == "" {
			return false
		}
		c.claimRoundDates(c.swiss, d.Competition)
		c.swiss.Append(d)
	case FoundAPAPlayerCard:
		if d.Competition == "" {
			return false
		}
		c.claimRoundDates(c.allPlayAll, d.Competition)
		c.allPlayAll.Append(d)
	case FoundCompetitionGameDate:
		if d.Competition == "" {
			return false
		}
		c.setCompetition(d.Competition, d.ResultDate, "")
	case FoundCompetitionName:
		if d.Competition == "" {
			return false
		}
		c.setCompetition(d.Competition, "", "")
	case FoundCompetitionRound:
		if d.Competition == "" {
			return false
		}
		c.setCompetition(d.Competition, "", d.CompetitionRound)
	case FoundRoundHeader:
		// a round header carries the date of the games that follow
		c.setGameDate(d.CompetitionRound)
	case FoundCompetitionRoundGameDate:
		if d.Competition == "" {
			return false
		}
		c.setCompetition(d.Competition, d.ResultDate, d.CompetitionRound)
	case FoundFixtureTeams, FoundFixture:
		if d.Competition == "" {
			return false
		}
		c.claimRoundDates(c.fixtures, d.Competition)
		c.fixtures.Append(d)
	case FoundCompetitionDate:
		c.setGameDate(d.ResultDate)
	case FoundResultNames, FoundResult:
		if d.Competition != "" {
			c.results.Append(d)
		}
	case FoundCompetitionAndDates:
		if d.Competition == "" {
			return false
		}
		c.competitionAndDates(d)
	case FoundCSVTabular:
		if d.Competition == "" {
			return false
		}
		c.tabular.Append(d)
	}
	return true
}

// claimRoundDates moves round dates waiting for competition into it.
func (c *EventContext) claimRoundDates(it *Items, competition string) {
	if rd, ok := c.roundDates[competition]; ok {
		it.Append(rd)
		delete(c.roundDates, competition)
	}
}

// competitionAndDates files round dates with the first report style that
// has none for the competition. When all have some the dates wait for a
// later pairing card, cross table row or fixture to claim them.
func (c *EventContext) competitionAndDates(d *EventData) {
	if _, ok := c.roundDates[d.Competition]; ok {
		return
	}
	c.setCompetition(d.Competition, "", "")
	for _, it := range []*Items{c.swiss, c.fixtures, c.allPlayAll} {
		if !hasRoundDates(it.Get(d.Competition)) {
			it.Append(d)
			return
		}
	}
	c.roundDates[d.Competition] = d
}

func hasRoundDates(items []*EventData) bool {
	for _, item := range items {
		if item.Found == FoundCompetitionAndDates {
			return true
		}
	}
	return false
}
