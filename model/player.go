/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

import (
	"regexp"
	"sort"
	"strings"
)

// a parenthesised item containing a digit, or a word with 3 digits
var codeInName = regexp.MustCompile(`\([^0-9]*[0-9].*?\)|\s*[^\s]*[0-9]{3}[^\s]*\s*`)

// SplitCodesFromName separates grading codes and membership numbers from
// a reported player name.
func SplitCodesFromName(nameAndCodes string) (string, map[string]struct{}) {
	codes := make(map[string]struct{})
	for _, c := range codeInName.FindAllString(nameAndCodes, -1) {
		codes[strings.TrimSpace(c)] = struct{}{}
	}
	parts := codeInName.Split(nameAndCodes, -1)
	for idx := range parts {
		parts[idx] = strings.TrimSpace(parts[idx])
	}
	return strings.TrimSpace(strings.Join(parts, " ")), codes
}

// Identity is the comparable key that merges Player instances referring
// to the same person.
type Identity struct {
	Name      string
	Event     string
	StartDate string
	EndDate   string
	Club      string
	Section   string
	Pin       int
}

// Player is the bundle of games reported under one name in a section of
// an event. A nil *Player stands for an absent (defaulting) player.
type Player struct {
	Name      string
	Event     string
	StartDate string
	EndDate   string
	// Section is a tournament section or league division.
	Section string
	// Club is the team or club played for in a league.
	Club        string
	Pin         int
	Affiliation string

	ReportedCodes map[string]struct{}
	Tag           *Tag

	identity Identity
}

// NewPlayer returns a copy of p with its identity set from whichever of
// club or section is present.
func NewPlayer(p Player) *Player {
	ret := p
	if ret.ReportedCodes == nil {
		ret.ReportedCodes = make(map[string]struct{})
	}
	switch {
	case ret.Club != "":
		ret.SetIdentityClub()
	case ret.Section != "":
		ret.SetIdentitySection()
	default:
		ret.SetIdentity()
	}
	return &ret
}

func (p *Player) PlayerIdentity() Identity {
	return p.identity
}

// SetIdentity sets an identity where club and section are not relevant.
func (p *Player) SetIdentity() {
	p.identity = Identity{
		Name:      p.Name,
		Event:     p.Event,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
}

func (p *Player) SetIdentityClub() {
	p.identity = Identity{
		Name:      p.Name,
		Event:     p.Event,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Club:      p.Club,
	}
}

func (p *Player) SetIdentitySection() {
	p.identity = Identity{
		Name:      p.Name,
		Event:     p.Event,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Section:   p.Section,
		Pin:       p.Pin,
	}
}

// PlayerSection returns the club, else the section, of the player.
func (p *Player) PlayerSection() string {
	if p.Club != "" {
		return p.Club
	}
	return p.Section
}

// ShortIdentity is the tab separated identity without event details.
func (p *Player) ShortIdentity() string {
	if p.Club != "" {
		return p.Name + "\t\t" + p.Club
	}
	if p.Section != "" {
		if p.Pin != 0 {
			return p.Name + "\t\t" + p.Section + " " + itoa(p.Pin)
		}
		return p.Name + "\t\t" + p.Section
	}
	return p.Name
}

// Equal compares the identifying attributes of two players. Two absent
// players are equal.
func (p *Player) Equal(other *Player) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	return p.Name == other.Name &&
		p.Event == other.Event &&
		p.StartDate == other.StartDate &&
		p.EndDate == other.EndDate &&
		p.Section == other.Section &&
		p.Club == other.Club &&
		p.Pin == other.Pin &&
		p.Affiliation == other.Affiliation
}

// IsInconsistent reports whether other contradicts p. Attributes absent
// from other are detail not yet known and do not count. An absent player
// is inconsistent with a present one.
func (p *Player) IsInconsistent(other *Player, problems ProblemSet) bool {
	if p == nil || other == nil {
		if p == nil && other == nil {
			return false
		}
		problems.Add(ProblemNullPlayer)
		return true
	}
	differs := func(mine, theirs string) bool {
		return theirs != "" && mine != theirs
	}
	return differs(p.Name, other.Name) ||
		differs(p.Event, other.Event) ||
		differs(p.StartDate, other.StartDate) ||
		differs(p.EndDate, other.EndDate) ||
		differs(p.Section, other.Section) ||
		differs(p.Club, other.Club) ||
		differs(p.Affiliation, other.Affiliation) ||
		(other.Pin != 0 && p.Pin != other.Pin)
}

func (p *Player) AddReportedCodes(codes map[string]struct{}) {
	if p.ReportedCodes == nil {
		p.ReportedCodes = make(map[string]struct{})
	}
	for c := range codes {
		p.ReportedCodes[c] = struct{}{}
	}
}

// ReportedCodesString returns the codes, sorted and space separated.
func (p *Player) ReportedCodesString() string {
	if p == nil {
		return ""
	}
	codes := make([]string, 0, len(p.ReportedCodes))
	for c := range p.ReportedCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return strings.Join(codes, " ")
}

// DisplayName returns the name, or "" for an absent player.
func (p *Player) DisplayName() string {
	if p == nil {
		return ""
	}
	return p.Name
}
