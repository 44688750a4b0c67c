/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package classify

import (
	"strings"

	"github.com/mikeb26/chessvalidate/model"
)

// ColourRule gives the home player's colour from the board number when
// a game line does not say.
type ColourRule int

const (
	ColourNotSpecified ColourRule = iota
	ColourWhiteOnOdd
	ColourBlackOnOdd
	ColourWhiteOnAll
	ColourBlackOnAll
)

func ParseColourRule(word string) (ColourRule, bool) {
	switch strings.ToLower(word) {
	case "notspecified":
		return ColourNotSpecified, true
	case "whiteonodd":
		return ColourWhiteOnOdd, true
	case "blackonodd":
		return ColourBlackOnOdd, true
	case "whiteonall":
		return ColourWhiteOnAll, true
	case "blackonall":
		return ColourBlackOnAll, true
	}
	return ColourNotSpecified, false
}

func (r ColourRule) String() string {
	switch r {
	case ColourWhiteOnOdd:
		return "whiteonodd"
	case ColourBlackOnOdd:
		return "blackonodd"
	case ColourWhiteOnAll:
		return "whiteonall"
	case ColourBlackOnAll:
		return "blackonall"
	}
	return "notspecified"
}

// BoardColour returns the home player's colour on board. A board like
// "2.1" is game 1 on board 2 of a multi-game match.
func (r ColourRule) BoardColour(board string) model.Color {
	switch r {
	case ColourWhiteOnAll:
		return model.ColorWhite
	case ColourBlackOnAll:
		return model.ColorBlack
	case ColourBlackOnOdd:
		return blackOnOdd(board)
	case ColourWhiteOnOdd:
		switch blackOnOdd(board) {
		case model.ColorWhite:
			return model.ColorBlack
		case model.ColorBlack:
			return model.ColorWhite
		}
	}
	return model.ColorUnknown
}

// blackOnOdd: home player has black on odd boards, and in multi-game
// matches the colours alternate with the game number.
func blackOnOdd(board string) model.Color {
	parts := strings.Split(board, ".")
	if len(parts) > 2 {
		return model.ColorUnknown
	}
	colours := make([]model.Color, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return model.ColorUnknown
		}
		switch p[len(p)-1] {
		case '1', '3', '5', '7', '9':
			colours = append(colours, model.ColorBlack)
		case '0', '2', '4', '6', '8':
			colours = append(colours, model.ColorWhite)
		default:
			return model.ColorUnknown
		}
	}
	if len(colours) == 1 {
		return colours[0]
	}
	// white on an even board plays black in an even numbered game
	if colours[0] == colours[1] {
		return model.ColorBlack
	}
	return model.ColorWhite
}
