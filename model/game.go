/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

// Color is the colour of the home (first named) player's pieces.
type Color int

const (
	ColorUnknown Color = iota
	ColorWhite
	ColorBlack
)

// Pieces returns "White", "Black" or "" for the home player.
func (c Color) Pieces() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	}
	return ""
}

// ColorFromWhite maps a known home-player-white flag to a Color.
func ColorFromWhite(white bool) Color {
	if white {
		return ColorWhite
	}
	return ColorBlack
}

// Game is a single game result. Games are compared structurally with
// Equal; as map keys the pointer is the identity, so structurally equal
// games from different reports stay distinct.
type Game struct {
	Result          Result
	Date            string
	HomePlayerColor Color
	// HomePlayer is the leftmost player in "Smith 1-0 Jones".
	HomePlayer *Player
	AwayPlayer *Player
	// NotGraded is set for games whose result is not stored for grading.
	NotGraded bool
	Tag       *Tag
}

// GameRecord is implemented by every game variant.
type GameRecord interface {
	GameBase() *Game
	BoardAndRound() (string, string)
}

func (g *Game) GameBase() *Game {
	return g
}

func (g *Game) BoardAndRound() (string, string) {
	return "", ""
}

// PrintResult returns the printable result and the status comment.
func (g *Game) PrintResult() (string, string) {
	return g.Result.Display(), g.Result.Tag()
}

func (g *Game) Equal(other *Game) bool {
	return g.Result == other.Result &&
		g.Date == other.Date &&
		g.HomePlayerColor == other.HomePlayerColor &&
		g.HomePlayer.Equal(other.HomePlayer) &&
		g.AwayPlayer.Equal(other.AwayPlayer) &&
		g.NotGraded == other.NotGraded
}

// IsInconsistent reports whether other, an earlier report of the same
// game, contradicts g. Detail missing from other, such as the result of
// an unfinished game, is not a contradiction.
func (g *Game) IsInconsistent(other *Game, problems ProblemSet) bool {
	state := false
	if g.HomePlayer.IsInconsistent(other.HomePlayer, problems) {
		problems.Add(ProblemHomePlayer)
		state = true
	}
	if g.AwayPlayer.IsInconsistent(other.AwayPlayer, problems) {
		problems.Add(ProblemAwayPlayer)
		state = true
	}
	if g.HomePlayerColor != other.HomePlayerColor && other.HomePlayer != nil {
		problems.Add(ProblemHomePlayerWhite)
		state = true
	}
	if g.Result != other.Result && other.Result != ResultToBeReported {
		problems.Add(ProblemResult)
		state = true
	}
	return state
}

// MatchGame is a game reported in a team match.
type MatchGame struct {
	Game
	Board       string
	GradingOnly bool
}

func (g *MatchGame) BoardAndRound() (string, string) {
	return g.Board, ""
}

// CountedInMatchScore reports whether the game counts in the match score.
func (g *MatchGame) CountedInMatchScore() bool {
	return !g.GradingOnly
}

// PrintResult adds "invalid result" for unknown codes and the grading
// only note.
func (g *MatchGame) PrintResult() (string, string, string) {
	tag, ok := displayResultTag[g.Result]
	if !ok && !g.Result.IsFinished() {
		tag = "invalid result"
	}
	gradingOnly := ""
	if g.GradingOnly {
		gradingOnly = "grading only"
	}
	return g.Result.Display(), tag, gradingOnly
}

func (g *MatchGame) Equal(other *MatchGame) bool {
	return g.Board == other.Board &&
		g.GradingOnly == other.GradingOnly &&
		g.Game.Equal(&other.Game)
}

func (g *MatchGame) IsInconsistent(other *MatchGame, problems ProblemSet) bool {
	state := false
	if g.Board != other.Board && other.Board != "" {
		problems.Add(ProblemBoard)
		state = true
	}
	if g.GradingOnly != other.GradingOnly {
		problems.Add(ProblemGradingOnly)
		state = true
	}
	return g.Game.IsInconsistent(&other.Game, problems) || state
}

// UnfinishedGame is the completion of a match game first reported
// unfinished.
type UnfinishedGame struct {
	MatchGame
	Source      string
	Section     string
	Competition string
	HomeTeam    string
	AwayTeam    string
}

func (g *UnfinishedGame) Equal(other *UnfinishedGame) bool {
	return g.Source == other.Source &&
		g.Section == other.Section &&
		g.Competition == other.Competition &&
		g.HomeTeam == other.HomeTeam &&
		g.AwayTeam == other.AwayTeam &&
		g.MatchGame.Equal(&other.MatchGame)
}

// IsInconsistent ignores the board, which may have been calculated from
// the position of the game in the report.
func (g *UnfinishedGame) IsInconsistent(other *UnfinishedGame, problems ProblemSet) bool {
	state := false
	if g.Source != other.Source {
		problems.Add(ProblemSource)
		state = true
	}
	if g.Section != other.Section {
		problems.Add(ProblemSection)
		state = true
	}
	if g.Competition != other.Competition {
		problems.Add(ProblemCompetition)
		state = true
	}
	if g.HomeTeam != other.HomeTeam {
		problems.Add(ProblemHomeTeamName)
		state = true
	}
	if g.AwayTeam != other.AwayTeam {
		problems.Add(ProblemAwayTeamName)
		state = true
	}
	if g.HomePlayer.IsInconsistent(other.HomePlayer, problems) {
		problems.Add(ProblemHomePlayer)
		state = true
	}
	if g.AwayPlayer.IsInconsistent(other.AwayPlayer, problems) {
		problems.Add(ProblemAwayPlayer)
		state = true
	}
	anyPlayer := g.HomePlayer != nil || g.AwayPlayer != nil ||
		other.HomePlayer != nil || other.AwayPlayer != nil
	if anyPlayer && g.Result != other.Result && other.Result != ResultToBeReported {
		problems.Add(ProblemResult)
		state = true
	}
	return state
}

// SwissGame is a game from a swiss or all-play-all table.
type SwissGame struct {
	Game
	Round string
}

func (g *SwissGame) BoardAndRound() (string, string) {
	return "", g.Round
}

func (g *SwissGame) Equal(other *SwissGame) bool {
	return g.Round == other.Round && g.Game.Equal(&other.Game)
}

func (g *SwissGame) IsInconsistent(other *SwissGame, problems ProblemSet) bool {
	state := false
	if g.Round != other.Round && other.Round != "" {
		problems.Add(ProblemRound)
		state = true
	}
	return g.Game.IsInconsistent(&other.Game, problems) || state
}

// SwissMatchGame is a game from a swiss tournament between teams.
type SwissMatchGame struct {
	Game
	Board string
	Round string
}

func (g *SwissMatchGame) BoardAndRound() (string, string) {
	return g.Board, g.Round
}

func (g *SwissMatchGame) Equal(other *SwissMatchGame) bool {
	return g.Board == other.Board &&
		g.Round == other.Round &&
		g.Game.Equal(&other.Game)
}

func (g *SwissMatchGame) IsInconsistent(other *SwissMatchGame, problems ProblemSet) bool {
	state := false
	if g.Round != other.Round && other.Round != "" {
		problems.Add(ProblemRound)
		state = true
	}
	if g.Board != other.Board && other.Board != "" {
		problems.Add(ProblemBoard)
		state = true
	}
	return g.Game.IsInconsistent(&other.Game, problems) || state
}
