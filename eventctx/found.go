/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package eventctx

// Found identifies what an extracted item holds. Negative values are
// usable data, zero is ignored data and positive values are extraction
// errors.
type Found int

const (
	FoundEventAndDates            Found = -1
	FoundPossibleEventName        Found = -2
	FoundSwissPairingCard         Found = -3
	FoundAPAPlayerCard            Found = -4
	FoundCompetitionGameDate      Found = -5
	FoundCompetitionName          Found = -6
	FoundCompetitionRound         Found = -7
	FoundRoundHeader              Found = -8
	FoundCompetitionRoundGameDate Found = -9
	FoundFixtureTeams             Found = -10
	FoundFixture                  Found = -11
	FoundCompetitionDate          Found = -12
	FoundResultNames              Found = -13
	FoundResult                   Found = -14
	FoundCompetitionAndDates      Found = -15
	FoundCSVTabular               Found = -16

	FoundIgnore Found = 0

	FoundSplitSwissData             Found = 1
	FoundAPAInSwissData             Found = 2
	FoundExtraPinSwissData          Found = 3
	FoundNameSplitByPinSwiss        Found = 4
	FoundNoPinSwiss                 Found = 5
	FoundSplitAPAData               Found = 11
	FoundExtraPinAPAData            Found = 12
	FoundNameSplitByPinAPA          Found = 13
	FoundNoPinAPA                   Found = 14
	FoundMoreThanTwoDates           Found = 21
	FoundDateSplitsEventName        Found = 22
	FoundExtraScoreAndBoardItems    Found = 31
	FoundExtraBoardItemsScore       Found = 32
	FoundExtraPointsItemsScore      Found = 33
	FoundExtraDrawItemsScore        Found = 34
	FoundExtraVoidItemsScore        Found = 35
	FoundExtraBoardItemsDraw        Found = 41
	FoundExtraPointsItemsDraw       Found = 42
	FoundExtraVoidItemsDraw         Found = 43
	FoundExtraBoardItemsVoid        Found = 51
	FoundExtraPointsItemsVoid       Found = 52
	FoundBadPointsFormat            Found = 53
	FoundExtraRoundsDateCompetition Found = 61
	FoundNotDateOnly                Found = 62
	FoundExtraRoundsDate            Found = 63
	FoundNotCompetitionRoundOnly    Found = 64
	FoundNotCompetitionOnly         Found = 65
	FoundExtraRoundsCompetition     Found = 66
	FoundNotTwoTeams                Found = 67
	FoundTableFormat                Found = 71
)

// IsData reports whether f is usable data rather than an ignored item or
// an extraction error.
func (f Found) IsData() bool {
	return f < 0
}

// IsError reports whether f marks an extraction error.
func (f Found) IsError() bool {
	return f > 0
}

func (f Found) isRealResult() bool {
	return f == FoundResultNames || f == FoundResult
}

// Scores for games and matches that did not finish normally. Standard
// scores such as "1-0" or "3 3" are carried as written.
const (
	ScoreBad            = "bad score"
	ScoreDefault        = "default"
	ScoreAwayWinDefault = "default 1"
	ScoreHomeWinDefault = "1 default"
	ScoreUnfinished     = "unfinished"
	ScoreVoid           = "void"
	ScoreMatchDefaulted = "match defaulted"
	ScoreDoubleDefault  = "double default"
	ScoreError          = "error"
)

var conventionalMatchGameResults = map[string]struct{}{
	ScoreDefault:        {},
	ScoreAwayWinDefault: {},
	ScoreHomeWinDefault: {},
	ScoreMatchDefaulted: {},
	ScoreDoubleDefault:  {},
}

var includedInTeamScore = map[string]struct{}{
	ScoreAwayWinDefault: {},
	ScoreHomeWinDefault: {},
}

var excludedFromMatchScore = map[string]struct{}{
	ScoreVoid:          {},
	ScoreDoubleDefault: {},
}

// adaptedScores are the result tokens understood by the results parser
// for each unusual score. Bad and error scores map to tokens that are
// deliberately not recognised.
var adaptedScores = map[string]string{
	ScoreBad:            "badscore",
	ScoreDefault:        "default",
	ScoreAwayWinDefault: "def-",
	ScoreHomeWinDefault: "def+",
	ScoreUnfinished:     "unfinished",
	ScoreVoid:           "void",
	ScoreMatchDefaulted: "matchdefaulted",
	ScoreDoubleDefault:  "dbld",
	ScoreError:          "error",
}
