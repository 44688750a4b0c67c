/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package model

// Result is a game result code. The first named player in a game line is
// the home player; no assumption is made about colour.
type Result string

const (
	ResultToBeReported   Result = ""
	ResultHomeWin        Result = "h"
	ResultAwayWin        Result = "a"
	ResultDraw           Result = "d"
	ResultHomeWinDefault Result = "hd"
	ResultAwayWinDefault Result = "ad"
	ResultDoubleDefault  Result = "dd"
	ResultDrawDefault    Result = "=d"
	ResultHomeBye        Result = "hb"
	ResultAwayBye        Result = "ab"
	ResultHomeHalfBye    Result = "hbh"
	ResultAwayHalfBye    Result = "abh"
	ResultVoid           Result = "v"
	ResultNotAResult     Result = "not a result"
	ResultDefaulted      Result = "gd"
)

const ToBeReportedText = "to be reported"

var displayResult = map[Result]string{
	ResultHomeWin:        "1-0",
	ResultAwayWin:        "0-1",
	ResultDraw:           "draw",
	ResultHomeWinDefault: "1-def",
	ResultAwayWinDefault: "def-1",
	ResultDoubleDefault:  "dbldef",
	ResultHomeBye:        "bye+",
	ResultAwayBye:        "bye+",
	ResultHomeHalfBye:    "bye=",
	ResultAwayHalfBye:    "bye=",
	ResultVoid:           "void",
	ResultDrawDefault:    "drawdef",
	ResultDefaulted:      "defaulted",
}

var displayResultTag = map[Result]string{
	ResultToBeReported: ToBeReportedText,
	ResultNotAResult:   string(ResultNotAResult),
}

// tokens accepted in result text
var resultMap = map[string]Result{
	"1-0":     ResultHomeWin,
	"0-1":     ResultAwayWin,
	"draw":    ResultDraw,
	"void":    ResultVoid,
	"tbr":     ResultToBeReported,
	"":        ResultToBeReported,
	"def+":    ResultHomeWinDefault,
	"def-":    ResultAwayWinDefault,
	"dbld":    ResultDoubleDefault,
	"def=":    ResultDrawDefault,
	"default": ResultDefaulted,
}

var matchScoreDifference = map[Result]float64{
	ResultHomeWin:        1,
	ResultAwayWin:        -1,
	ResultDraw:           0,
	ResultHomeWinDefault: 1,
	ResultAwayWinDefault: -1,
	ResultDoubleDefault:  0,
	ResultDrawDefault:    0,
	ResultHomeBye:        1,
	ResultAwayBye:        -1,
	ResultHomeHalfBye:    0.5,
	ResultAwayHalfBye:    -0.5,
	ResultToBeReported:   0,
	ResultVoid:           0,
	ResultNotAResult:     0,
}

var matchScoreTotal = map[Result]float64{
	ResultHomeWin:        1,
	ResultAwayWin:        1,
	ResultDraw:           1,
	ResultHomeWinDefault: 1,
	ResultAwayWinDefault: 1,
	ResultDoubleDefault:  0,
	ResultDrawDefault:    0.5,
	ResultHomeBye:        1,
	ResultAwayBye:        1,
	ResultHomeHalfBye:    0.5,
	ResultAwayHalfBye:    0.5,
	ResultToBeReported:   0,
	ResultVoid:           0,
	ResultNotAResult:     0,
}

var invertedResult = map[Result]Result{
	ResultHomeWin:        ResultAwayWin,
	ResultAwayWin:        ResultHomeWin,
	ResultDraw:           ResultDraw,
	ResultHomeWinDefault: ResultAwayWinDefault,
	ResultAwayWinDefault: ResultHomeWinDefault,
	ResultDoubleDefault:  ResultDoubleDefault,
	ResultDrawDefault:    ResultDrawDefault,
	ResultHomeBye:        ResultAwayBye,
	ResultAwayBye:        ResultHomeBye,
	ResultHomeHalfBye:    ResultAwayHalfBye,
	ResultAwayHalfBye:    ResultHomeHalfBye,
}

// ParseResult maps a result token such as "1-0" or "def+" to a Result.
// Unknown tokens, "unfinished" among them, are to be reported.
func ParseResult(token string) Result {
	r, ok := resultMap[token]
	if !ok {
		return ResultToBeReported
	}
	return r
}

// ResultTokenExists reports whether token is in the result vocabulary.
func ResultTokenExists(token string) bool {
	_, ok := resultMap[token]
	return ok
}

// Display returns the printable form of r, or "" if r has none.
func (r Result) Display() string {
	return displayResult[r]
}

// Tag returns the status comment printed after a game without a result.
func (r Result) Tag() string {
	return displayResultTag[r]
}

// IsFinished reports whether r has a printable result.
func (r Result) IsFinished() bool {
	_, ok := displayResult[r]
	return ok
}

// ScoreDifference returns the contribution of r to home score minus away
// score. ok is false for codes with no defined contribution.
func (r Result) ScoreDifference() (float64, bool) {
	v, ok := matchScoreDifference[r]
	return v, ok
}

// ScoreTotal returns the contribution of r to the sum of both match scores.
func (r Result) ScoreTotal() (float64, bool) {
	v, ok := matchScoreTotal[r]
	return v, ok
}

// Invert returns the result seen from the other player's side.
func (r Result) Invert() Result {
	if v, ok := invertedResult[r]; ok {
		return v
	}
	return r
}
