/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package eventctx

import (
	"sort"
	"strings"
)

const (
	// longJoinedNameWords is the word count beyond which a joined name
	// pair is truncated, when truncation is enabled.
	longJoinedNameWords = 50
	truncatedNameWords  = 10
)

// NamePair is a first and second name taken from a joined string.
type NamePair struct {
	First  string
	Second string
}

// Names holds the candidate ways of splitting a string holding two names
// separated by junk into a first and second name. A candidate takes a
// leading run of words as the first name and a trailing run as the
// second, never reordering or reusing a word. Candidates are ordered from
// least to most likely; the last is the best guess.
type Names struct {
	Text      string
	NamePairs []NamePair
}

type rankedPair struct {
	product int
	first   int
	pair    NamePair
}

// NewNames returns the candidate splits of the words in text.
func NewNames(text string) *Names {
	words := strings.Fields(text)
	n := &Names{Text: strings.Join(words, " ")}
	switch len(words) {
	case 0:
		return n
	case 1:
		n.NamePairs = []NamePair{{First: n.Text}}
		return n
	}
	var ranked []rankedPair
	for i := 1; i < len(words); i++ {
		for j := i; j < len(words); j++ {
			ranked = append(ranked, rankedPair{
				product: i * (len(words) - j),
				first:   i,
				pair: NamePair{
					First:  strings.Join(words[:i], " "),
					Second: strings.Join(words[j:], " "),
				},
			})
		}
	}
	sort.Slice(ranked, func(a, b int) bool {
		x, y := ranked[a], ranked[b]
		switch {
		case x.product != y.product:
			return x.product < y.product
		case x.first != y.first:
			return x.first < y.first
		case x.pair.First != y.pair.First:
			return x.pair.First < y.pair.First
		}
		return x.pair.Second < y.pair.Second
	})
	n.NamePairs = make([]NamePair, 0, len(ranked))
	for _, r := range ranked {
		n.NamePairs = append(n.NamePairs, r.pair)
	}
	return n
}

// NewUnsplitNames treats all of text as the first name.
func NewUnsplitNames(text string) *Names {
	n := &Names{Text: strings.Join(strings.Fields(text), " ")}
	if n.Text != "" {
		n.NamePairs = []NamePair{{First: n.Text}}
	}
	return n
}

// NamePhrases returns every non-empty name in the candidate splits.
func (n *Names) NamePhrases() map[string]struct{} {
	ret := make(map[string]struct{})
	for _, p := range n.NamePairs {
		if p.First != "" {
			ret[p.First] = struct{}{}
		}
		if p.Second != "" {
			ret[p.Second] = struct{}{}
		}
	}
	return ret
}

// GuessFromKnownNames settles on one split of n.Text. The longest known
// name starting the text is the first name and the rest the second; else
// the longest known name ending the text is the second name. With no
// known name the words are shared evenly, the first name taking the odd
// word.
func (n *Names) GuessFromKnownNames(known map[string]struct{}) {
	var startsWith, endsWith string
	for _, k := range sortedKeys(known) {
		if strings.HasPrefix(n.Text, k) && len(k) > len(startsWith) {
			startsWith = k
		}
		if strings.HasSuffix(n.Text, k) && len(k) > len(endsWith) {
			endsWith = k
		}
	}
	switch {
	case startsWith != "":
		endsWith = strings.TrimSpace(strings.ReplaceAll(n.Text, startsWith, ""))
	case endsWith != "":
		startsWith = strings.TrimSpace(strings.ReplaceAll(n.Text, endsWith, ""))
	default:
		words := strings.Fields(n.Text)
		half := (1 + len(words)) / 2
		startsWith = strings.Join(words[:half], " ")
		endsWith = strings.Join(words[half:], " ")
	}
	n.NamePairs = []NamePair{{First: startsWith, Second: endsWith}}
}

func (n *Names) best() (NamePair, bool) {
	if len(n.NamePairs) == 0 {
		return NamePair{}, false
	}
	return n.NamePairs[len(n.NamePairs)-1], true
}

func sortedKeys(m map[string]struct{}) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// SplitJoinedNames splits each of joined into two names. A phrase that is
// a candidate first name in some string and a candidate second name in
// another is taken to be a real name. Strings with a candidate split into
// two real names take the best such split. The rest are guessed from the
// real names, then repeatedly re-split at the first word boundary that
// yields a name confirmed elsewhere until no more can be resolved.
//
// When truncate is set, each part of a joined string over 50 words is cut
// to its first 10 words. The second result reports whether any string was
// that long.
func SplitJoinedNames(joined [][]string, truncate bool) ([]NamePair, bool) {
	long := false
	sets := make([]*Names, len(joined))
	firsts := make(map[string]struct{})
	seconds := make(map[string]struct{})
	for idx, parts := range joined {
		var words [][]string
		count := 0
		for _, p := range parts {
			w := strings.Fields(p)
			words = append(words, w)
			count += len(w)
		}
		if count > longJoinedNameWords {
			long = true
			if truncate {
				for i, w := range words {
					if len(w) > truncatedNameWords {
						words[i] = w[:truncatedNameWords]
					}
				}
			}
		}
		var all []string
		for _, w := range words {
			all = append(all, w...)
		}
		sets[idx] = NewNames(strings.Join(all, " "))
		for _, p := range sets[idx].NamePairs {
			firsts[p.First] = struct{}{}
			seconds[p.Second] = struct{}{}
		}
	}
	known := make(map[string]struct{})
	for name := range firsts {
		if _, ok := seconds[name]; ok {
			known[name] = struct{}{}
		}
	}

	ret := make([]NamePair, len(joined))
	consistent := make(map[string]struct{})
	var guesses []int
	for idx, n := range sets {
		var kept []NamePair
		for _, p := range n.NamePairs {
			_, fok := known[p.First]
			_, sok := known[p.Second]
			if fok && sok {
				kept = append(kept, p)
			}
		}
		n.NamePairs = kept
		if best, ok := n.best(); ok {
			ret[idx] = best
			consistent[best.First] = struct{}{}
			consistent[best.Second] = struct{}{}
			continue
		}
		n.GuessFromKnownNames(known)
		ret[idx], _ = n.best()
		guesses = append(guesses, idx)
	}

	for {
		var still []int
		for _, idx := range guesses {
			words := strings.Fields(ret[idx].First + " " + ret[idx].Second)
			if len(words) == 0 {
				// defaulted games have no names
				continue
			}
			split := false
			for i := 1; i < len(words); i++ {
				first := strings.Join(words[:i], " ")
				second := strings.Join(words[i:], " ")
				_, fok := consistent[first]
				_, sok := consistent[second]
				if fok || sok {
					ret[idx] = NamePair{First: first, Second: second}
					consistent[first] = struct{}{}
					consistent[second] = struct{}{}
					split = true
					break
				}
			}
			if !split {
				still = append(still, idx)
			}
		}
		if len(still) == len(guesses) {
			break
		}
		guesses = still
	}
	return ret, long
}
