// Package similarity scores how closely a typed locality name matches a
// candidate office name. Scores are integers in [0, 100]; 100 is an exact
// case-insensitive match.
package similarity

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	// ExactScore is returned when both strings fold to the same value.
	ExactScore = 100

	// SubstringScore is returned when the folded target contains the folded
	// input. The value does not depend on how much of the target is covered.
	SubstringScore = 95

	// MinWordLength is the shortest word considered by the word-pair pass.
	MinWordLength = 3
)

// fold normalizes s to NFC and applies Unicode case folding.
// A fresh Caser is created per call because Casers are stateful.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Distance returns the unit-cost Levenshtein edit distance between the
// case-folded forms of a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(fold(a), fold(b))
}

// Score rates how well input matches target.
//
// Rules, first match wins:
//  1. folded, trimmed strings are equal: 100
//  2. folded target contains folded input: 95
//  3. best normalized similarity over word pairs where both words have at
//     least three runes (ties keep the first pair seen)
//  4. normalized similarity of the whole strings
//
// Score is not symmetric: rule 2 only checks input inside target.
func Score(input, target string) int {
	in := strings.TrimSpace(fold(input))
	tg := strings.TrimSpace(fold(target))

	if in == tg {
		return ExactScore
	}
	if strings.Contains(tg, in) {
		return SubstringScore
	}

	if best := bestWordScore(strings.Fields(in), strings.Fields(tg)); best > 0 {
		return int(math.Round(best))
	}

	return int(math.Round(normalized(in, tg)))
}

// bestWordScore returns the highest pairwise similarity across qualifying
// word pairs, or 0 when no pair qualifies.
func bestWordScore(inWords, tgWords []string) float64 {
	best := 0.0
	for _, iw := range inWords {
		if utf8.RuneCountInString(iw) < MinWordLength {
			continue
		}
		for _, tw := range tgWords {
			if utf8.RuneCountInString(tw) < MinWordLength {
				continue
			}
			if s := normalized(iw, tw); s > best {
				best = s
			}
		}
	}
	return best
}

// normalized returns 100 * (maxLen - distance) / maxLen for already folded strings.
func normalized(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return ExactScore
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-d) / float64(maxLen) * 100
}
