package internal

import (
	"math"
	"math/rand/v2"
	"strings"
	"unicode"
)

// DefaultWordRatio is the share of the grid side used as the longest
// dictionary word. Shorter words collide less often during placement.
const DefaultWordRatio = 0.9

type KnownWordsParams struct {
	Words         []string
	ExcludedWords []string
	MinWordLength *int
	MaxWordLength *int
}

type params struct {
	words         []string
	excludedWords []string
	minWordLength int
	maxWordLength int
}

func asParams(p KnownWordsParams) params {
	pp := params{
		words:         p.Words,
		excludedWords: p.ExcludedWords,
	}

	if p.MinWordLength == nil {
		pp.minWordLength = 1
	} else {
		pp.minWordLength = *p.MinWordLength
	}

	if p.MaxWordLength == nil {
		pp.maxWordLength = math.MaxInt
	} else {
		pp.maxWordLength = *p.MaxWordLength
	}

	return pp
}

// NormalizeWord trims and upper-cases w. It reports false when the result is
// empty or contains anything other than letters.
func NormalizeWord(w string) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if w == "" {
		return "", false
	}
	for _, r := range w {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return "", false
		}
	}
	return w, true
}

// NormalizeWords normalizes every word, dropping the ones that are not purely
// alphabetic. Order and duplicates are kept.
func NormalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n, ok := NormalizeWord(w); ok {
			out = append(out, n)
		}
	}
	return out
}

// KnownWords returns the normalized, de-duplicated dictionary limited to the
// configured lengths, in first-seen order.
func KnownWords(p KnownWordsParams) []string {
	params := asParams(p)

	excluded := make(map[string]bool, len(params.excludedWords))
	for _, w := range NormalizeWords(params.excludedWords) {
		excluded[w] = true
	}

	seen := make(map[string]bool, len(params.words))
	words := make([]string, 0, len(params.words))
	for _, w := range NormalizeWords(params.words) {
		if len(w) < params.minWordLength || len(w) > params.maxWordLength {
			continue
		}
		if excluded[w] || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// MaxWordLengthFor returns the longest word to keep for a grid of the given
// side. A non-positive ratio means DefaultWordRatio; the result is clamped to
// [1, side].
func MaxWordLengthFor(side int, ratio float64) int {
	if ratio <= 0 {
		ratio = DefaultWordRatio
	}
	n := int(ratio * float64(side))
	return max(1, min(n, side))
}

// PickWords chooses between minCount and maxCount words from words at random,
// with replacement.
func PickWords(words []string, r *rand.Rand, minCount, maxCount int) []string {
	if len(words) == 0 || maxCount <= 0 {
		return nil
	}
	minCount = max(minCount, 0)
	if maxCount < minCount {
		maxCount = minCount
	}
	k := minCount + r.IntN(maxCount-minCount+1)
	picked := make([]string, k)
	for i := range picked {
		picked[i] = words[r.IntN(len(words))]
	}
	return picked
}
