package similarity

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// minTokenRunes is the shortest run of word characters kept as a term.
const minTokenRunes = 2

// Tokenizer splits text into index terms.
// The zero value folds case and keeps every term.
type Tokenizer struct {
	stopWords map[string]struct{}
	stem      bool
}

// NewTokenizer creates a tokenizer with the given options applied.
func NewTokenizer(opts ...Option) *Tokenizer {
	cfg := newConfig(opts)
	return cfg.tokenizer()
}

// Tokenize returns the terms of text in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	var terms []string
	for _, word := range words(strings.ToLower(text)) {
		if _, stop := t.stopWords[word]; stop {
			continue
		}
		if t.stem {
			word = english.Stem(word, true)
		}
		terms = append(terms, word)
	}
	return terms
}

// IsStopWord reports whether word is removed before weighting.
func (t *Tokenizer) IsStopWord(word string) bool {
	_, ok := t.stopWords[strings.ToLower(word)]
	return ok
}

// words returns maximal runs of word characters that are at least
// minTokenRunes long. "150.0" yields "150"; the lone "0" is dropped.
func words(text string) []string {
	var out []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			out = append(out, text[start:end])
		}
		start, runes = -1, 0
	}
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))
	return out
}

// isWordRune matches the regexp \w class over Unicode: letters, every
// numeric category and the underscore. Combining marks break a word.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
